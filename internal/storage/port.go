package storage

import (
	"context"

	"finledger/internal/core"
)

// Port is the outbound persistence adapter for the ledger snapshot. A missing
// or never-written backing store loads as an empty snapshot, not an error.
type Port interface {
	Load(ctx context.Context) (core.Snapshot, error)
	Save(ctx context.Context, snap core.Snapshot) error
	Close() error
}
