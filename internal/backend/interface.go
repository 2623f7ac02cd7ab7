package backend

import (
	"context"

	"finledger/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the built persistence port and optional cleanup function
type Result struct {
	Port    storage.Port
	Cleanup CleanupFunc
}

// Factory creates persistence ports based on configuration
type Factory interface {
	CreatePort(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for port creation
type Config struct {
	Type Type

	// JSONFile specific
	LedgerPath string

	// SQLite specific
	SQLiteDBPath string
}

// Type represents the kind of persistence port
type Type string

const (
	JSONFileBackend Type = "jsonfile"
	SQLiteBackend   Type = "sqlite"
	MemoryBackend   Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONFileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
