package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finledger/internal/amqp"
	"finledger/internal/storage"
)

// ArchiveWorker mirrors the primary ledger snapshot into a durable archive
// whenever a ledger sync message arrives. The snapshot is reloaded from the
// primary port on every message rather than trusted from the payload, so a
// lost or reordered message costs nothing.
type ArchiveWorker struct {
	primary storage.Port
	archive storage.Port
}

func NewArchiveWorker(primary, archive storage.Port) *ArchiveWorker {
	return &ArchiveWorker{
		primary: primary,
		archive: archive,
	}
}

// HandleSyncMessage processes a single ledger sync message from AMQP.
func (w *ArchiveWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing ledger sync message",
		"reason", msg.Reason,
		"statement_id", msg.StatementID,
		"admitted", msg.Admitted)

	return w.MirrorOnce(ctx)
}

// MirrorOnce copies the current primary snapshot into the archive. Also run
// at startup so the archive catches up on messages missed while down.
func (w *ArchiveWorker) MirrorOnce(ctx context.Context) error {
	snap, err := w.primary.Load(ctx)
	if err != nil {
		return fmt.Errorf("load primary snapshot: %w", err)
	}

	if err := w.archive.Save(ctx, snap); err != nil {
		return fmt.Errorf("save archive snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Archived ledger snapshot",
		"statements", len(snap.Statements),
		"transactions", len(snap.Transactions))
	return nil
}

// Run consumes ledger sync messages until ctx is cancelled.
func (w *ArchiveWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeLedgerSync(ctx, func(msg *amqp.LedgerSyncMessage) error {
		return w.HandleSyncMessage(ctx, msg)
	})
}
