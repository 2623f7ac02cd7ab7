package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/amqp"
	"finledger/internal/core"
	"finledger/internal/storage"
)

func TestMirrorOnceCopiesSnapshot(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemoryWithSnapshot(core.Snapshot{
		Transactions: []core.Transaction{
			{ID: "t1", Date: "2025-01-01", Amount: 10, Type: core.TypeExpense},
		},
	})
	archive := storage.NewMemory()

	w := NewArchiveWorker(primary, archive)
	require.NoError(t, w.MirrorOnce(ctx))

	snap, err := archive.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "t1", snap.Transactions[0].ID)
}

func TestHandleSyncMessageMirrors(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemoryWithSnapshot(core.Snapshot{
		Statements: []core.Statement{
			{ID: "st-1", Name: "bank.csv", Status: core.StatusCompleted, Progress: 100},
		},
	})
	archive := storage.NewMemory()

	w := NewArchiveWorker(primary, archive)
	msg := amqp.NewLedgerSyncMessage(amqp.ReasonStatement, "st-1", 0)
	require.NoError(t, w.HandleSyncMessage(ctx, msg))

	snap, err := archive.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Statements, 1)
}
