package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core"
	"finledger/internal/ledger"
	"finledger/internal/storage"
)

func newTestService(t *testing.T, port storage.Port) *LedgerService {
	t.Helper()
	svc, err := NewLedgerService(context.Background(), port, nil, nil)
	require.NoError(t, err)
	return svc
}

func TestAddStatementAssignsID(t *testing.T) {
	svc := newTestService(t, storage.NewMemory())

	admitted, ok, err := svc.AddStatement(context.Background(), core.Statement{
		Name:   "bank.csv",
		Status: core.StatusUploading,
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, admitted.ID)

	s, ok := svc.Statement(admitted.ID)
	require.True(t, ok)
	assert.Equal(t, "bank.csv", s.Name)
}

func TestAddStatementPersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemory()
	svc := newTestService(t, port)

	_, ok, err := svc.AddStatement(ctx, core.Statement{ID: "st-1", Name: "bank.csv", Status: core.StatusUploading})
	require.NoError(t, err)
	require.True(t, ok)

	snap, err := port.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Statements, 1)
	assert.Equal(t, "st-1", snap.Statements[0].ID)
}

func TestDuplicateStatementIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemory())

	_, ok, err := svc.AddStatement(ctx, core.Statement{ID: "st-1", Name: "bank.csv", Status: core.StatusUploading})
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = svc.AddStatement(ctx, core.Statement{ID: "st-2", Name: "bank.csv", Status: core.StatusUploading})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Len(t, svc.Statements(), 1)
}

func TestAddTransactionsPersistsAndCounts(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemory()
	svc := newTestService(t, port)

	batch := []core.Transaction{
		{ID: "t1", Date: "2025-01-01", Amount: 100, Type: core.TypeIncome, Category: "salary"},
		{ID: "t2", Date: "2025-01-02", Amount: -50, Type: core.TypeExpense, Category: "food"},
	}
	admitted, err := svc.AddTransactions(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, admitted)

	// Re-offering the batch is absorbed and does not dirty the snapshot.
	admitted, err = svc.AddTransactions(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, admitted)

	snap, err := port.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 2)

	assert.InDelta(t, 100, svc.TotalIncome(), 1e-9)
	assert.InDelta(t, 50, svc.TotalExpenses(), 1e-9)
}

func TestServiceRehydratesFromPort(t *testing.T) {
	port := storage.NewMemoryWithSnapshot(core.Snapshot{
		Statements: []core.Statement{
			{ID: "st-1", Name: "bank.csv", Status: core.StatusCompleted, Progress: 100},
		},
		Transactions: []core.Transaction{
			{ID: "t1", Date: "2025-01-01", Amount: 10, Type: core.TypeExpense, Category: "food"},
			{ID: "t1", Date: "2025-01-01", Amount: 10, Type: core.TypeExpense, Category: "food"}, // corrupt duplicate
		},
	})

	svc := newTestService(t, port)

	assert.Len(t, svc.Statements(), 1)
	assert.Len(t, svc.Transactions(), 1)
	assert.InDelta(t, 10, svc.TotalExpenses(), 1e-9)
}

func TestUpdateStatementLifecycle(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemory()
	svc := newTestService(t, port)

	admitted, ok, err := svc.AddStatement(ctx, core.Statement{Name: "bank.csv", Status: core.StatusUploading})
	require.NoError(t, err)
	require.True(t, ok)

	status := core.StatusCompleted
	progress := 100
	summary := core.ExtractedSummary{TransactionCount: 5}
	require.NoError(t, svc.UpdateStatement(ctx, admitted.ID, ledger.StatementUpdate{
		Status:        &status,
		Progress:      &progress,
		ExtractedData: &summary,
	}))

	s, ok := svc.Statement(admitted.ID)
	require.True(t, ok)
	assert.Equal(t, core.StatusCompleted, s.Status)
	require.NotNil(t, s.ExtractedData)
	assert.Equal(t, 5, s.ExtractedData.TransactionCount)

	snap, err := port.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, snap.Statements[0].Status)
}

func TestRemoveStatementUnknownIDIsSilent(t *testing.T) {
	svc := newTestService(t, storage.NewMemory())
	assert.NoError(t, svc.RemoveStatement(context.Background(), "missing"))
}

func TestClearTransactionsPersists(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemory()
	svc := newTestService(t, port)

	_, err := svc.AddTransactions(ctx, []core.Transaction{
		{ID: "t1", Date: "2025-01-01", Amount: 10, Type: core.TypeExpense},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ClearTransactions(ctx))

	snap, err := port.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions)
}

func TestAddStatementReportsAdmissionAtRegistryCap(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemory())

	for i := 1; i <= 20; i++ {
		_, ok, err := svc.AddStatement(ctx, core.Statement{
			ID:     fmt.Sprintf("st-%d", i),
			Name:   fmt.Sprintf("bank-%d.csv", i),
			Status: core.StatusUploading,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Len(t, svc.Statements(), 20)

	// Admission into a full registry evicts the oldest entry, so the registry
	// length stays at the cap; only the returned flag tells admission apart
	// from a duplicate rejection.
	admitted, ok, err := svc.AddStatement(ctx, core.Statement{
		ID:     "st-21",
		Name:   "bank-21.csv",
		Status: core.StatusUploading,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	statements := svc.Statements()
	require.Len(t, statements, 20)
	assert.Equal(t, "st-21", statements[0].ID)
	_, found := svc.Statement("st-1")
	assert.False(t, found, "oldest entry should have been evicted")

	count, err := svc.AddTransactions(ctx, []core.Transaction{
		{ID: "t1", Date: "2025-01-01", Amount: 100, Type: core.TypeIncome, Source: admitted.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceCloseWithNilAMQP(t *testing.T) {
	svc := newTestService(t, storage.NewMemory())
	assert.NoError(t, svc.Close())
}

type failingClosePort struct {
	storage.Port
	closeErr error
}

func (p *failingClosePort) Close() error { return p.closeErr }

func TestServiceCloseKeepsErrorsInspectable(t *testing.T) {
	sentinel := errors.New("port close failed")
	port := &failingClosePort{Port: storage.NewMemory(), closeErr: sentinel}
	svc := newTestService(t, port)

	err := svc.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel))
}
