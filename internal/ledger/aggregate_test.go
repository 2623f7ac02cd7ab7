package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core"
)

func TestTotals(t *testing.T) {
	c := New()
	c.AddTransactions([]core.Transaction{
		tx("t1", "2025-01-01", 100, core.TypeIncome, "salary"),
		tx("t2", "2025-01-02", -50, core.TypeExpense, "food"),
		tx("t3", "2025-01-03", 30, core.TypeIncome, "salary"),
	})

	assert.InDelta(t, 130, c.TotalIncome(), 1e-9)
	assert.InDelta(t, 50, c.TotalExpenses(), 1e-9)
}

func TestTotalExpensesMixedSigns(t *testing.T) {
	c := New()
	c.AddTransactions([]core.Transaction{
		tx("t1", "2025-01-01", -50, core.TypeExpense, "food"),
		tx("t2", "2025-01-02", 25, core.TypeExpense, "food"),
	})

	assert.InDelta(t, 75, c.TotalExpenses(), 1e-9)
}

func TestTotalIncomeKeepsAuthoredSign(t *testing.T) {
	// Amounts are stored as provided; a negative income amount is not
	// corrected and reduces the total.
	c := New()
	c.AddTransactions([]core.Transaction{
		tx("t1", "2025-01-01", 100, core.TypeIncome, "salary"),
		tx("t2", "2025-01-02", -40, core.TypeIncome, "refund"),
	})

	assert.InDelta(t, 60, c.TotalIncome(), 1e-9)
}

func TestTransactionsByCategory(t *testing.T) {
	c := New()
	all := []core.Transaction{
		tx("t1", "2025-01-01", 10, core.TypeExpense, "food"),
		tx("t2", "2025-01-02", 20, core.TypeIncome, "salary"),
		tx("t3", "2025-01-03", 30, core.TypeExpense, "food"),
		tx("t4", "2025-01-04", 40, core.TypeExpense, "transport"),
	}
	c.AddTransactions(all)

	buckets := c.TransactionsByCategory()
	require.Len(t, buckets, 3)

	// Buckets preserve insertion order.
	require.Len(t, buckets["food"], 2)
	assert.Equal(t, "t1", buckets["food"][0].ID)
	assert.Equal(t, "t3", buckets["food"][1].ID)

	// The union of all buckets is the full transaction list.
	total := 0
	seen := map[string]bool{}
	for _, bucket := range buckets {
		for _, tx := range bucket {
			total++
			seen[tx.ID] = true
		}
	}
	assert.Equal(t, len(all), total)
	assert.Len(t, seen, len(all))
}

func TestRecentTransactionsOrdersByDateDescending(t *testing.T) {
	c := New()
	c.AddTransactions([]core.Transaction{
		tx("old", "2025-01-01", 1, core.TypeExpense, "food"),
		tx("newest", "2025-03-01", 1, core.TypeExpense, "food"),
		tx("mid", "2025-02-01", 1, core.TypeExpense, "food"),
	})

	got := c.RecentTransactions(2)
	require.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
}

func TestRecentTransactionsBreaksTiesByInsertionOrder(t *testing.T) {
	c := New()
	a := tx("a", "2025-02-01", 1, core.TypeExpense, "food")
	b := tx("b", "2025-02-01", 1, core.TypeExpense, "food")
	c.AddTransactions([]core.Transaction{a, b})

	got := c.RecentTransactions(2)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestRecentTransactionsDefaultLimit(t *testing.T) {
	c := New()
	var batch []core.Transaction
	for i := 0; i < 15; i++ {
		batch = append(batch, tx(
			string(rune('a'+i)),
			"2025-01-01",
			1, core.TypeExpense, "food",
		))
	}
	c.AddTransactions(batch)

	assert.Len(t, c.RecentTransactions(0), 10)
	assert.Len(t, c.RecentTransactions(-3), 10)
	assert.Len(t, c.RecentTransactions(100), 15)
}

func TestEmptyStoreAggregations(t *testing.T) {
	c := New()

	assert.Zero(t, c.TotalIncome())
	assert.Zero(t, c.TotalExpenses())
	assert.NotNil(t, c.TransactionsByCategory())
	assert.Empty(t, c.TransactionsByCategory())
	assert.Empty(t, c.RecentTransactions(0))
}

func TestOverview(t *testing.T) {
	c := New()
	c.AddTransactions([]core.Transaction{
		tx("t1", "2025-01-01", 100, core.TypeIncome, "salary"),
		tx("t2", "2025-01-02", -50, core.TypeExpense, "food"),
		tx("t3", "2025-01-03", 25, core.TypeExpense, "food"),
	})

	ov := c.Overview()
	assert.InDelta(t, 100, ov.TotalIncome, 1e-9)
	assert.InDelta(t, 75, ov.TotalExpenses, 1e-9)
	assert.Equal(t, 3, ov.TransactionCount)
	require.Len(t, ov.ByCategory, 2)
	// First-seen category order.
	assert.Equal(t, "salary", ov.ByCategory[0].Name)
	assert.Equal(t, "food", ov.ByCategory[1].Name)
	assert.Equal(t, 2, ov.ByCategory[1].Count)
	assert.InDelta(t, 75, ov.ByCategory[1].Total, 1e-9)
}
