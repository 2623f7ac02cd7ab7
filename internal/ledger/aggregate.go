package ledger

import (
	"math"
	"slices"
	"strings"

	"finledger/internal/core"
)

// defaultRecentLimit matches the dashboard's recent-activity widget.
const defaultRecentLimit = 10

// Aggregations are recomputed from the live transaction list on every call.
// At client-side volumes (hundreds to low thousands of records) recomputing
// is cheaper than keeping incremental aggregates correct.

// TotalIncome sums raw amounts over income transactions. Amounts are not
// sign-corrected at admission, so a negative income amount reduces the total.
func (c *Cache) TotalIncome() float64 {
	var total float64
	for _, tx := range c.transactions {
		if tx.Type == core.TypeIncome {
			total += tx.Amount
		}
	}
	return total
}

// TotalExpenses sums absolute amounts over expense transactions, so parsers
// emitting negative debits and parsers emitting positive ones agree.
func (c *Cache) TotalExpenses() float64 {
	var total float64
	for _, tx := range c.transactions {
		if tx.Type == core.TypeExpense {
			total += math.Abs(tx.Amount)
		}
	}
	return total
}

// TransactionsByCategory groups the store by category. Buckets are created
// implicitly by the first transaction of each category and preserve the
// store's insertion order. An empty store yields an empty, non-nil map.
func (c *Cache) TransactionsByCategory() map[string][]core.Transaction {
	buckets := make(map[string][]core.Transaction)
	for _, tx := range c.transactions {
		buckets[tx.Category] = append(buckets[tx.Category], tx)
	}
	return buckets
}

// RecentTransactions returns up to limit transactions ordered by date
// descending. Ties keep the store's insertion order (stable sort). A limit
// of zero or less falls back to the default of 10.
func (c *Cache) RecentTransactions(limit int) []core.Transaction {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	recent := append([]core.Transaction(nil), c.transactions...)
	slices.SortStableFunc(recent, func(a, b core.Transaction) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// Overview computes the dashboard summary: totals, transaction count, and
// per-category sums in first-seen category order.
func (c *Cache) Overview() core.Overview {
	ov := core.Overview{
		TotalIncome:      c.TotalIncome(),
		TotalExpenses:    c.TotalExpenses(),
		TransactionCount: len(c.transactions),
	}
	index := make(map[string]int)
	for _, tx := range c.transactions {
		i, ok := index[tx.Category]
		if !ok {
			i = len(ov.ByCategory)
			index[tx.Category] = i
			ov.ByCategory = append(ov.ByCategory, core.CategorySummary{Name: tx.Category})
		}
		ov.ByCategory[i].Count++
		if tx.Type == core.TypeExpense {
			ov.ByCategory[i].Total += math.Abs(tx.Amount)
		} else {
			ov.ByCategory[i].Total += tx.Amount
		}
	}
	return ov
}
