// Package ledger holds the client-side financial ledger cache: the statement
// registry, the deduplicated transaction store, and the aggregation queries
// derived from it. All operations are total; duplicate admission and unknown
// ids are silent no-ops, reported only through return values.
package ledger

import (
	"finledger/internal/core"
)

// maxStatements bounds the registry to the most recent uploads.
const maxStatements = 20

// Cache is the in-memory ledger state for one client instance. It is not
// safe for concurrent use; callers serialize access (the service layer does).
type Cache struct {
	statements   []core.Statement
	transactions []core.Transaction
}

// StatementUpdate carries a partial statement mutation. Nil fields are left
// untouched. Identity fields (id, name) are not updatable.
type StatementUpdate struct {
	Size          *int64
	Type          *string
	Status        *core.StatementStatus
	Progress      *int
	UploadedAt    *string
	ExtractedData *core.ExtractedSummary
}

func New() *Cache {
	return &Cache{}
}

// FromSnapshot rebuilds a cache from persisted state. Records are re-admitted
// through the same dedup gates as live admission, so a snapshot corrupted by
// manual edits cannot break the uniqueness invariants.
func FromSnapshot(snap core.Snapshot) *Cache {
	c := New()
	// The persisted list is most-recent-first; keep the first occurrence of
	// any colliding id or name so the newest entry wins, and re-apply the
	// registry bound.
	for _, s := range snap.Statements {
		if len(c.statements) >= maxStatements {
			break
		}
		if c.hasStatement(s.ID, s.Name) {
			continue
		}
		c.statements = append(c.statements, cloneStatement(s))
	}
	c.AddTransactions(snap.Transactions)
	return c
}

func (c *Cache) hasStatement(id, name string) bool {
	for _, s := range c.statements {
		if s.ID == id || s.Name == name {
			return true
		}
	}
	return false
}

// cloneSummary copies an extracted summary, including the categories slice,
// so caller and cache never share mutable state.
func cloneSummary(src *core.ExtractedSummary) *core.ExtractedSummary {
	if src == nil {
		return nil
	}
	dst := *src
	dst.Categories = append([]string(nil), src.Categories...)
	return &dst
}

func cloneStatement(s core.Statement) core.Statement {
	s.ExtractedData = cloneSummary(s.ExtractedData)
	return s
}

func cloneStatements(src []core.Statement) []core.Statement {
	if src == nil {
		return nil
	}
	dst := make([]core.Statement, len(src))
	for i, s := range src {
		dst[i] = cloneStatement(s)
	}
	return dst
}

// Snapshot returns a copy of the current state in persistable form.
func (c *Cache) Snapshot() core.Snapshot {
	return core.Snapshot{
		Statements:   cloneStatements(c.statements),
		Transactions: append([]core.Transaction(nil), c.transactions...),
	}
}

// AddStatement admits a statement candidate. A candidate whose id or name
// matches an existing entry is rejected without mutation. Admitted entries go
// to the front (most-recent-first) and the registry is truncated to the
// maxStatements newest. Returns whether the candidate was admitted.
func (c *Cache) AddStatement(candidate core.Statement) bool {
	if c.hasStatement(candidate.ID, candidate.Name) {
		return false
	}
	c.statements = append([]core.Statement{cloneStatement(candidate)}, c.statements...)
	if len(c.statements) > maxStatements {
		c.statements = c.statements[:maxStatements]
	}
	return true
}

// UpdateStatement shallow-merges upd into the statement with the given id.
// Unknown ids and terminal statements are no-ops. Progress never regresses
// and status only moves forward. Returns whether the statement was found and
// open to updates.
func (c *Cache) UpdateStatement(id string, upd StatementUpdate) bool {
	for i := range c.statements {
		s := &c.statements[i]
		if s.ID != id {
			continue
		}
		if s.Status.Terminal() {
			return false
		}
		if upd.Size != nil {
			s.Size = *upd.Size
		}
		if upd.Type != nil {
			s.Type = *upd.Type
		}
		if upd.Status != nil && s.Status.CanTransition(*upd.Status) {
			s.Status = *upd.Status
		}
		if upd.Progress != nil && *upd.Progress > s.Progress {
			s.Progress = *upd.Progress
		}
		if upd.UploadedAt != nil {
			s.UploadedAt = *upd.UploadedAt
		}
		if upd.ExtractedData != nil {
			s.ExtractedData = cloneSummary(upd.ExtractedData)
		}
		return true
	}
	return false
}

// RemoveStatement drops the statement with the given id. Unknown ids are a
// no-op. Returns whether an entry was removed.
func (c *Cache) RemoveStatement(id string) bool {
	for i, s := range c.statements {
		if s.ID == id {
			c.statements = append(c.statements[:i], c.statements[i+1:]...)
			return true
		}
	}
	return false
}

// Statements returns the registry in most-recent-first order.
func (c *Cache) Statements() []core.Statement {
	return cloneStatements(c.statements)
}

// Statement looks up one registry entry by id.
func (c *Cache) Statement(id string) (core.Statement, bool) {
	for _, s := range c.statements {
		if s.ID == id {
			return cloneStatement(s), true
		}
	}
	return core.Statement{}, false
}

// AddTransactions admits a batch. Transactions whose id is already present
// are silently dropped; the remainder is appended in batch order, so the
// store's ordering is insertion order, not chronological. Returns the number
// admitted.
func (c *Cache) AddTransactions(batch []core.Transaction) int {
	seen := make(map[string]struct{}, len(c.transactions))
	for _, tx := range c.transactions {
		seen[tx.ID] = struct{}{}
	}
	admitted := 0
	for _, tx := range batch {
		if _, dup := seen[tx.ID]; dup {
			continue
		}
		seen[tx.ID] = struct{}{}
		c.transactions = append(c.transactions, tx)
		admitted++
	}
	return admitted
}

// ClearTransactions empties the transaction store unconditionally.
func (c *Cache) ClearTransactions() {
	c.transactions = nil
}

// Transactions returns the store contents in insertion order.
func (c *Cache) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), c.transactions...)
}
