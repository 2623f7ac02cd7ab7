package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"finledger/internal/amqp"
	"finledger/internal/core"
	"finledger/internal/ledger"
	"finledger/internal/log"
	"finledger/internal/storage"
)

// LedgerService orchestrates the ledger cache, its persistence port, and the
// sync fan-out. Mutations go cache-first, then persist the snapshot; sync
// messages are best-effort and never fail the call. The service mirrors the
// cache's single-writer model: one instance per client context, calls are
// not overlapped.
type LedgerService struct {
	cache      *ledger.Cache
	port       storage.Port
	amqpClient *amqp.Client
	logger     *log.Logger
}

// NewLedgerService loads the persisted snapshot and rehydrates the cache
// through the dedup gates. amqpClient may be nil; sync is then skipped.
func NewLedgerService(ctx context.Context, port storage.Port, amqpClient *amqp.Client, logger *log.Logger) (*LedgerService, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentLedger})
	}

	snap, err := port.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}

	cache := ledger.FromSnapshot(snap)
	if dropped := len(snap.Transactions) - len(cache.Transactions()); dropped > 0 {
		logger.Warn("Dropped duplicate transactions during rehydration",
			log.FieldDropped, dropped)
	}

	return &LedgerService{
		cache:      cache,
		port:       port,
		amqpClient: amqpClient,
		logger:     logger,
	}, nil
}

// AddStatement admits a statement candidate, assigning an id when the upload
// collaborator did not. Duplicate candidates are a silent no-op, surfaced in
// debug logs and in the returned admitted flag. The flag is the only reliable
// dedup signal: a successful admission into a full registry evicts the oldest
// entry, so the registry length alone cannot distinguish the two outcomes.
// The (possibly id-assigned) candidate is returned so callers can track it.
func (s *LedgerService) AddStatement(ctx context.Context, candidate core.Statement) (core.Statement, bool, error) {
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}

	if !s.cache.AddStatement(candidate) {
		s.logger.DebugContext(ctx, "Statement rejected as duplicate",
			log.FieldStatementID, candidate.ID,
			log.FieldStatement, candidate.Name)
		return candidate, false, nil
	}

	if err := s.persist(ctx); err != nil {
		return candidate, true, err
	}
	s.publish(ctx, amqp.ReasonStatement, candidate.ID, 0)

	s.logger.InfoContext(ctx, "Statement admitted",
		log.FieldStatementID, candidate.ID,
		log.FieldStatement, candidate.Name)
	return candidate, true, nil
}

// UpdateStatement applies a partial update; unknown ids and terminal
// statements are silent no-ops.
func (s *LedgerService) UpdateStatement(ctx context.Context, id string, upd ledger.StatementUpdate) error {
	if !s.cache.UpdateStatement(id, upd) {
		s.logger.DebugContext(ctx, "Statement update ignored", log.FieldStatementID, id)
		return nil
	}
	return s.persist(ctx)
}

// RemoveStatement drops a statement; unknown ids are a silent no-op.
func (s *LedgerService) RemoveStatement(ctx context.Context, id string) error {
	if !s.cache.RemoveStatement(id) {
		s.logger.DebugContext(ctx, "Statement removal ignored", log.FieldStatementID, id)
		return nil
	}
	return s.persist(ctx)
}

// AddTransactions admits a batch and returns how many survived dedup. A
// fully duplicate batch persists and publishes nothing.
func (s *LedgerService) AddTransactions(ctx context.Context, batch []core.Transaction) (int, error) {
	admitted := s.cache.AddTransactions(batch)
	if admitted == 0 {
		s.logger.DebugContext(ctx, "Transaction batch fully deduplicated",
			log.FieldBatchSize, len(batch))
		return 0, nil
	}

	if err := s.persist(ctx); err != nil {
		return admitted, err
	}
	s.publish(ctx, amqp.ReasonTransactions, "", admitted)

	s.logger.InfoContext(ctx, "Transactions admitted",
		log.FieldBatchSize, len(batch),
		log.FieldAdmitted, admitted)
	return admitted, nil
}

// ClearTransactions empties the transaction store.
func (s *LedgerService) ClearTransactions(ctx context.Context) error {
	s.cache.ClearTransactions()
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.publish(ctx, amqp.ReasonClear, "", 0)
	return nil
}

func (s *LedgerService) Statements() []core.Statement {
	return s.cache.Statements()
}

func (s *LedgerService) Statement(id string) (core.Statement, bool) {
	return s.cache.Statement(id)
}

func (s *LedgerService) Transactions() []core.Transaction {
	return s.cache.Transactions()
}

func (s *LedgerService) TotalIncome() float64 {
	return s.cache.TotalIncome()
}

func (s *LedgerService) TotalExpenses() float64 {
	return s.cache.TotalExpenses()
}

func (s *LedgerService) TransactionsByCategory() map[string][]core.Transaction {
	return s.cache.TransactionsByCategory()
}

func (s *LedgerService) RecentTransactions(limit int) []core.Transaction {
	return s.cache.RecentTransactions(limit)
}

func (s *LedgerService) Overview() core.Overview {
	return s.cache.Overview()
}

func (s *LedgerService) persist(ctx context.Context) error {
	if err := s.port.Save(ctx, s.cache.Snapshot()); err != nil {
		return fmt.Errorf("save ledger snapshot: %w", err)
	}
	return nil
}

func (s *LedgerService) publish(ctx context.Context, reason, statementID string, admitted int) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerSync(ctx, reason, statementID, admitted); err != nil {
		// The snapshot is already saved locally; a missed sync message only
		// delays the archive mirror.
		s.logger.ErrorContext(ctx, "Failed to publish ledger sync message",
			log.FieldError, err,
			"reason", reason)
	}
}

// Close releases the persistence port and the AMQP connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.port != nil {
		if err := s.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}
	return nil
}
