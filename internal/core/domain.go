package core

import (
	"errors"
	"strings"
)

const (
	StatusUploading  StatementStatus = "uploading"
	StatusProcessing StatementStatus = "processing"
	StatusCompleted  StatementStatus = "completed"
	StatusError      StatementStatus = "error"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	StatementStatus string

	TransactionType string

	// Statement is one uploaded source document and its processing metadata.
	Statement struct {
		ID            string            `json:"id"`
		Name          string            `json:"name"`
		Size          int64             `json:"size"`
		Type          string            `json:"type"`
		Status        StatementStatus   `json:"status"`
		Progress      int               `json:"progress"`
		UploadedAt    string            `json:"uploadedAt"`
		ExtractedData *ExtractedSummary `json:"extractedData,omitempty"`
	}

	// Transaction is one parsed financial event attributed to a statement.
	// Amount is kept exactly as the parser authored it; sign normalization
	// happens only in aggregation, keyed on Type.
	Transaction struct {
		ID          string          `json:"id"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Source      string          `json:"source"`
	}

	// Snapshot is the JSON-serializable persisted shape of the ledger cache.
	Snapshot struct {
		Statements   []Statement   `json:"statements"`
		Transactions []Transaction `json:"transactions"`
	}
)

var (
	ErrEmptyID         = errors.New("empty id")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyDate       = errors.New("empty date")
	ErrInvalidStatus   = errors.New("invalid statement status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidType     = errors.New("invalid transaction type")
)

// statusOrder ranks the forward-only lifecycle. Terminal states share the
// highest rank so neither can transition into the other.
var statusOrder = map[StatementStatus]int{
	StatusUploading:  0,
	StatusProcessing: 1,
	StatusCompleted:  2,
	StatusError:      2,
}

func (s StatementStatus) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Terminal reports whether the status ends the statement lifecycle.
func (s StatementStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether a statement in status s may move to next.
func (s StatementStatus) CanTransition(next StatementStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	return statusOrder[next] >= statusOrder[s]
}

func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (s Statement) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	if s.Progress < 0 || s.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Date) == "" {
		return ErrEmptyDate
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}
