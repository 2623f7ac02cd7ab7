package amqp

import (
	"encoding/json"
	"time"
)

// Sync reasons carried by ledger sync messages.
const (
	ReasonStatement    = "statement"
	ReasonTransactions = "transactions"
	ReasonClear        = "clear"
)

// LedgerSyncMessage tells consumers the persisted ledger changed. It carries
// only the cause; workers load the current snapshot from the primary port
// rather than trusting message payloads.
type LedgerSyncMessage struct {
	Reason      string    `json:"reason"`
	StatementID string    `json:"statementId,omitempty"`
	Admitted    int       `json:"admitted,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(reason, statementID string, admitted int) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		Reason:      reason,
		StatementID: statementID,
		Admitted:    admitted,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSyncMessageFromJSON creates a message from JSON bytes
func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
