package amqp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerSyncMessageRoundTrip(t *testing.T) {
	msg := NewLedgerSyncMessage(ReasonTransactions, "st-1", 12)
	require.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)

	body, err := msg.ToJSON()
	require.NoError(t, err)

	decoded, err := LedgerSyncMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, ReasonTransactions, decoded.Reason)
	assert.Equal(t, "st-1", decoded.StatementID)
	assert.Equal(t, 12, decoded.Admitted)
}

func TestLedgerSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	_, err := LedgerSyncMessageFromJSON([]byte("not json"))
	assert.Error(t, err)
}
