package storage

import (
	"context"
	"sync"

	"finledger/internal/core"
)

// Memory is an in-process Port for tests and ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	snap core.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithSnapshot seeds the port with an existing snapshot, useful for
// rehydration tests.
func NewMemoryWithSnapshot(snap core.Snapshot) *Memory {
	return &Memory{snap: copySnapshot(snap)}
}

func (m *Memory) Load(_ context.Context) (core.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySnapshot(m.snap), nil
}

func (m *Memory) Save(_ context.Context, snap core.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = copySnapshot(snap)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func copySnapshot(snap core.Snapshot) core.Snapshot {
	return core.Snapshot{
		Statements:   append([]core.Statement(nil), snap.Statements...),
		Transactions: append([]core.Transaction(nil), snap.Transactions...),
	}
}
