package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finledger/internal/core"
)

// StorageKey is the fixed namespaced key the ledger snapshot lives under.
// Bumping the version segment orphans old documents instead of corrupting
// them; added fields do not need a bump.
const StorageKey = "finledger.ledger.v1"

// document is the on-disk envelope around the snapshot.
type document struct {
	Key     string        `json:"key"`
	SavedAt time.Time     `json:"savedAt"`
	Data    core.Snapshot `json:"data"`
}

// JSONFile persists the ledger snapshot as a single JSON document, the local
// analogue of browser storage.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	return &JSONFile{path: path}, nil
}

func (f *JSONFile) Load(_ context.Context) (core.Snapshot, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return core.Snapshot{}, nil
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read ledger file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode ledger file: %w", err)
	}
	if doc.Key != StorageKey {
		return core.Snapshot{}, fmt.Errorf("unexpected storage key %q in %s", doc.Key, f.path)
	}
	return doc.Data, nil
}

// Save writes atomically: temp file in the same directory, then rename, so a
// crash mid-write never leaves a truncated document behind.
func (f *JSONFile) Save(_ context.Context, snap core.Snapshot) error {
	doc := document{
		Key:     StorageKey,
		SavedAt: time.Now().UTC(),
		Data:    snap,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

func (f *JSONFile) Close() error {
	return nil
}
