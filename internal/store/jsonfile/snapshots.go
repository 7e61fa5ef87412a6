// Package jsonfile persists snapshot ledgers as JSON and watches tracked files.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/diffpane/internal/core/snapshot"
)

// SnapshotStore saves a snapshot ledger to a single JSON file.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

// NewSnapshotStore creates a store backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the backing file path.
func (s *SnapshotStore) Path() string { return s.path }

// Load reads the ledger from disk. A missing or empty file yields an empty
// ledger.
func (s *SnapshotStore) Load(ctx context.Context) (*snapshot.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.New(), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if len(data) == 0 {
		return snapshot.New(), nil
	}

	var file snapshot.Data
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", s.path, err)
	}

	ledger, err := snapshot.FromSnapshot(file)
	if err != nil {
		return nil, fmt.Errorf("restore state file %s: %w", s.path, err)
	}
	return ledger, nil
}

// Save writes the ledger to disk atomically.
func (s *SnapshotStore) Save(ctx context.Context, ledger *snapshot.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(ledger.ToSnapshot(), "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
