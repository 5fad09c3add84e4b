package store

import (
	"context"
	"path/filepath"
	"sync"

	"moola/internal/domain"
)

const historyFilename = "history.json"

// maxHistory bounds the number of records kept on disk.
const maxHistory = 500

// HistoryFileStore persists payment attempts to disk, newest first.
type HistoryFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewHistoryFileStore returns a HistoryFileStore rooted at dir.
func NewHistoryFileStore(dir string) *HistoryFileStore {
	return &HistoryFileStore{dir: dir}
}

// Append records tx at the head of the history.
func (s *HistoryFileStore) Append(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, historyFilename)
	var records []domain.Transaction
	if err := readJSON(path, &records); err != nil {
		return err
	}
	records = append([]domain.Transaction{tx}, records...)
	if len(records) > maxHistory {
		records = records[:maxHistory]
	}
	return writeJSON(path, records, 0o600)
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *HistoryFileStore) List(_ context.Context, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.Transaction
	if err := readJSON(filepath.Join(s.dir, historyFilename), &records); err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Compile-time assertion that HistoryFileStore implements domain.HistoryStore.
var _ domain.HistoryStore = (*HistoryFileStore)(nil)
