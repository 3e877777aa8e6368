package contentstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// MemoryStore keeps rows in-memory for tests and lightweight deployments.
// Error injection lets tests exercise the degraded persistence paths.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]interfaces.ContentRow

	selectErr error
	upsertErr error
}

var _ interfaces.ContentStore = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]interfaces.ContentRow)}
}

// FailSelect makes every subsequent SelectAll return err (nil restores).
func (s *MemoryStore) FailSelect(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectErr = err
}

// FailUpsert makes every subsequent UpsertByKey return err (nil restores).
func (s *MemoryStore) FailUpsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertErr = err
}

// SelectAll returns the stored rows ordered by key.
func (s *MemoryStore) SelectAll(context.Context) ([]interfaces.ContentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectErr != nil {
		return nil, s.selectErr
	}

	out := make([]interfaces.ContentRow, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// UpsertByKey inserts or replaces the value stored under key.
func (s *MemoryStore) UpsertByKey(_ context.Context, key string, value any, updatedAt time.Time) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.upsertErr != nil {
		return s.upsertErr
	}

	s.rows[trimmed] = interfaces.ContentRow{
		Key:       trimmed,
		Value:     value,
		UpdatedAt: updatedAt.UTC(),
	}
	return nil
}

// Len reports the number of stored rows.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Get returns the row stored under key, if any.
func (s *MemoryStore) Get(key string) (interfaces.ContentRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[strings.TrimSpace(key)]
	return row, ok
}
