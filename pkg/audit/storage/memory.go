package storage

import (
	"context"
	"sync"

	"tribunal-hq/minos/pkg/audit"
)

// MemoryStore implements Store with an in-memory slice. It is intended for
// tests and for callers that only need persistence for the lifetime of the
// process.
type MemoryStore struct {
	mu      sync.RWMutex
	records []audit.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store persists a record copy in arrival order.
func (s *MemoryStore) Store(ctx context.Context, record *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *record)
	return nil
}

// LoadAll returns copies of every record in original order.
func (s *MemoryStore) LoadAll(ctx context.Context) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]audit.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
