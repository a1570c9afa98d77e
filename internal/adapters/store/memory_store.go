package store

import (
	"context"
	"sync"

	"github.com/jfmartin/mail-harvester/internal/core"
)

// MemoryStore is an in-memory implementation of the RecordStore interface,
// intended for tests and dry runs.
type MemoryStore struct {
	records []*core.EmailRecord
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Merge unions records into the table, deduplicating by ID and keeping the
// table sorted ascending by timestamp.
func (s *MemoryStore) Merge(ctx context.Context, records []*core.EmailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = core.MergeRecords(s.records, records)
	return nil
}

// All returns a copy of the table in ascending timestamp order.
func (s *MemoryStore) All(ctx context.Context) ([]*core.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.EmailRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
