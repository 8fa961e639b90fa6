package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Create stores the record, assigning ID and CreatedAt.
func (s *MemoryStore) Create(_ context.Context, rec *Record) error {
	rec.ID = NewID()
	rec.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *rec
	s.records[rec.ID] = &copied
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

// List returns all records, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
