// Package store provides the decision record stores: in-memory for tests and
// single-node setups, Postgres for durable trails, Redis for TTL-bounded
// recent-decision trails.
package store

import (
	"context"
	"sync"

	"otsus/internal/decision"
)

// InMemoryStore keeps decision records in process memory, keyed by code hash.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]decision.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]decision.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record decision.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.CodeHash] = append(s.records[record.CodeHash], record)
	return nil
}

func (s *InMemoryStore) ListByCodeHash(_ context.Context, codeHash string) ([]decision.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]decision.Record{}, s.records[codeHash]...), nil
}
