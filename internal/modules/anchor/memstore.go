package anchor

import (
	"context"
	"sync"

	"gridpass/internal/types"
)

// MemoryStore keeps anchors in process memory, insertion-ordered.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []types.ID
	records map[types.ID]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[types.ID]Record)}
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.SessionID]; !exists {
		s.order = append(s.order, rec.SessionID)
	}
	s.records[rec.SessionID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID types.ID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}
