package session

import (
	"sync"

	"gridpass/internal/types"
)

// Store keeps sessions in process memory, newest first on listing.
type Store struct {
	mu       sync.RWMutex
	order    []types.ID
	sessions map[types.ID]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[types.ID]*Session)}
}

func (s *Store) Create(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, sess.ID)
	s.sessions[sess.ID] = &sess
}

func (s *Store) Get(id types.ID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

// List returns sessions newest first, capped at limit (0 means all).
func (s *Store) List(limit int) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, *s.sessions[s.order[i]])
	}
	return out
}

// Active returns the most recently started session still in progress.
func (s *Store) Active() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		sess := s.sessions[s.order[i]]
		if sess.State == StateActive {
			copied := *sess
			return &copied, nil
		}
	}
	return nil, ErrSessionNotFound
}

// Update applies fn to the stored session under the write lock.
func (s *Store) Update(id types.ID, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(sess)
}
