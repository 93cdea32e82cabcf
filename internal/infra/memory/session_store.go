package memory

import (
	"context"
	"sync"
	"time"

	"quiz-league-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionStore. Entries are
// expired lazily on access, so callers see the same absence semantics as the
// Redis-backed store.
type SessionStore struct {
	mu      sync.Mutex
	clock   func() time.Time
	entries map[app.AttemptKey]entry
}

type entry struct {
	budget    int
	expiresAt time.Time
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock allows deterministic expiry in tests.
func NewSessionStoreWithClock(clock func() time.Time) *SessionStore {
	return &SessionStore{
		clock:   clock,
		entries: make(map[app.AttemptKey]entry),
	}
}

func (s *SessionStore) Set(_ context.Context, key app.AttemptKey, budget int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{budget: budget, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *SessionStore) Get(_ context.Context, key app.AttemptKey) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveLocked(key)
	if !ok {
		return 0, false, nil
	}
	return e.budget, true, nil
}

func (s *SessionStore) Exists(_ context.Context, key app.AttemptKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liveLocked(key)
	return ok, nil
}

func (s *SessionStore) Delete(_ context.Context, key app.AttemptKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// liveLocked returns the entry if present and unexpired, dropping it otherwise.
func (s *SessionStore) liveLocked(key app.AttemptKey) (entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.After(s.clock()) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, true
}
