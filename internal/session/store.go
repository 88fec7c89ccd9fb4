// Package session scopes calculator state to one browser session. Each
// session owns its own ledger; nothing is shared across sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/goldshop-api/internal/ledger"
)

// Session is the per-client state: an identifier and a private ledger.
type Session struct {
	ID        string
	Ledger    *ledger.Ledger
	CreatedAt time.Time

	lastSeen time.Time
}

// Store keeps live sessions in memory. Sessions idle past the TTL are
// evicted by the janitor; their ledgers go with them.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore constructs a Store with the provided idle TTL.
func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, time.Now)
}

// NewStoreWithClock constructs a Store with an injected clock for tests.
func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
	}
}

// New opens a fresh session with an empty ledger.
func (s *Store) New() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Ledger:    ledger.NewWithClock(s.now),
		CreatedAt: now,
		lastSeen:  now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for id and marks it as active. A false return
// means the id is unknown or already evicted.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle past the TTL and returns how many went.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Janitor sweeps on the given interval until the context is cancelled.
// Run it on its own goroutine.
func (s *Store) Janitor(ctx context.Context, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug().Int("evicted", n).Int("live", s.Len()).Msg("session_sweep")
			}
		}
	}
}
