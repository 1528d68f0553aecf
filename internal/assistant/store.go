package assistant

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// SessionStore manages session lifecycle, keyed by an explicit session ID
// so multiple conversations can run side by side.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// GetOrCreate returns the session with the given ID, creating and
	// seeding a fresh one when none exists. The bool return reports
	// whether the session was newly created.
	GetOrCreate(id string) (*Session, bool)

	// Get returns the session for the given ID, or nil if none exists.
	Get(id string) *Session

	// Reset reinitializes the session to its fresh state in place.
	// Resetting an unknown ID is a no-op.
	Reset(id string)

	// Delete removes the session for the given ID.
	Delete(id string)

	// Prune removes sessions idle longer than maxIdle and returns the
	// number of sessions pruned.
	Prune(maxIdle time.Duration) int

	// Len returns the number of active sessions.
	Len() int
}

// InMemorySessionStore is a concurrency-safe, in-memory SessionStore.
// The `now` function is injectable for deterministic testing.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// maxSessions limits the number of concurrent sessions.
	// Zero means unlimited.
	maxSessions int

	// now is injectable for testing. Defaults to time.Now.
	now func() time.Time
}

// Compile-time interface guard.
var _ SessionStore = (*InMemorySessionStore)(nil)

// NewInMemorySessionStore creates a ready-to-use in-memory session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// SetMaxSessions configures the maximum number of concurrent sessions.
// Zero means unlimited.
func (s *InMemorySessionStore) SetMaxSessions(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSessions = limit
}

// GetOrCreate returns the existing session for the ID, or creates and seeds
// a new one. If maxSessions > 0 and the limit is reached, no new session is
// created and (nil, false) is returned.
func (s *InMemorySessionStore) GetOrCreate(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.LastActiveAt = s.now()
		return sess, false
	}

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, false
	}

	now := s.now()
	sess := &Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	sess.initialize()
	s.sessions[id] = sess
	return sess, true
}

// Get returns the session for the given ID, or nil if none exists.
func (s *InMemorySessionStore) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Reset reinitializes the session in place: fresh histories, gathering
// phase, no profile, no recommendations. A no-op for unknown IDs.
func (s *InMemorySessionStore) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.initialize()
		sess.LastActiveAt = s.now()
	}
}

// Delete removes the session for the given ID. A no-op for unknown IDs.
func (s *InMemorySessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Prune removes sessions whose idle time exceeds maxIdle and returns the
// number of sessions pruned. Intended for a periodic background job.
func (s *InMemorySessionStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	pruned := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActiveAt) > maxIdle {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of active sessions.
func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// NewSessionID produces a 32-character hex string from 16 random bytes.
func NewSessionID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("assistant: crypto/rand unavailable: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
