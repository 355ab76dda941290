package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the in-memory sessions of all users.
// Sessions idle longer than ttl are removed by Sweep; when the store is
// full the least recently seen session is evicted.
type SessionStore struct {
	ttl  time.Duration
	max  int
	opts ViewOptions
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store. max <= 0 means unbounded.
func NewSessionStore(ttl time.Duration, max int, opts ViewOptions) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		max:      max,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session with id and marks it as seen.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	now := st.now()
	if st.ttl > 0 && now.Sub(s.LastSeen()) > st.ttl {
		st.remove(id)
		return nil, ErrSessionNotFound
	}
	s.Touch(now)
	return s, nil
}

// Create registers a new session under a fresh random ID.
func (st *SessionStore) Create() *Session {
	s := NewSession(uuid.NewString(), st.opts)
	s.Touch(st.now())

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.max > 0 && len(st.sessions) >= st.max {
		st.evictOldestLocked()
	}
	st.sessions[s.ID] = s
	return s
}

// GetOrCreate returns the session with id, or a new one when id is unknown.
// The boolean is true when a session was created.
func (st *SessionStore) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s, false
		}
	}
	return st.Create(), true
}

// Sweep removes sessions idle longer than the TTL and returns how many went.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.RLock()
	var expired []string
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for _, id := range expired {
		// A request may have touched the session since the scan.
		if s, ok := st.sessions[id]; ok && s.LastSeen().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// StatusCounts reports how many sessions are in each lifecycle state.
// Session locks are taken after the store lock is released.
func (st *SessionStore) StatusCounts() map[SessionStatus]int {
	st.mu.RLock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.RUnlock()

	counts := make(map[SessionStatus]int)
	for _, s := range sessions {
		counts[s.Status()]++
	}
	return counts
}

// Len returns the number of stored sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *SessionStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range st.sessions {
		seen := s.LastSeen()
		if oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
	}
}
