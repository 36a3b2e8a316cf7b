package view

import (
	"sync"
	"time"
)

// Store keeps live view sessions in memory, keyed by session id. Sessions
// idle longer than the TTL are evicted by the sweep worker.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// GetOrCreate returns the session for id, creating it with the given default
// category when absent. Existing sessions keep their selection; the default
// only applies on first sight.
func (st *Store) GetOrCreate(id, defaultCategory string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.Touch()
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		s.Touch()
		return s
	}
	s = NewSession(id, defaultCategory)
	st.sessions[id] = s
	return s
}

// Get returns the session for id, or nil when unknown.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Sweep evicts sessions idle past the TTL, closing each so pending timers are
// stopped. It returns the number of evicted sessions.
func (st *Store) Sweep() int {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, s := range st.sessions {
		if s.ExpiredSince(cutoff) {
			s.Close()
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll closes every session. Called on shutdown.
func (st *Store) CloseAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		s.Close()
		delete(st.sessions, id)
	}
}
