// internal/services/session_store.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SessionStore keeps sessions in memory. Sessions idle for longer than the TTL are evicted by Run.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session with an empty cart and the welcome transcript.
func (s *SessionStore) Create() *Session {
	session := newSession(s.now())

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logrus.WithField("session_id", session.ID).Debug("Session created")
	return session
}

// Get returns the session and marks it as seen.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	session.touch(s.now())
	return session, true
}

// GetOrCreate returns the session for id, creating a fresh one when id is unknown.
// The second result reports whether a session was created.
func (s *SessionStore) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if session, ok := s.Get(id); ok {
			return session, false
		}
	}
	return s.Create(), true
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictExpired removes idle sessions and returns how many were removed.
func (s *SessionStore) EvictExpired() int {
	now := s.now()

	s.mu.Lock()
	var evicted []*Session
	for id, session := range s.sessions {
		if session.expired(now, s.ttl) {
			delete(s.sessions, id)
			evicted = append(evicted, session)
		}
	}
	s.mu.Unlock()

	for _, session := range evicted {
		session.cancelAll()
	}
	return len(evicted)
}

// Run evicts expired sessions every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictExpired(); n > 0 {
				logrus.WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": s.Len(),
				}).Info("Expired sessions evicted")
			}
		}
	}
}
