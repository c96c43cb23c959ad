package memory

import (
	"context"
	"sync"
	"time"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// SessionStore is the in-process fallback used when no Redis address is
// configured. Sessions do not survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]ports.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]ports.Session)}
}

func (s *SessionStore) Save(_ context.Context, session *ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

func (s *SessionStore) Find(_ context.Context, token string) (*ports.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrInvalidSession
	}
	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, domain.ErrInvalidSession
	}
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
