// Package memory provides in-process repositories for development and for
// running without Redis or PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

type sessionEntry struct {
	session   domain.QuoteSession
	expiresAt time.Time
}

// SessionRepository keeps quote sessions in a map. Expired sessions are
// treated as missing and swept on save.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	nowFunc  func() time.Time
}

// NewSessionRepository creates an in-memory session store with the given TTL.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionRepository{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// Get returns a copy of the session, or NotFound when missing or expired.
func (r *SessionRepository) Get(_ context.Context, id string) (*domain.QuoteSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || !r.nowFunc().Before(e.expiresAt) {
		delete(r.sessions, id)
		return nil, apperrors.NotFound("quote session", id)
	}
	s := e.session
	s.State.Options = append([]string(nil), e.session.State.Options...)
	return &s, nil
}

// Save stores a copy of the session and resets its expiry.
func (r *SessionRepository) Save(_ context.Context, s *domain.QuoteSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	for id, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			delete(r.sessions, id)
		}
	}

	stored := *s
	stored.State.Options = append([]string(nil), s.State.Options...)
	r.sessions[s.ID] = sessionEntry{session: stored, expiresAt: now.Add(r.ttl)}
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
