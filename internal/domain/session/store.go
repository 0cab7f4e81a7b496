// Package session tracks which study each caller is currently working in.
// The selection scopes every data-entry operation; callers without one are
// told to select a study first.
package session

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/platform/auth"
)

// HeaderSessionID carries an explicit session identity. When absent the
// authenticated user name is used, so single-session users need no header.
const HeaderSessionID = "X-Session-ID"

type entry struct {
	studyID   string
	expiresAt time.Time
}

// Store is an in-memory map of session id to selected study. Entries expire
// after the configured idle TTL; expiry is lazy, checked on read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// Select records studyID as the current study for sessionID.
func (s *Store) Select(sessionID, studyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = &entry{
		studyID:   studyID,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Clear removes the selection for sessionID.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Current returns the selected study for sessionID. A hit refreshes the TTL.
func (s *Store) Current(sessionID string) (string, bool) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return "", false
	}

	s.mu.Lock()
	e.expiresAt = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return e.studyID, true
}

// SessionID resolves the caller's session identity from the request.
func SessionID(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderSessionID); id != "" {
		return id
	}
	return auth.UserNameFromContext(c.Request().Context())
}
