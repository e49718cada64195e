package session

import (
	"sync"

	"github.com/google/uuid"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "session_id"

// Store maps opaque session tokens to user ids. It lives for the process
// lifetime: sessions have no expiry and are lost on restart. Safe for
// concurrent use by in-flight requests.
//
// Tokens are uuid-v4, generated from crypto/rand, so they cannot be guessed
// from the user id or login time.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]uint
	closed   bool
}

// NewStore creates an empty session store. The store is owned by the caller
// and should be closed at shutdown.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]uint),
	}
}

// Create registers a new session for the user and returns its token.
func (s *Store) Create(userID uint) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return token
	}
	s.sessions[token] = userID

	return token
}

// Lookup resolves a token to its user id.
func (s *Store) Lookup(token string) (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// Delete removes the session; subsequent lookups return false.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close drops all sessions and rejects new ones.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sessions = make(map[string]uint)
}
