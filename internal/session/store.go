// Package session provides the server-side session store used by the
// admin authentication gate. The store maps a session id (carried in a
// cookie) to a user id with an expiry; backends are pluggable.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klubbkatalog/backend/internal/models"
)

// CookieName is the cookie that carries the session id.
const CookieName = "session_id"

// Session associates a logged-in user with a session id until it expires.
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}

// Store is the session backend contract. Get must return
// models.ErrSessionNotFound for unknown or expired session ids.
type Store interface {
	Create(ctx context.Context, userID int, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// memoryStore is an in-process Store used in tests and single-node setups.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the user
func (s *memoryStore) Create(ctx context.Context, userID int, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session for the id, dropping it if it has expired
func (s *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, models.ErrSessionNotFound
	}

	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, models.ErrSessionNotFound
	}

	return sess, nil
}

// Delete removes the session; deleting an unknown id is not an error
func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
