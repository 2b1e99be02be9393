package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identity is the snapshot of a user attached to a session or resolved from
// a bearer token.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	Role     string
}

// Session is one authenticated browser session, looked up by an opaque id
// carried in a cookie.
type Session struct {
	ID        string
	Identity  Identity
	ExpiresAt time.Time
}

// SessionStore owns all live sessions.
type SessionStore interface {
	Create(identity Identity) (*Session, error)
	// Get returns the session, or false if it is unknown or expired.
	Get(id string) (*Session, bool)
	// Destroy removes the session. Unknown ids are a no-op.
	Destroy(id string)
}

// MemorySessionStore keeps sessions in a process-local map. Expired sessions
// are dropped lazily on lookup. A restart logs every browser out.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemorySessionStore creates a store whose sessions live for ttl.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemorySessionStore) Create(identity Identity) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	session := &Session{
		ID:        id.String(),
		Identity:  identity,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

func (s *MemorySessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		s.Destroy(id)
		return nil, false
	}
	return session, true
}

func (s *MemorySessionStore) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
