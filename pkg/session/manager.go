package session

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Keerthan22-sys/Instigar/pkg/store"
)

// Session is one authenticated user's view of the system: the upstream
// bearer token plus the in-memory lead and walk-in collections.
type Session struct {
	Token     string
	Username  string
	Leads     *store.Store
	Walkins   *store.Store
	CreatedAt time.Time

	viewMu    sync.Mutex
	lastViews map[string]string
}

// RememberView records the filter/sort signature last served for a lead
// kind and reports whether it changed. A change sends the table back to
// page one.
func (s *Session) RememberView(kind, signature string) (changed bool) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	if s.lastViews == nil {
		s.lastViews = make(map[string]string)
	}
	prev, seen := s.lastViews[kind]
	s.lastViews[kind] = signature
	return seen && prev != signature
}

// Manager is a token-keyed session registry with TTL expiry. Expired
// sessions are swept by the background job; Get also refuses them
// eagerly so a sweep gap cannot resurrect one.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

// NewManager creates a session manager with the given session TTL.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a session for the given upstream token, with fresh
// empty stores bound to that token. Logging in again with the same token
// replaces the previous session.
func (m *Manager) Create(token, username string, api store.API) *Session {
	s := &Session{
		Token:     token,
		Username:  username,
		Leads:     store.New(api, token),
		Walkins:   store.New(api, token),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[hashToken(token)] = s
	m.mu.Unlock()
	return s
}

// Get returns the live session for a token, or false when none exists or
// it has expired.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[hashToken(token)]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(s.CreatedAt) > m.ttl {
		m.Delete(token)
		return nil, false
	}
	return s, true
}

// Delete removes the session for a token. Used on logout and by the
// 401-invalidates-session policy.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, hashToken(token))
	m.mu.Unlock()
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	now := time.Now()
	for key, s := range m.sessions {
		if now.Sub(s.CreatedAt) > m.ttl {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}

// Count returns the number of registered sessions, expired or not.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Tokens are upstream credentials; only their hash is used as a map key.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
