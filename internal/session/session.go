// Package session manages login sessions for the cinelog web API.
// A session is an opaque uuid token held server-side and handed to the
// client in an HttpOnly cookie; the token resolves back to the acting
// username for ownership checks.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie set on login.
const CookieName = "cinelog_session"

// entry is one live session.
type entry struct {
	username  string
	expiresAt time.Time
}

// Manager issues, resolves and revokes session tokens.
// Sessions live in process memory; a restart logs everyone out.
type Manager struct {
	ttl    time.Duration
	secure bool

	mu       sync.Mutex
	sessions map[string]entry
}

// NewManager creates a session manager. ttl bounds how long a login
// stays valid; secure marks cookies for HTTPS-only transport.
func NewManager(ttl time.Duration, secure bool) *Manager {
	m := &Manager{
		ttl:      ttl,
		secure:   secure,
		sessions: make(map[string]entry),
	}

	go m.cleanupLoop()

	return m
}

// cleanupLoop periodically drops expired sessions.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for token, e := range m.sessions {
			if now.After(e.expiresAt) {
				delete(m.sessions, token)
			}
		}
		m.mu.Unlock()
	}
}

// Create starts a session for the user and returns its token.
func (m *Manager) Create(username string) string {
	token := uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = entry{
		username:  username,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()

	return token
}

// Resolve returns the username behind a token, or "" when the token is
// unknown or expired.
func (m *Manager) Resolve(token string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return ""
	}
	if time.Now().After(e.expiresAt) {
		delete(m.sessions, token)
		return ""
	}
	return e.username
}

// Revoke ends the session behind a token.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// SetCookie writes the session cookie on a response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie on a response (logout).
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest resolves the acting username from a request's session
// cookie. Returns "" when no valid session is present.
func (m *Manager) FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return m.Resolve(cookie.Value)
}
