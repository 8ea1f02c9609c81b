package avail

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when a login attempt carries a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNoSession is returned when a token does not match any active session.
	ErrNoSession = errors.New("no session for token")
	// ErrSessionExpired is returned when a session existed but outlived its TTL.
	ErrSessionExpired = errors.New("session expired")
)

// Session represents an authenticated admin session.
type Session struct {
	Token    uuid.UUID // Bearer token identifying the session.
	Username string    // The logged-in username.
	LoginAt  time.Time // When the session was created.
}

// SessionStore holds active sessions in memory. Sessions expire a fixed TTL after login;
// expired sessions are removed lazily on validation.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[uuid.UUID]*Session
	now      func() time.Time // Overridable for tests
}

// NewSessionStore creates a SessionStore with the given session lifetime.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// SetTTL updates the session lifetime. Existing sessions are measured against the new value.
func (store *SessionStore) SetTTL(ttl time.Duration) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.ttl = ttl
}

// Create mints a new session for the given username.
func (store *SessionStore) Create(username string) *Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	session := &Session{
		Token:    uuid.New(),
		Username: username,
		LoginAt:  store.now(),
	}
	store.sessions[session.Token] = session
	return session
}

// Validate returns the session for the token. A session that has reached its TTL is
// removed and reported as expired; an unknown token reports no session.
func (store *SessionStore) Validate(token uuid.UUID) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	if store.now().Sub(session.LoginAt) >= store.ttl {
		delete(store.sessions, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Delete removes the session for the token, reporting whether one existed.
func (store *SessionStore) Delete(token uuid.UUID) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, ok := store.sessions[token]
	delete(store.sessions, token)
	return ok
}

// Len returns the number of stored sessions, expired ones included until validated.
func (store *SessionStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

// Login checks the credentials against the configured admin account and creates a
// session on success. Both fields are compared in constant time.
func (editor *Editor) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(editor.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(editor.adminPassword)) == 1
	if !userOK || !passOK {
		editor.WriteLog("WARN", fmt.Sprintf("Failed login attempt for username: %q", username))
		return nil, ErrInvalidCredentials
	}

	session := editor.Sessions.Create(username)
	editor.WriteLog("INFO", fmt.Sprintf("User %q logged in successfully", username))
	return session, nil
}

// Authenticate resolves a bearer token to its session, logging session expiry.
func (editor *Editor) Authenticate(token uuid.UUID) (*Session, error) {
	session, err := editor.Sessions.Validate(token)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			editor.WriteLog("INFO", "User session expired")
		}
		return nil, err
	}
	return session, nil
}

// Logout removes the session for the token. Logging out an unknown token is a no-op.
func (editor *Editor) Logout(token uuid.UUID) {
	session, err := editor.Sessions.Validate(token)
	if editor.Sessions.Delete(token) && err == nil {
		editor.WriteLog("INFO", fmt.Sprintf("User %q logged out", session.Username))
	}
}
