// Package session provides cookie-identified key/value sessions backed by a
// pluggable Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "loudly_session"

// ErrNotFound is returned by a Store when a session is missing or expired.
var ErrNotFound = errors.New("session not found")

// Values is the content of one session.
type Values map[string]string

// Store persists sessions.
type Store interface {
	Load(ctx context.Context, id string) (Values, error)
	Save(ctx context.Context, id string, values Values, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// Manager ties sessions to browsers through a cookie.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager creates a session manager. Sessions live for ttl after their
// last write.
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure, now: time.Now}
}

// Get returns the value stored under key in the caller's session. A missing
// cookie, session or key yields "" and a nil error.
func (m *Manager) Get(r *http.Request, key string) (string, error) {
	values, err := m.load(r)
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Put stores value under key. The session is reissued under a fresh id on
// every write and the old id is discarded.
func (m *Manager) Put(w http.ResponseWriter, r *http.Request, key, value string) error {
	values, err := m.load(r)
	if err != nil {
		return err
	}
	if values == nil {
		values = Values{}
	}
	values[key] = value

	id := uuid.NewString()
	expiresAt := m.now().Add(m.ttl)
	if err := m.store.Save(r.Context(), id, values, expiresAt); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
			return fmt.Errorf("deleting previous session: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Destroy removes the caller's session and clears the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // no session to destroy
	}

	if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (m *Manager) load(r *http.Request) (Values, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	values, err := m.store.Load(r.Context(), cookie.Value)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return values, nil
}
