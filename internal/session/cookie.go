package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "companion-session"
	idKey      = "id"
)

// Manager ties an HTTP client to its Session: a signed cookie carries the
// session ID and the Store holds the state.
type Manager struct {
	store   Store
	cookies *sessions.CookieStore
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, cookies: cookies}
}

func (m *Manager) Store() Store {
	return m.store
}

// Load returns the caller's session, starting a fresh one when the cookie is
// missing, tampered with, or points at an expired session.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	// A cookie that fails verification still yields a usable empty session.
	cs, _ := m.cookies.Get(r, cookieName)

	if id, ok := cs.Values[idKey].(string); ok && id != "" {
		s, err := m.store.Get(r.Context(), id)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	s := New()
	if err := m.store.Save(r.Context(), s); err != nil {
		return nil, err
	}
	cs.Values[idKey] = s.ID
	if err := cs.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to write session cookie: %w", err)
	}
	return s, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	s.Touch()
	return m.store.Save(ctx, s)
}

// Clear deletes the stored session and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	cs, _ := m.cookies.Get(r, cookieName)
	if id, ok := cs.Values[idKey].(string); ok && id != "" {
		if err := m.store.Delete(r.Context(), id); err != nil {
			return err
		}
	}
	cs.Options.MaxAge = -1
	delete(cs.Values, idKey)
	if err := cs.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session cookie: %w", err)
	}
	return nil
}
