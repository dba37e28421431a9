// Package session tracks the authenticated user for a browser session.
//
// The cookie (signed by gorilla/sessions via the echo-contrib session
// middleware) carries only an opaque token plus one-shot flash notices; the
// actual user payload lives server-side in a ports.SessionStore keyed by that
// token, with expiry owned by the store's TTL.
package session

import (
	"encoding/gob"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
)

const (
	cookieName = "note_session"
	tokenKey   = "token"
	flashKey   = "_notices"
)

// Notice is a one-shot user-facing message shown after a redirect.
type Notice struct {
	Severity string
	Message  string
}

const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

func init() {
	gob.Register(Notice{})
}

// Manager starts, resolves and ends authenticated sessions.
type Manager struct {
	store ports.SessionStore
	ttl   time.Duration
}

func NewManager(store ports.SessionStore, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// Start marks the session authenticated as user: a fresh opaque token is
// stored in the cookie and the user payload is saved server-side under it.
func (m *Manager) Start(c echo.Context, user domain.SessionUser) error {
	token := uuid.NewString()
	if err := m.store.Save(c.Request().Context(), token, user, m.ttl); err != nil {
		return err
	}

	sess, err := session.Get(cookieName, c)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = token
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
	}
	return sess.Save(c.Request(), c.Response())
}

// Current returns the authenticated user for this browser session, if any.
// A cookie pointing at an expired or unknown token counts as no session.
func (m *Manager) Current(c echo.Context) (domain.SessionUser, bool) {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return domain.SessionUser{}, false
	}

	token, ok := sess.Values[tokenKey].(string)
	if !ok || token == "" {
		return domain.SessionUser{}, false
	}

	user, err := m.store.Get(c.Request().Context(), token)
	if err != nil {
		return domain.SessionUser{}, false
	}
	return user, true
}

// End clears the authentication state. Ending an unauthenticated session is
// a no-op.
func (m *Manager) End(c echo.Context) error {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return err
	}

	if token, ok := sess.Values[tokenKey].(string); ok && token != "" {
		if err := m.store.Delete(c.Request().Context(), token); err != nil {
			return err
		}
	}

	delete(sess.Values, tokenKey)
	return sess.Save(c.Request(), c.Response())
}

// Flash queues a one-shot notice to be shown on the next rendered page.
func Flash(c echo.Context, severity, message string) {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return
	}
	sess.AddFlash(Notice{Severity: severity, Message: message}, flashKey)
	_ = sess.Save(c.Request(), c.Response())
}

// TakeFlashes drains and returns all pending notices.
func TakeFlashes(c echo.Context) []Notice {
	sess, err := session.Get(cookieName, c)
	if err != nil {
		return nil
	}

	raw := sess.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	notices := make([]Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
