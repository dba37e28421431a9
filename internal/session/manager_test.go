package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/core/domain"
)

type memStore struct {
	users map[string]domain.SessionUser
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]domain.SessionUser)}
}

func (s *memStore) Save(_ context.Context, token string, user domain.SessionUser, _ time.Duration) error {
	s.users[token] = user
	return nil
}

func (s *memStore) Get(_ context.Context, token string) (domain.SessionUser, error) {
	user, ok := s.users[token]
	if !ok {
		return domain.SessionUser{}, domain.ErrSessionNotFound
	}
	return user, nil
}

func (s *memStore) Delete(_ context.Context, token string) error {
	delete(s.users, token)
	return nil
}

// newTestEcho wires the cookie middleware the manager depends on.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	return e
}

func serve(e *echo.Echo, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestManager_StartCurrentEnd(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, time.Hour)
	e := newTestEcho()

	e.GET("/start", func(c echo.Context) error {
		return m.Start(c, domain.SessionUser{ID: "alice", Name: "Alice"})
	})
	e.GET("/whoami", func(c echo.Context) error {
		user, ok := m.Current(c)
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, user.ID)
	})
	e.GET("/end", func(c echo.Context) error {
		return m.End(c)
	})

	// Without a cookie there is no session.
	if rec := serve(e, http.MethodGet, "/whoami", nil); rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous, got %s", rec.Body.String())
	}

	startRec := serve(e, http.MethodGet, "/start", nil)
	cookies := startRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie to be set")
	}
	if len(store.users) != 1 {
		t.Fatalf("expected one stored session, got %d", len(store.users))
	}

	if rec := serve(e, http.MethodGet, "/whoami", cookies); rec.Body.String() != "alice" {
		t.Fatalf("expected alice, got %s", rec.Body.String())
	}

	serve(e, http.MethodGet, "/end", cookies)
	if len(store.users) != 0 {
		t.Fatalf("expected session payload to be deleted")
	}
	if rec := serve(e, http.MethodGet, "/whoami", cookies); rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous after end, got %s", rec.Body.String())
	}
}

func TestManager_ExpiredTokenCountsAsNoSession(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, time.Hour)
	e := newTestEcho()

	e.GET("/start", func(c echo.Context) error {
		return m.Start(c, domain.SessionUser{ID: "alice", Name: "Alice"})
	})
	e.GET("/whoami", func(c echo.Context) error {
		if _, ok := m.Current(c); ok {
			return c.String(http.StatusOK, "authenticated")
		}
		return c.String(http.StatusOK, "anonymous")
	})

	startRec := serve(e, http.MethodGet, "/start", nil)
	cookies := startRec.Result().Cookies()

	// Simulate TTL expiry by clearing the backing store.
	store.users = map[string]domain.SessionUser{}

	if rec := serve(e, http.MethodGet, "/whoami", cookies); rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous after expiry, got %s", rec.Body.String())
	}
}

func TestFlashes_AreOneShot(t *testing.T) {
	e := newTestEcho()

	e.GET("/set", func(c echo.Context) error {
		Flash(c, SeverityError, "something happened")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/read", func(c echo.Context) error {
		notices := TakeFlashes(c)
		parts := make([]string, 0, len(notices))
		for _, n := range notices {
			parts = append(parts, n.Severity+":"+n.Message)
		}
		return c.String(http.StatusOK, strings.Join(parts, ","))
	})

	setRec := serve(e, http.MethodGet, "/set", nil)
	cookies := setRec.Result().Cookies()

	first := serve(e, http.MethodGet, "/read", cookies)
	if first.Body.String() != "error:something happened" {
		t.Fatalf("expected notice, got %q", first.Body.String())
	}

	// The drained cookie replaces the old one; a second read is empty.
	second := serve(e, http.MethodGet, "/read", first.Result().Cookies())
	if second.Body.String() != "" {
		t.Fatalf("expected no notices on second read, got %q", second.Body.String())
	}
}
