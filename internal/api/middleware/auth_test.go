package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/core/domain"
	appsession "github.com/shortnote/note-system/internal/session"
)

type memSessionStore struct {
	users map[string]domain.SessionUser
}

func (s *memSessionStore) Save(_ context.Context, token string, user domain.SessionUser, _ time.Duration) error {
	s.users[token] = user
	return nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (domain.SessionUser, error) {
	user, ok := s.users[token]
	if !ok {
		return domain.SessionUser{}, domain.ErrSessionNotFound
	}
	return user, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.users, token)
	return nil
}

func TestRequireUser_NoSessionRedirectsToLogin(t *testing.T) {
	e := echo.New()
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	sm := appsession.NewManager(&memSessionStore{users: map[string]domain.SessionUser{}}, time.Hour)
	e.GET("/protected", func(c echo.Context) error {
		t.Fatalf("should not reach handler")
		return nil
	}, RequireUser(sm))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestRequireUser_WithSessionInjectsUser(t *testing.T) {
	e := echo.New()
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	sm := appsession.NewManager(&memSessionStore{users: map[string]domain.SessionUser{}}, time.Hour)

	e.GET("/start", func(c echo.Context) error {
		if err := sm.Start(c, domain.SessionUser{ID: "alice", Name: "Alice"}); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/protected", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			t.Fatalf("current user not injected")
		}
		if user.ID != "alice" || user.Name != "Alice" {
			t.Fatalf("unexpected user: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	}, RequireUser(sm))

	startReq := httptest.NewRequest(http.MethodGet, "/start", nil)
	startRec := httptest.NewRecorder()
	e.ServeHTTP(startRec, startReq)
	if startRec.Code != http.StatusOK {
		t.Fatalf("session start failed: %d", startRec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range startRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	e := echo.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"name": "Alice",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := BearerAuth("secret")(func(c echo.Context) error {
		called = true
		user, ok := CurrentUser(c)
		if !ok || user.ID != "alice" || user.Name != "Alice" {
			t.Fatalf("unexpected user: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := BearerAuth("secret")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	signed, _ := token.SignedString([]byte("other-secret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := BearerAuth("secret")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
