package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/api/metrics"
	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
	"github.com/shortnote/note-system/internal/session"
)

// AuthHandler serves the home page and the register/login/logout flows of the
// browser surface.
type AuthHandler struct {
	users    ports.UserService
	sessions *session.Manager
	forms    *formValidator
}

func NewAuthHandler(users ports.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, forms: newFormValidator()}
}

// Home handles GET /.
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", page(c, h.sessions))
}

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	if _, ok := h.sessions.Current(c); ok {
		session.Flash(c, session.SeverityInfo, "You are already logged in.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register.html", page(c, h.sessions))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	if _, ok := h.sessions.Current(c); ok {
		session.Flash(c, session.SeverityInfo, "You are already logged in.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	if fieldErrs := h.forms.Validate(&form); fieldErrs != nil {
		data := page(c, h.sessions)
		data.Errors = fieldErrs
		data.Form = map[string]string{"user_id": form.UserID, "user_name": form.UserName}
		return c.Render(http.StatusOK, "register.html", data)
	}

	if _, err := h.users.Register(c.Request().Context(), form.UserID, form.UserName, form.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate_id").Inc()
			session.Flash(c, session.SeverityError, "That user ID is already taken.")
			return c.Redirect(http.StatusSeeOther, "/register")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	session.Flash(c, session.SeveritySuccess, "Registration complete.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if _, ok := h.sessions.Current(c); ok {
		session.Flash(c, session.SeverityInfo, "You are already logged in.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login.html", page(c, h.sessions))
}

// Login handles POST /login. Unknown ids and wrong passwords produce distinct
// messages, matching the long-standing behaviour of this application.
func (h *AuthHandler) Login(c echo.Context) error {
	if _, ok := h.sessions.Current(c); ok {
		session.Flash(c, session.SeverityInfo, "You are already logged in.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	if fieldErrs := h.forms.Validate(&form); fieldErrs != nil {
		data := page(c, h.sessions)
		data.Errors = fieldErrs
		data.Form = map[string]string{"user_id": form.UserID}
		return c.Render(http.StatusOK, "login.html", data)
	}

	user, err := h.users.Authenticate(c.Request().Context(), form.UserID, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("unknown_id").Inc()
			session.Flash(c, session.SeverityError, "No such user ID.")
		case errors.Is(err, domain.ErrWrongPassword):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			session.Flash(c, session.SeverityError, "Wrong password.")
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.sessions.Start(c, user.Ref()); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout. Logging out without a session is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
