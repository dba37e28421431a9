package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/api/metrics"
	"github.com/shortnote/note-system/internal/api/middleware"
	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
)

// APIHandler is the programmatic JSON mirror of the browser surface, using
// bearer tokens instead of cookie sessions.
type APIHandler struct {
	users     ports.UserService
	notes     ports.NoteService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAPIHandler(users ports.UserService, notes ports.NoteService, jwtSecret string, tokenTTL time.Duration) *APIHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &APIHandler{users: users, notes: notes, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type apiLoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"user_pw"`
}

type apiLoginResponse struct {
	Token string `json:"token"`
}

type apiSendNoteRequest struct {
	To      string `json:"to"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type apiNotesResponse struct {
	Notes []domain.Note `json:"notes"`
}

// Login handles POST /api/login and returns a bearer token.
//
// Unlike the browser flow, unknown ids and wrong passwords are deliberately
// indistinguishable here: this surface has no legacy messaging to preserve.
//
// @Summary      Obtain a bearer token
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        body  body      apiLoginRequest  true  "Login credentials"
// @Success      200   {object}  apiLoginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *APIHandler) Login(c echo.Context) error {
	var req apiLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWrongPassword) {
			metrics.LoginsTotal.WithLabelValues("api_rejected").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"exp":  time.Now().Add(h.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, apiLoginResponse{Token: token})
}

// SendNote handles POST /api/notes.
//
// @Summary      Send a note
// @Tags         api
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      apiSendNoteRequest  true  "Note to send"
// @Success      201   {object}  domain.Note
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/notes [post]
func (h *APIHandler) SendNote(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	var req apiSendNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.To == "" || req.Title == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to, title and content are required")
	}

	note, err := h.notes.Send(c.Request().Context(), user, req.To, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrRecipientNotFound) {
			metrics.NotesRejectedTotal.WithLabelValues("recipient_not_found").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "recipient not found")
		}
		metrics.NotesRejectedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.NotesSentTotal.Inc()
	return c.JSON(http.StatusCreated, note)
}

// ListBox handles GET /api/notes/:box with box ∈ {inbox, outbox}.
//
// @Summary      List a mailbox
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        box  path      string  true  "inbox or outbox"
// @Success      200  {object}  apiNotesResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/notes/{box} [get]
func (h *APIHandler) ListBox(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	box, err := domain.ParseBox(c.Param("box"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no such box")
	}

	notes, err := h.notes.ListBox(c.Request().Context(), user.ID, box)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiNotesResponse{Notes: notes})
}

// NoteContent handles GET /api/notes/content/:id.
//
// @Summary      Read a note
// @Tags         api
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  domain.Note
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/notes/content/{id} [get]
func (h *APIHandler) NoteContent(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	note, err := h.notes.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}
