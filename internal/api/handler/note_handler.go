package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/api/metrics"
	"github.com/shortnote/note-system/internal/api/middleware"
	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
	"github.com/shortnote/note-system/internal/session"
)

// NoteHandler serves the note views of the browser surface. All routes are
// behind the RequireUser guard.
type NoteHandler struct {
	notes    ports.NoteService
	sessions *session.Manager
	forms    *formValidator
}

func NewNoteHandler(notes ports.NoteService, sessions *session.Manager) *NoteHandler {
	return &NoteHandler{notes: notes, sessions: sessions, forms: newFormValidator()}
}

// ShowNewNote handles GET /note/new.
func (h *NoteHandler) ShowNewNote(c echo.Context) error {
	return c.Render(http.StatusOK, "new_note.html", page(c, h.sessions))
}

// CreateNote handles POST /note/new. A successfully sent note lands the user
// on their outbox.
func (h *NoteHandler) CreateNote(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	var form newNoteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	if fieldErrs := h.forms.Validate(&form); fieldErrs != nil {
		data := page(c, h.sessions)
		data.Errors = fieldErrs
		data.Form = map[string]string{"to": form.To, "title": form.Title, "content": form.Content}
		return c.Render(http.StatusOK, "new_note.html", data)
	}

	if _, err := h.notes.Send(c.Request().Context(), user, form.To, form.Title, form.Content); err != nil {
		if errors.Is(err, domain.ErrRecipientNotFound) {
			metrics.NotesRejectedTotal.WithLabelValues("recipient_not_found").Inc()
			session.Flash(c, session.SeverityError, "No such user.")
			return c.Redirect(http.StatusSeeOther, "/note/new")
		}
		metrics.NotesRejectedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.NotesSentTotal.Inc()
	session.Flash(c, session.SeveritySuccess, "Note sent.")
	return c.Redirect(http.StatusSeeOther, "/note/outbox")
}

// ListBox handles GET /note/:box with box ∈ {inbox, outbox}. Anything else
// is a 404.
func (h *NoteHandler) ListBox(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	box, err := domain.ParseBox(c.Param("box"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no such box")
	}

	notes, err := h.notes.ListBox(c.Request().Context(), user.ID, box)
	if err != nil {
		return err
	}

	data := page(c, h.sessions)
	data.Box = box
	data.Notes = notes
	return c.Render(http.StatusOK, "note_list.html", data)
}

// NoteContent handles GET /note/content/:id. Users who are neither sender
// nor recipient are bounced to their inbox.
func (h *NoteHandler) NoteContent(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	note, err := h.notes.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "note not found")
		}
		if errors.Is(err, domain.ErrNoteForbidden) {
			session.Flash(c, session.SeverityError, "You can only read your own notes.")
			return c.Redirect(http.StatusSeeOther, "/note/inbox")
		}
		return err
	}

	data := page(c, h.sessions)
	data.Note = note
	return c.Render(http.StatusOK, "note_content.html", data)
}
