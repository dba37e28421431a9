package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer satisfies echo.Renderer with the embedded view templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pageData is the common payload handed to every view template.
type pageData struct {
	User    *domain.SessionUser
	Notices []session.Notice

	// Form re-render state: submitted values and per-field errors.
	Form   map[string]string
	Errors map[string]string

	// Note views.
	Box   domain.Box
	Notes []domain.Note
	Note  *domain.Note
}

// page collects the session user and drains pending flash notices for a view.
func page(c echo.Context, sm *session.Manager) pageData {
	data := pageData{Notices: session.TakeFlashes(c)}
	if user, ok := sm.Current(c); ok {
		data.User = &user
	}
	return data
}
