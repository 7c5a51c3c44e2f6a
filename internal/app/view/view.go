// Package view provides the server-rendered HTML views.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/bookplate/internal/storage/db"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Page carries the fields shared by every view: the CSRF token for forms, an
// optional flash message, and the authenticated user's email (empty when
// anonymous).
type Page struct {
	CSRF  string
	Error string
	Email string
}

// AuthPage renders the combined login/signup form. Mode is "login" or
// "signup" and selects the form's initial labels and target endpoint; the
// client-side toggle script swaps between the two without a round trip.
type AuthPage struct {
	Page
	Mode string
}

// IndexPage renders the authenticated user's summary list.
type IndexPage struct {
	Page
	Summaries []db.Summary
}

// FormPage renders the shared add/edit form, pre-filled from Summary when
// editing.
type FormPage struct {
	Page
	Heading string
	Action  string
	Summary db.Summary
	Ratings []int64
}

// SummaryPage renders a single summary, or an empty state when Found is
// false. Body is the summary text rendered to sanitized HTML.
type SummaryPage struct {
	Page
	Found   bool
	Summary db.Summary
	Body    template.HTML
}

// FormRatings is the selectable rating range for the add/edit form.
func FormRatings() []int64 { return []int64{1, 2, 3, 4, 5} }

// Renderer satisfies [echo.Renderer] over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates into a Renderer.
func New() (*Renderer, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Must is [New], panicking on parse errors. The templates are embedded, so a
// parse failure is a programming error caught by any test that renders.
func Must() *Renderer {
	renderer, err := New()
	if err != nil {
		panic(err)
	}
	return renderer
}

// Render satisfies [echo.Renderer].
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
