package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"claydir/internal/filter"
)

// GridPage is everything the directory grid template needs for one draw.
// When Message is set it replaces the card grid (loading, load-failure, and
// no-listings states all render this way).
type GridPage struct {
	Title      string
	Weather    string
	Message    string
	Towns      []filter.Option
	Categories []filter.Option
	Selected   filter.Selection
	Cards      []CardView
	Query      string
}

// ProfilePage is the expanded detail view of a single record.
type ProfilePage struct {
	Title   string
	Detail  DetailView
	BackURL string
}

// NotFoundPage is rendered when a detail lookup misses.
type NotFoundPage struct {
	Title   string
	Name    string
	BackURL string
}

// ProfileHrefFunc builds the link target for a record's detail view. query
// is the encoded active filter selection, round-tripped so the back link
// can restore the last-filtered grid.
type ProfileHrefFunc func(slug, query string) string

// ServerProfileHref links to the detail handler with the identity in the
// query string.
func ServerProfileHref(slug, query string) string {
	href := "/profile?biz=" + url.QueryEscape(slug)
	if query != "" {
		href += "&" + query
	}

	return href
}

// StaticProfileHref links to a per-record exported HTML file.
func StaticProfileHref(slug, _ string) string {
	return "profiles/" + slug + ".html"
}

// Renderer writes view models as HTML pages.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer. profileHref defaults to ServerProfileHref
// when nil.
func NewRenderer(profileHref ProfileHrefFunc) *Renderer {
	if profileHref == nil {
		profileHref = ServerProfileHref
	}

	tmpl := template.Must(
		template.New("pages").
			Funcs(template.FuncMap{"profileHref": profileHref}).
			Parse(pagesTemplate),
	)

	return &Renderer{tmpl: tmpl}
}

// Grid renders the card grid with its filter controls.
func (r *Renderer) Grid(w io.Writer, page GridPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "grid", page); err != nil {
		return fmt.Errorf("failed to render grid: %w", err)
	}

	return nil
}

// Profile renders the expanded detail view.
func (r *Renderer) Profile(w io.Writer, page ProfilePage) error {
	if err := r.tmpl.ExecuteTemplate(w, "profile", page); err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}

	return nil
}

// NotFound renders the detail-lookup-miss state with a return path.
func (r *Renderer) NotFound(w io.Writer, page NotFoundPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "notfound", page); err != nil {
		return fmt.Errorf("failed to render not-found page: %w", err)
	}

	return nil
}
