// Package server presents the directory over HTTP: the filterable card
// grid, per-business profile pages, and a health endpoint.
package server

import (
	"net/http"
	"net/url"

	"claydir/internal/config"
	"claydir/internal/filter"
	"claydir/internal/images"
	"claydir/internal/ingest"
	"claydir/internal/logger"
	"claydir/internal/normalizer"
	"claydir/internal/render"
	"claydir/internal/store"
)

// Inline status messages for the grid area. Failures stay local to the
// affected region; nothing here takes the page down.
const (
	msgLoading    = "Loading the directory..."
	msgLoadFailed = "Sorry, there was a problem loading the directory. Please refresh the page."
	msgNoListings = "No listings currently available. Please check back later."
)

// Server wires the store, ingestion status, and renderers into handlers.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	ingest   *ingest.Controller
	builder  *render.Builder
	renderer *render.Renderer
	weather  *WeatherWidget
	log      *logger.Logger
}

// New creates a server over the given store and ingestion controller.
func New(cfg *config.Config, st *store.Store, ctrl *ingest.Controller, log *logger.Logger) *Server {
	resolver := images.NewResolver(cfg.Images.Placeholder, cfg.Images.BasePath)

	var weather *WeatherWidget
	if cfg.Weather.Enabled {
		weather = NewWeatherWidget(cfg.Weather, log)
	}

	return &Server{
		cfg:      cfg,
		store:    st,
		ingest:   ctrl,
		builder:  render.NewBuilder(resolver, cfg.Glyph),
		renderer: render.NewRenderer(render.ServerProfileHref),
		weather:  weather,
		log:      log,
	}
}

// Handler returns the root HTTP handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleGrid)
	mux.HandleFunc("/profile", s.handleProfile)
	mux.HandleFunc("/healthz", s.handleHealth)

	return s.withRequestLog(mux)
}

// handleGrid renders the card grid, filtered by the town/cat query
// parameters. Ingestion states render as inline messages in the grid area.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderNotFound(w, r.URL.Path, "/")

		return
	}

	sel := selectionFromQuery(r.URL.Query())

	page := render.GridPage{
		Title:    s.cfg.Directory.Title,
		Selected: sel,
		Query:    encodeSelection(sel),
	}

	if s.weather != nil {
		page.Weather = s.weather.Current()
	}

	status, _ := s.ingest.Status()

	switch status {
	case ingest.StatusLoading:
		page.Message = msgLoading
	case ingest.StatusFailed:
		page.Message = msgLoadFailed
	case ingest.StatusEmpty:
		page.Message = msgNoListings
	case ingest.StatusReady:
		all := s.store.All()
		// Option lists always derive from the full store, not the subset
		page.Towns = filter.TownOptions(all)
		page.Categories = filter.CategoryOptions(all, s.cfg.Glyph)
		page.Cards = s.builder.Cards(filter.Apply(all, sel))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.renderer.Grid(w, page); err != nil {
		s.log.Error("grid render failed", "error", err)
	}
}

// handleProfile renders the expanded detail view for the identity in the
// biz query parameter. The identity is slugged before lookup so direct
// links typed with different casing or punctuation still resolve.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity := r.URL.Query().Get("biz")
	sel := selectionFromQuery(r.URL.Query())
	backURL := backURL(sel)

	record, ok := s.store.FindBySlug(normalizer.Slug(identity))
	if !ok {
		s.renderNotFound(w, identity, backURL)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	page := render.ProfilePage{
		Title:   s.cfg.Directory.Title,
		Detail:  s.builder.Detail(record),
		BackURL: backURL,
	}

	if err := s.renderer.Profile(w, page); err != nil {
		s.log.Error("profile render failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status, _ := s.ingest.Status()
	if status == ingest.StatusFailed {
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// renderNotFound writes the not-found state with a path back to the grid.
func (s *Server) renderNotFound(w http.ResponseWriter, name, backURL string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)

	page := render.NotFoundPage{
		Title:   s.cfg.Directory.Title,
		Name:    name,
		BackURL: backURL,
	}

	if err := s.renderer.NotFound(w, page); err != nil {
		s.log.Error("not-found render failed", "error", err)
	}
}

// selectionFromQuery reads the filter selection from query parameters,
// treating absence as the "All" sentinel.
func selectionFromQuery(q url.Values) filter.Selection {
	sel := filter.Selection{
		Town:     q.Get("town"),
		Category: q.Get("cat"),
	}

	if sel.Town == "" {
		sel.Town = filter.All
	}

	if sel.Category == "" {
		sel.Category = filter.All
	}

	return sel
}

// encodeSelection encodes a non-default selection for round-tripping
// through profile links.
func encodeSelection(sel filter.Selection) string {
	q := url.Values{}

	if sel.Town != filter.All && sel.Town != "" {
		q.Set("town", sel.Town)
	}

	if sel.Category != filter.All && sel.Category != "" {
		q.Set("cat", sel.Category)
	}

	return q.Encode()
}

// backURL builds the return path to the last-filtered grid view.
func backURL(sel filter.Selection) string {
	query := encodeSelection(sel)
	if query == "" {
		return "/"
	}

	return "/?" + query
}
