// Package web serves the MovieNest pages and the JSON API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"movienest/internal/catalog"
	"movienest/internal/omdb"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	table  *catalog.Table
	lookup omdb.Looker
	log    zerolog.Logger
	views  map[string]*template.Template
}

// NewServer parses the embedded templates. lookup is normally an *omdb.Memo.
func NewServer(table *catalog.Table, lookup omdb.Looker, log zerolog.Logger) (*Server, error) {
	views := make(map[string]*template.Template)
	for _, name := range []string{"home", "search", "rate"} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		views[name] = tmpl
	}
	return &Server{table: table, lookup: lookup, log: log, views: views}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "movies": s.table.Len()})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.handlePage)
	r.Post("/", s.handleRateForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options/{kind}", s.handleOptions)
		r.Get("/movies", s.handleMovies)
		r.Post("/ratings", s.handleRating)
	})
	return r
}
