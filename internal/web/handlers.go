package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"movienest/internal/filter"
	"movienest/internal/rating"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := ResolvePage(q.Get("page"))
	switch page {
	case PageRate:
		s.render(w, r, "rate", s.rateView(q.Get("title"), rating.MinRating))
	case PageGenre, PageActor, PageDirector:
		kind, _ := page.FilterKind()
		v := s.searchView(r.Context(), page, kind, q.Get(string(kind)), q.Has("find"))
		s.render(w, r, "search", v)
	default:
		s.render(w, r, "home", s.homeView())
	}
}

// handleRateForm is the Submit Rating action of the rate page.
func (s *Server) handleRateForm(w http.ResponseWriter, r *http.Request) {
	if ResolvePage(r.URL.Query().Get("page")) != PageRate {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	title := r.PostForm.Get("title")
	score, _ := strconv.Atoi(r.PostForm.Get("rating"))

	v := s.rateView(title, score)
	ack, err := rating.Acknowledge(title, score)
	if err != nil {
		v.Warning = ratingWarning(err)
		s.render(w, r, "rate", v)
		return
	}
	hlog.FromRequest(r).Info().Str("title", ack.Title).Int("rating", ack.Rating).Msg("rating acknowledged")
	v.Confirmation = ack.Message
	s.render(w, r, "rate", v)
}

func ratingWarning(err error) string {
	switch {
	case errors.Is(err, rating.ErrNoTitle):
		return "Please select a movie to rate."
	case errors.Is(err, rating.ErrOutOfRange):
		return "Please choose a rating from 1 to 5."
	default:
		return err.Error()
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, v View) {
	var buf bytes.Buffer
	if err := s.views[name].ExecuteTemplate(&buf, "base", v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("view", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	var opts []string
	switch kind {
	case "genres":
		opts = s.table.Genres()
	case "actors":
		opts = s.table.Actors()
	case "directors":
		opts = s.table.Directors()
	case "titles":
		opts = s.table.Titles()
	default:
		errorJSON(w, http.StatusNotFound, "unknown option kind")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": kind, "options": opts})
}

type moviesResponse struct {
	Kind    filter.Kind `json:"kind"`
	Value   string      `json:"value"`
	Movies  []MovieCard `json:"movies"`
	Warning string      `json:"warning,omitempty"`
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var sel filter.Selection
	found := false
	for _, kind := range []filter.Kind{filter.KindGenre, filter.KindActor, filter.KindDirector} {
		if q.Has(string(kind)) {
			sel = filter.Selection{Kind: kind, Value: q.Get(string(kind))}
			found = true
			break
		}
	}
	if !found {
		errorJSON(w, http.StatusBadRequest, "one of genre, actor or director is required")
		return
	}
	cards, warning := s.search(r.Context(), sel)
	writeJSON(w, http.StatusOK, moviesResponse{Kind: sel.Kind, Value: sel.Value, Movies: cards, Warning: warning})
}

func (s *Server) handleRating(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	ack, err := rating.Acknowledge(req.Title, req.Rating)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	hlog.FromRequest(r).Info().Str("title", ack.Title).Int("rating", ack.Rating).Msg("rating acknowledged")
	writeJSON(w, http.StatusOK, ack)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
