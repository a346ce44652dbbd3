package web

import (
	"context"

	"movienest/internal/catalog"
	"movienest/internal/filter"
	"movienest/internal/rating"
)

// View is everything a template needs to render one page.
type View struct {
	Page         Page
	Nav          []NavLink
	Heading      string
	Label        string
	Param        string
	Options      []string
	Selected     string
	Searched     bool
	Warning      string
	Movies       []MovieCard
	Ratings      []int
	Rating       int
	Confirmation string
}

// MovieCard is one search result. HasDetails is false when the metadata
// lookup came back empty; the card then shows the title only.
type MovieCard struct {
	Title      string       `json:"title"`
	Year       catalog.Year `json:"year"`
	IMDbLink   string       `json:"imdb_link"`
	HasDetails bool         `json:"has_details"`
	PosterURL  string       `json:"poster_url,omitempty"`
	Rating     string       `json:"rating,omitempty"`
	Plot       string       `json:"plot,omitempty"`
}

var searchCopy = map[filter.Kind]struct{ heading, label string }{
	filter.KindGenre:    {"🎭 Movies by Genre", "Select a genre:"},
	filter.KindActor:    {"🎬 Movies by Actor", "Select an actor:"},
	filter.KindDirector: {"🎥 Movies by Director", "Select a director:"},
}

func (s *Server) homeView() View {
	return View{Page: PageHome, Nav: navFor(PageHome), Heading: "🏠 Home"}
}

func (s *Server) options(kind filter.Kind) []string {
	switch kind {
	case filter.KindGenre:
		return s.table.Genres()
	case filter.KindActor:
		return s.table.Actors()
	case filter.KindDirector:
		return s.table.Directors()
	default:
		return nil
	}
}

// searchView renders the selector; results are only computed when find is
// set, so picking an option alone never triggers a search.
func (s *Server) searchView(ctx context.Context, page Page, kind filter.Kind, value string, find bool) View {
	copyText := searchCopy[kind]
	v := View{
		Page:     page,
		Nav:      navFor(page),
		Heading:  copyText.heading,
		Label:    copyText.label,
		Param:    string(kind),
		Options:  s.options(kind),
		Selected: value,
	}
	if !find {
		return v
	}
	v.Searched = true
	v.Movies, v.Warning = s.search(ctx, filter.Selection{Kind: kind, Value: value})
	return v
}

func (s *Server) search(ctx context.Context, sel filter.Selection) ([]MovieCard, string) {
	res := filter.Find(s.table.Rows(), sel)
	cards := make([]MovieCard, 0, len(res.Matches))
	for _, m := range res.Matches {
		cards = append(cards, s.card(ctx, m))
	}
	return cards, res.Warning
}

func (s *Server) card(ctx context.Context, m filter.Match) MovieCard {
	c := MovieCard{
		Title:    m.Name,
		Year:     m.Year,
		IMDbLink: s.table.IMDbLink(m.Name, m.Year),
	}
	d, ok := s.lookup.Lookup(ctx, m.Name, m.Year)
	if !ok {
		return c
	}
	c.HasDetails = true
	c.PosterURL = d.PosterURL
	c.Rating = d.Rating
	c.Plot = d.Plot
	return c
}

func (s *Server) rateView(selected string, score int) View {
	if score < rating.MinRating || score > rating.MaxRating {
		score = rating.MinRating
	}
	return View{
		Page:     PageRate,
		Nav:      navFor(PageRate),
		Heading:  "⭐ Rate a Movie",
		Label:    "Select a movie to rate:",
		Param:    "title",
		Options:  s.table.Titles(),
		Selected: selected,
		Ratings:  rating.Scale(),
		Rating:   score,
	}
}
