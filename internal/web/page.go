package web

import (
	"strings"

	"movienest/internal/filter"
)

// Page is one of the five views, selected by the page query parameter.
type Page string

const (
	PageHome     Page = "home"
	PageGenre    Page = "genre"
	PageActor    Page = "actor"
	PageDirector Page = "director"
	PageRate     Page = "rate"
)

var pages = []Page{PageHome, PageGenre, PageActor, PageDirector, PageRate}

// ResolvePage maps the raw parameter to a page; anything unknown is home.
func ResolvePage(raw string) Page {
	p := Page(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range pages {
		if p == known {
			return p
		}
	}
	return PageHome
}

// FilterKind is the filter backing a search page. Search pages share their
// name with the filter kind.
func (p Page) FilterKind() (filter.Kind, bool) {
	return filter.ParseKind(string(p))
}

type NavLink struct {
	Page   Page
	Label  string
	Active bool
}

func navFor(current Page) []NavLink {
	labels := map[Page]string{
		PageHome:     "Home",
		PageGenre:    "Genre",
		PageActor:    "Actor",
		PageDirector: "Director",
		PageRate:     "Rate a Movie",
	}
	out := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		out = append(out, NavLink{Page: p, Label: labels[p], Active: p == current})
	}
	return out
}
