// Package filter selects movies from the normalized table by genre, actor or
// director.
package filter

import (
	"strings"

	"movienest/internal/catalog"
)

type Kind string

const (
	KindGenre    Kind = "genre"
	KindActor    Kind = "actor"
	KindDirector Kind = "director"
)

// ParseKind accepts the singular kind names only.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindGenre:
		return KindGenre, true
	case KindActor:
		return KindActor, true
	case KindDirector:
		return KindDirector, true
	default:
		return "", false
	}
}

type Selection struct {
	Kind  Kind
	Value string
}

// Match is a distinct (title, year) pair.
type Match struct {
	Name string       `json:"name"`
	Year catalog.Year `json:"year"`
}

// Result carries the matches, or a user-facing warning when the selection was
// empty or nothing matched. A warning is not an error.
type Result struct {
	Matches []Match `json:"matches"`
	Warning string  `json:"warning,omitempty"`
}

// Find returns the distinct (Name, Year) pairs matching sel, in order of first
// occurrence.
//
// genre and director use case-insensitive substring matching, actor uses
// case-sensitive equality on any of the three actor columns.
func Find(rows []catalog.MovieRecord, sel Selection) Result {
	match, ok := matcher(sel)
	if !ok {
		return Result{Matches: []Match{}, Warning: "Unknown selection."}
	}
	if strings.TrimSpace(sel.Value) == "" {
		return Result{Matches: []Match{}, Warning: "Please select " + article(sel.Kind) + " " + string(sel.Kind) + "."}
	}

	seen := make(map[Match]bool)
	out := make([]Match, 0)
	for _, r := range rows {
		if !match(r) {
			continue
		}
		m := Match{Name: r.Name, Year: r.Year}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	if len(out) == 0 {
		return Result{Matches: out, Warning: "No movies found for the selected " + string(sel.Kind) + "."}
	}
	return Result{Matches: out}
}

func matcher(sel Selection) (func(catalog.MovieRecord) bool, bool) {
	switch sel.Kind {
	case KindGenre:
		needle := strings.ToLower(sel.Value)
		return func(r catalog.MovieRecord) bool {
			return strings.Contains(strings.ToLower(r.Genre), needle)
		}, true
	case KindActor:
		return func(r catalog.MovieRecord) bool {
			return r.Actor1 == sel.Value || r.Actor2 == sel.Value || r.Actor3 == sel.Value
		}, true
	case KindDirector:
		needle := strings.ToLower(sel.Value)
		return func(r catalog.MovieRecord) bool {
			return strings.Contains(strings.ToLower(r.Director), needle)
		}, true
	default:
		return nil, false
	}
}

func article(k Kind) string {
	if k == KindActor {
		return "an"
	}
	return "a"
}
