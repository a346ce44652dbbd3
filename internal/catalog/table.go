package catalog

import (
	"sort"
	"strings"
)

// PlaceholderLink is shown when a movie has no IMDb link in the dataset.
const PlaceholderLink = "https://via.placeholder.com/150"

// Table is the normalized dataset. It is read-only once built and safe to
// share between requests.
type Table struct {
	rows []MovieRecord
}

func NewTable(rows []MovieRecord) *Table {
	out := make([]MovieRecord, len(rows))
	copy(out, rows)
	return &Table{rows: out}
}

// Normalize fills missing values, coerces years and explodes the genre column
// into one row per comma-separated token.
func Normalize(raw []RawRow) *Table {
	rows := make([]MovieRecord, 0, len(raw))
	for _, r := range raw {
		base := MovieRecord{
			Name:     r.Name,
			Year:     ParseYear(r.Year),
			Director: r.Director,
			Actor1:   r.Actor1,
			Actor2:   r.Actor2,
			Actor3:   r.Actor3,
			IMDbLink: r.IMDbLink,
		}
		for _, genre := range ExplodeGenre(r.Genre) {
			row := base
			row.Genre = genre
			rows = append(rows, row)
		}
	}
	return &Table{rows: rows}
}

// ExplodeGenre splits a genre cell on commas and trims every token. An empty
// cell yields a single empty token so the movie is kept.
func ExplodeGenre(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []MovieRecord {
	out := make([]MovieRecord, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Genres() []string {
	return t.distinct(func(r MovieRecord) []string { return []string{r.Genre} })
}

func (t *Table) Actors() []string {
	return t.distinct(func(r MovieRecord) []string {
		a := r.Actors()
		return a[:]
	})
}

func (t *Table) Directors() []string {
	return t.distinct(func(r MovieRecord) []string { return []string{r.Director} })
}

func (t *Table) Titles() []string {
	return t.distinct(func(r MovieRecord) []string { return []string{r.Name} })
}

// IMDbLink returns the link of the first row matching name and year, or
// PlaceholderLink.
func (t *Table) IMDbLink(name string, year Year) string {
	for _, r := range t.rows {
		if r.Name == name && r.Year == year && strings.TrimSpace(r.IMDbLink) != "" {
			return r.IMDbLink
		}
	}
	return PlaceholderLink
}

func (t *Table) distinct(values func(MovieRecord) []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range t.rows {
		for _, v := range values(r) {
			if strings.TrimSpace(v) == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
