package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Year is a release year. UnknownYear marks values that were missing or could
// not be parsed.
type Year int

const UnknownYear Year = 0

func (y Year) Known() bool {
	return y != UnknownYear
}

func (y Year) String() string {
	if !y.Known() {
		return "N/A"
	}
	return strconv.Itoa(int(y))
}

// Param is the value sent as a query parameter: the year, or "" when unknown.
func (y Year) Param() string {
	if !y.Known() {
		return ""
	}
	return strconv.Itoa(int(y))
}

func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Known() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(y))), nil
}

func (y *Year) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*y = UnknownYear
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*y = Year(n)
	return nil
}

// ParseYear never fails: blanks, junk and non-integral numbers map to
// UnknownYear. "2010" and "2010.0" both parse.
func ParseYear(raw string) Year {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownYear
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return UnknownYear
		}
		return Year(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return UnknownYear
	}
	return Year(int(f))
}

// MovieRecord is one row per movie and genre token.
type MovieRecord struct {
	Name     string `json:"name"`
	Year     Year   `json:"year"`
	Genre    string `json:"genre"`
	Director string `json:"director"`
	Actor1   string `json:"actor_1"`
	Actor2   string `json:"actor_2"`
	Actor3   string `json:"actor_3"`
	IMDbLink string `json:"imdb_link"`
}

// Actors returns the three actor columns in order.
func (r MovieRecord) Actors() [3]string {
	return [3]string{r.Actor1, r.Actor2, r.Actor3}
}

// RawRow is a source row before normalization. Every field is the column
// text as read, "" for missing values.
type RawRow struct {
	Name     string
	Year     string
	Genre    string
	Director string
	Actor1   string
	Actor2   string
	Actor3   string
	IMDbLink string
}
