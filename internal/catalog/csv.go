package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrMissingColumn = errors.New("missing column")

const (
	colName     = "name"
	colYear     = "year"
	colGenre    = "genre"
	colDirector = "director"
	colActor1   = "actor 1"
	colActor2   = "actor 2"
	colActor3   = "actor 3"
	colIMDbLink = "imdb_link"
)

var requiredColumns = []string{colName, colYear, colGenre}

// ReadCSV reads a header-driven CSV. Name, Year and Genre are required; the
// remaining columns and short rows are null-filled.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty dataset: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []RawRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, RawRow{
			Name:     field(rec, colName),
			Year:     field(rec, colYear),
			Genre:    field(rec, colGenre),
			Director: field(rec, colDirector),
			Actor1:   field(rec, colActor1),
			Actor2:   field(rec, colActor2),
			Actor3:   field(rec, colActor3),
			IMDbLink: field(rec, colIMDbLink),
		})
	}
	return rows, nil
}
