package catalog

import (
	"context"
	"fmt"
	"os"
)

// Source yields the raw dataset rows.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]RawRow, error)
}

// Load reads every row from src and normalizes them. Any read error fails the
// whole load: no partial table is returned.
func Load(ctx context.Context, src Source) (*Table, error) {
	raw, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}
	return Normalize(raw), nil
}

// FileSource reads a CSV file.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return "file " + s.Path
}

func (s FileSource) Rows(ctx context.Context) ([]RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// LoadFile is Load with a FileSource.
func LoadFile(path string) (*Table, error) {
	return Load(context.Background(), FileSource{Path: path})
}
