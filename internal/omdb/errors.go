package omdb

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("omdb: not found")
	ErrEmptyTitle = errors.New("omdb: empty title")
	ErrMissingKey = errors.New("omdb: api key missing")
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "omdb: http status error"
	}
	return fmt.Sprintf("omdb: http %d", e.StatusCode)
}
