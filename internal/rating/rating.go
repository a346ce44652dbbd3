// Package rating acknowledges user ratings. Nothing is stored.
package rating

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrNoTitle    = errors.New("rating: no movie selected")
	ErrOutOfRange = fmt.Errorf("rating: must be between %d and %d", MinRating, MaxRating)
)

type Acknowledgement struct {
	Title   string `json:"title"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

func Acknowledge(title string, rating int) (Acknowledgement, error) {
	if strings.TrimSpace(title) == "" {
		return Acknowledgement{}, ErrNoTitle
	}
	if rating < MinRating || rating > MaxRating {
		return Acknowledgement{}, ErrOutOfRange
	}
	return Acknowledgement{
		Title:   title,
		Rating:  rating,
		Message: fmt.Sprintf("Thank you for rating '%s' with %d stars!", title, rating),
	}, nil
}

// Scale returns the selectable ratings, lowest first.
func Scale() []int {
	out := make([]int, 0, MaxRating-MinRating+1)
	for i := MinRating; i <= MaxRating; i++ {
		out = append(out, i)
	}
	return out
}
