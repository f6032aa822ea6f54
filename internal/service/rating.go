package service

import (
	"fmt"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DefaultMaxRating is the number of stars offered
const DefaultMaxRating = 10

// RatingSession holds the user's rating while one detail view is open.
// It counts how many times the rating changed to a different non-zero value.
type RatingSession struct {
	maxRating    int
	rating       int
	interactions int
}

// NewRatingSession starts a rating session with maxRating stars
func NewRatingSession(maxRating int) *RatingSession {
	if maxRating < 1 {
		maxRating = DefaultMaxRating
	}
	return &RatingSession{maxRating: maxRating}
}

// Rate sets the rating. Zero or less clears it without counting,
// values above the maximum are clamped, and repeating the current
// rating is not counted.
func (r *RatingSession) Rate(stars int) {
	if stars <= 0 {
		r.rating = 0
		return
	}
	stars = min(stars, r.maxRating)
	if stars == r.rating {
		return
	}
	r.rating = stars
	r.interactions++
}

// Rating returns the current rating, 0 when unset
func (r *RatingSession) Rating() int { return r.rating }

// Interactions returns how many times a new rating was set
func (r *RatingSession) Interactions() int { return r.interactions }

// MaxRating returns the number of stars
func (r *RatingSession) MaxRating() int { return r.maxRating }

// Commit builds the watched entry for detail with the session's rating
func (r *RatingSession) Commit(detail *domain.MovieDetail) (domain.WatchedEntry, error) {
	if detail == nil {
		return domain.WatchedEntry{}, fmt.Errorf("commit rating: no movie loaded")
	}
	if r.rating == 0 {
		return domain.WatchedEntry{}, fmt.Errorf("commit %s: %w", detail.ImdbID, domain.ErrNoRating)
	}

	return domain.WatchedEntry{
		ImdbID:             detail.ImdbID,
		Title:              detail.Title,
		Year:               detail.Year,
		Poster:             detail.Poster,
		ImdbRating:         detail.Rating(),
		Runtime:            detail.RuntimeMinutes(),
		UserRating:         r.rating,
		RatingInteractions: r.interactions,
	}, nil
}
