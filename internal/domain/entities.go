package domain

import (
	"strconv"
	"strings"
)

// SearchResult is one row of an OMDb title search
type SearchResult struct {
	ImdbID string
	Title  string
	Year   string
	Poster string
}

// MovieDetail is the full OMDb record for a single title.
// Numeric fields are kept as OMDb reports them ("142 min", "8.3", "N/A").
type MovieDetail struct {
	ImdbID     string
	Title      string
	Year       string
	Poster     string
	Runtime    string
	Plot       string
	Released   string
	Actors     string
	Director   string
	Genre      string
	ImdbRating string
}

// RuntimeMinutes parses the leading number of Runtime ("142 min" -> 142).
// Unknown runtimes ("N/A", "") return 0.
func (d MovieDetail) RuntimeMinutes() int {
	fields := strings.Fields(d.Runtime)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// Rating parses ImdbRating as a float, 0 when OMDb has no rating
func (d MovieDetail) Rating() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(d.ImdbRating), 64)
	if err != nil {
		return 0
	}
	return f
}

// WatchedEntry is a movie the user has rated and added to the watched list.
// The JSON shape is the on-disk format of the watched list.
type WatchedEntry struct {
	ImdbID             string  `json:"imdbID"`
	Title              string  `json:"title"`
	Year               string  `json:"year"`
	Poster             string  `json:"poster"`
	ImdbRating         float64 `json:"imdbRating"`
	Runtime            int     `json:"runtime"` // minutes
	UserRating         int     `json:"userRating"`
	RatingInteractions int     `json:"ratingInteractionCount"`
}

// WatchedSummary aggregates the watched list
type WatchedSummary struct {
	Count         int
	AvgImdbRating float64
	AvgUserRating float64
	AvgRuntime    float64
}

// Summarize computes count and averages over entries.
// An empty list averages to zero.
func Summarize(entries []WatchedEntry) WatchedSummary {
	s := WatchedSummary{Count: len(entries)}
	if len(entries) == 0 {
		return s
	}

	var imdb, user, runtime float64
	for _, e := range entries {
		imdb += e.ImdbRating
		user += float64(e.UserRating)
		runtime += float64(e.Runtime)
	}
	n := float64(len(entries))
	s.AvgImdbRating = imdb / n
	s.AvgUserRating = user / n
	s.AvgRuntime = runtime / n
	return s
}
