package omdb

import "github.com/mmcdole/popcorn/internal/domain"

// MapSearchResults converts search rows to domain results, keeping API order
func MapSearchResults(items []SearchItem) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		results = append(results, domain.SearchResult{
			ImdbID: it.ImdbID,
			Title:  it.Title,
			Year:   it.Year,
			Poster: posterURL(it.Poster),
		})
	}
	return results
}

// MapDetail converts a detail response to a domain detail.
// requestedID fills ImdbID when the response omits it.
func MapDetail(d *DetailResponse, requestedID string) *domain.MovieDetail {
	id := d.ImdbID
	if id == "" {
		id = requestedID
	}
	return &domain.MovieDetail{
		ImdbID:     id,
		Title:      d.Title,
		Year:       d.Year,
		Poster:     posterURL(d.Poster),
		Runtime:    d.Runtime,
		Plot:       d.Plot,
		Released:   d.Released,
		Actors:     d.Actors,
		Director:   d.Director,
		Genre:      d.Genre,
		ImdbRating: d.ImdbRating,
	}
}

// posterURL normalizes OMDb's "N/A" placeholder to empty
func posterURL(p string) string {
	if p == "N/A" {
		return ""
	}
	return p
}
