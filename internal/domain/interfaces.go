package domain

import "context"

// MovieRepository provides access to the remote movie database
type MovieRepository interface {
	// Search returns titles matching query. A query with no matches
	// returns ErrMovieNotFound.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// GetDetail returns the full record for an IMDb id
	GetDetail(ctx context.Context, imdbID string) (*MovieDetail, error)
}
