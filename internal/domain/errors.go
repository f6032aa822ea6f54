package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTransport indicates the movie database could not be reached or
	// answered with a non-success status
	ErrTransport = errors.New("movie database request failed")

	// ErrMovieNotFound indicates a well-formed response with no results
	ErrMovieNotFound = errors.New("movie not found")

	// ErrCanceled indicates the request was superseded or its owner went away
	ErrCanceled = errors.New("request canceled")

	// ErrAlreadyWatched indicates the movie is already in the watched list
	ErrAlreadyWatched = errors.New("movie already in watched list")

	// ErrNoRating indicates a commit without a user rating
	ErrNoRating = errors.New("no rating set")
)

// User-visible messages
const (
	MsgTransport = "Something went wrong"
	MsgNotFound  = "Movie not found"
)

// UserMessage maps an error to the message shown to the user.
// Anything that is not a not-found is shown as a transport failure.
func UserMessage(err error) string {
	if errors.Is(err, ErrMovieNotFound) {
		return MsgNotFound
	}
	return MsgTransport
}
