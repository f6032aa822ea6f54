package omdb

import (
	"fmt"

	"github.com/mmcdole/popcorn/internal/domain"
)

// envelope carries the fields every OMDb response has
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

// check classifies the Response marker. "False" is a not-found, and a
// missing or unknown marker means the body is not an OMDb answer.
func (e envelope) check() error {
	switch e.Response {
	case "True":
		return nil
	case "False":
		return fmt.Errorf("%w (%s)", domain.ErrMovieNotFound, e.Error)
	default:
		return fmt.Errorf("%w: unexpected Response marker %q", domain.ErrTransport, e.Response)
	}
}

// SearchResponse is the body of a ?s= request
type SearchResponse struct {
	envelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

// SearchItem is one row of a search response
type SearchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// DetailResponse is the body of an ?i= request
type DetailResponse struct {
	envelope
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
	ImdbRating string `json:"imdbRating"`
}
