package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/omdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matrix = []domain.SearchResult{
	{ImdbID: "tt0133093", Title: "The Matrix", Year: "1999"},
}

func TestShortQuerySkipsNetwork(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		t.Fatalf("unexpected search for %q", q)
		return nil, nil
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	for _, q := range []string{"", "m", "ma", "日本"} {
		_, ok := s.SetQuery(q)
		assert.False(t, ok, "query %q", q)
		assert.Equal(t, domain.StatusReady{}, s.Status())
		assert.Empty(t, s.Results())
	}
	assert.Empty(t, repo.searchCalls())
}

func TestShortQueryClearsPreviousResultsAndError(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		return nil, domain.ErrTransport
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req, ok := s.SetQuery("matrix")
	require.True(t, ok)
	require.True(t, s.Apply(s.Execute(req)))
	require.Equal(t, domain.StatusError{Message: domain.MsgTransport}, s.Status())

	_, ok = s.SetQuery("ma")
	assert.False(t, ok)
	assert.Equal(t, domain.StatusReady{}, s.Status())
}

func TestSearchSuccessPublishesResults(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		return matrix, nil
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req, ok := s.SetQuery("matrix")
	require.True(t, ok)
	assert.Equal(t, domain.StatusLoading{}, s.Status())

	assert.True(t, s.Apply(s.Execute(req)))
	assert.Equal(t, domain.StatusReady{Results: matrix}, s.Status())
	assert.Equal(t, "matrix", s.Query())
	assert.Equal(t, []string{"matrix"}, repo.searchCalls())
}

func TestSearchErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("search: %w", domain.ErrMovieNotFound), "Movie not found"},
		{"transport", fmt.Errorf("search: %w", domain.ErrTransport), "Something went wrong"},
		{"unclassified", fmt.Errorf("failed to parse response: unexpected EOF"), "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
				return nil, tt.err
			}}
			s := NewSearchService(repo, 3, adapter.NullLogger())

			req, _ := s.SetQuery("matrix")
			assert.True(t, s.Apply(s.Execute(req)))
			assert.Equal(t, domain.StatusError{Message: tt.want}, s.Status())
			assert.Empty(t, s.Results())
		})
	}
}

func TestSupersededQueryNeverPublishes(t *testing.T) {
	release := make(chan struct{})
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		if q == "mat" {
			if err := waitOrCancel(ctx, release); err != nil {
				return nil, err
			}
			return []domain.SearchResult{{ImdbID: "tt-stale"}}, nil
		}
		return matrix, nil
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req1, ok := s.SetQuery("mat")
	require.True(t, ok)
	done := make(chan SearchOutcome, 1)
	go func() { done <- s.Execute(req1) }()

	req2, ok := s.SetQuery("matrix")
	require.True(t, ok)
	assert.True(t, s.Apply(s.Execute(req2)))

	out1 := <-done
	assert.ErrorIs(t, out1.Err, domain.ErrCanceled)
	assert.False(t, s.Apply(out1))
	assert.Equal(t, domain.StatusReady{Results: matrix}, s.Status())
}

func TestLateStaleSuccessIsIgnored(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		// Ignores cancellation entirely
		return []domain.SearchResult{{ImdbID: "tt-" + q}}, nil
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req1, _ := s.SetQuery("first")
	req2, _ := s.SetQuery("second")

	// Second resolves first, then the stale first arrives
	require.True(t, s.Apply(s.Execute(req2)))
	assert.False(t, s.Apply(s.Execute(req1)))
	assert.Equal(t, "tt-second", s.Results()[0].ImdbID)

	// A stale failure cannot flip the status either
	assert.False(t, s.Apply(SearchOutcome{Seq: req1.Seq, Err: domain.ErrTransport}))
	assert.Equal(t, "tt-second", s.Results()[0].ImdbID)
}

func TestStaleOutcomeDoesNotResetLoading(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		return matrix, nil
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req1, _ := s.SetQuery("first")
	_, _ = s.SetQuery("second")

	assert.False(t, s.Apply(s.Execute(req1)))
	assert.Equal(t, domain.StatusLoading{}, s.Status())
}

func TestShortQueryCancelsInFlight(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		<-ctx.Done()
		return nil, domain.ErrCanceled
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req, _ := s.SetQuery("matrix")
	_, ok := s.SetQuery("")
	assert.False(t, ok)

	out := s.Execute(req)
	assert.ErrorIs(t, out.Err, domain.ErrCanceled)
	assert.False(t, s.Apply(out))
	assert.Equal(t, domain.StatusReady{}, s.Status())
}

func TestCloseCancelsInFlight(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]domain.SearchResult, error) {
		<-ctx.Done()
		return nil, domain.ErrCanceled
	}}
	s := NewSearchService(repo, 3, adapter.NullLogger())

	req, _ := s.SetQuery("matrix")
	s.Close()

	out := s.Execute(req)
	assert.False(t, s.Apply(out))
}

func TestSearchAgainstOMDbServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("s") {
		case "matrix":
			w.Write([]byte(`{"Response":"True","Search":[{"imdbID":"tt0133093","Title":"The Matrix","Year":"1999","Poster":"N/A"}]}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	defer srv.Close()

	client := omdb.NewClient(srv.URL, "key", adapter.NullLogger())
	s := NewSearchService(client, 3, adapter.NullLogger())

	req, _ := s.SetQuery("matrix")
	s.Apply(s.Execute(req))
	assert.Equal(t, domain.StatusReady{Results: matrix}, stripPosters(s.Status()))

	req, _ = s.SetQuery("qwertyuiop")
	s.Apply(s.Execute(req))
	assert.Equal(t, domain.StatusError{Message: "Movie not found"}, s.Status())

	req, _ = s.SetQuery("broken")
	s.Apply(s.Execute(req))
	assert.Equal(t, domain.StatusError{Message: "Something went wrong"}, s.Status())
}

func stripPosters(st domain.SessionStatus) domain.SessionStatus {
	ready, ok := st.(domain.StatusReady)
	if !ok {
		return st
	}
	out := make([]domain.SearchResult, len(ready.Results))
	for i, r := range ready.Results {
		r.Poster = ""
		out[i] = r
	}
	return domain.StatusReady{Results: out}
}
