package service

import (
	"context"
	"sync"

	"github.com/mmcdole/popcorn/internal/domain"
)

// fakeRepo is a scriptable domain.MovieRepository
type fakeRepo struct {
	mu      sync.Mutex
	queries []string
	ids     []string

	search func(ctx context.Context, query string) ([]domain.SearchResult, error)
	detail func(ctx context.Context, id string) (*domain.MovieDetail, error)
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return f.search(ctx, query)
}

func (f *fakeRepo) GetDetail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	f.mu.Lock()
	f.ids = append(f.ids, id)
	f.mu.Unlock()
	return f.detail(ctx, id)
}

func (f *fakeRepo) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// waitOrCancel blocks until release is closed or ctx is done, mimicking
// an HTTP call that honours cancellation
func waitOrCancel(ctx context.Context, release <-chan struct{}) error {
	select {
	case <-release:
		return nil
	case <-ctx.Done():
		return domain.ErrCanceled
	}
}
