package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DefaultMinQueryLength is the shortest query that reaches the network
const DefaultMinQueryLength = 3

// SearchRequest is a search issued for one query generation
type SearchRequest struct {
	Seq   uint64
	Query string
	ctx   context.Context
}

// SearchOutcome is the result of executing a SearchRequest
type SearchOutcome struct {
	Seq     uint64
	Query   string
	Results []domain.SearchResult
	Err     error
}

// SearchService owns the query and the published search status.
// Every query change cancels the request in flight and starts a new
// generation; only the outcome of the current generation is applied.
type SearchService struct {
	repo   domain.MovieRepository
	minLen int
	logger *slog.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	query  string
	status domain.SessionStatus
}

// NewSearchService creates a search session against repo
func NewSearchService(repo domain.MovieRepository, minQueryLength int, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if minQueryLength < 1 {
		minQueryLength = DefaultMinQueryLength
	}
	return &SearchService{
		repo:   repo,
		minLen: minQueryLength,
		logger: logger,
		status: domain.StatusReady{},
	}
}

// SetQuery replaces the query. The previous request is always cancelled.
// Short queries publish an empty ready status and return false; otherwise
// the status becomes loading and the request to execute is returned.
func (s *SearchService) SetQuery(query string) (SearchRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.seq++
	s.query = query

	if utf8.RuneCountInString(query) < s.minLen {
		s.status = domain.StatusReady{}
		return SearchRequest{}, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.status = domain.StatusLoading{}

	s.logger.Debug("search started", "query", query, "seq", s.seq)
	return SearchRequest{Seq: s.seq, Query: query, ctx: ctx}, true
}

// Execute runs req against the repository. It blocks and is meant to run
// off the UI loop.
func (s *SearchService) Execute(req SearchRequest) SearchOutcome {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := s.repo.Search(ctx, req.Query)
	if err == nil && ctx.Err() != nil {
		// Finished after being superseded
		err = domain.ErrCanceled
	}
	return SearchOutcome{Seq: req.Seq, Query: req.Query, Results: results, Err: err}
}

// Apply publishes out if it belongs to the current generation.
// It reports whether the published status changed.
func (s *SearchService) Apply(out SearchOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out.Seq != s.seq {
		s.logger.Debug("dropping stale search outcome", "query", out.Query, "seq", out.Seq, "current", s.seq)
		return false
	}
	if errors.Is(out.Err, domain.ErrCanceled) {
		s.logger.Debug("search canceled", "query", out.Query, "seq", out.Seq)
		return false
	}

	s.cancelLocked()

	if out.Err != nil {
		msg := domain.UserMessage(out.Err)
		if msg == domain.MsgNotFound {
			s.logger.Info("search found nothing", "query", out.Query)
		} else {
			s.logger.Warn("search failed", "query", out.Query, "error", out.Err)
		}
		s.status = domain.StatusError{Message: msg}
		return true
	}

	s.logger.Debug("search complete", "query", out.Query, "results", len(out.Results))
	s.status = domain.StatusReady{Results: out.Results}
	return true
}

// Close cancels the request in flight and invalidates its outcome
func (s *SearchService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.seq++
}

// Query returns the current query
func (s *SearchService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Status returns the published status
func (s *SearchService) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Results returns the current results (nil unless ready)
func (s *SearchService) Results() []domain.SearchResult {
	return domain.ResultsOf(s.Status())
}

func (s *SearchService) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
