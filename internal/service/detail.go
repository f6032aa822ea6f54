package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DetailRequest fetches the record for one selection
type DetailRequest struct {
	Seq    uint64
	ImdbID string
	ctx    context.Context
}

// DetailOutcome is the result of executing a DetailRequest
type DetailOutcome struct {
	Seq    uint64
	ImdbID string
	Detail *domain.MovieDetail
	Err    error
}

// DetailService tracks the selected movie and its detail record.
// A new selection aborts the previous fetch and its late outcome is ignored.
type DetailService struct {
	repo   domain.MovieRepository
	logger *slog.Logger

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	selected string
	status   domain.DetailStatus
}

// NewDetailService creates a detail loader against repo
func NewDetailService(repo domain.MovieRepository, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailService{repo: repo, logger: logger, status: domain.DetailClosed{}}
}

// Select opens the detail for id. Selecting the open movie again closes it
// and returns false.
func (s *DetailService) Select(id string) (DetailRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || id == s.selected {
		s.closeLocked()
		return DetailRequest{}, false
	}

	s.cancelLocked()
	s.seq++
	s.selected = id
	s.status = domain.DetailLoading{}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.logger.Debug("detail requested", "imdbID", id, "seq", s.seq)
	return DetailRequest{Seq: s.seq, ImdbID: id, ctx: ctx}, true
}

// Execute fetches the detail record; it blocks
func (s *DetailService) Execute(req DetailRequest) DetailOutcome {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	detail, err := s.repo.GetDetail(ctx, req.ImdbID)
	if err == nil && ctx.Err() != nil {
		err = domain.ErrCanceled
	}
	return DetailOutcome{Seq: req.Seq, ImdbID: req.ImdbID, Detail: detail, Err: err}
}

// Apply publishes out if it belongs to the current selection
func (s *DetailService) Apply(out DetailOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out.Seq != s.seq || out.ImdbID != s.selected {
		s.logger.Debug("dropping stale detail outcome", "imdbID", out.ImdbID, "seq", out.Seq, "current", s.seq)
		return false
	}
	if errors.Is(out.Err, domain.ErrCanceled) {
		return false
	}

	s.cancelLocked()

	if out.Err != nil {
		s.logger.Warn("detail fetch failed", "imdbID", out.ImdbID, "error", out.Err)
		s.status = domain.DetailFailed{Message: domain.UserMessage(out.Err)}
		return true
	}
	if out.Detail == nil {
		s.status = domain.DetailFailed{Message: domain.MsgTransport}
		return true
	}

	s.status = domain.DetailReady{Detail: out.Detail}
	return true
}

// Close deselects the movie and aborts any fetch in flight
func (s *DetailService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Selected returns the selected id, empty when the detail is closed
func (s *DetailService) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// IsOpen reports whether a movie is selected
func (s *DetailService) IsOpen() bool {
	return s.Selected() != ""
}

// Status returns the loader's current state
func (s *DetailService) Status() domain.DetailStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Detail returns the loaded record for the selection
func (s *DetailService) Detail() (*domain.MovieDetail, bool) {
	if r, ok := s.Status().(domain.DetailReady); ok {
		return r.Detail, true
	}
	return nil, false
}

// Loading reports whether the selection's record is still being fetched
func (s *DetailService) Loading() bool {
	_, ok := s.Status().(domain.DetailLoading)
	return ok
}

// Err returns the user-visible error of the last fetch
func (s *DetailService) Err() string {
	if f, ok := s.Status().(domain.DetailFailed); ok {
		return f.Message
	}
	return ""
}

func (s *DetailService) closeLocked() {
	s.cancelLocked()
	s.seq++
	s.selected = ""
	s.status = domain.DetailClosed{}
}

func (s *DetailService) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
