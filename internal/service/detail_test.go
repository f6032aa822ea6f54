package service

import (
	"context"
	"testing"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailRepo(release map[string]chan struct{}) *fakeRepo {
	return &fakeRepo{detail: func(ctx context.Context, id string) (*domain.MovieDetail, error) {
		if ch, ok := release[id]; ok {
			if err := waitOrCancel(ctx, ch); err != nil {
				return nil, err
			}
		}
		return &domain.MovieDetail{ImdbID: id, Title: "Title " + id}, nil
	}}
}

func TestDetailSelectAndLoad(t *testing.T) {
	d := NewDetailService(detailRepo(nil), adapter.NullLogger())

	assert.Equal(t, domain.DetailClosed{}, d.Status())

	req, ok := d.Select("tt1")
	require.True(t, ok)
	assert.Equal(t, domain.DetailLoading{}, d.Status())
	assert.True(t, d.Loading())
	assert.True(t, d.IsOpen())

	assert.True(t, d.Apply(d.Execute(req)))
	assert.False(t, d.Loading())
	assert.IsType(t, domain.DetailReady{}, d.Status())
	detail, ok := d.Detail()
	require.True(t, ok)
	assert.Equal(t, "Title tt1", detail.Title)
}

func TestDetailReselectTogglesClosed(t *testing.T) {
	d := NewDetailService(detailRepo(nil), adapter.NullLogger())

	req, _ := d.Select("tt1")
	d.Apply(d.Execute(req))

	_, ok := d.Select("tt1")
	assert.False(t, ok)
	assert.False(t, d.IsOpen())
	_, loaded := d.Detail()
	assert.False(t, loaded)
}

func TestDetailNewSelectionCancelsPrevious(t *testing.T) {
	slow := make(chan struct{})
	defer close(slow)
	d := NewDetailService(detailRepo(map[string]chan struct{}{"tt-slow": slow}), adapter.NullLogger())

	req1, _ := d.Select("tt-slow")
	done := make(chan DetailOutcome, 1)
	go func() { done <- d.Execute(req1) }()

	req2, _ := d.Select("tt-fast")
	require.True(t, d.Apply(d.Execute(req2)))

	// The slow fetch was aborted, not merely ignored
	out1 := <-done
	assert.ErrorIs(t, out1.Err, domain.ErrCanceled)
	assert.False(t, d.Apply(out1))

	detail, _ := d.Detail()
	assert.Equal(t, "tt-fast", detail.ImdbID)
	assert.Equal(t, "tt-fast", d.Selected())
}

func TestDetailLateSuccessForOldSelectionIgnored(t *testing.T) {
	d := NewDetailService(detailRepo(nil), adapter.NullLogger())

	req1, _ := d.Select("tt1")
	req2, _ := d.Select("tt2")
	d.Apply(d.Execute(req2))

	stale := DetailOutcome{Seq: req1.Seq, ImdbID: "tt1", Detail: &domain.MovieDetail{ImdbID: "tt1"}}
	assert.False(t, d.Apply(stale))

	detail, _ := d.Detail()
	assert.Equal(t, "tt2", detail.ImdbID)
}

func TestDetailCloseDropsInFlight(t *testing.T) {
	d := NewDetailService(detailRepo(nil), adapter.NullLogger())

	req, _ := d.Select("tt1")
	d.Close()

	assert.False(t, d.Apply(d.Execute(req)))
	assert.False(t, d.IsOpen())
	assert.False(t, d.Loading())
	assert.Equal(t, domain.DetailClosed{}, d.Status())
}

func TestDetailError(t *testing.T) {
	repo := &fakeRepo{detail: func(ctx context.Context, id string) (*domain.MovieDetail, error) {
		return nil, domain.ErrTransport
	}}
	d := NewDetailService(repo, adapter.NullLogger())

	req, _ := d.Select("tt1")
	assert.True(t, d.Apply(d.Execute(req)))
	assert.Equal(t, domain.MsgTransport, d.Err())
	assert.Equal(t, domain.DetailFailed{Message: domain.MsgTransport}, d.Status())
	assert.False(t, d.Loading())
	_, loaded := d.Detail()
	assert.False(t, loaded)
}

func TestDetailReselectAfterErrorStartsClean(t *testing.T) {
	fail := true
	repo := &fakeRepo{detail: func(ctx context.Context, id string) (*domain.MovieDetail, error) {
		if fail {
			return nil, domain.ErrMovieNotFound
		}
		return &domain.MovieDetail{ImdbID: id}, nil
	}}
	d := NewDetailService(repo, adapter.NullLogger())

	req, _ := d.Select("tt1")
	d.Apply(d.Execute(req))
	require.Equal(t, domain.MsgNotFound, d.Err())

	fail = false
	req, _ = d.Select("tt2")
	assert.Equal(t, "", d.Err(), "a new selection drops the old error")
	assert.True(t, d.Apply(d.Execute(req)))
	assert.Equal(t, domain.DetailReady{Detail: &domain.MovieDetail{ImdbID: "tt2"}}, d.Status())
}
