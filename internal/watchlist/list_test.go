package watchlist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingKV is an in-memory KVStore that remembers which keys were touched
type recordingKV struct {
	data     map[string][]byte
	reads    []string
	writes   []string
	failPut  bool
	failRead bool
}

func newRecordingKV() *recordingKV {
	return &recordingKV{data: make(map[string][]byte)}
}

func (k *recordingKV) Get(key string) ([]byte, bool, error) {
	k.reads = append(k.reads, key)
	if k.failRead {
		return nil, false, errors.New("disk on fire")
	}
	v, ok := k.data[key]
	return v, ok, nil
}

func (k *recordingKV) Put(key string, value []byte) error {
	k.writes = append(k.writes, key)
	if k.failPut {
		return errors.New("disk full")
	}
	k.data[key] = value
	return nil
}

func (k *recordingKV) Close() error { return nil }

func entry(id string, imdb float64, user, runtime int) domain.WatchedEntry {
	return domain.WatchedEntry{
		ImdbID:     id,
		Title:      "Movie " + id,
		Year:       "1994",
		ImdbRating: imdb,
		UserRating: user,
		Runtime:    runtime,
	}
}

func TestListRoundTripThroughBolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popcorn.db")
	logger := adapter.NullLogger()

	kv, err := store.Open(path)
	require.NoError(t, err)

	list := NewList(kv, "watched", logger)
	want := []domain.WatchedEntry{
		entry("tt0111161", 9.3, 10, 142),
		entry("tt0068646", 9.2, 9, 175),
		entry("tt0468569", 9.0, 8, 152),
	}
	for _, e := range want {
		require.NoError(t, list.Add(e))
	}
	require.NoError(t, kv.Close())

	kv, err = store.Open(path)
	require.NoError(t, err)
	defer kv.Close()

	reloaded := NewList(kv, "watched", logger)
	assert.Equal(t, want, reloaded.Entries())
}

func TestListAddThenDelete(t *testing.T) {
	list := NewList(newRecordingKV(), "watched", adapter.NullLogger())

	require.NoError(t, list.Add(entry("tt0111161", 9.3, 10, 142)))
	assert.True(t, list.Contains("tt0111161"))

	require.NoError(t, list.Delete("tt0111161"))
	assert.Empty(t, list.Entries())
	assert.False(t, list.Contains("tt0111161"))
}

func TestListDeleteMissingIsNoop(t *testing.T) {
	kv := newRecordingKV()
	list := NewList(kv, "watched", adapter.NullLogger())
	require.NoError(t, list.Add(entry("tt1", 8, 8, 100)))
	writes := len(kv.writes)

	require.NoError(t, list.Delete("tt-missing"))

	assert.Len(t, list.Entries(), 1)
	assert.Len(t, kv.writes, writes, "no-op delete must not write")
}

func TestListRejectsDuplicates(t *testing.T) {
	list := NewList(newRecordingKV(), "watched", adapter.NullLogger())
	require.NoError(t, list.Add(entry("tt1", 8, 8, 100)))

	err := list.Add(entry("tt1", 1, 1, 1))
	assert.ErrorIs(t, err, domain.ErrAlreadyWatched)
	assert.Len(t, list.Entries(), 1)
	assert.Equal(t, 8, list.Entries()[0].UserRating)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	list := NewList(newRecordingKV(), "watched", adapter.NullLogger())
	for _, id := range []string{"tt3", "tt1", "tt2"} {
		require.NoError(t, list.Add(entry(id, 5, 5, 90)))
	}
	require.NoError(t, list.Delete("tt1"))

	var ids []string
	for _, e := range list.Entries() {
		ids = append(ids, e.ImdbID)
	}
	assert.Equal(t, []string{"tt3", "tt2"}, ids)
}

func TestListReadsAndWritesSameKey(t *testing.T) {
	kv := newRecordingKV()
	list := NewList(kv, "my-movies", adapter.NullLogger())

	require.NoError(t, list.Add(entry("tt1", 8, 8, 100)))
	require.NoError(t, list.Delete("tt1"))

	assert.Equal(t, []string{"my-movies"}, kv.reads)
	assert.Equal(t, []string{"my-movies", "my-movies"}, kv.writes)
	_, hasDefault := kv.data["watched"]
	assert.False(t, hasDefault)
}

func TestListCorruptSlotFallsBackToEmpty(t *testing.T) {
	kv := newRecordingKV()
	kv.data["watched"] = []byte("{not json")

	list := NewList(kv, "watched", adapter.NullLogger())
	assert.Empty(t, list.Entries())
	assert.NotNil(t, list.Entries())

	require.NoError(t, list.Add(entry("tt1", 8, 8, 100)))
	assert.JSONEq(t,
		`[{"imdbID":"tt1","title":"Movie tt1","year":"1994","poster":"","imdbRating":8,"runtime":100,"userRating":8,"ratingInteractionCount":0}]`,
		string(kv.data["watched"]))
}

func TestListNullSlotFallsBackToEmpty(t *testing.T) {
	kv := newRecordingKV()
	kv.data["watched"] = []byte("null")

	list := NewList(kv, "watched", adapter.NullLogger())
	assert.NotNil(t, list.Entries())
	assert.Equal(t, 0, list.Len())
}

func TestListReadErrorFallsBackToEmpty(t *testing.T) {
	kv := newRecordingKV()
	kv.failRead = true

	list := NewList(kv, "watched", adapter.NullLogger())
	assert.Equal(t, 0, list.Len())
}

func TestListWriteFailureSurfaces(t *testing.T) {
	kv := newRecordingKV()
	kv.failPut = true
	list := NewList(kv, "watched", adapter.NullLogger())

	err := list.Add(entry("tt1", 8, 8, 100))
	assert.Error(t, err)
	// The session keeps the new value even though the disk did not
	assert.True(t, list.Contains("tt1"))
}

func TestListSummary(t *testing.T) {
	list := NewList(newRecordingKV(), "watched", adapter.NullLogger())
	require.NoError(t, list.Add(entry("tt1", 9, 10, 120)))
	require.NoError(t, list.Add(entry("tt2", 8, 7, 90)))

	s := list.Summary()
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 8.5, s.AvgImdbRating, 1e-9)
	assert.InDelta(t, 8.5, s.AvgUserRating, 1e-9)
	assert.InDelta(t, 105, s.AvgRuntime, 1e-9)
}

func TestPersistedGenericValue(t *testing.T) {
	kv := newRecordingKV()
	p := NewPersisted(kv, "prefs", map[string]int{"stars": 10}, adapter.NullLogger())
	assert.Equal(t, 10, p.Value()["stars"])

	require.NoError(t, p.Set(map[string]int{"stars": 5}))

	again := NewPersisted(kv, "prefs", map[string]int{}, adapter.NullLogger())
	assert.Equal(t, 5, again.Value()["stars"])
	assert.Equal(t, "prefs", again.Key())
}
