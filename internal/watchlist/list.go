package watchlist

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmcdole/popcorn/internal/domain"
)

// List is the user's watched list, persisted after every mutation.
// Entries keep insertion order and are unique by ImdbID.
type List struct {
	state  *Persisted[[]domain.WatchedEntry]
	logger *slog.Logger
}

// NewList loads the watched list stored under key
func NewList(kv domain.KVStore, key string, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	state := NewPersisted(kv, key, []domain.WatchedEntry{}, logger)
	if state.Value() == nil {
		// A stored JSON null decodes to a nil slice
		state.value = []domain.WatchedEntry{}
	}
	logger.Info("watched list loaded", "key", key, "count", len(state.Value()))
	return &List{state: state, logger: logger}
}

// Entries returns a copy of the list in insertion order
func (l *List) Entries() []domain.WatchedEntry {
	return slices.Clone(l.state.Value())
}

// Len returns the number of watched movies
func (l *List) Len() int { return len(l.state.Value()) }

// Contains reports whether id is in the list
func (l *List) Contains(id string) bool {
	_, ok := l.Get(id)
	return ok
}

// Get returns the entry for id
func (l *List) Get(id string) (domain.WatchedEntry, bool) {
	for _, e := range l.state.Value() {
		if e.ImdbID == id {
			return e, true
		}
	}
	return domain.WatchedEntry{}, false
}

// Add appends entry. Adding an id that is already present fails with
// domain.ErrAlreadyWatched and leaves the list untouched.
func (l *List) Add(entry domain.WatchedEntry) error {
	if l.Contains(entry.ImdbID) {
		return fmt.Errorf("add %s: %w", entry.ImdbID, domain.ErrAlreadyWatched)
	}

	next := append(slices.Clone(l.state.Value()), entry)
	if err := l.state.Set(next); err != nil {
		return fmt.Errorf("add %s: %w", entry.ImdbID, err)
	}

	l.logger.Info("added to watched list", "imdbID", entry.ImdbID, "title", entry.Title, "userRating", entry.UserRating)
	return nil
}

// Delete removes the entry with id. Deleting a missing id is a no-op.
func (l *List) Delete(id string) error {
	current := l.state.Value()
	next := slices.DeleteFunc(slices.Clone(current), func(e domain.WatchedEntry) bool {
		return e.ImdbID == id
	})
	if len(next) == len(current) {
		return nil
	}

	if err := l.state.Set(next); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	l.logger.Info("removed from watched list", "imdbID", id)
	return nil
}

// Summary aggregates the current list
func (l *List) Summary() domain.WatchedSummary {
	return domain.Summarize(l.state.Value())
}
