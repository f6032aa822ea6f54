package watchlist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmcdole/popcorn/internal/domain"
)

// Persisted keeps a value in sync with one slot of a KVStore.
// The slot is read once on construction and rewritten on every Set,
// always under the key it was read from.
type Persisted[T any] struct {
	kv     domain.KVStore
	key    string
	value  T
	logger *slog.Logger
}

// NewPersisted loads key from kv, falling back to initial when the slot is
// missing or cannot be decoded.
func NewPersisted[T any](kv domain.KVStore, key string, initial T, logger *slog.Logger) *Persisted[T] {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Persisted[T]{kv: kv, key: key, value: initial, logger: logger}

	data, ok, err := kv.Get(key)
	switch {
	case err != nil:
		logger.Warn("failed to read stored value, using default", "key", key, "error", err)
	case !ok:
		logger.Debug("no stored value, using default", "key", key)
	default:
		var loaded T
		if err := json.Unmarshal(data, &loaded); err != nil {
			logger.Warn("stored value is corrupt, using default", "key", key, "error", err)
			break
		}
		p.value = loaded
	}

	return p
}

// Key returns the storage slot this value is bound to
func (p *Persisted[T]) Key() string { return p.key }

// Value returns the current value
func (p *Persisted[T]) Value() T { return p.value }

// Set replaces the value and writes it through to storage.
// The in-memory value is updated even if the write fails.
func (p *Persisted[T]) Set(v T) error {
	p.value = v

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", p.key, err)
	}
	if err := p.kv.Put(p.key, data); err != nil {
		p.logger.Error("failed to persist value", "key", p.key, "error", err)
		return err
	}
	return nil
}
