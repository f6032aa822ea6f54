package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState = []byte("state")
)

// KVStore implements domain.KVStore using BoltDB.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value read or written (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at path.
// An empty path gives a memory-only store that forgets everything on Close.
func Open(path string) (*KVStore, error) {
	if path == "" {
		return &KVStore{cache: make(map[string][]byte)}, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string][]byte)}, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Close releases the database file lock
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns a copy of the value stored under key
func (s *KVStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return clone(data), true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		// Bolt values are only valid for the life of the transaction
		if v := b.Get([]byte(key)); v != nil {
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if data == nil {
		return nil, false, nil
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return clone(data), true, nil
}

// Put stores value under key
func (s *KVStore) Put(key string, value []byte) error {
	data := clone(value)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketState).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
