package domain

// KVStore is durable key/value storage for small JSON documents.
// Reads and writes are synchronous.
type KVStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value
	Put(key string, value []byte) error

	Close() error
}
