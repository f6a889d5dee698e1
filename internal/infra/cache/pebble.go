package cache

import (
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is the on-disk Store. Entries survive process restarts and
// writes are synced so a crash cannot corrupt previously cached responses.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) a pebble database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value since it's only valid until closer.Close()
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (s *PebbleStore) Put(key string, value []byte) error {
	return s.db.Set([]byte(key), value, pebble.Sync)
}

// Close closes the database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
