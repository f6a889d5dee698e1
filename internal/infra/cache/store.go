// Package cache provides the durable request→response store behind the
// explorer gateway. Keys are canonical request URLs, values are raw
// response bodies.
package cache

import "errors"

// ErrNotFound is returned when a key has no entry.
var ErrNotFound = errors.New("cache: entry not found")

// Store is a point-lookup/point-upsert key-value store. Implementations
// must be safe for concurrent use from a single process; overwriting an
// existing key is always acceptable.
type Store interface {
	// Get retrieves the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any existing entry.
	Put(key string, value []byte) error

	// Close releases the store's resources.
	Close() error
}
