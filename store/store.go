// Package store persists record property maps in external key-value and
// graph stores.
//
// Backends implement Store:
//   - Memory: in-process map for development and tests
//   - graph: Neo4j nodes, one per key
//   - redis: Redis hashes, one per key
//
// Save and Fetch compose a record.Codec with a Store:
//
//	codec, _ := record.New[Point]()
//	key, err := store.Save(ctx, s, codec, "", Point{X: 1, Y: 2})
//	p, err := store.Fetch(ctx, s, codec, key)
//
// Stores return values in whatever shape the backend keeps them (widened
// numbers, strings, generic lists). The codec coerces them on the way out.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zoobzio/record"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no property map is stored under a key.
	ErrNotFound = errors.New("not found")

	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("empty key")

	// ErrUnsupportedValue is returned when a property value has no stored form.
	ErrUnsupportedValue = errors.New("unsupported property value")
)

// Store is the interface for property map storage backends.
type Store interface {
	// Put stores p under key, replacing any existing map.
	Put(ctx context.Context, key string, p record.Properties) error

	// Get returns the map stored under key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (record.Properties, error)

	// Delete removes the map stored under key.
	// Returns ErrNotFound if the key does not exist.
	Delete(ctx context.Context, key string) error
}

// Save serializes v and stores it under key. An empty key is replaced by a
// random UUID. The key used is returned.
func Save[T any](ctx context.Context, s Store, c *record.Codec[T], key string, v T) (string, error) {
	if key == "" {
		key = uuid.NewString()
	}

	p, err := c.Serialize(ctx, v)
	if err != nil {
		return "", err
	}

	if err := s.Put(ctx, key, p); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

// Fetch loads the map stored under key and deserializes it into a T.
func Fetch[T any](ctx context.Context, s Store, c *record.Codec[T], key string) (T, error) {
	var zero T

	p, err := s.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", key, err)
	}
	return c.Deserialize(ctx, p)
}
