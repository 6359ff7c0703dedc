// Package redis stores record property maps as Redis hashes.
//
// Each key maps to one hash under a configurable prefix. Every property is
// one hash field holding the JSON encoding of its normalized value, so reads
// return strings, int64 or float64 numbers and generic lists that the codec
// coerces back into field types.
package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/internal/logger"
	"github.com/zoobzio/record/store"
)

// DefaultPrefix is prepended to keys when Config.Prefix is empty.
const DefaultPrefix = "record:"

// ErrEmptyProperties is returned by Put for an empty property map; Redis
// has no representation for an empty hash.
var ErrEmptyProperties = errors.New("empty property map")

// Config configures the Redis store.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store is a store.Store backed by Redis hashes.
type Store struct {
	client *goredis.Client
	prefix string
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.Get(),
	}
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Put replaces the hash for key with p in one transaction.
func (s *Store) Put(ctx context.Context, key string, p record.Properties) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	if len(p) == 0 {
		return ErrEmptyProperties
	}

	fields, err := encodeHash(p)
	if err != nil {
		return err
	}

	k := s.key(key)
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset %s: %w", k, err)
	}

	s.logger.Debug("stored record hash", zap.String("key", k), zap.Int("fields", len(fields)))
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (record.Properties, error) {
	k := s.key(key)
	fields, err := s.client.HGetAll(ctx, k).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", k, err)
	}
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}
	return decodeHash(fields)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	k := s.key(key)
	n, err := s.client.Del(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", k, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	s.logger.Debug("deleted record hash", zap.String("key", k))
	return nil
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// encodeHash normalizes p and encodes each value as JSON. Byte slices are
// stored as their string form so they decode to a string, not base64.
func encodeHash(p record.Properties) (map[string]any, error) {
	normalized, err := store.NormalizeProperties(p)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(normalized))
	for k, v := range normalized {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode property %s: %w", k, err)
		}
		fields[k] = string(data)
	}
	return fields, nil
}

// decodeHash reverses encodeHash. Integers decode as int64 and every other
// number as float64, so int64 values above 2^53 keep their precision.
func decodeHash(fields map[string]string) (record.Properties, error) {
	p := make(record.Properties, len(fields))
	for k, raw := range fields {
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode property %s: %w", k, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("decode property %s: trailing data", k)
		}

		v, err := numbers(v)
		if err != nil {
			return nil, fmt.Errorf("decode property %s: %w", k, err)
		}
		p[k] = v
	}
	return p, nil
}

// numbers replaces json.Number values, including list elements.
func numbers(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return x.Float64()
	case []any:
		for i, e := range x {
			ne, err := numbers(e)
			if err != nil {
				return nil, err
			}
			x[i] = ne
		}
		return x, nil
	}
	return v, nil
}
