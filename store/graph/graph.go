// Package graph stores record property maps as Neo4j nodes.
//
// Each key maps to one node carrying a configurable label. The key itself
// is kept in a dedicated node property so a node's remaining properties are
// exactly the record's property map.
package graph

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/internal/logger"
	"github.com/zoobzio/record/store"
)

// Defaults applied by New when Config fields are empty.
const (
	DefaultLabel       = "Record"
	DefaultKeyProperty = "record_key"
)

var (
	// ErrInvalidIdentifier is returned when a label or key property cannot be
	// used as a Cypher identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrKeyCollision is returned when a property map already holds the key property.
	ErrKeyCollision = errors.New("property collides with key property")
)

// Config selects where nodes live.
type Config struct {
	Label       string // Node label, DefaultLabel when empty
	KeyProperty string // Node property holding the key, DefaultKeyProperty when empty
}

// Store is a store.Store backed by Neo4j.
type Store struct {
	driver  neo4j.DriverWithContext
	label   string
	keyProp string
	logger  *zap.Logger
}

var _ store.Store = (*Store)(nil)

// New creates a graph store over driver. The driver is owned by the caller
// unless Close is called.
func New(driver neo4j.DriverWithContext, cfg Config) (*Store, error) {
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	if cfg.KeyProperty == "" {
		cfg.KeyProperty = DefaultKeyProperty
	}
	if !validIdentifier(cfg.Label) {
		return nil, fmt.Errorf("%w: label %q", ErrInvalidIdentifier, cfg.Label)
	}
	if !validIdentifier(cfg.KeyProperty) {
		return nil, fmt.Errorf("%w: key property %q", ErrInvalidIdentifier, cfg.KeyProperty)
	}
	if cfg.KeyProperty == record.MarkerKey {
		return nil, fmt.Errorf("%w: key property %q is the type marker", ErrInvalidIdentifier, cfg.KeyProperty)
	}

	return &Store{
		driver:  driver,
		label:   cfg.Label,
		keyProp: cfg.KeyProperty,
		logger:  logger.Get(),
	}, nil
}

// Close closes the Neo4j driver connection.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Put merges the node for key and replaces all of its properties with p.
// Nil values are dropped by Neo4j, so records with nil fields do not
// round-trip.
func (s *Store) Put(ctx context.Context, key string, p record.Properties) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	props, err := s.nodeProperties(key, p)
	if err != nil {
		return err
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, s.putQuery(), map[string]any{
		"key":   key,
		"props": props,
	})
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("failed to store node: %w", err)
	}

	s.logger.Debug("stored record node",
		zap.String("label", s.label),
		zap.String("key", key),
		zap.Int("properties", len(p)))
	return nil
}

// Get returns the node's properties without the key property.
func (s *Store) Get(ctx context.Context, key string) (record.Properties, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, s.getQuery(), map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, store.ErrNotFound
	}

	raw, _ := result.Record().Get("props")
	props, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected node properties %T", raw)
	}
	return s.recordProperties(props), nil
}

// Delete detaches and deletes the node for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, s.deleteQuery(), map[string]any{"key": key})
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete node: %w", err)
	}
	if summary.Counters().NodesDeleted() == 0 {
		return store.ErrNotFound
	}

	s.logger.Debug("deleted record node", zap.String("label", s.label), zap.String("key", key))
	return nil
}

func (s *Store) putQuery() string {
	return fmt.Sprintf("MERGE (n:`%s` {`%s`: $key}) SET n = $props", s.label, s.keyProp)
}

func (s *Store) getQuery() string {
	return fmt.Sprintf("MATCH (n:`%s` {`%s`: $key}) RETURN properties(n) AS props LIMIT 1", s.label, s.keyProp)
}

func (s *Store) deleteQuery() string {
	return fmt.Sprintf("MATCH (n:`%s` {`%s`: $key}) DETACH DELETE n", s.label, s.keyProp)
}

// nodeProperties normalizes p and adds the key property. SET n = $props
// replaces every property, so the key must be part of the map.
func (s *Store) nodeProperties(key string, p record.Properties) (map[string]any, error) {
	if _, ok := p[s.keyProp]; ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyCollision, s.keyProp)
	}

	normalized, err := store.NormalizeProperties(p)
	if err != nil {
		return nil, err
	}

	props := make(map[string]any, len(normalized)+1)
	for k, v := range normalized {
		props[k] = v
	}
	props[s.keyProp] = key
	return props, nil
}

func (s *Store) recordProperties(node map[string]any) record.Properties {
	p := make(record.Properties, len(node))
	for k, v := range node {
		if k == s.keyProp {
			continue
		}
		p[k] = v
	}
	return p
}

// validIdentifier reports whether name is a plain Cypher identifier. Names
// are interpolated into queries, so backticks and whitespace are refused.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
