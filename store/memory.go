package store

import (
	"context"
	"sort"
	"sync"

	"github.com/zoobzio/record"
)

// Memory is an in-process Store. Maps are copied on Put and Get so callers
// never share the stored map; values inside it are not deep-copied.
type Memory struct {
	mu    sync.RWMutex
	items map[string]record.Properties
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]record.Properties)}
}

func (m *Memory) Put(_ context.Context, key string, p record.Properties) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = p.Clone()
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (record.Properties, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		return ErrNotFound
	}
	delete(m.items, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
