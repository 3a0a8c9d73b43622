// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"maps"
	"sync"
)

var (
	// ErrNotFound is returned by Load when a collection was never saved.
	ErrNotFound = errors.New("collection not found")

	// ErrUnavailable is returned while the backend is known to be down.
	ErrUnavailable = errors.New("store unavailable")
)

// Persister loads and saves named JSON documents. Each application
// collection (sales, winners, ...) is one document.
type Persister interface {
	// Load returns the stored document or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save writes all documents as one batch. Backends that can make the
	// batch atomic do so.
	Save(ctx context.Context, docs map[string][]byte) error

	Close() error
}

// Memory keeps documents in process memory. Used for tests and for
// running without persistence.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailSave makes every Save return this error when set.
	FailSave error
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Save(_ context.Context, docs map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	for name, data := range docs {
		m.docs[name] = append([]byte(nil), data...)
	}
	return nil
}

// Put stores a raw document, bypassing validation. Tests use it to seed
// corrupt data.
func (m *Memory) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = data
}

// Snapshot returns a copy of everything saved so far.
func (m *Memory) Snapshot() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.docs)
}

func (m *Memory) Close() error { return nil }
