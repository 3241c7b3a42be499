// Package kv holds the key/value persistence collaborator. Callers treat
// values as opaque serialized blobs; the interpretation of a value lives
// with whoever wrote it.
package kv

import "sync"

// Store is a synchronous, local key/value collaborator.
type Store interface {
	// GetItem returns the value for key, reporting whether it exists.
	GetItem(key string) (string, bool)
	// SetItem writes the value for key, replacing any prior value.
	SetItem(key, value string) error
	// Close releases any resources held by the backend.
	Close() error
}

// Memory is an in-process Store with no durability, used in tests and as a
// fallback when no state path is configured.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
