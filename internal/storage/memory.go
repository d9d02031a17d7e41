package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps records in process memory. A positive quota caps the
// total stored bytes, the way browser storage does.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

// NewMemoryBackend creates an empty in-memory backend. quota <= 0 means unlimited.
func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

// Get returns a copy of the stored bytes
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value
func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := 0
		for k, v := range m.data {
			if k != key {
				used += len(v)
			}
		}
		if used+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op
func (m *MemoryBackend) Close() error {
	return nil
}
