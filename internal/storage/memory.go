package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and as a throwaway backend
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// NewMemoryStore creates an empty in-memory collection store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]byte),
	}
}

// Read returns the collection's raw JSON, or nil when it was never written
func (m *MemoryStore) Read(ctx context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write replaces the collection's content
func (m *MemoryStore) Write(ctx context.Context, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.collections[collection] = stored
	return nil
}
