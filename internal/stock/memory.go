package stock

import (
	"context"
	"sync"
)

// MemoryStore keeps the set in process memory.
// Writers take the lock exclusively and readers receive a copy.
type MemoryStore struct {
	mu  sync.RWMutex
	oos Set
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		oos: make(Set),
	}
}

// MarkUnavailable adds sku to the set and returns the sorted set
func (m *MemoryStore) MarkUnavailable(ctx context.Context, sku string) ([]string, error) {
	sku = Normalize(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.oos[sku] = struct{}{}
	return m.oos.Sorted(), nil
}

// MarkAvailable removes sku from the set and returns the sorted set
func (m *MemoryStore) MarkAvailable(ctx context.Context, sku string) ([]string, error) {
	sku = Normalize(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.oos, sku)
	return m.oos.Sorted(), nil
}

// Snapshot returns a copy of the current set
func (m *MemoryStore) Snapshot(ctx context.Context) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := make(Set, len(m.oos))
	for sku := range m.oos {
		snap[sku] = struct{}{}
	}
	return snap, nil
}
