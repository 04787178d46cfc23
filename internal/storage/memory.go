package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the in-process BlobStore, used in tests and as the
// fallback when the durable store cannot be opened: play continues with
// an in-memory-only log.
type MemoryStore struct {
	mu     sync.RWMutex
	stores map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stores: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, store, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stores[store] == nil {
		m.stores[store] = make(map[string][]byte)
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	m.stores[store][key] = cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, store, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.stores[store][key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, store, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores[store], key)
	return nil
}

func (m *MemoryStore) ListKeys(_ context.Context, store string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.stores[store]))
	for k := range m.stores[store] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
