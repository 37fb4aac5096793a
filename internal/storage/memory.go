package storage

import "sync"

// MemoryKV is an in-process key/value store with the same Get/Set contract
// as Store. Used when no database is configured and in tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]int)}
}

// Get reads a value. ok is false when the key was never written.
func (m *MemoryKV) Get(key string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set writes a value.
func (m *MemoryKV) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
