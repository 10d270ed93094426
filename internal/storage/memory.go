package storage

import "sync"

// MemoryKV implements [KV] with an in-process map.
//
// Used by tests and by ephemeral runs where nothing should survive the
// process.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty [MemoryKV].
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores value under key, replacing any existing value.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
