package store

import "sync"

// KV is the minimal key-value surface the progress cache and the deadline
// book need. Get returns the empty string for a missing key.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryKV is an in-process KV used in tests and as a fallback when Redis
// is not configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
