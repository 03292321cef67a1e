package store

import "sync"

// MemoryKV is a process-local KV. FailGet and FailSet inject errors for tests
// of degraded storage.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]string

	FailGet error
	FailSet error
	Writes  int
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

// Get reads key.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailGet != nil {
		return "", false, &Error{Op: "get", Key: key, Err: m.FailGet}
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set writes key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return &Error{Op: "set", Key: key, Err: m.FailSet}
	}
	m.entries[key] = value
	m.Writes++
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }
