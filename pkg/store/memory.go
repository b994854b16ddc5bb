package store

import "sync"

// Memory is a KV that lives only as long as the process. Tests and
// throwaway sessions use it.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte

	// FailWrites makes every Write return this error when set.
	FailWrites error
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.records[key] = append([]byte(nil), val...)
	return nil
}

func (m *Memory) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
