package storage

import "errors"

// MemoryKV backs tests and the degraded path when no database can be opened.
type MemoryKV struct {
	values map[string]string

	// FailWrites makes every SetItem return an error, for exercising the
	// drop-and-log write path.
	FailWrites bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) GetItem(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) SetItem(key, value string) error {
	if m.FailWrites {
		return errors.New("storage unavailable")
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) RemoveItem(key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
