package theme

import (
	"errors"
	"sync"
)

// Storage persists the preference between page loads. Both calls may fail;
// the resolver treats every failure as "nothing persisted".
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ErrStorageUnavailable is returned by MemoryStorage when a failure is injected.
var ErrStorageUnavailable = errors.New("theme: storage unavailable")

// MemoryStorage is an in-process Storage. ReadErr and WriteErr, when set, are
// returned from every Get or Set.
type MemoryStorage struct {
	mu       sync.Mutex
	values   map[string]string
	ReadErr  error
	WriteErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", false, m.ReadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.values[key] = value
	return nil
}
