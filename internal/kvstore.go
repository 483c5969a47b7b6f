package internal

import (
	"fmt"
	"path/filepath"
)

// Keys used in the key-value store
const (
	HistoryStorageKey  = "blueprintHistory"
	LanguageStorageKey = "blueprintLanguage"
)

// KVStore is best-effort string storage. Callers must tolerate every
// method failing.
type KVStore interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore is a KVStore kept in memory
type MemoryStore struct {
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get implements KVStore
func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KVStore
func (m *MemoryStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

// Remove implements KVStore
func (m *MemoryStore) Remove(key string) error {
	delete(m.data, key)
	return nil
}

// StorageBackend names a KVStore implementation
type StorageBackend string

const (
	BackendSQLite StorageBackend = "sqlite"
	BackendYAML   StorageBackend = "yaml"
	BackendMemory StorageBackend = "memory"
)

// OpenStore opens the configured backend inside dataDir
func OpenStore(backend StorageBackend, dataDir string) (KVStore, error) {
	switch backend {
	case BackendSQLite, "":
		store, err := OpenSQLiteStore(filepath.Join(dataDir, "blueprint.db"))
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendYAML:
		return NewFileStore(filepath.Join(dataDir, "store.yaml")), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (supported: sqlite, yaml, memory)", backend)
	}
}

// CloseStore closes stores that hold resources
func CloseStore(kv KVStore) {
	if c, ok := kv.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			LogWarn("Failed to close store: %v", err)
		}
	}
}
