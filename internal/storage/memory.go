package storage

import (
	"fmt"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// MemoryAdapter is an in-memory Adapter for tests. Documents round-trip
// through TOML so encoding behavior matches the file adapter.
type MemoryAdapter struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryAdapter returns an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{docs: make(map[string][]byte)}
}

// Load implements Adapter.
func (a *MemoryAdapter) Load(name string, dest any) (bool, error) {
	a.mu.Lock()
	raw, ok := a.docs[name]
	a.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := toml.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Save implements Adapter.
func (a *MemoryAdapter) Save(name string, value any) error {
	raw, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	a.mu.Lock()
	a.docs[name] = raw
	a.mu.Unlock()
	return nil
}

// Delete implements Adapter.
func (a *MemoryAdapter) Delete(name string) error {
	a.mu.Lock()
	delete(a.docs, name)
	a.mu.Unlock()
	return nil
}

// Has reports whether a document exists, for test assertions.
func (a *MemoryAdapter) Has(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.docs[name]
	return ok
}
