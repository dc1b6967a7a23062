package envstore

import (
	"context"
	"sync"
)

// Backend reads and replaces the raw PATH value of a scope. Get returns ""
// when the value is absent. Set always replaces the whole value.
type Backend interface {
	Get(scope Scope) (string, error)
	Set(scope Scope, value string) error
}

// Watcher is implemented by backends that can report changes made by other
// processes. The channel is closed when ctx ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// MemoryBackend keeps both scopes in process. Used by tests.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[Scope]string
	writes int
	// SetErr, when non-nil, is returned by every Set.
	SetErr error
}

// NewMemoryBackend returns a backend seeded with the given raw values.
func NewMemoryBackend(user, machine string) *MemoryBackend {
	return &MemoryBackend{values: map[Scope]string{User: user, Machine: machine}}
}

// Get implements Backend.
func (m *MemoryBackend) Get(scope Scope) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[scope], nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(scope Scope, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.values == nil {
		m.values = map[Scope]string{}
	}
	m.values[scope] = value
	m.writes++
	return nil
}

// Writes reports how many Set calls succeeded.
func (m *MemoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
