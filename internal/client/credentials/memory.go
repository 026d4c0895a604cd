package credentials

import (
	"context"
	"sync"
)

// MemoryTier is the volatile production tier: an in-process map whose
// contents vanish when the process ends. It also backs the test-only
// in-memory store.
type MemoryTier struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{values: make(map[string]string)}
}

func (t *MemoryTier) Get(_ context.Context, key string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[key], nil
}

func (t *MemoryTier) Set(_ context.Context, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[key] = value
	return nil
}

func (t *MemoryTier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, key)
	return nil
}

func (t *MemoryTier) Clear(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values = make(map[string]string)
	return nil
}
