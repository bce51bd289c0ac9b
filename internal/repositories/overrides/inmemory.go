package overrides

import (
	"context"
	"sync"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
)

// InMemoryRepository keeps overrides in a map.
// Useful for testing and for tools that run without Redis.
type InMemoryRepository struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		values: make(map[string]any),
	}
}

// Load returns a copy of every stored override
func (r *InMemoryRepository) Load(ctx context.Context) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out, nil
}

// Get returns the override stored for key
func (r *InMemoryRepository) Get(ctx context.Context, key string) (any, error) {
	if key == "" {
		return nil, battleerr.InvalidArgument("override key is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.values[key]
	if !exists {
		return nil, battleerr.NotFoundf("override for '%s' not found", key).
			WithMeta("key", key)
	}
	return value, nil
}

// Set stores an override for key
func (r *InMemoryRepository) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return battleerr.InvalidArgument("override key is required")
	}
	if value == nil {
		return battleerr.InvalidArgument("override value cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Delete removes the override for key
func (r *InMemoryRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return battleerr.InvalidArgument("override key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.values[key]; !exists {
		return battleerr.NotFoundf("override for '%s' not found", key).
			WithMeta("key", key)
	}
	delete(r.values, key)
	return nil
}
