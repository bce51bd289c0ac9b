// Package overrides persists balance patches for registered config keys.
// The registry pulls them at startup through Load.
package overrides

//go:generate mockgen -destination=mock/mock.go -package=mockoverrides -source=interface.go

import (
	"context"
)

// Repository defines the interface for override persistence
type Repository interface {
	// Load returns every stored override keyed by config key
	Load(ctx context.Context) (map[string]any, error)

	// Get returns the override stored for key
	Get(ctx context.Context, key string) (any, error)

	// Set stores an override for key
	Set(ctx context.Context, key string, value any) error

	// Delete removes the override for key
	Delete(ctx context.Context, key string) error
}
