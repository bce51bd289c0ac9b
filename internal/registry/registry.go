// Package registry stores the named, overridable tunables that authored effect
// content refers to. Every raw literal in the DSL is registered here under a
// stable key so balance changes can override it without touching content.
package registry

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
)

// Entry is a registered tunable
type Entry struct {
	Key     string
	Default any
	Tags    []string
}

// HasTag reports whether the entry carries tag
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// OverrideSource supplies persisted override values (balance patches)
type OverrideSource interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Registry is a string-keyed arena of tunables. A battle gets its own Scope
// so battle-local overrides and modifiers are dropped with the battle.
type Registry struct {
	mu        sync.RWMutex
	parent    *Registry
	entries   map[string]*Entry
	overrides map[string]any
	mods      *modifiers.Stack
}

// New creates a root registry
func New() *Registry {
	return &Registry{
		entries:   make(map[string]*Entry),
		overrides: make(map[string]any),
		mods:      modifiers.NewStack(),
	}
}

// Scope creates a child registry that reads through to r. Entries stay on the
// root; overrides and modifiers set on the child are local to it.
func (r *Registry) Scope() *Registry {
	child := New()
	child.parent = r
	return child
}

// Key builds the registry key for a DSL position inside an effect
func Key(effectID, id string) string {
	return effectID + "." + id
}

// Register records key with its default value. Registering an existing key
// refreshes its default and tags, so parsing the same effect twice (hot
// reload) never creates a second slot. Entries are replaced, never mutated,
// so an *Entry handed out earlier stays a consistent snapshot.
func (r *Registry) Register(key string, defaultValue any, tags ...string) *Entry {
	root := r.root()

	root.mu.Lock()
	defer root.mu.Unlock()

	entry := &Entry{
		Key:     key,
		Default: defaultValue,
		Tags:    append([]string(nil), tags...),
	}
	root.entries[key] = entry
	return entry
}

// Entry looks up a registered tunable
func (r *Registry) Entry(key string) (*Entry, bool) {
	root := r.root()

	root.mu.RLock()
	defer root.mu.RUnlock()

	entry, ok := root.entries[key]
	return entry, ok
}

// Get returns the effective value of key: the nearest override, else the
// default, with numeric config modifiers active for phases applied on top.
func (r *Registry) Get(key string, phases []modifiers.Phase) (any, bool) {
	r.mu.RLock()
	override, overridden := r.overrides[key]
	r.mu.RUnlock()

	var value any
	switch {
	case overridden:
		value = override
	case r.parent != nil:
		v, ok := r.parent.Get(key, phases)
		if !ok {
			return nil, false
		}
		value = v
	default:
		entry, ok := r.Entry(key)
		if !ok {
			return nil, false
		}
		value = entry.Default
	}

	if r.mods.Len(key) == 0 {
		return value, true
	}
	base, ok := asFloat(value)
	if !ok {
		return value, true
	}
	return r.mods.Compute(key, base, phases), true
}

// SetOverride replaces the value of key for this registry and its scopes
func (r *Registry) SetOverride(key string, value any) error {
	if _, ok := r.Entry(key); !ok {
		return fmt.Errorf("config key %q is not registered", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = value
	return nil
}

// ClearOverride removes a local override
func (r *Registry) ClearOverride(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, key)
}

// AddModifier registers a config modifier against key on this registry
func (r *Registry) AddModifier(key string, mod *modifiers.Modifier) (func(), error) {
	if _, ok := r.Entry(key); !ok {
		return nil, fmt.Errorf("config key %q is not registered", key)
	}
	return r.mods.Add(key, mod)
}

// ApplyOverrides sets every known key in values and returns how many applied.
// Unknown keys are logged and skipped; patches may target content not loaded yet.
func (r *Registry) ApplyOverrides(values map[string]any) int {
	applied := 0
	for key, value := range values {
		if err := r.SetOverride(key, value); err != nil {
			log.Printf("[REGISTRY] Skipping override %s: %v", key, err)
			continue
		}
		applied++
	}
	return applied
}

// LoadOverrides pulls overrides from src and applies them
func (r *Registry) LoadOverrides(ctx context.Context, src OverrideSource) (int, error) {
	values, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load overrides: %w", err)
	}

	applied := r.ApplyOverrides(values)
	log.Printf("[REGISTRY] Applied %d of %d overrides", applied, len(values))
	return applied, nil
}

// Keys returns every registered key in sorted order
func (r *Registry) Keys() []string {
	root := r.root()

	root.mu.RLock()
	defer root.mu.RUnlock()

	keys := make([]string, 0, len(root.entries))
	for key := range root.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// KeysByTag returns the sorted keys whose entry carries tag
func (r *Registry) KeysByTag(tag string) []string {
	keys := []string{}
	for _, key := range r.Keys() {
		if entry, ok := r.Entry(key); ok && entry.HasTag(tag) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Len returns the number of registered entries
func (r *Registry) Len() int {
	root := r.root()

	root.mu.RLock()
	defer root.mu.RUnlock()
	return len(root.entries)
}

func (r *Registry) root() *Registry {
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// asFloat converts JSON-ish numeric values to float64
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
