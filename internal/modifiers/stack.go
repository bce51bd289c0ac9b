package modifiers

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Stack holds the modifiers registered against a set of keys (stats or config
// keys) and computes the effective value at read time.
type Stack struct {
	mu     sync.RWMutex
	byKey  map[string][]*Modifier
	owners map[string]string // modifier ID -> key
	seq    int
}

// NewStack creates an empty modifier stack
func NewStack() *Stack {
	return &Stack{
		byKey:  make(map[string][]*Modifier),
		owners: make(map[string]string),
	}
}

// Add registers a modifier under key and returns a function that removes it.
// A modifier whose ID is already registered replaces the existing one.
func (s *Stack) Add(key string, mod *Modifier) (func(), error) {
	if mod == nil {
		return nil, fmt.Errorf("modifier cannot be nil")
	}
	if !mod.Kind.Valid() {
		return nil, fmt.Errorf("modifier %s has unknown kind %q", mod.ID, mod.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mod.ID == "" {
		s.seq++
		mod.ID = fmt.Sprintf("%s#%d", key, s.seq)
	}

	if existingKey, ok := s.owners[mod.ID]; ok {
		s.removeLocked(existingKey, mod.ID)
	}

	s.byKey[key] = append(s.byKey[key], mod)
	s.owners[mod.ID] = key

	// Stable so equal priorities keep registration order
	sort.SliceStable(s.byKey[key], func(i, j int) bool {
		return s.byKey[key][i].Priority > s.byKey[key][j].Priority
	})

	id := mod.ID
	return func() { s.Remove(id) }, nil
}

// Remove removes a modifier by ID
func (s *Stack) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.owners[id]
	if !ok {
		return false
	}
	s.removeLocked(key, id)
	return true
}

// RemoveBySource removes every modifier created by the given source ID
func (s *Stack) RemoveBySource(sourceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	toRemove := []struct{ key, id string }{}
	for key, mods := range s.byKey {
		for _, mod := range mods {
			if mod.Source.ID == sourceID {
				toRemove = append(toRemove, struct{ key, id string }{key, mod.ID})
			}
		}
	}

	for _, r := range toRemove {
		s.removeLocked(r.key, r.id)
	}
	return len(toRemove)
}

func (s *Stack) removeLocked(key, id string) {
	mods := s.byKey[key]
	for i, mod := range mods {
		if mod.ID != id {
			continue
		}
		s.byKey[key] = append(mods[:i:i], mods[i+1:]...)
		break
	}
	if len(s.byKey[key]) == 0 {
		delete(s.byKey, key)
	}
	delete(s.owners, id)
}

// Modifiers returns a copy of every modifier registered for key, highest priority first
func (s *Stack) Modifiers(key string) []*Modifier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Modifier, len(s.byKey[key]))
	copy(out, s.byKey[key])
	return out
}

// Active returns the modifiers for key whose phase scope matches the running phases
func (s *Stack) Active(key string, phases []Phase) []*Modifier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*Modifier, 0, len(s.byKey[key]))
	for _, mod := range s.byKey[key] {
		if mod.Scope.IsActiveFor(phases) {
			active = append(active, mod)
		}
	}
	return active
}

// Len returns the number of modifiers registered for key
func (s *Stack) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey[key])
}

// Compute applies the active modifiers for key to base. Order: the highest
// priority override replaces the base, deltas are summed, percents multiply,
// then clamps run last in priority order no matter when they were registered.
// Dynamic values are re-read on every call.
func (s *Stack) Compute(key string, base float64, phases []Phase) float64 {
	active := s.Active(key, phases)
	if len(active) == 0 {
		return base
	}

	value := base
	for _, mod := range active {
		if mod.Kind == KindOverride {
			value = mod.current()
			break
		}
	}

	delta := 0.0
	for _, mod := range active {
		if mod.Kind == KindDelta {
			delta += mod.current()
		}
	}
	value += delta

	for _, mod := range active {
		if mod.Kind == KindPercent {
			value *= 1 + mod.current()/100
		}
	}

	for _, mod := range active {
		switch mod.Kind {
		case KindClampMin:
			value = math.Max(value, mod.current())
		case KindClampMax:
			value = math.Min(value, mod.current())
		}
	}

	return value
}
