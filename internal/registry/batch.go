package registry

import "sync"

// Batch stages registrations so a content load can register every tunable it
// parses and publish them only once the whole load succeeded. Lookups through
// a batch see staged entries first, then the registry.
type Batch struct {
	mu      sync.Mutex
	target  *Registry
	entries map[string]*Entry
}

// NewBatch starts a batch that commits into r's root
func (r *Registry) NewBatch() *Batch {
	return &Batch{
		target:  r.root(),
		entries: make(map[string]*Entry),
	}
}

// Register stages key with its default value
func (b *Batch) Register(key string, defaultValue any, tags ...string) *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := &Entry{
		Key:     key,
		Default: defaultValue,
		Tags:    append([]string(nil), tags...),
	}
	b.entries[key] = entry
	return entry
}

// Entry returns the staged entry for key, else the committed one
func (b *Batch) Entry(key string) (*Entry, bool) {
	b.mu.Lock()
	entry, ok := b.entries[key]
	b.mu.Unlock()
	if ok {
		return entry, true
	}
	return b.target.Entry(key)
}

// Len returns the number of staged entries
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Commit publishes every staged entry to the registry under one lock and
// returns how many were written. The batch is empty afterwards.
func (b *Batch) Commit() int {
	b.mu.Lock()
	staged := b.entries
	b.entries = make(map[string]*Entry)
	b.mu.Unlock()

	root := b.target
	root.mu.Lock()
	defer root.mu.Unlock()
	for key, entry := range staged {
		root.entries[key] = entry
	}
	return len(staged)
}
