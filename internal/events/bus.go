package events

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
)

// Listener reacts to a battle trigger. Listeners with a higher priority run first.
type Listener interface {
	HandleTrigger(ctx *battle.Context) error
	Priority() int
	ID() string
}

// Bus routes battle triggers to the listeners subscribed to them
type Bus struct {
	listeners map[battle.Trigger][]Listener
	maxDepth  int
	mu        sync.RWMutex
}

// NewBus creates a new trigger bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[battle.Trigger][]Listener),
	}
}

// WithMaxDepth sets the nesting limit stamped on contexts emitted without one
func (b *Bus) WithMaxDepth(n int) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maxDepth = n
	return b
}

// Subscribe adds a listener for a trigger. A listener already subscribed
// under the same ID is replaced.
func (b *Bus) Subscribe(trigger battle.Trigger, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.removeLocked(trigger, listener.ID())
	b.listeners[trigger] = append(b.listeners[trigger], listener)

	// Stable so equal priorities keep subscription order
	sort.SliceStable(b.listeners[trigger], func(i, j int) bool {
		return b.listeners[trigger][i].Priority() > b.listeners[trigger][j].Priority()
	})
}

// Unsubscribe removes a listener from one trigger
func (b *Bus) Unsubscribe(trigger battle.Trigger, listenerID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(trigger, listenerID)
}

// UnsubscribeAll removes a listener from every trigger it is subscribed to
func (b *Bus) UnsubscribeAll(listenerID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for trigger := range b.listeners {
		if b.removeLocked(trigger, listenerID) {
			removed++
		}
	}
	return removed
}

func (b *Bus) removeLocked(trigger battle.Trigger, listenerID string) bool {
	listeners := b.listeners[trigger]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		// Keep the priority order intact
		b.listeners[trigger] = append(listeners[:i:i], listeners[i+1:]...)
		if len(b.listeners[trigger]) == 0 {
			delete(b.listeners, trigger)
		}
		return true
	}
	return false
}

// Emit runs every listener subscribed to ctx.Trigger in priority order and
// stops at the first failure. A context without a nesting limit gets the
// bus's.
func (b *Bus) Emit(ctx *battle.Context) error {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners[ctx.Trigger]))
	copy(listeners, b.listeners[ctx.Trigger])
	maxDepth := b.maxDepth
	b.mu.RUnlock()

	if ctx.MaxDepth == 0 && maxDepth > 0 {
		ctx.MaxDepth = maxDepth
	}

	for _, listener := range listeners {
		if err := listener.HandleTrigger(ctx); err != nil {
			return fmt.Errorf("listener %s failed on %s: %w", listener.ID(), ctx.Trigger, err)
		}
	}

	return nil
}

// Count returns the number of listeners for a trigger
func (b *Bus) Count(trigger battle.Trigger) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[trigger])
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[battle.Trigger][]Listener)
	log.Printf("[EVENTS] Cleared all listeners")
}
