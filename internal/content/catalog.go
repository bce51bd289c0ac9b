package content

import (
	"sort"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
)

// Catalog is an immutable snapshot of compiled content. A reload builds a
// new catalog rather than mutating the one battles already hold.
type Catalog struct {
	effects   map[string]*effects.Effect
	marks     map[string]*marks.Base
	sources   map[string]string
	byTrigger map[battle.Trigger][]*effects.Effect
}

func newCatalog() *Catalog {
	return &Catalog{
		effects:   make(map[string]*effects.Effect),
		marks:     make(map[string]*marks.Base),
		sources:   make(map[string]string),
		byTrigger: make(map[battle.Trigger][]*effects.Effect),
	}
}

// index builds the per-trigger lists once all effects are in
func (c *Catalog) index() {
	for _, e := range c.All() {
		for _, t := range e.Triggers {
			c.byTrigger[t] = append(c.byTrigger[t], e)
		}
	}
	for _, list := range c.byTrigger {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority > list[j].Priority
		})
	}
}

// Get returns the effect with id
func (c *Catalog) Get(id string) (*effects.Effect, bool) {
	e, ok := c.effects[id]
	return e, ok
}

// Source returns the file the effect with id was loaded from
func (c *Catalog) Source(id string) (string, bool) {
	path, ok := c.sources[id]
	return path, ok
}

// All returns every effect sorted by id
func (c *Catalog) All() []*effects.Effect {
	out := make([]*effects.Effect, 0, len(c.effects))
	for _, e := range c.effects {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ForTrigger returns the effects bound to t, highest priority first. Ties
// keep id order.
func (c *Catalog) ForTrigger(t battle.Trigger) []*effects.Effect {
	list := c.byTrigger[t]
	out := make([]*effects.Effect, len(list))
	copy(out, list)
	return out
}

// Mark returns the base mark with id
func (c *Catalog) Mark(id string) (*marks.Base, bool) {
	m, ok := c.marks[id]
	return m, ok
}

// Marks returns every base mark sorted by id
func (c *Catalog) Marks() []*marks.Base {
	out := make([]*marks.Base, 0, len(c.marks))
	for _, m := range c.marks {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of effects
func (c *Catalog) Len() int {
	return len(c.effects)
}
