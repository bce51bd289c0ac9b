package effects

import (
	"fmt"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// Builder helps create effects in Go code. Authored content goes through the
// compiler instead.
type Builder struct {
	effect *Effect
}

// NewBuilder creates a new effect builder
func NewBuilder(id string) *Builder {
	return &Builder{
		effect: &Effect{
			ID:       id,
			Triggers: []battle.Trigger{},
			Actions:  []selector.Action{},
			Tags:     []string{},
		},
	}
}

// WithTriggers adds the triggers the effect fires on
func (b *Builder) WithTriggers(triggers ...battle.Trigger) *Builder {
	b.effect.Triggers = append(b.effect.Triggers, triggers...)
	return b
}

// WithPriority sets the dispatch priority
func (b *Builder) WithPriority(priority int) *Builder {
	b.effect.Priority = priority
	return b
}

// WithCondition sets the gating condition
func (b *Builder) WithCondition(cond selector.Condition) *Builder {
	b.effect.Condition = cond
	return b
}

// AddAction appends an action; actions run in the order added
func (b *Builder) AddAction(action selector.Action) *Builder {
	b.effect.Actions = append(b.effect.Actions, action)
	return b
}

// WithConsumesStacks sets how many stacks the owning mark loses per run
func (b *Builder) WithConsumesStacks(n int) *Builder {
	b.effect.ConsumesStacks = n
	return b
}

// WithTags adds tags
func (b *Builder) WithTags(tags ...string) *Builder {
	b.effect.Tags = append(b.effect.Tags, tags...)
	return b
}

// Build validates and returns the constructed effect
func (b *Builder) Build() (*Effect, error) {
	e := b.effect
	if e.ID == "" {
		return nil, fmt.Errorf("effect must have an ID")
	}
	if len(e.Triggers) == 0 {
		return nil, fmt.Errorf("effect %s must have at least one trigger", e.ID)
	}
	for _, t := range e.Triggers {
		if !t.Valid() {
			return nil, fmt.Errorf("effect %s has unknown trigger %q", e.ID, t)
		}
	}
	if len(e.Actions) == 0 {
		return nil, fmt.Errorf("effect %s must have at least one action", e.ID)
	}
	if e.ConsumesStacks < 0 {
		return nil, fmt.Errorf("effect %s cannot consume a negative number of stacks", e.ID)
	}
	return e, nil
}
