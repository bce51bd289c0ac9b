package events

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
)

// EffectListener runs one effect on behalf of the pet and container (mark or
// skill) that own it.
type EffectListener struct {
	Effect *effects.Effect
	Owner  battle.Pet
	Source battle.Entity
}

// NewEffectListener creates a listener for effect owned by source
func NewEffectListener(effect *effects.Effect, owner battle.Pet, source battle.Entity) *EffectListener {
	return &EffectListener{Effect: effect, Owner: owner, Source: source}
}

// ID implements Listener
func (l *EffectListener) ID() string {
	if l.Source == nil {
		return l.Effect.ID
	}
	return l.Source.ID() + "/" + l.Effect.ID
}

// Priority implements Listener
func (l *EffectListener) Priority() int {
	return l.Effect.Priority
}

// HandleTrigger implements Listener. The effect runs at the trigger's depth;
// only effects re-entering the bus from inside an operator nest deeper.
func (l *EffectListener) HandleTrigger(ctx *battle.Context) error {
	var source any
	if l.Source != nil {
		source = l.Source
	}
	_, err := l.Effect.Execute(ctx.Bind(l.Owner, source))
	return err
}

// SubscribeEffect subscribes a listener for effect on every trigger it declares
func (b *Bus) SubscribeEffect(effect *effects.Effect, owner battle.Pet, source battle.Entity) *EffectListener {
	listener := NewEffectListener(effect, owner, source)
	for _, trigger := range effect.Triggers {
		b.Subscribe(trigger, listener)
	}
	return listener
}
