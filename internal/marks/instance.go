package marks

import (
	"log"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
)

// Instance is one application of a base mark on a pet. Stack count and
// duration are per instance; effects are shared with the base.
type Instance struct {
	mu       sync.RWMutex
	id       string
	base     *Base
	manager  *Manager
	stacks   int
	duration int
	active   bool
}

// ID implements battle.Entity
func (i *Instance) ID() string { return i.id }

// BaseID implements battle.Mark
func (i *Instance) BaseID() string { return i.base.BaseID }

// Name implements battle.Mark
func (i *Instance) Name() string { return i.base.BaseName }

// Base returns the definition this instance was created from
func (i *Instance) Base() *Base { return i.base }

// Effects returns the shared effects of the base mark
func (i *Instance) Effects() []*effects.Effect { return i.base.Effects }

// Tags implements battle.Mark
func (i *Instance) Tags() []string { return i.base.TagList }

// Owner implements battle.Mark
func (i *Instance) Owner() battle.Pet { return i.manager.owner }

// Stacks implements battle.Mark
func (i *Instance) Stacks() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.stacks
}

// Duration implements battle.Mark
func (i *Instance) Duration() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.duration
}

// IsActive implements battle.Mark
func (i *Instance) IsActive() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.active
}

// AddStack adds n stacks, capped at the base's maximum, and returns the new count
func (i *Instance) AddStack(n int) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stacks = i.base.clampStacks(i.stacks + n)
	return i.stacks
}

// ConsumeStack removes up to n stacks and returns how many remain
func (i *Instance) ConsumeStack(n int) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stacks -= n
	if i.stacks < 0 {
		i.stacks = 0
	}
	return i.stacks
}

func (i *Instance) setDuration(d int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.duration = d
}

func (i *Instance) setStacks(n int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stacks = i.base.clampStacks(n)
}

// tick counts one turn down and reports whether the instance expired
func (i *Instance) tick() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.duration <= 0 {
		return false
	}
	i.duration--
	return i.duration == 0
}

// Transfer moves the mark, with its stacks and remaining duration, to another pet
func (i *Instance) Transfer(ctx *battle.Context, to battle.Pet) error {
	if !i.IsActive() {
		return nil
	}
	if _, err := to.AddMark(ctx, i.base, battle.MarkOptions{
		Stacks:   i.Stacks(),
		Duration: i.Duration(),
	}); err != nil {
		return err
	}
	i.Destroy(ctx)
	return nil
}

// Destroy deactivates the mark, removes it and the modifiers it registered
// from its owner, and runs its OnMarkDestroy effects.
func (i *Instance) Destroy(ctx *battle.Context) {
	i.mu.Lock()
	if !i.active {
		i.mu.Unlock()
		return
	}
	i.active = false
	i.mu.Unlock()

	owner := i.manager.owner
	i.manager.remove(i)
	if owner != nil && owner.Attributes() != nil {
		owner.Attributes().RemoveBySource(i.id)
	}

	if ctx != nil {
		i.run(ctx, battle.OnMarkDestroy)
	}
	log.Printf("[MARKS] Destroyed %s (%s)", i.base.BaseID, i.id)
}

// Prop implements battle.PropReader
func (i *Instance) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return i.id, true
	case "baseId":
		return i.base.BaseID, true
	case "name":
		return i.base.BaseName, true
	case "stack":
		return i.Stacks(), true
	case "duration":
		return i.Duration(), true
	case "owner":
		return i.manager.owner, i.manager.owner != nil
	case "tags":
		return i.base.TagList, true
	case "isActive":
		return i.IsActive(), true
	}
	return nil, false
}

// run executes the instance's effects for trigger in a child context.
// Effects that consume stacks destroy the mark once none are left.
func (i *Instance) run(ctx *battle.Context, trigger battle.Trigger) int {
	list := make([]*effects.Effect, 0, len(i.base.Effects))
	for _, e := range i.base.Effects {
		if e.HasTrigger(trigger) {
			list = append(list, e)
		}
	}
	effects.SortByPriority(list)

	ran := 0
	for _, e := range list {
		ok, err := i.execute(ctx.Child(trigger, i.manager.owner, i), e)
		if err != nil {
			log.Printf("[MARKS] %s on %s: %v", e.ID, i.id, err)
			continue
		}
		if ok {
			ran++
		}
	}
	return ran
}

func (i *Instance) execute(ctx *battle.Context, e *effects.Effect) (bool, error) {
	if ctx.Trigger != battle.OnMarkDestroy && !i.IsActive() {
		return false, nil
	}
	ran, err := e.Execute(ctx)
	if err != nil {
		return false, err
	}
	if ran && e.ConsumesStacks > 0 && i.IsActive() {
		if i.ConsumeStack(e.ConsumesStacks) == 0 {
			i.Destroy(ctx)
		}
	}
	return ran, nil
}
