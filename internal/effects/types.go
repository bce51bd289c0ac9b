package effects

import (
	"fmt"
	"log"
	"sort"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// Effect is a compiled, trigger-bound bundle of a condition and actions.
// Effects are created once when content loads and shared by every mark or
// skill instance that owns them; they hold no per-instance state.
type Effect struct {
	ID             string
	Triggers       []battle.Trigger
	Priority       int
	Condition      selector.Condition
	Actions        []selector.Action
	ConsumesStacks int
	Tags           []string
}

// HasTrigger reports whether the effect fires on t
func (e *Effect) HasTrigger(t battle.Trigger) bool {
	for _, trigger := range e.Triggers {
		if trigger == t {
			return true
		}
	}
	return false
}

// HasTag reports whether the effect carries tag
func (e *Effect) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Execute runs the effect in ctx. It reports whether the actions ran: false
// with a nil error means the condition did not hold. Nested execution deeper
// than the context's depth limit is refused.
func (e *Effect) Execute(ctx *battle.Context) (ran bool, err error) {
	if ctx == nil {
		return false, battleerr.InvalidArgument("context is required").
			WithMeta(battleerr.MetaEffectID, e.ID)
	}

	if limit := ctx.DepthLimit(); ctx.Depth > limit {
		log.Printf("[EFFECTS] Refusing %s at depth %d (limit %d)", e.ID, ctx.Depth, limit)
		return false, battleerr.DepthExceededf("effect %s nested %d deep, limit is %d", e.ID, ctx.Depth, limit).
			WithMeta(battleerr.MetaEffectID, e.ID)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EFFECTS] Effect %s panicked: %v", e.ID, r)
			ran = false
			err = battleerr.Newf(battleerr.CodeInternal, "effect %s panicked: %v", e.ID, r).
				WithMeta(battleerr.MetaEffectID, e.ID)
		}
	}()

	if e.Condition != nil && !e.Condition(ctx) {
		return false, nil
	}

	for _, action := range e.Actions {
		action(ctx)
	}
	return true, nil
}

// String renders the effect for logs
func (e *Effect) String() string {
	return fmt.Sprintf("%s%v(priority %d)", e.ID, e.Triggers, e.Priority)
}

// SortByPriority orders effects highest priority first, keeping load order for ties
func SortByPriority(list []*Effect) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority > list[j].Priority
	})
}
