package selector

import (
	"sort"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
)

// Condition gates an effect on the battle context
type Condition func(ctx *battle.Context) bool

// Some holds when at least one condition holds
func Some(conds ...Condition) Condition {
	return func(ctx *battle.Context) bool {
		for _, c := range conds {
			if c(ctx) {
				return true
			}
		}
		return false
	}
}

// Every holds when all conditions hold
func Every(conds ...Condition) Condition {
	return func(ctx *battle.Context) bool {
		for _, c := range conds {
			if !c(ctx) {
				return false
			}
		}
		return true
	}
}

// Negate inverts a condition
func Negate(c Condition) Condition {
	return func(ctx *battle.Context) bool {
		return !c(ctx)
	}
}

var builtins = map[string]Condition{
	"selfUseSkill": func(ctx *battle.Context) bool {
		return ctx.SkillUse != nil && sameEntity(ctx.SkillUse.Pet(), ctx.Self())
	},
	"foeUseSkill": func(ctx *battle.Context) bool {
		return ctx.SkillUse != nil && !isNil(ctx.SkillUse.Pet()) && !sameEntity(ctx.SkillUse.Pet(), ctx.Self())
	},
	"selfBeDamaged": func(ctx *battle.Context) bool {
		return ctx.Damage != nil && sameEntity(ctx.Damage.Target(), ctx.Self())
	},
	"foeBeDamaged": func(ctx *battle.Context) bool {
		return ctx.Damage != nil && !isNil(ctx.Damage.Target()) && !sameEntity(ctx.Damage.Target(), ctx.Self())
	},
	"selfAddMark": func(ctx *battle.Context) bool {
		return ctx.AddedMark != nil && sameEntity(ctx.AddedMark.Owner(), ctx.Self())
	},
	"foeAddMark": func(ctx *battle.Context) bool {
		return ctx.AddedMark != nil && !isNil(ctx.AddedMark.Owner()) && !sameEntity(ctx.AddedMark.Owner(), ctx.Self())
	},
	"selfBeHealed": func(ctx *battle.Context) bool {
		return ctx.Heal != nil && sameEntity(ctx.Heal.Target(), ctx.Self())
	},
	"selfSwitchIn": func(ctx *battle.Context) bool {
		return ctx.Trigger == battle.OnSwitchIn && isActive(ctx)
	},
	"selfSwitchOut": func(ctx *battle.Context) bool {
		return ctx.Trigger == battle.OnSwitchOut && isActive(ctx)
	},
	"isFirstTrigger": func(ctx *battle.Context) bool {
		return ctx.Parent == nil
	},
}

// Builtin returns a named condition keyed to a battle event
func Builtin(name string) (Condition, error) {
	c, ok := builtins[name]
	if !ok {
		return nil, battleerr.UnknownTag("condition", name)
	}
	return c, nil
}

// BuiltinNames lists the built-in condition names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sameEntity(a, b battle.Entity) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	return a.ID() == b.ID()
}

// isActive reports whether the effect owner is its player's active pet
func isActive(ctx *battle.Context) bool {
	self := ctx.Self()
	player := ctx.SelfPlayer()
	if isNil(self) || isNil(player) {
		return false
	}
	return sameEntity(player.ActivePet(), self)
}
