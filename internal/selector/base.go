package selector

import (
	"sort"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// Base selector keys
const (
	KeySelf              = "self"
	KeyTarget            = "target"
	KeyFoe               = "foe"
	KeySelfTeam          = "selfTeam"
	KeyFoeTeam           = "foeTeam"
	KeySelfMarks         = "selfMarks"
	KeyFoeMarks          = "foeMarks"
	KeyTargetMarks       = "targetMarks"
	KeyPetOwners         = "petOwners"
	KeyFoeOwners         = "foeOwners"
	KeyUsingSkillContext = "usingSkillContext"
	KeyDamageContext     = "damageContext"
	KeyHealContext       = "healContext"
	KeyMark              = "mark"
	KeySkill             = "skill"
	KeyAddedMark         = "addedMark"
)

var bases = map[string]Selector{
	KeySelf: New(typecheck.Pet, func(ctx *battle.Context) []any {
		return one(ctx.Self())
	}),
	KeyTarget: New(typecheck.Pet, func(ctx *battle.Context) []any {
		return one(ctx.Target())
	}),
	KeyFoe: New(typecheck.Pet, func(ctx *battle.Context) []any {
		return one(ctx.Foe())
	}),
	KeySelfTeam: New(typecheck.Pet, func(ctx *battle.Context) []any {
		return team(ctx.SelfPlayer())
	}),
	KeyFoeTeam: New(typecheck.Pet, func(ctx *battle.Context) []any {
		return team(ctx.FoePlayer())
	}),
	KeySelfMarks: New(typecheck.Mark, func(ctx *battle.Context) []any {
		return marksOf(ctx.Self())
	}),
	KeyFoeMarks: New(typecheck.Mark, func(ctx *battle.Context) []any {
		return marksOf(ctx.Foe())
	}),
	KeyTargetMarks: New(typecheck.Mark, func(ctx *battle.Context) []any {
		return marksOf(ctx.Target())
	}),
	KeyPetOwners: New(typecheck.Player, func(ctx *battle.Context) []any {
		return one(ctx.SelfPlayer())
	}),
	KeyFoeOwners: New(typecheck.Player, func(ctx *battle.Context) []any {
		return one(ctx.FoePlayer())
	}),
	KeyUsingSkillContext: New(typecheck.UseSkillContext, func(ctx *battle.Context) []any {
		return one(ctx.SkillUse)
	}),
	KeyDamageContext: New(typecheck.DamageContext, func(ctx *battle.Context) []any {
		return one(ctx.Damage)
	}),
	KeyHealContext: New(typecheck.HealContext, func(ctx *battle.Context) []any {
		return one(ctx.Heal)
	}),
	KeyMark: New(typecheck.Mark, func(ctx *battle.Context) []any {
		return one(ctx.Mark())
	}),
	KeySkill: New(typecheck.Skill, func(ctx *battle.Context) []any {
		return one(ctx.Skill())
	}),
	KeyAddedMark: New(typecheck.Mark, func(ctx *battle.Context) []any {
		return one(ctx.AddedMark)
	}),
}

// Base returns the named built-in selector
func Base(key string) (Selector, error) {
	s, ok := bases[key]
	if !ok {
		return Failed(nil), battleerr.UnknownTag("selector", key)
	}
	return s, nil
}

// BaseKeys lists the built-in selector keys in sorted order
func BaseKeys() []string {
	keys := make([]string, 0, len(bases))
	for key := range bases {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Self selects the pet owning the running effect
func Self() Selector { return bases[KeySelf] }

// Target selects the current target pet
func Target() Selector { return bases[KeyTarget] }

// Foe selects the opposing active pet
func Foe() Selector { return bases[KeyFoe] }

func one(v any) []any {
	if isNil(v) {
		return []any{}
	}
	return []any{v}
}

func team(p battle.Player) []any {
	if isNil(p) {
		return []any{}
	}
	out := []any{}
	for _, pet := range p.Team() {
		if !isNil(pet) {
			out = append(out, pet)
		}
	}
	return out
}

func marksOf(p battle.Pet) []any {
	if isNil(p) {
		return []any{}
	}
	out := []any{}
	for _, m := range p.Marks() {
		if !isNil(m) && m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}
