// Package operators holds the side effects authored content can apply to
// selected targets: damage, healing, marks, stat stages, rage, skill-use and
// damage adjustments, attribute and config modifiers, and transforms.
//
// Every operator resolves its arguments once per target. A target that fails
// (bad argument, wrong type, collaborator error) is logged and skipped; the
// remaining targets still receive the operator.
package operators

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// Operator type names as they appear in authored content
const (
	TypeDealDamage                  = "dealDamage"
	TypeHeal                        = "heal"
	TypeAddMark                     = "addMark"
	TypeAddStacks                   = "addStacks"
	TypeConsumeStacks               = "consumeStacks"
	TypeDestroyMark                 = "destroyMark"
	TypeTransferMark                = "transferMark"
	TypeModifyStat                  = "modifyStat"
	TypeAddStatStage                = "addStatStage"
	TypeClearStatStage              = "clearStatStage"
	TypeAddRage                     = "addRage"
	TypeAddPower                    = "addPower"
	TypeAddCritRate                 = "addCritRate"
	TypeAddAccuracy                 = "addAccuracy"
	TypeAddModified                 = "addModified"
	TypeAddAttributeModifier        = "addAttributeModifier"
	TypeAddDynamicAttributeModifier = "addDynamicAttributeModifier"
	TypeAddClampModifier            = "addClampModifier"
	TypeAddConfigModifier           = "addConfigModifier"
	TypeTransform                   = "transform"
	TypeConditional                 = "conditional"
)

// operate wraps selector.DynamicOperator so apply can report a per-target
// failure as an error instead of logging it itself.
func operate(name string, args selector.Args, apply func(ctx *battle.Context, target any, in selector.Resolved) error) selector.Operator {
	return selector.DynamicOperator(name, args, func(ctx *battle.Context, target any, in selector.Resolved) {
		if err := apply(ctx, target, in); err != nil {
			log.Printf("[OPERATORS] %s: skipping target %s: %v", name, describe(target), err)
		}
	})
}

// compact drops nil sources so optional arguments resolve as absent
func compact(in selector.Args) selector.Args {
	for name, src := range in {
		if src == nil {
			delete(in, name)
		}
	}
	return in
}

func asPet(target any) (battle.Pet, error) {
	pet, ok := target.(battle.Pet)
	if !ok || pet == nil {
		return nil, fmt.Errorf("target %T is not a pet", target)
	}
	return pet, nil
}

func asMark(target any) (battle.Mark, error) {
	mark, ok := target.(battle.Mark)
	if !ok || mark == nil {
		return nil, fmt.Errorf("target %T is not a mark", target)
	}
	return mark, nil
}

func asPlayer(target any) (battle.Player, error) {
	switch t := target.(type) {
	case battle.Player:
		if t != nil {
			return t, nil
		}
	case battle.Pet:
		if t != nil && t.Owner() != nil {
			return t.Owner(), nil
		}
	}
	return nil, fmt.Errorf("target %T has no player", target)
}

func asSkillUse(target any) (battle.UseSkillContext, error) {
	use, ok := target.(battle.UseSkillContext)
	if !ok || use == nil {
		return nil, fmt.Errorf("target %T is not a skill use", target)
	}
	return use, nil
}

// modifiable is the damage or heal calculation an addModified adjusts
type modifiable interface {
	AddModified(percent, delta float64)
}

func asModifiable(target any) (modifiable, error) {
	m, ok := target.(modifiable)
	if !ok || m == nil {
		return nil, fmt.Errorf("target %T is not a damage or heal calculation", target)
	}
	return m, nil
}

// parseStat reads a stat name argument
func parseStat(in selector.Resolved, name string) (battle.Stat, error) {
	raw, ok := in.First(name)
	if !ok {
		return "", fmt.Errorf("missing %s", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a stat name, got %T", name, raw)
	}
	return battle.ParseStat(s)
}

// sourceOf names the mark, skill or effect an operator runs for. Modifiers
// carry it so destroying a mark removes what the mark registered.
func sourceOf(ctx *battle.Context) modifiers.Source {
	if mark := ctx.Mark(); mark != nil {
		return modifiers.Source{Type: modifiers.SourceTypeMark, Name: mark.Name(), ID: mark.ID()}
	}
	if skill := ctx.Skill(); skill != nil {
		return modifiers.Source{Type: modifiers.SourceTypeSkill, Name: skill.Name(), ID: skill.ID()}
	}
	return modifiers.Source{Type: modifiers.SourceTypeEffect}
}

func describe(v any) string {
	if e, ok := v.(battle.Entity); ok && e != nil {
		return e.ID()
	}
	return fmt.Sprintf("%T", v)
}
