package operators

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// AddPower raises the power of every target skill use by value
func AddPower(value selector.ValueSource) selector.Operator {
	return skillUse(TypeAddPower, value, battle.UseSkillContext.AddPower)
}

// AddCritRate raises the crit rate of every target skill use by value
func AddCritRate(value selector.ValueSource) selector.Operator {
	return skillUse(TypeAddCritRate, value, battle.UseSkillContext.AddCritRate)
}

// AddAccuracy raises the accuracy of every target skill use by value
func AddAccuracy(value selector.ValueSource) selector.Operator {
	return skillUse(TypeAddAccuracy, value, battle.UseSkillContext.AddAccuracy)
}

func skillUse(name string, value selector.ValueSource, add func(battle.UseSkillContext, int)) selector.Operator {
	return operate(name, compact(selector.Args{"value": value}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			use, err := asSkillUse(target)
			if err != nil {
				return err
			}
			add(use, in.Int("value", 0))
			return nil
		})
}

// AddModified adjusts every target damage or heal calculation by a percent
// and a flat delta.
func AddModified(percent, delta selector.ValueSource) selector.Operator {
	return operate(TypeAddModified, compact(selector.Args{"percent": percent, "delta": delta}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			m, err := asModifiable(target)
			if err != nil {
				return err
			}
			m.AddModified(in.Number("percent", 0), in.Number("delta", 0))
			return nil
		})
}
