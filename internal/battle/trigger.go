package battle

import "fmt"

// Trigger is a battle lifecycle point at which the engine invokes effects
type Trigger string

const (
	OnBattleStart           Trigger = "OnBattleStart"
	OnTurnStart             Trigger = "OnTurnStart"
	OnTurnEnd               Trigger = "OnTurnEnd"
	BeforeSort              Trigger = "BeforeSort"
	BeforeUseSkillCheck     Trigger = "BeforeUseSkillCheck"
	AfterUseSkillCheck      Trigger = "AfterUseSkillCheck"
	BeforeHit               Trigger = "BeforeHit"
	OnHit                   Trigger = "OnHit"
	OnMiss                  Trigger = "OnMiss"
	OnCritPreDamage         Trigger = "OnCritPreDamage"
	PreDamage               Trigger = "PreDamage"
	OnBeforeCalculateDamage Trigger = "OnBeforeCalculateDamage"
	OnDamage                Trigger = "OnDamage"
	PostDamage              Trigger = "PostDamage"
	OnBeforeHeal            Trigger = "OnBeforeHeal"
	OnHeal                  Trigger = "OnHeal"
	OnSkillUse              Trigger = "OnSkillUse"
	OnDefeat                Trigger = "OnDefeat"
	OnSwitchIn              Trigger = "OnSwitchIn"
	OnSwitchOut             Trigger = "OnSwitchOut"
	OnMarkCreated           Trigger = "OnMarkCreated"
	OnMarkAdded             Trigger = "OnMarkAdded"
	OnMarkDestroy           Trigger = "OnMarkDestroy"
	OnStack                 Trigger = "OnStack"
	OnRageGain              Trigger = "OnRageGain"
	OnBattleEnd             Trigger = "OnBattleEnd"
)

var allTriggers = []Trigger{
	OnBattleStart,
	OnTurnStart,
	OnTurnEnd,
	BeforeSort,
	BeforeUseSkillCheck,
	AfterUseSkillCheck,
	BeforeHit,
	OnHit,
	OnMiss,
	OnCritPreDamage,
	PreDamage,
	OnBeforeCalculateDamage,
	OnDamage,
	PostDamage,
	OnBeforeHeal,
	OnHeal,
	OnSkillUse,
	OnDefeat,
	OnSwitchIn,
	OnSwitchOut,
	OnMarkCreated,
	OnMarkAdded,
	OnMarkDestroy,
	OnStack,
	OnRageGain,
	OnBattleEnd,
}

// AllTriggers returns every known trigger in lifecycle order
func AllTriggers() []Trigger {
	out := make([]Trigger, len(allTriggers))
	copy(out, allTriggers)
	return out
}

// Valid reports whether t is a known trigger
func (t Trigger) Valid() bool {
	for _, known := range allTriggers {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTrigger converts an authored string into a Trigger
func ParseTrigger(s string) (Trigger, error) {
	t := Trigger(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown trigger %q", s)
	}
	return t, nil
}
