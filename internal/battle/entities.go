package battle

import (
	"fmt"

	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
)

// Stat names a moddable pet attribute
type Stat string

const (
	StatAttack    Stat = "attack"
	StatDefense   Stat = "defense"
	StatSpAttack  Stat = "spAttack"
	StatSpDefense Stat = "spDefense"
	StatSpeed     Stat = "speed"
	StatCritRate  Stat = "critRate"
	StatAccuracy  Stat = "accuracy"
	StatEvasion   Stat = "evasion"
	StatMaxHP     Stat = "maxHp"
)

// Stats lists every moddable stat
var Stats = []Stat{
	StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed,
	StatCritRate, StatAccuracy, StatEvasion, StatMaxHP,
}

// ParseStat converts an authored string into a Stat
func ParseStat(s string) (Stat, error) {
	switch stat := Stat(s); stat {
	case StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed,
		StatCritRate, StatAccuracy, StatEvasion, StatMaxHP:
		return stat, nil
	}
	return "", fmt.Errorf("unknown stat %q", s)
}

// PropReader exposes named fields for selectPath/selectProp traversal.
// Names match the type graph in the typecheck package.
type PropReader interface {
	Prop(name string) (any, bool)
}

// Entity is anything with a stable identity that selectors can return
type Entity interface {
	PropReader
	ID() string
}

// DamageRequest describes damage an operator asks a pet to take
type DamageRequest struct {
	Source       Pet
	Amount       int
	Category     string
	IgnoreShield bool
}

// HealRequest describes healing an operator asks a pet to receive
type HealRequest struct {
	Source Pet
	Amount int
}

// MarkOptions carries per-instance overrides when a mark is applied
type MarkOptions struct {
	Stacks   int
	Duration int
	Config   map[string]any
}

// Pet is a creature on the field
type Pet interface {
	Entity
	Name() string
	Owner() Player
	Species() Species
	Element() string
	CurrentHP() int
	MaxHP() int
	IsAlive() bool
	Marks() []Mark
	Skills() []Skill

	// Stat returns the effective stat after stages and attribute modifiers
	Stat(stat Stat, phases []modifiers.Phase) float64
	// Attributes is the pet's attribute modifier stack
	Attributes() *modifiers.Stack

	Damage(ctx *Context, req DamageRequest) int
	Heal(ctx *Context, req HealRequest) int
	AddMark(ctx *Context, base BaseMark, opts MarkOptions) (Mark, error)
	AddStatStage(stat Stat, delta int)
	ClearStatStage(stat Stat)
	Transform(ctx *Context, species Species) error
}

// Player owns a team of pets and a rage pool
type Player interface {
	Entity
	Name() string
	Rage() int
	MaxRage() int
	AddRage(delta int) int
	Team() []Pet
	ActivePet() Pet
}

// BaseMark is a mark definition loaded with content
type BaseMark interface {
	Entity
	Name() string
}

// Mark is a mark instance attached to a pet for one battle
type Mark interface {
	Entity
	BaseID() string
	Name() string
	Stacks() int
	Duration() int
	Owner() Pet
	Tags() []string
	IsActive() bool
	AddStack(n int) int
	ConsumeStack(n int) int
	Transfer(ctx *Context, to Pet) error
	Destroy(ctx *Context)
}

// Skill is a usable move
type Skill interface {
	Entity
	Name() string
	Power() int
	Accuracy() int
	RageCost() int
	Element() string
	Category() string
	Tags() []string
}

// Species is a pet template a pet can transform into
type Species interface {
	Entity
	Name() string
	Element() string
}

// UseSkillContext is the in-flight state of a skill use
type UseSkillContext interface {
	PropReader
	Pet() Pet
	Origin() Player
	Skill() Skill
	Target() Pet
	AddPower(delta int)
	AddCritRate(delta int)
	AddAccuracy(delta int)
}

// DamageContext is the in-flight state of a damage calculation
type DamageContext interface {
	PropReader
	Source() Pet
	Target() Pet
	Amount() int
	AddModified(percent, delta float64)
}

// HealContext is the in-flight state of a heal
type HealContext interface {
	PropReader
	Source() Pet
	Target() Pet
	Amount() int
	AddModified(percent, delta float64)
}

// Battle is the battle-engine surface effects may call into
type Battle interface {
	RandomInt(min, max int) int
	Shuffle(n int, swap func(i, j int))
	Opponent(p Player) Player
	Players() []Player
	Phases() []modifiers.Phase
}
