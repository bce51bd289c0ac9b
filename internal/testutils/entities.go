package testutils

import (
	"math"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/dice"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
)

// Skill is an in-memory battle.Skill
type Skill struct {
	SkillID       string
	SkillName     string
	PowerValue    int
	AccuracyValue int
	Rage          int
	ElementName   string
	CategoryName  string
	PriorityValue int
	TagList       []string
}

// NewSkill creates a physical normal-type skill
func NewSkill(id string, power int, tags ...string) *Skill {
	return &Skill{
		SkillID:       id,
		SkillName:     id,
		PowerValue:    power,
		AccuracyValue: 100,
		ElementName:   "normal",
		CategoryName:  "physical",
		TagList:       tags,
	}
}

func (s *Skill) ID() string       { return s.SkillID }
func (s *Skill) Name() string     { return s.SkillName }
func (s *Skill) Power() int       { return s.PowerValue }
func (s *Skill) Accuracy() int    { return s.AccuracyValue }
func (s *Skill) RageCost() int    { return s.Rage }
func (s *Skill) Element() string  { return s.ElementName }
func (s *Skill) Category() string { return s.CategoryName }
func (s *Skill) Tags() []string   { return s.TagList }

func (s *Skill) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return s.SkillID, true
	case "name":
		return s.SkillName, true
	case "power":
		return s.PowerValue, true
	case "accuracy":
		return s.AccuracyValue, true
	case "rage":
		return s.Rage, true
	case "element":
		return s.ElementName, true
	case "category":
		return s.CategoryName, true
	case "priority":
		return s.PriorityValue, true
	case "tags":
		return s.TagList, true
	}
	return nil, false
}

// Species is an in-memory battle.Species
type Species struct {
	SpeciesID   string
	SpeciesName string
	ElementName string
}

func (s *Species) ID() string      { return s.SpeciesID }
func (s *Species) Name() string    { return s.SpeciesName }
func (s *Species) Element() string { return s.ElementName }

func (s *Species) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return s.SpeciesID, true
	case "name":
		return s.SpeciesName, true
	case "element":
		return s.ElementName, true
	}
	return nil, false
}

// Battle is an in-memory battle.Battle driven by a dice.Roller
type Battle struct {
	Roller    dice.Roller
	Sides     []*Player
	PhaseList []modifiers.Phase
}

// NewBattle creates a battle between two players
func NewBattle(roller dice.Roller, a, b *Player) *Battle {
	if roller == nil {
		roller = dice.NewSeededRoller(1)
	}
	return &Battle{Roller: roller, Sides: []*Player{a, b}}
}

func (b *Battle) RandomInt(min, max int) int          { return b.Roller.RandomInt(min, max) }
func (b *Battle) Shuffle(n int, swap func(i, j int)) { b.Roller.Shuffle(n, swap) }
func (b *Battle) Phases() []modifiers.Phase          { return b.PhaseList }

func (b *Battle) Opponent(p battle.Player) battle.Player {
	for _, side := range b.Sides {
		if side != nil && p != nil && side.PlayerID != p.ID() {
			return side
		}
	}
	return nil
}

func (b *Battle) Players() []battle.Player {
	out := make([]battle.Player, 0, len(b.Sides))
	for _, side := range b.Sides {
		out = append(out, side)
	}
	return out
}

// EnterPhase pushes a running phase
func (b *Battle) EnterPhase(t modifiers.PhaseType, id string) {
	b.PhaseList = append(b.PhaseList, modifiers.Phase{Type: t, ID: id})
}

// LeavePhase pops the innermost phase
func (b *Battle) LeavePhase() {
	if len(b.PhaseList) > 0 {
		b.PhaseList = b.PhaseList[:len(b.PhaseList)-1]
	}
}

// SkillUse is an in-memory battle.UseSkillContext
type SkillUse struct {
	User       *Pet
	SkillValue *Skill
	TargetPet  *Pet
	Power      int
	Accuracy   int
	RageCost   int
	CritRate   int
	Crit       bool
	Hit        bool
}

// NewSkillUse creates a skill use of skill by user against target
func NewSkillUse(user *Pet, skill *Skill, target *Pet) *SkillUse {
	return &SkillUse{
		User:       user,
		SkillValue: skill,
		TargetPet:  target,
		Power:      skill.PowerValue,
		Accuracy:   skill.AccuracyValue,
		RageCost:   skill.Rage,
		Hit:        true,
	}
}

func (u *SkillUse) Pet() battle.Pet {
	if u.User == nil {
		return nil
	}
	return u.User
}

func (u *SkillUse) Origin() battle.Player {
	if u.User == nil || u.User.Player == nil {
		return nil
	}
	return u.User.Player
}

func (u *SkillUse) Skill() battle.Skill {
	if u.SkillValue == nil {
		return nil
	}
	return u.SkillValue
}

func (u *SkillUse) Target() battle.Pet {
	if u.TargetPet == nil {
		return nil
	}
	return u.TargetPet
}

func (u *SkillUse) AddPower(delta int)    { u.Power += delta }
func (u *SkillUse) AddCritRate(delta int) { u.CritRate += delta }
func (u *SkillUse) AddAccuracy(delta int) { u.Accuracy += delta }

func (u *SkillUse) Prop(name string) (any, bool) {
	switch name {
	case "pet":
		return u.Pet(), u.User != nil
	case "origin":
		return u.Origin(), u.Origin() != nil
	case "skill":
		return u.Skill(), u.SkillValue != nil
	case "target":
		return u.Target(), u.TargetPet != nil
	case "power":
		return u.Power, true
	case "accuracy":
		return u.Accuracy, true
	case "rage":
		return u.RageCost, true
	case "crit":
		return u.Crit, true
	case "hit":
		return u.Hit, true
	}
	return nil, false
}

// DamageCalc is an in-memory battle.DamageContext
type DamageCalc struct {
	SourcePet *Pet
	TargetPet *Pet
	Base      int
	Category  string
	Crit      bool
	Percent   float64
	Delta     float64
}

func (d *DamageCalc) Source() battle.Pet {
	if d.SourcePet == nil {
		return nil
	}
	return d.SourcePet
}

func (d *DamageCalc) Target() battle.Pet {
	if d.TargetPet == nil {
		return nil
	}
	return d.TargetPet
}

// Amount applies the collected percent and delta to the base damage
func (d *DamageCalc) Amount() int {
	return int(math.Max(0, math.Round(float64(d.Base)*(1+d.Percent/100)+d.Delta)))
}

func (d *DamageCalc) AddModified(percent, delta float64) {
	d.Percent += percent
	d.Delta += delta
}

func (d *DamageCalc) Prop(name string) (any, bool) {
	switch name {
	case "source":
		return d.Source(), d.SourcePet != nil
	case "target":
		return d.Target(), d.TargetPet != nil
	case "baseDamage":
		return d.Base, true
	case "damage":
		return d.Amount(), true
	case "category":
		return d.Category, true
	case "crit":
		return d.Crit, true
	}
	return nil, false
}

// HealCalc is an in-memory battle.HealContext
type HealCalc struct {
	SourcePet *Pet
	TargetPet *Pet
	Base      int
	Percent   float64
	Delta     float64
}

func (h *HealCalc) Source() battle.Pet {
	if h.SourcePet == nil {
		return nil
	}
	return h.SourcePet
}

func (h *HealCalc) Target() battle.Pet {
	if h.TargetPet == nil {
		return nil
	}
	return h.TargetPet
}

// Amount applies the collected percent and delta to the base heal
func (h *HealCalc) Amount() int {
	return int(math.Max(0, math.Round(float64(h.Base)*(1+h.Percent/100)+h.Delta)))
}

func (h *HealCalc) AddModified(percent, delta float64) {
	h.Percent += percent
	h.Delta += delta
}

func (h *HealCalc) Prop(name string) (any, bool) {
	switch name {
	case "source":
		return h.Source(), h.SourcePet != nil
	case "target":
		return h.Target(), h.TargetPet != nil
	case "amount":
		return h.Amount(), true
	}
	return nil, false
}
