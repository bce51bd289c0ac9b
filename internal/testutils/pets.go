package testutils

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/uuid"
)

// Pet is an in-memory battle.Pet for tests. Marks go through a real
// marks.Manager so stacking and mark effects behave as in a battle.
type Pet struct {
	PetID         string
	PetName       string
	HP            int
	MaxHPValue    int
	ElementName   string
	Player        *Player
	SpeciesValue  battle.Species
	SkillList     []battle.Skill
	BaseStats     map[battle.Stat]float64
	Stages        map[battle.Stat]int
	Damaged       []battle.DamageRequest
	Healed        []battle.HealRequest
	TransformedTo battle.Species

	attrs *modifiers.Stack
	marks *marks.Manager
}

// NewPet creates a pet at full health with every stat at 100
func NewPet(id string, hp int) *Pet {
	p := &Pet{
		PetID:       id,
		PetName:     id,
		HP:          hp,
		MaxHPValue:  hp,
		ElementName: "normal",
		BaseStats:   map[battle.Stat]float64{},
		Stages:      map[battle.Stat]int{},
		attrs:       modifiers.NewStack(),
	}
	for _, stat := range []battle.Stat{
		battle.StatAttack, battle.StatDefense, battle.StatSpAttack, battle.StatSpDefense,
		battle.StatSpeed, battle.StatAccuracy, battle.StatEvasion,
	} {
		p.BaseStats[stat] = 100
	}
	p.BaseStats[battle.StatCritRate] = 5
	p.BaseStats[battle.StatMaxHP] = float64(hp)
	p.marks = marks.NewManager(p, uuid.NewSequenceGenerator(id+"-mark"))
	return p
}

// MarkManager exposes the pet's mark manager
func (p *Pet) MarkManager() *marks.Manager { return p.marks }

func (p *Pet) ID() string      { return p.PetID }
func (p *Pet) Name() string    { return p.PetName }
func (p *Pet) Element() string { return p.ElementName }
func (p *Pet) CurrentHP() int  { return p.HP }
func (p *Pet) MaxHP() int      { return p.MaxHPValue }
func (p *Pet) IsAlive() bool   { return p.HP > 0 }

func (p *Pet) Owner() battle.Player {
	if p.Player == nil {
		return nil
	}
	return p.Player
}

func (p *Pet) Species() battle.Species      { return p.SpeciesValue }
func (p *Pet) Marks() []battle.Mark         { return p.marks.Marks() }
func (p *Pet) Skills() []battle.Skill       { return p.SkillList }
func (p *Pet) Attributes() *modifiers.Stack { return p.attrs }

// Stat applies the stat stage multiplier, then the attribute modifiers
func (p *Pet) Stat(stat battle.Stat, phases []modifiers.Phase) float64 {
	value := p.BaseStats[stat]
	if stage := p.Stages[stat]; stage > 0 {
		value = value * float64(2+stage) / 2
	} else if stage < 0 {
		value = value * 2 / float64(2-stage)
	}
	return p.attrs.Compute(string(stat), value, phases)
}

func (p *Pet) Damage(_ *battle.Context, req battle.DamageRequest) int {
	amount := req.Amount
	if amount < 0 {
		amount = 0
	}
	if amount > p.HP {
		amount = p.HP
	}
	p.HP -= amount
	p.Damaged = append(p.Damaged, req)
	return amount
}

func (p *Pet) Heal(_ *battle.Context, req battle.HealRequest) int {
	amount := req.Amount
	if amount < 0 {
		amount = 0
	}
	if room := p.MaxHPValue - p.HP; amount > room {
		amount = room
	}
	p.HP += amount
	p.Healed = append(p.Healed, req)
	return amount
}

func (p *Pet) AddMark(ctx *battle.Context, base battle.BaseMark, opts battle.MarkOptions) (battle.Mark, error) {
	inst, err := p.marks.Add(ctx, base, opts)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (p *Pet) AddStatStage(stat battle.Stat, delta int) {
	stage := p.Stages[stat] + delta
	p.Stages[stat] = max(-6, min(6, stage))
}

func (p *Pet) ClearStatStage(stat battle.Stat) {
	delete(p.Stages, stat)
}

func (p *Pet) Transform(_ *battle.Context, species battle.Species) error {
	p.SpeciesValue = species
	p.TransformedTo = species
	if species != nil {
		p.ElementName = species.Element()
	}
	return nil
}

func (p *Pet) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return p.PetID, true
	case "name":
		return p.PetName, true
	case "currentHp":
		return p.HP, true
	case "maxHp":
		return p.MaxHPValue, true
	case "element":
		return p.ElementName, true
	case "isAlive":
		return p.IsAlive(), true
	case "marks":
		return p.Marks(), true
	case "owner":
		return p.Owner(), p.Player != nil
	case "skills":
		return p.SkillList, true
	case "species":
		return p.SpeciesValue, p.SpeciesValue != nil
	}
	if stat, err := battle.ParseStat(name); err == nil {
		return p.Stat(stat, nil), true
	}
	return nil, false
}

// Player is an in-memory battle.Player for tests
type Player struct {
	PlayerID     string
	PlayerName   string
	RageValue    int
	MaxRageValue int
	Pets         []*Pet
	Active       int
}

// NewPlayer creates a player owning pets; the first pet is active
func NewPlayer(id string, pets ...*Pet) *Player {
	pl := &Player{
		PlayerID:     id,
		PlayerName:   id,
		MaxRageValue: 100,
		Pets:         pets,
	}
	for _, pet := range pets {
		pet.Player = pl
	}
	return pl
}

func (pl *Player) ID() string   { return pl.PlayerID }
func (pl *Player) Name() string { return pl.PlayerName }
func (pl *Player) Rage() int    { return pl.RageValue }
func (pl *Player) MaxRage() int { return pl.MaxRageValue }

func (pl *Player) AddRage(delta int) int {
	pl.RageValue = max(0, min(pl.MaxRageValue, pl.RageValue+delta))
	return pl.RageValue
}

func (pl *Player) Team() []battle.Pet {
	team := make([]battle.Pet, len(pl.Pets))
	for i, pet := range pl.Pets {
		team[i] = pet
	}
	return team
}

func (pl *Player) ActivePet() battle.Pet {
	if pl.Active < 0 || pl.Active >= len(pl.Pets) {
		return nil
	}
	return pl.Pets[pl.Active]
}

func (pl *Player) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return pl.PlayerID, true
	case "name":
		return pl.PlayerName, true
	case "rage":
		return pl.RageValue, true
	case "maxRage":
		return pl.MaxRageValue, true
	case "activePet":
		active := pl.ActivePet()
		return active, active != nil
	case "team":
		return pl.Team(), true
	}
	return nil, false
}
