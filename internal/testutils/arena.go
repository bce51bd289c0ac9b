package testutils

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	"github.com/KirkDiggler/pet-battle-effects/internal/dice"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
)

// Arena is a ready-made one-versus-one battle: Ally (hp 1000) owned by Home
// faces Enemy (hp 800) owned by Away, with a bench pet on each side.
type Arena struct {
	Battle     *Battle
	Home       *Player
	Away       *Player
	Ally       *Pet
	AllyBench  *Pet
	Enemy      *Pet
	EnemyBench *Pet
	Registry   *registry.Registry

	// MaxDepth is stamped on every context the arena creates; zero keeps the default
	MaxDepth int
}

// NewArena creates an arena driven by roller (seeded when nil)
func NewArena(roller dice.Roller) *Arena {
	a := &Arena{
		Ally:       NewPet("ally", 1000),
		AllyBench:  NewPet("ally-bench", 600),
		Enemy:      NewPet("enemy", 800),
		EnemyBench: NewPet("enemy-bench", 500),
		Registry:   registry.New(),
	}
	a.Home = NewPlayer("home", a.Ally, a.AllyBench)
	a.Away = NewPlayer("away", a.Enemy, a.EnemyBench)
	a.Battle = NewBattle(roller, a.Home, a.Away)
	return a
}

// NewArenaFromConfig creates an arena with the configured seed and nesting limit
func NewArenaFromConfig(cfg *config.EngineConfig) *Arena {
	a := NewArena(dice.NewRollerFromConfig(cfg))
	if cfg != nil {
		a.MaxDepth = cfg.MaxEffectDepth
	}
	return a
}

// Context creates a root context for trigger owned by owner
func (a *Arena) Context(trigger battle.Trigger, owner *Pet) *battle.Context {
	var self battle.Pet
	if owner != nil {
		self = owner
	}
	return battle.NewContext(a.Battle, trigger, self, nil).
		WithConfig(a.Registry.Scope()).
		WithMaxDepth(a.MaxDepth)
}
