package battle

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
)

// Context is the EffectContext the battle engine hands to an effect when one
// of its triggers fires. Nested effects (an operator causing another trigger)
// run in a Child context linked through Parent.
type Context struct {
	Parent   *Context
	Depth    int
	MaxDepth int
	Trigger  Trigger
	Battle   Battle
	Config   *registry.Registry

	// Owner is the pet whose mark or skill owns the running effect
	Owner Pet
	// Source is the Mark or Skill the effect is attached to, if any
	Source any

	SkillUse  UseSkillContext
	Damage    DamageContext
	Heal      HealContext
	AddedMark Mark

	// Subject is the operator target currently being processed
	Subject any
}

// NewContext creates a root context for a trigger
func NewContext(b Battle, trigger Trigger, owner Pet, source any) *Context {
	return &Context{
		Trigger: trigger,
		Battle:  b,
		Owner:   owner,
		Source:  source,
	}
}

// Child creates a nested context one level deeper. Sub-contexts and the
// config handle are inherited so nested effects see the same in-flight state.
func (c *Context) Child(trigger Trigger, owner Pet, source any) *Context {
	return &Context{
		Parent:    c,
		Depth:     c.Depth + 1,
		MaxDepth:  c.MaxDepth,
		Trigger:   trigger,
		Battle:    c.Battle,
		Config:    c.Config,
		Owner:     owner,
		Source:    source,
		SkillUse:  c.SkillUse,
		Damage:    c.Damage,
		Heal:      c.Heal,
		AddedMark: c.AddedMark,
	}
}

// Bind returns a copy of c at the same depth with the running effect's owner
// and source set. Listeners use it so an effect reacting to a trigger sees
// the trigger's own nesting level.
func (c *Context) Bind(owner Pet, source any) *Context {
	bound := *c
	bound.Owner = owner
	bound.Source = source
	bound.Subject = nil
	return &bound
}

// WithSkillUse sets the using-skill sub-context
func (c *Context) WithSkillUse(use UseSkillContext) *Context {
	c.SkillUse = use
	return c
}

// WithDamage sets the damage sub-context
func (c *Context) WithDamage(d DamageContext) *Context {
	c.Damage = d
	return c
}

// WithHeal sets the heal sub-context
func (c *Context) WithHeal(h HealContext) *Context {
	c.Heal = h
	return c
}

// WithAddedMark sets the mark being added
func (c *Context) WithAddedMark(m Mark) *Context {
	c.AddedMark = m
	return c
}

// WithSubject returns a shallow copy of c focused on one operator target
func (c *Context) WithSubject(subject any) *Context {
	focused := *c
	focused.Subject = subject
	return &focused
}

// DepthLimit returns the configured nesting limit
func (c *Context) DepthLimit() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return config.DefaultMaxEffectDepth
}

// WithMaxDepth sets the nesting limit; zero keeps the default
func (c *Context) WithMaxDepth(n int) *Context {
	c.MaxDepth = n
	return c
}

// WithConfig sets the config registry handle
func (c *Context) WithConfig(r *registry.Registry) *Context {
	c.Config = r
	return c
}

// Root walks Parent links to the outermost context
func (c *Context) Root() *Context {
	for c.Parent != nil {
		c = c.Parent
	}
	return c
}

// Mark returns the source as a Mark, or nil
func (c *Context) Mark() Mark {
	m, _ := c.Source.(Mark)
	return m
}

// Skill returns the source skill, falling back to the skill in use
func (c *Context) Skill() Skill {
	if s, ok := c.Source.(Skill); ok {
		return s
	}
	if c.SkillUse != nil {
		return c.SkillUse.Skill()
	}
	return nil
}

// Self returns the owning pet, deriving it from the source when unset
func (c *Context) Self() Pet {
	if c.Owner != nil {
		return c.Owner
	}
	if m := c.Mark(); m != nil {
		return m.Owner()
	}
	if c.SkillUse != nil {
		return c.SkillUse.Pet()
	}
	return nil
}

// SelfPlayer returns the player owning Self
func (c *Context) SelfPlayer() Player {
	if self := c.Self(); self != nil {
		return self.Owner()
	}
	return nil
}

// FoePlayer returns the opponent of SelfPlayer
func (c *Context) FoePlayer() Player {
	self := c.SelfPlayer()
	if self == nil || c.Battle == nil {
		return nil
	}
	return c.Battle.Opponent(self)
}

// Foe returns the opposing active pet
func (c *Context) Foe() Pet {
	if foe := c.FoePlayer(); foe != nil {
		return foe.ActivePet()
	}
	return nil
}

// Target is the skill target if a skill is in use, else the damage target,
// else the foe.
func (c *Context) Target() Pet {
	if c.SkillUse != nil {
		if t := c.SkillUse.Target(); t != nil {
			return t
		}
	}
	if c.Damage != nil {
		if t := c.Damage.Target(); t != nil {
			return t
		}
	}
	return c.Foe()
}

// Phases returns the running phase chain, or nil without a battle
func (c *Context) Phases() []modifiers.Phase {
	if c.Battle == nil {
		return nil
	}
	return c.Battle.Phases()
}
