// Package compiler turns authored effect documents into executable effects.
//
// Compilation is recursive descent over the five mutually recursive node
// kinds of the DSL: selectors, values, evaluators, conditions and operators.
// Every dispatch point rejects a type tag it does not know, naming the tag
// and the effect, so broken content fails at load time instead of in battle.
//
// Tunable literals (raw:number, raw:string, raw:boolean) are registered in
// the config registry under a key derived from the effect id and either the
// authored configId or the literal's position in the document, and the
// compiled effect reads them back through the registry. Entity references
// become lazy lookups against the data repository.
package compiler

import (
	"fmt"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
)

// Compiler compiles effect documents against one config registry and data
// repository. It holds no per-effect state and is safe for concurrent use.
type Compiler struct {
	registry *registry.Registry
	tunables registrar
	repo     battle.DataRepository
}

// registrar is where compiled tunables are registered: the registry itself,
// or a batch that is committed once a whole content load succeeded
type registrar interface {
	Register(key string, defaultValue any, tags ...string) *registry.Entry
	Entry(key string) (*registry.Entry, bool)
}

// New creates a compiler. A nil registry gets a fresh one; a nil repository
// makes every entity reference fail when it is first resolved.
func New(reg *registry.Registry, repo battle.DataRepository) *Compiler {
	if reg == nil {
		reg = registry.New()
	}
	return &Compiler{registry: reg, tunables: reg, repo: repo}
}

// Staged returns a compiler that registers tunables into batch instead of the
// registry. Compiled effects still read through the registry, so they see the
// staged defaults once the batch is committed.
func (c *Compiler) Staged(batch *registry.Batch) *Compiler {
	return &Compiler{registry: c.registry, tunables: batch, repo: c.repo}
}

// Registry returns the registry compiled tunables are registered in
func (c *Compiler) Registry() *registry.Registry {
	return c.registry
}

// ParseEffect compiles one effect document
func (c *Compiler) ParseEffect(doc *dsl.Effect) (*effects.Effect, error) {
	if doc == nil {
		return nil, battleerr.InvalidArgument("effect document is required")
	}
	if doc.ID == "" {
		return nil, battleerr.Validationf("effect must have an id")
	}

	u := &unit{c: c, effectID: doc.ID}
	builder := effects.NewBuilder(doc.ID).
		WithPriority(doc.Priority).
		WithConsumesStacks(doc.ConsumesStacks).
		WithTags(doc.Tags...)

	if len(doc.Trigger) == 0 {
		return nil, u.fail("trigger", battleerr.Validationf("at least one trigger is required"))
	}
	for i, name := range doc.Trigger {
		trigger, err := battle.ParseTrigger(name)
		if err != nil {
			return nil, u.unknown(fmt.Sprintf("trigger[%d]", i), "trigger", name)
		}
		builder.WithTriggers(trigger)
	}

	if doc.Condition != nil {
		cond, err := u.parseCondition(doc.Condition, "condition")
		if err != nil {
			return nil, err
		}
		builder.WithCondition(cond)
	}

	if len(doc.Apply) == 0 {
		return nil, u.fail("apply", battleerr.Validationf("at least one operator is required"))
	}
	for i := range doc.Apply {
		action, err := u.createAction(&doc.Apply[i], fmt.Sprintf("apply[%d]", i))
		if err != nil {
			return nil, err
		}
		builder.AddAction(action)
	}

	e, err := builder.Build()
	if err != nil {
		return nil, u.fail("effect", battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid effect"))
	}
	return e, nil
}

// ParseEffectJSON decodes and compiles a JSON effect document
func (c *Compiler) ParseEffectJSON(data []byte) (*effects.Effect, error) {
	doc, err := dsl.DecodeEffect(data)
	if err != nil {
		return nil, err
	}
	return c.ParseEffect(doc)
}

// ParseMark builds a base mark. Effect ids resolve through find.
func (c *Compiler) ParseMark(doc *dsl.Mark, find func(id string) (*effects.Effect, bool)) (*marks.Base, error) {
	if doc == nil {
		return nil, battleerr.InvalidArgument("mark document is required")
	}
	if doc.ID == "" {
		return nil, battleerr.Validationf("mark must have an id")
	}

	strategy, err := marks.ParseStackStrategy(doc.StackStrategy)
	if err != nil {
		return nil, battleerr.UnknownTag("stack strategy", doc.StackStrategy).
			WithMeta(battleerr.MetaEffectID, doc.ID)
	}

	name := doc.Name
	if name == "" {
		name = doc.ID
	}

	base := &marks.Base{
		BaseID:    doc.ID,
		BaseName:  name,
		MaxStacks: doc.MaxStacks,
		Duration:  doc.Duration,
		Strategy:  strategy,
		TagList:   append([]string(nil), doc.Tags...),
	}
	for _, id := range doc.Effects {
		e, ok := find(id)
		if !ok {
			return nil, battleerr.NotFoundf("mark %s references unknown effect %s", doc.ID, id).
				WithMeta(battleerr.MetaEffectID, id)
		}
		base.Effects = append(base.Effects, e)
	}
	return base, nil
}

// unit is the state of compiling one effect
type unit struct {
	c        *Compiler
	effectID string
}

// fail attaches the effect id and document location to err
func (u *unit) fail(location string, err error) error {
	return battleerr.Wrapf(err, "effect %s at %s", u.effectID, location).
		WithMeta(battleerr.MetaEffectID, u.effectID).
		WithMeta(battleerr.MetaLocation, location)
}

func (u *unit) unknown(location, kind, tag string) error {
	return u.fail(location, battleerr.UnknownTag(kind, tag))
}

func (u *unit) missing(location, field string) error {
	return u.fail(location, battleerr.Validationf("%s is required", field))
}

func at(location, field string) string {
	return location + "." + field
}

func index(location string, i int) string {
	return fmt.Sprintf("%s[%d]", location, i)
}
