// Package selector implements the query algebra effects use to pick targets
// and values out of a battle context, together with the evaluators,
// conditions, value sources and operator plumbing built on top of it.
//
// A Selector is an immutable pair of a resolve function and a type tag.
// Every transform returns a new Selector. Steps that cannot be applied (an
// unknown path, a numeric step on a non-number selector) poison the selector
// with an error that Build, Condition and Apply report before anything runs.
package selector

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// Func is the raw resolve function of a selector
type Func func(ctx *battle.Context) []any

// Resolve lets a bare Func act as a ValueSource
func (f Func) Resolve(ctx *battle.Context) ([]any, error) {
	if f == nil {
		return []any{}, nil
	}
	return orEmpty(f(ctx)), nil
}

// Selector maps a context to a sequence of values of one type
type Selector struct {
	fn  Func
	typ string
	err error
}

// New wraps fn as a selector yielding values of typ
func New(typ string, fn Func) Selector {
	if typ == "" {
		typ = typecheck.Any
	}
	return Selector{fn: fn, typ: typ}
}

// Failed returns a selector poisoned with err
func Failed(err error) Selector {
	return Selector{typ: typecheck.Any, err: err}
}

// FromSource builds a selector over the values of a value source
func FromSource(typ string, src ValueSource) Selector {
	return New(typ, func(ctx *battle.Context) []any {
		return GetValueFromSource(ctx, src)
	})
}

// Conditional picks one of two selectors at evaluation time
func Conditional(cond Condition, whenTrue, whenFalse Selector) Selector {
	if whenTrue.err != nil {
		return whenTrue
	}
	if whenFalse.err != nil {
		return whenFalse
	}

	typ := whenTrue.typ
	if whenFalse.typ != typ {
		typ = typecheck.Any
	}
	return New(typ, func(ctx *battle.Context) []any {
		if cond != nil && cond(ctx) {
			return whenTrue.run(ctx)
		}
		return whenFalse.run(ctx)
	})
}

// Type returns the type tag of the values the selector yields
func (s Selector) Type() string {
	return s.typ
}

// Err returns the error a step recorded, if any
func (s Selector) Err() error {
	return s.err
}

// Build extracts the raw resolve function
func (s Selector) Build() (Func, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.run, nil
}

// Resolve implements ValueSource
func (s Selector) Resolve(ctx *battle.Context) ([]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.run(ctx), nil
}

// Condition turns the selector into a condition gated by ev
func (s Selector) Condition(ev Evaluator) (Condition, error) {
	fn, err := s.Build()
	if err != nil {
		return nil, err
	}
	return func(ctx *battle.Context) bool {
		return ev(ctx, fn(ctx))
	}, nil
}

// Apply turns the selector into an action running op over its values
func (s Selector) Apply(op Operator) (Action, error) {
	fn, err := s.Build()
	if err != nil {
		return nil, err
	}
	return func(ctx *battle.Context) {
		op(ctx, fn(ctx))
	}, nil
}

func (s Selector) run(ctx *battle.Context) []any {
	if s.fn == nil {
		return []any{}
	}
	return orEmpty(s.fn(ctx))
}

// derive builds the next selector in a chain, keeping an earlier error
func (s Selector) derive(typ string, fn func(ctx *battle.Context, in []any) []any) Selector {
	if s.err != nil {
		return s
	}
	prev := s
	return New(typ, func(ctx *battle.Context) []any {
		return fn(ctx, prev.run(ctx))
	})
}

func orEmpty(values []any) []any {
	if values == nil {
		return []any{}
	}
	return values
}
