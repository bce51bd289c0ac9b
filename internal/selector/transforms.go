package selector

import (
	"math"
	"strings"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/dice"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// Select maps every value through extract, one to one
func (s Selector) Select(typ string, extract func(ctx *battle.Context, v any) any) Selector {
	return s.derive(typ, func(ctx *battle.Context, in []any) []any {
		out := make([]any, 0, len(in))
		for _, v := range in {
			out = append(out, extract(ctx, v))
		}
		return out
	})
}

// SelectPath reads a dotted field path from every value. The path is checked
// against the type graph outside production.
func (s Selector) SelectPath(path string) Selector {
	if s.err != nil {
		return s
	}
	result, err := typecheck.ValidatePath(s.typ, path)
	if err != nil {
		return Failed(err)
	}
	return s.derive(result, func(_ *battle.Context, in []any) []any {
		return WalkPath(in, path)
	})
}

// SelectProp reads a single field from every value
func (s Selector) SelectProp(name string) Selector {
	if s.err != nil {
		return s
	}
	if strings.Contains(name, ".") {
		return Failed(battleerr.InvalidPathf("selectProp takes a single field name, got %q", name).
			WithMeta(battleerr.MetaPath, name))
	}
	return s.SelectPath(name)
}

// Where keeps the values for which ev holds on a singleton list
func (s Selector) Where(ev Evaluator) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		out := make([]any, 0, len(in))
		for _, v := range in {
			if ev(ctx, []any{v}) {
				out = append(out, v)
			}
		}
		return out
	})
}

// WhereAttr keeps the values whose derived attribute satisfies ev
func (s Selector) WhereAttr(extract func(ctx *battle.Context, v any) []any, ev Evaluator) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		out := make([]any, 0, len(in))
		for _, v := range in {
			if ev(ctx, orEmpty(extract(ctx, v))) {
				out = append(out, v)
			}
		}
		return out
	})
}

// WhereAttrPath is WhereAttr with a validated field path as the extractor
func (s Selector) WhereAttrPath(path string, ev Evaluator) Selector {
	if s.err != nil {
		return s
	}
	if _, err := typecheck.ValidatePath(s.typ, path); err != nil {
		return Failed(err)
	}
	return s.WhereAttr(func(_ *battle.Context, v any) []any {
		return WalkPath([]any{v}, path)
	}, ev)
}

// And intersects with other by value identity, keeping this selector's order
func (s Selector) And(other Selector) Selector {
	if other.err != nil {
		return other
	}
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		right := other.run(ctx)
		out := make([]any, 0, len(in))
		for _, v := range in {
			if contains(right, v) && !contains(out, v) {
				out = append(out, v)
			}
		}
		return out
	})
}

// Or concatenates other. Unless duplicate is set the result is deduplicated
// by value identity.
func (s Selector) Or(other Selector, duplicate bool) Selector {
	if other.err != nil {
		return other
	}
	typ := s.typ
	if other.typ != typ {
		typ = typecheck.Any
	}
	return s.derive(typ, func(ctx *battle.Context, in []any) []any {
		right := other.run(ctx)
		out := make([]any, 0, len(in)+len(right))
		if duplicate {
			out = append(out, in...)
			return append(out, right...)
		}
		for _, v := range append(append([]any{}, in...), right...) {
			if !contains(out, v) {
				out = append(out, v)
			}
		}
		return out
	})
}

// RandomPick picks n distinct values using the battle RNG
func (s Selector) RandomPick(n ValueSource) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		count := int(firstNumber(ctx, n, 1))
		if count <= 0 {
			return []any{}
		}
		shuffled := shuffle(ctx, in)
		if count < len(shuffled) {
			shuffled = shuffled[:count]
		}
		return shuffled
	})
}

// RandomSample keeps each value with the given percent chance
func (s Selector) RandomSample(percent ValueSource) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		chance := firstNumber(ctx, percent, 100)
		out := make([]any, 0, len(in))
		for _, v := range in {
			if roll(ctx, chance) {
				out = append(out, v)
			}
		}
		return out
	})
}

// Shuffled permutes the values using the battle RNG
func (s Selector) Shuffled() Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		return shuffle(ctx, in)
	})
}

// Length yields the number of values as a single number
func (s Selector) Length() Selector {
	return s.derive(typecheck.Number, func(_ *battle.Context, in []any) []any {
		return []any{float64(len(in))}
	})
}

// Limit keeps the first n values
func (s Selector) Limit(n ValueSource) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		count := int(math.Max(0, firstNumber(ctx, n, float64(len(in)))))
		if count < len(in) {
			return in[:count]
		}
		return in
	})
}

// Flat spreads any nested lists into the sequence
func (s Selector) Flat() Selector {
	return s.derive(s.typ, func(_ *battle.Context, in []any) []any {
		out := make([]any, 0, len(in))
		for _, v := range in {
			out = appendFlat(out, v)
		}
		return out
	})
}

// When branches at evaluation time: trueValue when cond holds, else
// falseValue if given, else the input unchanged.
func (s Selector) When(cond Condition, trueValue, falseValue ValueSource) Selector {
	return s.derive(s.typ, func(ctx *battle.Context, in []any) []any {
		if cond != nil && cond(ctx) {
			return GetValueFromSource(ctx, trueValue)
		}
		if falseValue != nil {
			return GetValueFromSource(ctx, falseValue)
		}
		return in
	})
}

func shuffle(ctx *battle.Context, in []any) []any {
	out := make([]any, len(in))
	copy(out, in)
	if ctx == nil || ctx.Battle == nil {
		return out
	}
	ctx.Battle.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func roll(ctx *battle.Context, percent float64) bool {
	if ctx == nil || ctx.Battle == nil {
		return percent >= 100
	}
	return dice.Chance(ctx.Battle, percent)
}
