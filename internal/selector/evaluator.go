package selector

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
)

// Evaluator is a predicate over a list of selected values. Leaf evaluators
// are existential: they hold when some value satisfies them.
type Evaluator func(ctx *battle.Context, values []any) bool

// Comparison operators accepted by Compare
const (
	OpGreater      = ">"
	OpLess         = "<"
	OpGreaterEqual = ">="
	OpLessEqual    = "<="
	OpEqual        = "=="
	OpNotEqual     = "!="
)

// Compare checks values against the resolved operand with op
func Compare(op string, operand ValueSource) (Evaluator, error) {
	cmp, err := comparator(op)
	if err != nil {
		return nil, err
	}
	return func(ctx *battle.Context, values []any) bool {
		refs := GetValueFromSource(ctx, operand)
		for _, v := range values {
			for _, ref := range refs {
				if cmp(v, ref) {
					return true
				}
			}
		}
		return false
	}, nil
}

func comparator(op string) (func(a, b any) bool, error) {
	numeric := func(test func(a, b float64) bool) func(a, b any) bool {
		return func(a, b any) bool {
			x, okA := toNumber(a)
			y, okB := toNumber(b)
			return okA && okB && test(x, y)
		}
	}

	switch op {
	case OpGreater:
		return numeric(func(a, b float64) bool { return a > b }), nil
	case OpLess:
		return numeric(func(a, b float64) bool { return a < b }), nil
	case OpGreaterEqual:
		return numeric(func(a, b float64) bool { return a >= b }), nil
	case OpLessEqual:
		return numeric(func(a, b float64) bool { return a <= b }), nil
	case OpEqual:
		return equal, nil
	case OpNotEqual:
		return func(a, b any) bool { return !equal(a, b) }, nil
	}
	return nil, battleerr.UnknownTag("compare operator", op)
}

// equal compares numbers numerically and everything else by identity
func equal(a, b any) bool {
	if isNumeric(a) || isNumeric(b) {
		x, okA := toNumber(a)
		y, okB := toNumber(b)
		if okA && okB {
			return x == y
		}
	}
	return Identical(a, b)
}

// Same holds when some value is identical to some operand value
func Same(operand ValueSource) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		refs := GetValueFromSource(ctx, operand)
		for _, v := range values {
			if contains(refs, v) {
				return true
			}
		}
		return false
	}
}

// NotSame holds when some value matches none of the operand values
func NotSame(operand ValueSource) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		refs := GetValueFromSource(ctx, operand)
		for _, v := range values {
			if !contains(refs, v) {
				return true
			}
		}
		return false
	}
}

// Probability rolls the battle RNG against a percent chance
func Probability(percent ValueSource) Evaluator {
	return func(ctx *battle.Context, _ []any) bool {
		return roll(ctx, firstNumber(ctx, percent, 0))
	}
}

// Contain holds when some value carries one of the operand tags. Values
// with Tags() are matched on their tags, strings on equality.
func Contain(tag ValueSource) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		wanted := GetValueFromSource(ctx, tag)
		for _, v := range values {
			for _, t := range tagsOf(v) {
				for _, w := range wanted {
					if s, ok := w.(string); ok && s == t {
						return true
					}
				}
			}
		}
		return false
	}
}

func tagsOf(v any) []string {
	switch x := v.(type) {
	case interface{ Tags() []string }:
		return x.Tags()
	case []string:
		return x
	case string:
		return []string{x}
	}
	return nil
}

// Exist holds when at least one value was selected
func Exist() Evaluator {
	return func(_ *battle.Context, values []any) bool {
		return len(values) > 0
	}
}

// AnyOf holds when at least one evaluator holds
func AnyOf(evs ...Evaluator) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		for _, ev := range evs {
			if ev(ctx, values) {
				return true
			}
		}
		return false
	}
}

// AllOf holds when every evaluator holds
func AllOf(evs ...Evaluator) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		for _, ev := range evs {
			if !ev(ctx, values) {
				return false
			}
		}
		return true
	}
}

// Not negates an evaluator
func Not(ev Evaluator) Evaluator {
	return func(ctx *battle.Context, values []any) bool {
		return !ev(ctx, values)
	}
}
