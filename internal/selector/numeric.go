package selector

import (
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// ToNumber coerces v to a float64. Anything that is not a number becomes 0.
func ToNumber(v any) float64 {
	n, _ := toNumber(v)
	return n
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// firstNumber resolves src and coerces its first value, or returns def
func firstNumber(ctx *battle.Context, src ValueSource, def float64) float64 {
	values := GetValueFromSource(ctx, src)
	if len(values) == 0 {
		return def
	}
	return ToNumber(values[0])
}

func (s Selector) requireNumber(step string) Selector {
	if s.err != nil {
		return s
	}
	if !typecheck.IsNumber(s.typ) {
		return Failed(battleerr.TypeMismatchf("%s requires a number selector, got %s", step, s.typ).
			WithMeta(battleerr.MetaTag, step))
	}
	return s
}

// mapNumbers applies fn to every element with the argument resolved once
func (s Selector) mapNumbers(step string, arg ValueSource, fn func(v, x float64) float64) Selector {
	guarded := s.requireNumber(step)
	if guarded.err != nil {
		return guarded
	}
	return guarded.derive(typecheck.Number, func(ctx *battle.Context, in []any) []any {
		x := firstNumber(ctx, arg, 0)
		out := make([]any, len(in))
		for i, v := range in {
			out[i] = fn(ToNumber(v), x)
		}
		return out
	})
}

// Sum collapses the values into their total
func (s Selector) Sum() Selector {
	guarded := s.requireNumber("sum")
	if guarded.err != nil {
		return guarded
	}
	return guarded.derive(typecheck.Number, func(_ *battle.Context, in []any) []any {
		total := 0.0
		for _, v := range in {
			total += ToNumber(v)
		}
		return []any{total}
	})
}

// Add adds arg to every value
func (s Selector) Add(arg ValueSource) Selector {
	return s.mapNumbers("add", arg, func(v, x float64) float64 { return v + x })
}

// Multiply multiplies every value by arg
func (s Selector) Multiply(arg ValueSource) Selector {
	return s.mapNumbers("multiply", arg, func(v, x float64) float64 { return v * x })
}

// Divide divides every value by arg. Division by zero yields 0.
func (s Selector) Divide(arg ValueSource) Selector {
	return s.mapNumbers("divide", arg, func(v, x float64) float64 {
		if x == 0 {
			return 0
		}
		return v / x
	})
}

// ClampMin raises every value to at least arg
func (s Selector) ClampMin(arg ValueSource) Selector {
	return s.mapNumbers("clampMin", arg, math.Max)
}

// ClampMax lowers every value to at most arg
func (s Selector) ClampMax(arg ValueSource) Selector {
	return s.mapNumbers("clampMax", arg, math.Min)
}
