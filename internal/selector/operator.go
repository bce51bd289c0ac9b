package selector

import (
	"fmt"
	"log"
	"sort"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
)

// Operator applies a side effect to every selected target
type Operator func(ctx *battle.Context, targets []any)

// Action is a fully bound operator: selector plus operator
type Action func(ctx *battle.Context)

// Args are the named value sources an operator resolves per target
type Args map[string]ValueSource

// Resolved holds the per-target values of Args
type Resolved map[string][]any

// Has reports whether name resolved to at least one value
func (r Resolved) Has(name string) bool {
	return len(r[name]) > 0
}

// First returns the first value resolved for name
func (r Resolved) First(name string) (any, bool) {
	values := r[name]
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// Values returns every value resolved for name
func (r Resolved) Values(name string) []any {
	return r[name]
}

// Number returns the first value of name as a number, or def
func (r Resolved) Number(name string, def float64) float64 {
	v, ok := r.First(name)
	if !ok {
		return def
	}
	return ToNumber(v)
}

// Int returns the first value of name truncated to an int, or def
func (r Resolved) Int(name string, def int) int {
	v, ok := r.First(name)
	if !ok {
		return def
	}
	return int(ToNumber(v))
}

// String returns the first value of name as a string, or def
func (r Resolved) String(name, def string) string {
	v, ok := r.First(name)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Bool returns the first value of name as a bool, or def
func (r Resolved) Bool(name string, def bool) bool {
	v, ok := r.First(name)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return ToNumber(v) != 0
}

// DynamicOperator builds an operator whose arguments are resolved once per
// target with ctx.Subject set to that target. A target whose arguments fail
// to resolve, or whose apply call panics, is logged and skipped so the rest
// of the targets still receive the operator.
func DynamicOperator(name string, args Args, apply func(ctx *battle.Context, target any, in Resolved)) Operator {
	names := make([]string, 0, len(args))
	for argName := range args {
		names = append(names, argName)
	}
	sort.Strings(names)

	return func(ctx *battle.Context, targets []any) {
		for _, target := range targets {
			focused := ctx.WithSubject(target)

			in, err := resolveArgs(focused, names, args)
			if err != nil {
				log.Printf("[OPERATORS] %s: skipping target %s: %v", name, describe(target), err)
				continue
			}

			if err := safeApply(func() { apply(focused, target, in) }); err != nil {
				log.Printf("[OPERATORS] %s: target %s failed: %v", name, describe(target), err)
			}
		}
	}
}

func resolveArgs(ctx *battle.Context, names []string, args Args) (Resolved, error) {
	in := make(Resolved, len(names))
	for _, argName := range names {
		values, err := TryResolve(ctx, args[argName])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", argName, err)
		}
		in[argName] = values
	}
	return in, nil
}

func safeApply(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// Sequence runs actions in order
func Sequence(actions ...Action) Action {
	return func(ctx *battle.Context) {
		for _, a := range actions {
			a(ctx)
		}
	}
}

// When runs whenTrue or whenFalse depending on cond. Either may be nil.
func When(cond Condition, whenTrue, whenFalse Action) Action {
	return func(ctx *battle.Context) {
		if cond(ctx) {
			if whenTrue != nil {
				whenTrue(ctx)
			}
			return
		}
		if whenFalse != nil {
			whenFalse(ctx)
		}
	}
}
