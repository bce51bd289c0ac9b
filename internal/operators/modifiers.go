package operators

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// ModifierSpec describes a modifier an operator registers. Kind defaults to
// delta and Priority to modifiers.PriorityDefault. A nil Scope keeps the
// modifier live until its source is removed.
type ModifierSpec struct {
	Kind     selector.ValueSource
	Value    selector.ValueSource
	Priority selector.ValueSource
	Scope    *modifiers.PhaseScope
}

func (s ModifierSpec) args(extra selector.Args) selector.Args {
	extra["kind"] = s.Kind
	extra["priority"] = s.Priority
	return compact(extra)
}

// build creates the modifier from the resolved kind and priority, binding
// the scope to the phases running now.
func (s ModifierSpec) build(ctx *battle.Context, in selector.Resolved, value modifiers.Value) (*modifiers.Modifier, error) {
	kind, err := modifiers.ParseKind(in.String("kind", string(modifiers.KindDelta)))
	if err != nil {
		return nil, err
	}
	mod := &modifiers.Modifier{
		Kind:     kind,
		Value:    value,
		Priority: in.Int("priority", modifiers.PriorityDefault),
		Source:   sourceOf(ctx),
	}
	if s.Scope != nil {
		bound := s.Scope.Bind(ctx.Phases())
		mod.Scope = &bound
	}
	return mod, nil
}

// AddAttributeModifier registers a static modifier on stat for every target
// pet. The value is resolved once when the operator runs.
func AddAttributeModifier(stat selector.ValueSource, spec ModifierSpec) selector.Operator {
	return operate(TypeAddAttributeModifier, spec.args(selector.Args{"stat": stat, "value": spec.Value}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}
			s, err := parseStat(in, "stat")
			if err != nil {
				return err
			}
			if !in.Has("value") {
				return fmt.Errorf("missing value")
			}
			mod, err := spec.build(ctx, in, modifiers.StaticValue(in.Number("value", 0)))
			if err != nil {
				return err
			}
			_, err = pet.Attributes().Add(string(s), mod)
			return err
		})
}

// AddDynamicAttributeModifier registers a modifier on stat for every target
// pet whose value is re-read from spec.Value each time the stat is computed.
func AddDynamicAttributeModifier(stat selector.ValueSource, spec ModifierSpec) selector.Operator {
	return operate(TypeAddDynamicAttributeModifier, spec.args(selector.Args{"stat": stat}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}
			s, err := parseStat(in, "stat")
			if err != nil {
				return err
			}
			if spec.Value == nil {
				return fmt.Errorf("missing value")
			}

			src := spec.Value
			tracked := modifiers.FuncValue(func() float64 {
				values := selector.GetValueFromSource(ctx, src)
				if len(values) == 0 {
					return 0
				}
				return selector.ToNumber(values[0])
			})

			mod, err := spec.build(ctx, in, tracked)
			if err != nil {
				return err
			}
			_, err = pet.Attributes().Add(string(s), mod)
			return err
		})
}

// AddClampModifier bounds stat on every target pet. Only the sides that
// resolve to a value are registered, so a floor alone leaves the stat
// unbounded above.
func AddClampModifier(stat, minValue, maxValue, priority selector.ValueSource, scope *modifiers.PhaseScope) selector.Operator {
	spec := ModifierSpec{Priority: priority, Scope: scope}
	return operate(TypeAddClampModifier, compact(selector.Args{
		"stat":     stat,
		"min":      minValue,
		"max":      maxValue,
		"priority": priority,
	}), func(ctx *battle.Context, target any, in selector.Resolved) error {
		pet, err := asPet(target)
		if err != nil {
			return err
		}
		s, err := parseStat(in, "stat")
		if err != nil {
			return err
		}
		if !in.Has("min") && !in.Has("max") {
			return fmt.Errorf("clamp needs a min or a max value")
		}

		sides := []struct {
			arg  string
			kind modifiers.Kind
		}{
			{"min", modifiers.KindClampMin},
			{"max", modifiers.KindClampMax},
		}
		for _, side := range sides {
			if !in.Has(side.arg) {
				continue
			}
			mod, err := spec.build(ctx, in, modifiers.StaticValue(in.Number(side.arg, 0)))
			if err != nil {
				return err
			}
			mod.Kind = side.kind
			if _, err := pet.Attributes().Add(string(s), mod); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddConfigModifier registers a modifier on a config registry key in the
// running battle's scope. It applies once per action however many targets
// were selected, and not at all when the selection is empty.
func AddConfigModifier(key selector.ValueSource, spec ModifierSpec) selector.Operator {
	op := operate(TypeAddConfigModifier, spec.args(selector.Args{"key": key, "value": spec.Value}),
		func(ctx *battle.Context, _ any, in selector.Resolved) error {
			if ctx.Config == nil {
				return fmt.Errorf("no config registry in context")
			}
			configKey := in.String("key", "")
			if configKey == "" {
				return fmt.Errorf("missing key")
			}
			if !in.Has("value") {
				return fmt.Errorf("missing value")
			}
			mod, err := spec.build(ctx, in, modifiers.StaticValue(in.Number("value", 0)))
			if err != nil {
				return err
			}
			if _, err := ctx.Config.AddModifier(configKey, mod); err != nil {
				return err
			}
			log.Printf("[OPERATORS] Config modifier %s %s on %s", mod.Kind, mod.ID, configKey)
			return nil
		})

	return func(ctx *battle.Context, targets []any) {
		if len(targets) == 0 {
			return
		}
		op(ctx, targets[:1])
	}
}
