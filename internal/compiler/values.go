package compiler

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// listSource concatenates the values of its items in order
type listSource []selector.ValueSource

// Resolve implements selector.ValueSource
func (l listSource) Resolve(ctx *battle.Context) ([]any, error) {
	out := make([]any, 0, len(l))
	for _, src := range l {
		values, err := selector.TryResolve(ctx, src)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}
	return out, nil
}

// parseValue compiles a value node into a value source
func (u *unit) parseValue(v *dsl.Value, location string) (selector.ValueSource, error) {
	src, _, err := u.typedValue(v, location)
	return src, err
}

func (u *unit) requiredValue(v *dsl.Value, location string) (selector.ValueSource, error) {
	if v == nil {
		return nil, u.missing(location, "value")
	}
	return u.parseValue(v, location)
}

// optionalValue returns a nil source for an absent node
func (u *unit) optionalValue(v *dsl.Value, location string) (selector.ValueSource, error) {
	if v == nil {
		return nil, nil
	}
	return u.parseValue(v, location)
}

// typedValue compiles a value node and reports the element type it yields
func (u *unit) typedValue(v *dsl.Value, location string) (selector.ValueSource, string, error) {
	switch {
	case v == nil:
		return nil, "", u.missing(location, "value")
	case v.IsArray():
		return u.arrayValue(v, location)
	case v.IsUntagged():
		return nil, "", u.missing(at(location, "type"), "value type")
	case v.IsLiteral():
		return selector.Literal{Value: v.Literal}, selector.TypeOf(v.Literal), nil
	case v.IsRaw():
		return u.rawValue(v, location)
	case v.IsEntity():
		return u.entityValue(v, location)
	}

	switch v.Type {
	case dsl.ValueDynamic:
		s, err := u.parseSelector(v.Selector, at(location, "selector"))
		if err != nil {
			return nil, "", err
		}
		return s, s.Type(), nil

	case dsl.ValueConditional:
		if v.Condition == nil {
			return nil, "", u.missing(at(location, "condition"), "condition")
		}
		cond, err := u.parseCondition(v.Condition, at(location, "condition"))
		if err != nil {
			return nil, "", err
		}
		whenTrue, trueType, err := u.typedValue(v.TrueValue, at(location, "trueValue"))
		if err != nil {
			return nil, "", err
		}
		typ := trueType
		var whenFalse selector.ValueSource
		if v.FalseValue != nil {
			src, falseType, err := u.typedValue(v.FalseValue, at(location, "falseValue"))
			if err != nil {
				return nil, "", err
			}
			whenFalse = src
			if falseType != trueType {
				typ = typecheck.Any
			}
		}
		return selector.ConditionalSource{Condition: cond, True: whenTrue, False: whenFalse}, typ, nil

	case dsl.ValueConfig:
		if v.Key == "" {
			return nil, "", u.missing(at(location, "key"), "config key")
		}
		src := selector.ConfigSource{Key: v.Key, Registry: u.c.registry}
		typ := typecheck.Any
		if entry, ok := u.c.tunables.Entry(v.Key); ok {
			typ = selector.TypeOf(entry.Default)
		}
		return src, typ, nil
	}

	return nil, "", u.unknown(at(location, "type"), "value", v.Type)
}

func (u *unit) arrayValue(v *dsl.Value, location string) (selector.ValueSource, string, error) {
	list := make(listSource, 0, len(v.Items))
	typ := ""
	for i := range v.Items {
		src, elem, err := u.typedValue(&v.Items[i], index(location, i))
		if err != nil {
			return nil, "", err
		}
		list = append(list, src)
		switch {
		case typ == "":
			typ = elem
		case typ != elem:
			typ = typecheck.Any
		}
	}
	if typ == "" {
		typ = typecheck.Any
	}
	return list, typ, nil
}

// rawValue registers a tunable literal and reads it back through the
// registry. Literals without a configId are keyed by their location, which
// stays stable as long as the document's shape does.
func (u *unit) rawValue(v *dsl.Value, location string) (selector.ValueSource, string, error) {
	var typ string
	var ok bool
	value := v.Value
	switch v.Type {
	case dsl.ValueRawNumber:
		typ = typecheck.Number
		value, ok = asNumber(v.Value)
	case dsl.ValueRawString:
		typ = typecheck.String
		_, ok = value.(string)
	case dsl.ValueRawBoolean:
		typ = typecheck.Boolean
		_, ok = value.(bool)
	default:
		return nil, "", u.unknown(at(location, "type"), "value", v.Type)
	}
	if !ok {
		return nil, "", u.fail(at(location, "value"),
			battleerr.TypeMismatchf("%s value must be a %s, got %v", v.Type, typ, v.Value))
	}

	id := v.ConfigID
	if id == "" {
		id = location
	}
	key := registry.Key(u.effectID, id)
	u.c.tunables.Register(key, value, v.Tags...)

	return selector.ConfigSource{Key: key, Registry: u.c.registry}, typ, nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// entityValue becomes a lookup against the data repository on first use
func (u *unit) entityValue(v *dsl.Value, location string) (selector.ValueSource, string, error) {
	id, ok := v.Value.(string)
	if !ok || id == "" {
		return nil, "", u.fail(at(location, "value"),
			battleerr.TypeMismatchf("%s value must be an id string, got %v", v.Type, v.Value))
	}

	repo := u.c.repo
	var lookup func(id string) (any, error)
	var typ string
	switch v.Type {
	case dsl.ValueBaseMark:
		typ = typecheck.BaseMark
		if repo != nil {
			lookup = func(id string) (any, error) { return repo.Mark(id) }
		}
	case dsl.ValueBaseSkill:
		typ = typecheck.Skill
		if repo != nil {
			lookup = func(id string) (any, error) { return repo.Skill(id) }
		}
	case dsl.ValueSpecies:
		typ = typecheck.Species
		if repo != nil {
			lookup = func(id string) (any, error) { return repo.Species(id) }
		}
	default:
		return nil, "", u.unknown(at(location, "type"), "value", v.Type)
	}

	return selector.NewLazySource(v.Type, id, lookup), typ, nil
}
