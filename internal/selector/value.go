package selector

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
)

// ValueSource is anything that resolves to concrete values in a context
type ValueSource interface {
	Resolve(ctx *battle.Context) ([]any, error)
}

// Literal is a constant value. Slices resolve to their elements.
type Literal struct {
	Value any
}

// Resolve implements ValueSource
func (l Literal) Resolve(*battle.Context) ([]any, error) {
	return orEmpty(Flatten(l.Value)), nil
}

// ConditionalSource resolves one of two branches at evaluation time
type ConditionalSource struct {
	Condition Condition
	True      ValueSource
	False     ValueSource
}

// Resolve implements ValueSource
func (c ConditionalSource) Resolve(ctx *battle.Context) ([]any, error) {
	if c.Condition != nil && c.Condition(ctx) {
		return resolve(ctx, c.True)
	}
	return resolve(ctx, c.False)
}

// ConfigSource reads a registered tunable. The registry on the context wins
// so battle-scoped overrides apply; Registry is the fallback captured when
// the content was compiled.
type ConfigSource struct {
	Key      string
	Registry *registry.Registry
}

// Resolve implements ValueSource
func (c ConfigSource) Resolve(ctx *battle.Context) ([]any, error) {
	reg := c.Registry
	var phases []modifiers.Phase
	if ctx != nil {
		if ctx.Config != nil {
			reg = ctx.Config
		}
		phases = ctx.Phases()
	}
	if reg == nil {
		return nil, battleerr.NotFoundf("no config registry for key %s", c.Key)
	}

	value, ok := reg.Get(c.Key, phases)
	if !ok {
		return nil, battleerr.NotFoundf("config key %s is not registered", c.Key)
	}
	return orEmpty(Flatten(value)), nil
}

// LazySource looks an entity up on first use and remembers it. Content can
// reference marks and species that load after the referencing effect.
type LazySource struct {
	Kind   string
	ID     string
	Lookup func(id string) (any, error)

	mu     sync.Mutex
	cached any
	loaded bool
}

// NewLazySource creates a lazy entity reference
func NewLazySource(kind, id string, lookup func(id string) (any, error)) *LazySource {
	return &LazySource{Kind: kind, ID: id, Lookup: lookup}
}

// Resolve implements ValueSource
func (l *LazySource) Resolve(*battle.Context) ([]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		if l.Lookup == nil {
			return nil, battleerr.NotFoundf("%s %s has no lookup", l.Kind, l.ID)
		}
		v, err := l.Lookup(l.ID)
		if err != nil {
			return nil, battleerr.Wrapf(err, "failed to load %s %s", l.Kind, l.ID)
		}
		if isNil(v) {
			return nil, battleerr.NotFoundf("%s %s not found", l.Kind, l.ID)
		}
		l.cached = v
		l.loaded = true
	}
	return []any{l.cached}, nil
}

// Observed reads a pull-based value every time it is resolved
type Observed struct {
	Value modifiers.Value
}

// Resolve implements ValueSource
func (o Observed) Resolve(*battle.Context) ([]any, error) {
	if o.Value == nil {
		return []any{}, nil
	}
	return []any{o.Value.Current()}, nil
}

// GetValueFromSource resolves any value source to a list. It never fails:
// errors and missing sources resolve to an empty list, and plain literals
// become a singleton.
func GetValueFromSource(ctx *battle.Context, src any) []any {
	values, err := resolveAny(ctx, src)
	if err != nil {
		return []any{}
	}
	return values
}

// TryResolve resolves src, turning a panic in collaborator code into an error
func TryResolve(ctx *battle.Context, src ValueSource) (values []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = battleerr.Newf(battleerr.CodeInternal, "value resolution panicked: %v", r)
		}
	}()
	return resolve(ctx, src)
}

func resolve(ctx *battle.Context, src ValueSource) ([]any, error) {
	if src == nil || isNil(src) {
		return []any{}, nil
	}
	values, err := src.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

func resolveAny(ctx *battle.Context, src any) ([]any, error) {
	switch s := src.(type) {
	case nil:
		return []any{}, nil
	case ValueSource:
		return resolve(ctx, s)
	case func(*battle.Context) []any:
		return Func(s).Resolve(ctx)
	case modifiers.Value:
		return Observed{Value: s}.Resolve(ctx)
	default:
		return Literal{Value: s}.Resolve(ctx)
	}
}

// TypeOf infers the type tag of a literal value
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return typecheck.Any
	case string:
		return typecheck.String
	case bool:
		return typecheck.Boolean
	case battle.Pet:
		return typecheck.Pet
	case battle.Player:
		return typecheck.Player
	case battle.Mark:
		return typecheck.Mark
	case battle.Skill:
		return typecheck.Skill
	}
	if isNumeric(v) {
		return typecheck.Number
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return typecheck.Any
	}
	typ := ""
	for i := 0; i < rv.Len(); i++ {
		elem := TypeOf(rv.Index(i).Interface())
		switch {
		case typ == "":
			typ = elem
		case typ != elem:
			return typecheck.Any
		}
	}
	if typ == "" {
		return typecheck.Any
	}
	return typ
}

// describe renders a value for log lines
func describe(v any) string {
	if e, ok := v.(battle.Entity); ok {
		return e.ID()
	}
	return fmt.Sprintf("%v", v)
}
