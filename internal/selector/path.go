package selector

import (
	"reflect"
	"strings"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
)

// Prop reads a named field from a value. Entities expose fields through
// battle.PropReader; decoded literals are plain maps.
func Prop(v any, name string) (any, bool) {
	switch x := v.(type) {
	case battle.PropReader:
		return x.Prop(name)
	case map[string]any:
		val, ok := x[name]
		return val, ok
	}
	return nil, false
}

// WalkPath follows a dotted path from every value, fanning out array fields
// one level per segment. Missing fields are dropped.
func WalkPath(values []any, path string) []any {
	current := values
	for _, segment := range strings.Split(path, ".") {
		name := strings.TrimSuffix(segment, "[]")
		next := make([]any, 0, len(current))
		for _, v := range current {
			val, ok := Prop(v, name)
			if !ok {
				continue
			}
			next = appendFlat(next, val)
		}
		current = next
	}
	return current
}

// Flatten spreads slice values into individual elements
func Flatten(v any) []any {
	return appendFlat(nil, v)
}

func appendFlat(out []any, v any) []any {
	if isNil(v) {
		return out
	}
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if !isNil(item) {
				out = append(out, item)
			}
		}
		return out
	case string, []byte:
		return append(out, v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return append(out, v)
	}
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		if !isNil(item) {
			out = append(out, item)
		}
	}
	return out
}

// isNil catches typed nil pointers hiding in interfaces
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Identical reports value identity: entities by id, numbers numerically,
// everything else with == when comparable.
func Identical(a, b any) bool {
	if ea, ok := a.(battle.Entity); ok {
		if eb, ok := b.(battle.Entity); ok {
			return ea.ID() == eb.ID()
		}
		return false
	}

	if na, ok := toNumber(a); ok && isNumeric(a) {
		if nb, ok := toNumber(b); ok && isNumeric(b) {
			return na == nb
		}
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func contains(values []any, v any) bool {
	for _, existing := range values {
		if Identical(existing, v) {
			return true
		}
	}
	return false
}
