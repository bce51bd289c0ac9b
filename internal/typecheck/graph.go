// Package typecheck holds the static type graph of everything a selector can
// yield and validates selectPath/selectProp strings against it while content
// is compiled. Validation is skipped in production.
package typecheck

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
)

// Type names used as selector type tags
const (
	Number          = "number"
	String          = "string"
	Boolean         = "boolean"
	Any             = "any"
	Pet             = "Pet"
	Player          = "Player"
	Mark            = "Mark"
	BaseMark        = "BaseMark"
	Skill           = "Skill"
	Species         = "Species"
	UseSkillContext = "UseSkillContext"
	DamageContext   = "DamageContext"
	HealContext     = "HealContext"
)

// Field describes one named field of a type
type Field struct {
	Type  string
	Array bool
}

func scalar(t string) Field { return Field{Type: t} }
func array(t string) Field  { return Field{Type: t, Array: true} }

var graph = map[string]map[string]Field{
	Pet: {
		"id":        scalar(String),
		"name":      scalar(String),
		"currentHp": scalar(Number),
		"maxHp":     scalar(Number),
		"element":   scalar(String),
		"isAlive":   scalar(Boolean),
		"marks":     array(Mark),
		"owner":     scalar(Player),
		"skills":    array(Skill),
		"species":   scalar(Species),
		"attack":    scalar(Number),
		"defense":   scalar(Number),
		"spAttack":  scalar(Number),
		"spDefense": scalar(Number),
		"speed":     scalar(Number),
		"critRate":  scalar(Number),
		"accuracy":  scalar(Number),
		"evasion":   scalar(Number),
	},
	Player: {
		"id":        scalar(String),
		"name":      scalar(String),
		"rage":      scalar(Number),
		"maxRage":   scalar(Number),
		"activePet": scalar(Pet),
		"team":      array(Pet),
	},
	Mark: {
		"id":       scalar(String),
		"baseId":   scalar(String),
		"name":     scalar(String),
		"stack":    scalar(Number),
		"duration": scalar(Number),
		"owner":    scalar(Pet),
		"tags":     array(String),
		"isActive": scalar(Boolean),
	},
	BaseMark: {
		"id":        scalar(String),
		"name":      scalar(String),
		"maxStacks": scalar(Number),
		"duration":  scalar(Number),
		"tags":      array(String),
	},
	Skill: {
		"id":       scalar(String),
		"name":     scalar(String),
		"power":    scalar(Number),
		"accuracy": scalar(Number),
		"rage":     scalar(Number),
		"element":  scalar(String),
		"category": scalar(String),
		"priority": scalar(Number),
		"tags":     array(String),
	},
	Species: {
		"id":      scalar(String),
		"name":    scalar(String),
		"element": scalar(String),
	},
	UseSkillContext: {
		"pet":      scalar(Pet),
		"origin":   scalar(Player),
		"skill":    scalar(Skill),
		"target":   scalar(Pet),
		"power":    scalar(Number),
		"accuracy": scalar(Number),
		"rage":     scalar(Number),
		"crit":     scalar(Boolean),
		"hit":      scalar(Boolean),
	},
	DamageContext: {
		"source":     scalar(Pet),
		"target":     scalar(Pet),
		"baseDamage": scalar(Number),
		"damage":     scalar(Number),
		"category":   scalar(String),
		"crit":       scalar(Boolean),
	},
	HealContext: {
		"source": scalar(Pet),
		"target": scalar(Pet),
		"amount": scalar(Number),
	},
}

// Enabled reports whether path validation runs. It is re-read on every call so
// the environment can be flipped in tests.
func Enabled() bool {
	return !config.IsProduction()
}

// Known reports whether typ is a type in the graph or a primitive
func Known(typ string) bool {
	switch typ {
	case Number, String, Boolean, Any:
		return true
	}
	_, ok := graph[typ]
	return ok
}

// IsNumber reports whether typ is the numeric type tag
func IsNumber(typ string) bool {
	return typ == Number
}

// Fields lists the field names of typ in sorted order
func Fields(typ string) []string {
	fields := graph[typ]
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the field of typ named name
func Lookup(typ, name string) (Field, bool) {
	f, ok := graph[typ][name]
	return f, ok
}

// ResultType walks path from typ and returns the element type it yields,
// or Any when the path cannot be resolved.
func ResultType(typ, path string) string {
	result, err := walk(typ, path)
	if err != nil {
		return Any
	}
	return result
}

// ValidatePath checks path against the graph and returns the type it yields.
// Array fields fan out, so "marks.duration" and "marks[].duration" both yield
// number. In production the graph is not consulted and every path yields Any.
func ValidatePath(typ, path string) (string, error) {
	if !Enabled() {
		return Any, nil
	}
	return walk(typ, path)
}

func walk(typ, path string) (string, error) {
	if path == "" {
		return "", battleerr.InvalidPathf("empty path on type %s", typ).
			WithMeta(battleerr.MetaPath, path)
	}

	current := typ
	for _, segment := range strings.Split(path, ".") {
		name := strings.TrimSuffix(segment, "[]")
		if current == Any {
			continue
		}

		fields, ok := graph[current]
		if !ok {
			return "", battleerr.InvalidPathf("invalid path %q on type %s: %s has no fields, expected one of %s",
				path, typ, current, objectTypes()).
				WithMeta(battleerr.MetaPath, path)
		}

		field, ok := fields[name]
		if !ok {
			return "", battleerr.InvalidPathf("invalid path %q on type %s: no field %q, expected a field of %s (%s)",
				path, typ, name, current, strings.Join(Fields(current), ", ")).
				WithMeta(battleerr.MetaPath, path)
		}

		if strings.HasSuffix(segment, "[]") && !field.Array {
			return "", battleerr.InvalidPathf("invalid path %q on type %s: %s.%s is %s, expected an array",
				path, typ, current, name, field.Type).
				WithMeta(battleerr.MetaPath, path)
		}
		current = field.Type
	}
	return current, nil
}

func objectTypes() string {
	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
