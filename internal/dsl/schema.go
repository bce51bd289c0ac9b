package dsl

import (
	"github.com/invopop/jsonschema"
)

// The union types below accept more than one JSON shape, which struct
// reflection cannot express. Each one describes its shapes by hand.

func oneOf(description string, shapes ...*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Description: description, OneOf: shapes}
}

func typed(t string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: t}
}

// JSONSchema implements jsonschema's customizer
func (Triggers) JSONSchema() *jsonschema.Schema {
	return oneOf("A trigger name or a list of trigger names",
		typed("string"),
		&jsonschema.Schema{Type: "array", Items: typed("string")},
	)
}

// JSONSchema implements jsonschema's customizer
func (Operators) JSONSchema() *jsonschema.Schema {
	return oneOf("An operator or an ordered list of operators",
		typed("object"),
		&jsonschema.Schema{Type: "array", Items: typed("object")},
	)
}

// JSONSchema implements jsonschema's customizer
func (Value) JSONSchema() *jsonschema.Schema {
	return oneOf("A literal, an array of values, or a tagged value object "+
		"(raw:number, raw:string, raw:boolean, entity:baseMark, entity:baseSkill, entity:species, dynamic, conditional, config)",
		typed("string"),
		typed("number"),
		typed("boolean"),
		typed("array"),
		typed("object"),
	)
}

// JSONSchema implements jsonschema's customizer
func (Selector) JSONSchema() *jsonschema.Schema {
	return oneOf("A base selector key, {base, chain}, {type: selector, value, chain} or {type: conditional, condition, trueSelector, falseSelector}",
		typed("string"),
		typed("object"),
	)
}

// JSONSchema implements jsonschema's customizer
func (Condition) JSONSchema() *jsonschema.Schema {
	return oneOf("A built-in condition name, or {type: evaluate|some|every|not, ...}",
		typed("string"),
		typed("object"),
	)
}
