package dsl

import (
	"encoding/json"
	"strings"
)

// Value type tags
const (
	ValueRawNumber   = "raw:number"
	ValueRawString   = "raw:string"
	ValueRawBoolean  = "raw:boolean"
	ValueBaseMark    = "entity:baseMark"
	ValueBaseSkill   = "entity:baseSkill"
	ValueSpecies     = "entity:species"
	ValueDynamic     = "dynamic"
	ValueConditional = "conditional"
	ValueConfig      = "config"
)

// Value is an operator argument or selector source. Bare strings, numbers,
// booleans and arrays are literals; objects are tagged by Type.
type Value struct {
	// Literal is set for a bare scalar
	Literal any `json:"-"`
	// Items is non-nil for a bare array
	Items []Value `json:"-"`

	Type       string     `json:"type,omitempty"`
	Value      any        `json:"value,omitempty" jsonschema:"description=Payload of raw:* and entity:* values"`
	ConfigID   string     `json:"configId,omitempty" jsonschema:"description=Stable config key suffix for raw:* values"`
	Tags       []string   `json:"tags,omitempty"`
	Selector   *Selector  `json:"selector,omitempty"`
	Condition  *Condition `json:"condition,omitempty"`
	TrueValue  *Value     `json:"trueValue,omitempty"`
	FalseValue *Value     `json:"falseValue,omitempty"`
	Key        string     `json:"key,omitempty" jsonschema:"description=Registry key read by a config value"`

	// untagged marks an object decoded without a type
	untagged bool
}

// Lit returns a literal value
func Lit(v any) *Value {
	return &Value{Literal: v}
}

// IsLiteral reports whether v is a bare scalar
func (v *Value) IsLiteral() bool {
	return v != nil && v.Type == "" && v.Items == nil && !v.untagged
}

// IsUntagged reports whether v was written as an object with no type
func (v *Value) IsUntagged() bool {
	return v != nil && v.untagged
}

// IsArray reports whether v is a bare array
func (v *Value) IsArray() bool {
	return v != nil && v.Items != nil
}

// IsRaw reports whether v is a raw:* value
func (v *Value) IsRaw() bool {
	return v != nil && strings.HasPrefix(v.Type, "raw:")
}

// IsEntity reports whether v is an entity:* reference
func (v *Value) IsEntity() bool {
	return v != nil && strings.HasPrefix(v.Type, "entity:")
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	switch {
	case isJSONNull(data):
		return nil
	case isJSONArray(data):
		var items []Value
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if items == nil {
			items = []Value{}
		}
		v.Items = items
		return nil
	case isJSONObject(data):
		type plain Value
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*v = Value(p)
		v.untagged = v.Type == ""
		return nil
	}
	return json.Unmarshal(data, &v.Literal)
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Items != nil:
		return json.Marshal(v.Items)
	case v.Type == "" && !v.untagged:
		return json.Marshal(v.Literal)
	}
	type plain Value
	return json.Marshal(plain(v))
}
