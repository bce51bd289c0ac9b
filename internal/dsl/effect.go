// Package dsl holds the authored form of effects: the JSON/YAML documents
// content designers write. Several fields accept more than one shape (a bare
// string or an object, one item or a list) and decode through custom
// UnmarshalJSON methods. The compiler turns these trees into closures.
package dsl

import (
	"bytes"
	"encoding/json"
)

// Effect is one authored effect
type Effect struct {
	ID             string     `json:"id" jsonschema:"required,description=Unique effect id. Config keys are scoped by it"`
	Trigger        Triggers   `json:"trigger" jsonschema:"required,description=One trigger name or a list of them"`
	Priority       int        `json:"priority,omitempty" jsonschema:"description=Higher runs first within a trigger"`
	Condition      *Condition `json:"condition,omitempty"`
	Apply          Operators  `json:"apply" jsonschema:"required,description=One operator or an ordered list of them"`
	ConsumesStacks int        `json:"consumesStacks,omitempty" jsonschema:"minimum=0,description=Stacks consumed from the owning mark each time the effect runs"`
	Tags           []string   `json:"tags,omitempty"`
}

// Triggers accepts a single trigger name or an array of them
type Triggers []string

// UnmarshalJSON implements json.Unmarshaler
func (t *Triggers) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*t = Triggers{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = many
	return nil
}

// Mark is an authored base mark. Effects are referenced by id.
type Mark struct {
	ID            string   `json:"id" jsonschema:"required"`
	Name          string   `json:"name,omitempty"`
	MaxStacks     int      `json:"maxStacks,omitempty" jsonschema:"minimum=0"`
	Duration      int      `json:"duration,omitempty" jsonschema:"description=Turns before expiry. Zero never expires"`
	StackStrategy string   `json:"stackStrategy,omitempty" jsonschema:"enum=stack,enum=replace,enum=extend,enum=max,enum=none"`
	Tags          []string `json:"tags,omitempty"`
	Effects       []string `json:"effects,omitempty" jsonschema:"description=Ids of the effects the mark carries"`
}

// Pack is a content file carrying effects and marks together
type Pack struct {
	Effects []Effect `json:"effects,omitempty"`
	Marks   []Mark   `json:"marks,omitempty"`
}

func trimmed(data []byte) []byte {
	return bytes.TrimSpace(data)
}

func isJSONString(data []byte) bool {
	data = trimmed(data)
	return len(data) > 0 && data[0] == '"'
}

func isJSONArray(data []byte) bool {
	data = trimmed(data)
	return len(data) > 0 && data[0] == '['
}

func isJSONObject(data []byte) bool {
	data = trimmed(data)
	return len(data) > 0 && data[0] == '{'
}

func isJSONNull(data []byte) bool {
	return string(trimmed(data)) == "null"
}
