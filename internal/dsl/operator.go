package dsl

import (
	"encoding/json"
)

// Operator is one entry of an effect's apply list. Target defaults to self.
// Which argument fields are read depends on Type.
type Operator struct {
	Type   string    `json:"type" jsonschema:"required"`
	Target *Selector `json:"target,omitempty"`

	Value        *Value `json:"value,omitempty"`
	Category     *Value `json:"category,omitempty"`
	IgnoreShield *Value `json:"ignoreShield,omitempty"`

	Mark     *Value    `json:"mark,omitempty"`
	Stacks   *Value    `json:"stacks,omitempty"`
	Duration *Value    `json:"duration,omitempty"`
	To       *Selector `json:"to,omitempty" jsonschema:"description=Pet a transferred mark moves to"`

	Stat    *Value `json:"stat,omitempty"`
	Delta   *Value `json:"delta,omitempty"`
	Percent *Value `json:"percent,omitempty"`

	Kind     *Value      `json:"kind,omitempty" jsonschema:"description=Modifier kind: delta, percent, override, clampMin or clampMax"`
	Priority *Value      `json:"priority,omitempty"`
	Phase    *PhaseScope `json:"phase,omitempty"`
	Min      *Value      `json:"min,omitempty"`
	Max      *Value      `json:"max,omitempty"`
	Key      *Value      `json:"key,omitempty" jsonschema:"description=Config key an addConfigModifier targets"`

	Species *Value `json:"species,omitempty"`

	Condition     *Condition `json:"condition,omitempty"`
	TrueOperator  Operators  `json:"trueOperator,omitempty"`
	FalseOperator Operators  `json:"falseOperator,omitempty"`
}

// PhaseScope limits a modifier to a battle phase
type PhaseScope struct {
	Type string `json:"type" jsonschema:"required,enum=turn,enum=skill,enum=damage,enum=heal,enum=effect,enum=switch,enum=mark,enum=rage,enum=battle"`
	Mode string `json:"mode,omitempty" jsonschema:"enum=current,enum=any,enum=next"`
	ID   string `json:"id,omitempty"`
}

// Operators accepts a single operator or an ordered array of them
type Operators []Operator

// UnmarshalJSON implements json.Unmarshaler
func (o *Operators) UnmarshalJSON(data []byte) error {
	if isJSONObject(data) {
		var one Operator
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*o = Operators{one}
		return nil
	}

	var many []Operator
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*o = many
	return nil
}
