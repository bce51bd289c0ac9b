package dsl

import (
	"encoding/json"
)

// Selector type tags
const (
	SelectorTypeValue       = "selector"
	SelectorTypeConditional = "conditional"
)

// Chain step type tags
const (
	StepSelect       = "select"
	StepSelectPath   = "selectPath"
	StepSelectProp   = "selectProp"
	StepWhere        = "where"
	StepWhereAttr    = "whereAttr"
	StepAnd          = "and"
	StepOr           = "or"
	StepRandomPick   = "randomPick"
	StepRandomSample = "randomSample"
	StepShuffled     = "shuffled"
	StepSum          = "sum"
	StepAdd          = "add"
	StepMultiply     = "multiply"
	StepDivide       = "divide"
	StepClampMin     = "clampMin"
	StepClampMax     = "clampMax"
	StepLength       = "length"
	StepWhen         = "when"
	StepLimit        = "limit"
	StepFlat         = "flat"
)

// Selector is a base key with a chain of steps, a selector over a value, or
// a branch between two selectors. A bare string is a base key with no chain.
type Selector struct {
	Base          string     `json:"base,omitempty" jsonschema:"description=Built-in base selector such as self or foeTeam"`
	Type          string     `json:"type,omitempty" jsonschema:"enum=selector,enum=conditional"`
	Value         *Value     `json:"value,omitempty" jsonschema:"description=Source of a type=selector node"`
	Chain         []Step     `json:"chain,omitempty"`
	Condition     *Condition `json:"condition,omitempty"`
	TrueSelector  *Selector  `json:"trueSelector,omitempty"`
	FalseSelector *Selector  `json:"falseSelector,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Selector) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		*s = Selector{}
		return json.Unmarshal(data, &s.Base)
	}

	type plain Selector
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Selector(p)
	return nil
}

// Step is one transform in a selector chain. Which fields apply depends on
// Type: path steps read Arg as a path, numeric steps read it as the operand,
// where/whereAttr use Evaluator, and/or use Selector, when uses the branch
// fields.
type Step struct {
	Type       string     `json:"type" jsonschema:"required"`
	Arg        *Value     `json:"arg,omitempty"`
	Evaluator  *Evaluator `json:"evaluator,omitempty"`
	Selector   *Selector  `json:"selector,omitempty"`
	Duplicate  bool       `json:"duplicate,omitempty" jsonschema:"description=Keep duplicates when concatenating with or"`
	Condition  *Condition `json:"condition,omitempty"`
	TrueValue  *Value     `json:"trueValue,omitempty"`
	FalseValue *Value     `json:"falseValue,omitempty"`
}
