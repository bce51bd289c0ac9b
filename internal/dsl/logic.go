package dsl

import (
	"encoding/json"
)

// Evaluator type tags
const (
	EvaluatorCompare     = "compare"
	EvaluatorSame        = "same"
	EvaluatorNotSame     = "notSame"
	EvaluatorProbability = "probability"
	EvaluatorContain     = "contain"
	EvaluatorExist       = "exist"
	EvaluatorAny         = "any"
	EvaluatorAll         = "all"
	EvaluatorNot         = "not"
)

// Condition type tags. Any other tag names a built-in condition.
const (
	ConditionEvaluate = "evaluate"
	ConditionSome     = "some"
	ConditionEvery    = "every"
	ConditionNot      = "not"
)

// Evaluator is a predicate over a list of values
type Evaluator struct {
	Type       string      `json:"type" jsonschema:"required,enum=compare,enum=same,enum=notSame,enum=probability,enum=contain,enum=exist,enum=any,enum=all,enum=not"`
	Operator   string      `json:"operator,omitempty" jsonschema:"description=Comparison operator of a compare evaluator"`
	Value      *Value      `json:"value,omitempty"`
	Evaluators []Evaluator `json:"evaluators,omitempty"`
	Evaluator  *Evaluator  `json:"evaluator,omitempty"`
}

// Condition gates an effect or an operator branch. A bare string names a
// built-in condition.
type Condition struct {
	Type       string      `json:"type" jsonschema:"required"`
	Target     *Selector   `json:"target,omitempty"`
	Evaluator  *Evaluator  `json:"evaluator,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
	Condition  *Condition  `json:"condition,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Condition) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		*c = Condition{}
		return json.Unmarshal(data, &c.Type)
	}

	type plain Condition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Condition(p)
	return nil
}
