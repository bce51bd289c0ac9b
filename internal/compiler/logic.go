package compiler

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// parseEvaluator compiles an evaluator node, recursing through any/all/not
func (u *unit) parseEvaluator(node *dsl.Evaluator, location string) (selector.Evaluator, error) {
	if node == nil {
		return nil, u.missing(location, "evaluator")
	}

	switch node.Type {
	case dsl.EvaluatorCompare:
		operand, err := u.requiredValue(node.Value, at(location, "value"))
		if err != nil {
			return nil, err
		}
		ev, err := selector.Compare(node.Operator, operand)
		if err != nil {
			return nil, u.fail(at(location, "operator"), err)
		}
		return ev, nil

	case dsl.EvaluatorSame, dsl.EvaluatorNotSame, dsl.EvaluatorProbability, dsl.EvaluatorContain:
		operand, err := u.requiredValue(node.Value, at(location, "value"))
		if err != nil {
			return nil, err
		}
		switch node.Type {
		case dsl.EvaluatorSame:
			return selector.Same(operand), nil
		case dsl.EvaluatorNotSame:
			return selector.NotSame(operand), nil
		case dsl.EvaluatorProbability:
			return selector.Probability(operand), nil
		default:
			return selector.Contain(operand), nil
		}

	case dsl.EvaluatorExist:
		return selector.Exist(), nil

	case dsl.EvaluatorAny, dsl.EvaluatorAll:
		evs := make([]selector.Evaluator, 0, len(node.Evaluators))
		for i := range node.Evaluators {
			ev, err := u.parseEvaluator(&node.Evaluators[i], index(at(location, "evaluators"), i))
			if err != nil {
				return nil, err
			}
			evs = append(evs, ev)
		}
		if node.Type == dsl.EvaluatorAny {
			return selector.AnyOf(evs...), nil
		}
		return selector.AllOf(evs...), nil

	case dsl.EvaluatorNot:
		ev, err := u.parseEvaluator(node.Evaluator, at(location, "evaluator"))
		if err != nil {
			return nil, err
		}
		return selector.Not(ev), nil
	}

	return nil, u.unknown(at(location, "type"), "evaluator", node.Type)
}

// parseCondition compiles a condition node. Tags that are not combinators
// name built-in conditions.
func (u *unit) parseCondition(node *dsl.Condition, location string) (selector.Condition, error) {
	if node == nil {
		return nil, u.missing(location, "condition")
	}

	switch node.Type {
	case dsl.ConditionEvaluate:
		target, err := u.parseSelector(node.Target, at(location, "target"))
		if err != nil {
			return nil, err
		}
		ev, err := u.parseEvaluator(node.Evaluator, at(location, "evaluator"))
		if err != nil {
			return nil, err
		}
		cond, err := target.Condition(ev)
		if err != nil {
			return nil, u.fail(location, err)
		}
		return cond, nil

	case dsl.ConditionSome, dsl.ConditionEvery:
		conds := make([]selector.Condition, 0, len(node.Conditions))
		for i := range node.Conditions {
			cond, err := u.parseCondition(&node.Conditions[i], index(at(location, "conditions"), i))
			if err != nil {
				return nil, err
			}
			conds = append(conds, cond)
		}
		if node.Type == dsl.ConditionSome {
			return selector.Some(conds...), nil
		}
		return selector.Every(conds...), nil

	case dsl.ConditionNot:
		cond, err := u.parseCondition(node.Condition, at(location, "condition"))
		if err != nil {
			return nil, err
		}
		return selector.Negate(cond), nil
	}

	cond, err := selector.Builtin(node.Type)
	if err != nil {
		return nil, u.fail(at(location, "type"), err)
	}
	return cond, nil
}
