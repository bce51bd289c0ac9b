package compiler

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// parseSelector compiles a selector node and folds its chain left to right
func (u *unit) parseSelector(node *dsl.Selector, location string) (selector.Selector, error) {
	if node == nil {
		return selector.Selector{}, u.missing(location, "selector")
	}

	var base selector.Selector
	switch node.Type {
	case "":
		if node.Base == "" {
			return selector.Selector{}, u.missing(at(location, "base"), "base selector key")
		}
		s, err := selector.Base(node.Base)
		if err != nil {
			return selector.Selector{}, u.fail(at(location, "base"), err)
		}
		base = s

	case dsl.SelectorTypeValue:
		if node.Value == nil {
			return selector.Selector{}, u.missing(at(location, "value"), "selector value")
		}
		src, typ, err := u.typedValue(node.Value, at(location, "value"))
		if err != nil {
			return selector.Selector{}, err
		}
		base = selector.FromSource(typ, src)

	case dsl.SelectorTypeConditional:
		if node.Condition == nil {
			return selector.Selector{}, u.missing(at(location, "condition"), "condition")
		}
		cond, err := u.parseCondition(node.Condition, at(location, "condition"))
		if err != nil {
			return selector.Selector{}, err
		}
		whenTrue, err := u.parseSelector(node.TrueSelector, at(location, "trueSelector"))
		if err != nil {
			return selector.Selector{}, err
		}
		whenFalse := selector.New(whenTrue.Type(), nil)
		if node.FalseSelector != nil {
			whenFalse, err = u.parseSelector(node.FalseSelector, at(location, "falseSelector"))
			if err != nil {
				return selector.Selector{}, err
			}
		}
		base = selector.Conditional(cond, whenTrue, whenFalse)

	default:
		return selector.Selector{}, u.unknown(at(location, "type"), "selector", node.Type)
	}

	s := base
	for i := range node.Chain {
		var err error
		s, err = u.parseStep(s, &node.Chain[i], index(at(location, "chain"), i))
		if err != nil {
			return selector.Selector{}, err
		}
	}
	return s, nil
}

// parseStep applies one chain step. Steps that poison the selector are
// reported here so the error carries the step's location.
func (u *unit) parseStep(s selector.Selector, step *dsl.Step, location string) (selector.Selector, error) {
	var next selector.Selector
	switch step.Type {
	case dsl.StepSelect, dsl.StepSelectPath:
		path, err := u.pathArg(step, location)
		if err != nil {
			return s, err
		}
		next = s.SelectPath(path)

	case dsl.StepSelectProp:
		path, err := u.pathArg(step, location)
		if err != nil {
			return s, err
		}
		next = s.SelectProp(path)

	case dsl.StepWhere:
		ev, err := u.parseEvaluator(step.Evaluator, at(location, "evaluator"))
		if err != nil {
			return s, err
		}
		next = s.Where(ev)

	case dsl.StepWhereAttr:
		path, err := u.pathArg(step, location)
		if err != nil {
			return s, err
		}
		ev, err := u.parseEvaluator(step.Evaluator, at(location, "evaluator"))
		if err != nil {
			return s, err
		}
		next = s.WhereAttrPath(path, ev)

	case dsl.StepAnd, dsl.StepOr:
		other, err := u.parseSelector(step.Selector, at(location, "selector"))
		if err != nil {
			return s, err
		}
		if step.Type == dsl.StepAnd {
			next = s.And(other)
		} else {
			next = s.Or(other, step.Duplicate)
		}

	case dsl.StepShuffled:
		next = s.Shuffled()
	case dsl.StepSum:
		next = s.Sum()
	case dsl.StepLength:
		next = s.Length()
	case dsl.StepFlat:
		next = s.Flat()

	case dsl.StepRandomPick, dsl.StepRandomSample, dsl.StepLimit,
		dsl.StepAdd, dsl.StepMultiply, dsl.StepDivide, dsl.StepClampMin, dsl.StepClampMax:
		arg, err := u.requiredValue(step.Arg, at(location, "arg"))
		if err != nil {
			return s, err
		}
		next = u.argStep(s, step.Type, arg)

	case dsl.StepWhen:
		if step.Condition == nil {
			return s, u.missing(at(location, "condition"), "condition")
		}
		cond, err := u.parseCondition(step.Condition, at(location, "condition"))
		if err != nil {
			return s, err
		}
		whenTrue, err := u.requiredValue(step.TrueValue, at(location, "trueValue"))
		if err != nil {
			return s, err
		}
		whenFalse, err := u.optionalValue(step.FalseValue, at(location, "falseValue"))
		if err != nil {
			return s, err
		}
		next = s.When(cond, whenTrue, whenFalse)

	default:
		return s, u.unknown(at(location, "type"), "selector step", step.Type)
	}

	if err := next.Err(); err != nil {
		return s, u.fail(location, err)
	}
	return next, nil
}

func (u *unit) argStep(s selector.Selector, typ string, arg selector.ValueSource) selector.Selector {
	switch typ {
	case dsl.StepRandomPick:
		return s.RandomPick(arg)
	case dsl.StepRandomSample:
		return s.RandomSample(arg)
	case dsl.StepLimit:
		return s.Limit(arg)
	case dsl.StepAdd:
		return s.Add(arg)
	case dsl.StepMultiply:
		return s.Multiply(arg)
	case dsl.StepDivide:
		return s.Divide(arg)
	case dsl.StepClampMin:
		return s.ClampMin(arg)
	default:
		return s.ClampMax(arg)
	}
}

// pathArg reads a path step argument, which must be a literal string so it
// can be checked against the type graph now
func (u *unit) pathArg(step *dsl.Step, location string) (string, error) {
	if step.Arg == nil {
		return "", u.missing(at(location, "arg"), "path")
	}
	path, ok := step.Arg.Literal.(string)
	if !step.Arg.IsLiteral() || !ok {
		return "", u.fail(at(location, "arg"), battleerr.InvalidPathf("%s takes a literal path string", step.Type))
	}
	return path, nil
}
