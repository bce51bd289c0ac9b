package compiler

import (
	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/operators"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// createAction compiles one operator node into an action over its target
func (u *unit) createAction(node *dsl.Operator, location string) (selector.Action, error) {
	if node.Type == operators.TypeConditional {
		return u.conditionalAction(node, location)
	}

	target := selector.Self()
	if node.Target != nil {
		s, err := u.parseSelector(node.Target, at(location, "target"))
		if err != nil {
			return nil, err
		}
		target = s
	}

	op, err := u.operator(node, location)
	if err != nil {
		return nil, err
	}

	action, err := target.Apply(op)
	if err != nil {
		return nil, u.fail(at(location, "target"), err)
	}
	return action, nil
}

// operator is the dispatch table from operator type to factory
func (u *unit) operator(node *dsl.Operator, location string) (selector.Operator, error) {
	a := args{u: u, node: node, location: location}

	var op selector.Operator
	switch node.Type {
	case operators.TypeDealDamage:
		op = operators.DealDamage(a.required("value", node.Value), operators.DamageOptions{
			Category:     a.optional("category", node.Category),
			IgnoreShield: a.optional("ignoreShield", node.IgnoreShield),
		})

	case operators.TypeHeal:
		op = operators.Heal(a.required("value", node.Value))

	case operators.TypeAddMark:
		op = operators.AddMark(a.required("mark", node.Mark), operators.MarkOptions{
			Stacks:   a.optional("stacks", node.Stacks),
			Duration: a.optional("duration", node.Duration),
		})

	case operators.TypeAddStacks:
		op = operators.AddStacks(a.optional("value", node.Value))

	case operators.TypeConsumeStacks:
		op = operators.ConsumeStacks(a.optional("value", node.Value))

	case operators.TypeDestroyMark:
		op = operators.DestroyMark()

	case operators.TypeTransferMark:
		to, err := u.parseSelector(node.To, at(location, "to"))
		if err != nil {
			return nil, err
		}
		op = operators.TransferMark(to)

	case operators.TypeModifyStat, operators.TypeAddStatStage:
		delta := node.Delta
		if delta == nil {
			delta = node.Value
		}
		op = operators.ModifyStat(a.stat(true), a.required("delta", delta))

	case operators.TypeClearStatStage:
		op = operators.ClearStatStage(a.stat(false))

	case operators.TypeAddRage:
		op = operators.AddRage(a.required("value", node.Value))

	case operators.TypeAddPower:
		op = operators.AddPower(a.required("value", node.Value))

	case operators.TypeAddCritRate:
		op = operators.AddCritRate(a.required("value", node.Value))

	case operators.TypeAddAccuracy:
		op = operators.AddAccuracy(a.required("value", node.Value))

	case operators.TypeAddModified:
		if node.Percent == nil && node.Delta == nil {
			return nil, u.missing(location, "percent or delta")
		}
		op = operators.AddModified(a.optional("percent", node.Percent), a.optional("delta", node.Delta))

	case operators.TypeAddAttributeModifier:
		op = operators.AddAttributeModifier(a.stat(true), a.modifierSpec())

	case operators.TypeAddDynamicAttributeModifier:
		op = operators.AddDynamicAttributeModifier(a.stat(true), a.modifierSpec())

	case operators.TypeAddClampModifier:
		if node.Min == nil && node.Max == nil {
			return nil, u.missing(location, "min or max")
		}
		op = operators.AddClampModifier(a.stat(true),
			a.optional("min", node.Min),
			a.optional("max", node.Max),
			a.optional("priority", node.Priority),
			a.scope(),
		)

	case operators.TypeAddConfigModifier:
		op = operators.AddConfigModifier(a.required("key", node.Key), a.modifierSpec())

	case operators.TypeTransform:
		op = operators.Transform(a.required("species", node.Species))

	default:
		return nil, u.unknown(at(location, "type"), "operator", node.Type)
	}

	if a.err != nil {
		return nil, a.err
	}
	return op, nil
}

// conditionalAction wraps two operator lists behind a condition. Its
// branches carry their own targets.
func (u *unit) conditionalAction(node *dsl.Operator, location string) (selector.Action, error) {
	cond, err := u.parseCondition(node.Condition, at(location, "condition"))
	if err != nil {
		return nil, err
	}
	if len(node.TrueOperator) == 0 {
		return nil, u.missing(at(location, "trueOperator"), "trueOperator")
	}

	whenTrue, err := u.actions(node.TrueOperator, at(location, "trueOperator"))
	if err != nil {
		return nil, err
	}
	var whenFalse selector.Action
	if len(node.FalseOperator) > 0 {
		whenFalse, err = u.actions(node.FalseOperator, at(location, "falseOperator"))
		if err != nil {
			return nil, err
		}
	}
	return selector.When(cond, whenTrue, whenFalse), nil
}

func (u *unit) actions(nodes dsl.Operators, location string) (selector.Action, error) {
	list := make([]selector.Action, 0, len(nodes))
	for i := range nodes {
		action, err := u.createAction(&nodes[i], index(location, i))
		if err != nil {
			return nil, err
		}
		list = append(list, action)
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return selector.Sequence(list...), nil
}

// args compiles the argument fields of one operator, keeping the first
// error so the dispatch table reads as a list of factory calls
type args struct {
	u        *unit
	node     *dsl.Operator
	location string
	err      error
}

func (a *args) required(field string, v *dsl.Value) selector.ValueSource {
	if a.err != nil {
		return nil
	}
	if v == nil {
		a.err = a.u.missing(at(a.location, field), field)
		return nil
	}
	return a.optional(field, v)
}

func (a *args) optional(field string, v *dsl.Value) selector.ValueSource {
	if a.err != nil || v == nil {
		return nil
	}
	src, err := a.u.parseValue(v, at(a.location, field))
	if err != nil {
		a.err = err
		return nil
	}
	return src
}

// stat compiles the stat field, rejecting unknown literal stat names now
func (a *args) stat(required bool) selector.ValueSource {
	v := a.node.Stat
	if v == nil {
		if required {
			return a.required("stat", v)
		}
		return nil
	}
	if name, ok := v.Literal.(string); ok && v.IsLiteral() && a.err == nil {
		if _, err := battle.ParseStat(name); err != nil {
			a.err = a.u.unknown(at(a.location, "stat"), "stat", name)
			return nil
		}
	}
	return a.optional("stat", v)
}

func (a *args) modifierSpec() operators.ModifierSpec {
	spec := operators.ModifierSpec{
		Value:    a.required("value", a.node.Value),
		Priority: a.optional("priority", a.node.Priority),
		Scope:    a.scope(),
	}

	kind := a.node.Kind
	if name, ok := kindLiteral(kind); ok && a.err == nil {
		if _, err := modifiers.ParseKind(name); err != nil {
			a.err = a.u.unknown(at(a.location, "kind"), "modifier kind", name)
			return spec
		}
	}
	spec.Kind = a.optional("kind", kind)
	return spec
}

func kindLiteral(v *dsl.Value) (string, bool) {
	if !v.IsLiteral() {
		return "", false
	}
	name, ok := v.Literal.(string)
	return name, ok
}

func (a *args) scope() *modifiers.PhaseScope {
	phase := a.node.Phase
	if phase == nil || a.err != nil {
		return nil
	}

	typ, err := modifiers.ParsePhaseType(phase.Type)
	if err != nil {
		a.err = a.u.unknown(at(a.location, "phase.type"), "phase", phase.Type)
		return nil
	}
	mode, err := modifiers.ParseScopeMode(phase.Mode)
	if err != nil {
		a.err = a.u.unknown(at(a.location, "phase.mode"), "phase mode", phase.Mode)
		return nil
	}
	return &modifiers.PhaseScope{Type: typ, Mode: mode, PhaseID: phase.ID}
}
