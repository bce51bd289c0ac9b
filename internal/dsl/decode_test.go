package dsl_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poisonJSON = `{
	"id": "poison-sting",
	"trigger": "OnHit",
	"priority": 10,
	"condition": "selfUseSkill",
	"apply": {
		"type": "addMark",
		"target": "target",
		"mark": {"type": "entity:baseMark", "value": "poison"},
		"stacks": {"type": "raw:number", "value": 2, "configId": "stacks"}
	}
}`

const poisonYAML = `
id: poison-sting
trigger: OnHit
priority: 10
condition: selfUseSkill
apply:
  type: addMark
  target: target
  mark:
    type: entity:baseMark
    value: poison
  stacks:
    type: raw:number
    value: 2
    configId: stacks
`

func TestDecode_SingleEffect(t *testing.T) {
	pack, err := dsl.Decode(dsl.FormatJSON, []byte(poisonJSON))
	require.NoError(t, err)
	require.Len(t, pack.Effects, 1)

	e := pack.Effects[0]
	assert.Equal(t, "poison-sting", e.ID)
	assert.Equal(t, dsl.Triggers{"OnHit"}, e.Trigger)
	assert.Equal(t, 10, e.Priority)
	require.NotNil(t, e.Condition)
	assert.Equal(t, "selfUseSkill", e.Condition.Type)

	require.Len(t, e.Apply, 1)
	op := e.Apply[0]
	assert.Equal(t, "addMark", op.Type)
	assert.Equal(t, "target", op.Target.Base)
	assert.True(t, op.Mark.IsEntity())
	assert.Equal(t, "poison", op.Mark.Value)
	assert.True(t, op.Stacks.IsRaw())
	assert.Equal(t, float64(2), op.Stacks.Value)
	assert.Equal(t, "stacks", op.Stacks.ConfigID)
}

func TestDecode_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := dsl.Decode(dsl.FormatJSON, []byte(poisonJSON))
	require.NoError(t, err)
	fromYAML, err := dsl.Decode(dsl.FormatYAML, []byte(poisonYAML))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestDecode_ArrayAndPack(t *testing.T) {
	list, err := dsl.Decode(dsl.FormatJSON, []byte(`[
		{"id": "a", "trigger": ["OnTurnStart", "OnTurnEnd"], "apply": [{"type": "heal", "value": 5}, {"type": "addRage", "value": 10}]},
		{"id": "b", "trigger": "OnHit", "apply": {"type": "destroyMark"}}
	]`))
	require.NoError(t, err)
	require.Len(t, list.Effects, 2)
	assert.Equal(t, dsl.Triggers{"OnTurnStart", "OnTurnEnd"}, list.Effects[0].Trigger)
	assert.Len(t, list.Effects[0].Apply, 2)
	assert.Empty(t, list.Marks)

	pack, err := dsl.Decode(dsl.FormatYAML, []byte(`
effects:
  - id: burn-tick
    trigger: OnTurnEnd
    apply: {type: dealDamage, value: 30}
marks:
  - id: burn
    name: Burn
    maxStacks: 3
    duration: 2
    stackStrategy: extend
    tags: [dot, fire]
    effects: [burn-tick]
`))
	require.NoError(t, err)
	require.Len(t, pack.Effects, 1)
	require.Len(t, pack.Marks, 1)
	assert.Equal(t, dsl.Mark{
		ID:            "burn",
		Name:          "Burn",
		MaxStacks:     3,
		Duration:      2,
		StackStrategy: "extend",
		Tags:          []string{"dot", "fire"},
		Effects:       []string{"burn-tick"},
	}, pack.Marks[0])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format dsl.Format
		data   string
	}{
		{"scalar document", dsl.FormatJSON, `"poison"`},
		{"broken json", dsl.FormatJSON, `{"id": `},
		{"broken yaml", dsl.FormatYAML, "id: [unterminated"},
		{"wrong field type", dsl.FormatJSON, `{"id": "x", "priority": "high"}`},
		{"unknown format", dsl.Format("toml"), `id = "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dsl.Decode(tt.format, []byte(tt.data))
			require.Error(t, err)
			assert.NotEqual(t, battleerr.CodeUnknown, battleerr.GetCode(err))
		})
	}
}

func TestValue_Shapes(t *testing.T) {
	var op dsl.Operator
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "dealDamage",
		"value": {"type": "dynamic", "selector": {"base": "self", "chain": [{"type": "selectPath", "arg": "attack"}, {"type": "multiply", "arg": 0.5}]}},
		"category": "fire",
		"ignoreShield": true,
		"stacks": [1, "two", {"type": "config", "key": "x.y"}]
	}`), &op))

	assert.True(t, op.Category.IsLiteral())
	assert.Equal(t, "fire", op.Category.Literal)
	assert.Equal(t, true, op.IgnoreShield.Literal)

	require.Equal(t, dsl.ValueDynamic, op.Value.Type)
	sel := op.Value.Selector
	assert.Equal(t, "self", sel.Base)
	require.Len(t, sel.Chain, 2)
	assert.Equal(t, "attack", sel.Chain[0].Arg.Literal)
	assert.Equal(t, 0.5, sel.Chain[1].Arg.Literal)

	require.True(t, op.Stacks.IsArray())
	require.Len(t, op.Stacks.Items, 3)
	assert.Equal(t, float64(1), op.Stacks.Items[0].Literal)
	assert.Equal(t, "two", op.Stacks.Items[1].Literal)
	assert.Equal(t, "x.y", op.Stacks.Items[2].Key)

	var empty dsl.Value
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.True(t, empty.IsArray())
	assert.Empty(t, empty.Items)
}

func TestValue_MarshalKeepsShape(t *testing.T) {
	doc := `{"id":"x","trigger":["OnHit"],"apply":[{"type":"heal","value":[3,{"type":"raw:number","value":4}]}]}`
	e, err := dsl.DecodeEffect([]byte(doc))
	require.NoError(t, err)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
}

func TestSelectorAndCondition_Shapes(t *testing.T) {
	var cond dsl.Condition
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "some",
		"conditions": [
			"isFirstTrigger",
			{"type": "not", "condition": "selfBeDamaged"},
			{"type": "evaluate", "target": {"base": "self", "chain": [{"type": "selectPath", "arg": "currentHp"}]},
			 "evaluator": {"type": "compare", "operator": "<", "value": 100}}
		]
	}`), &cond))

	require.Len(t, cond.Conditions, 3)
	assert.Equal(t, "isFirstTrigger", cond.Conditions[0].Type)
	assert.Equal(t, "selfBeDamaged", cond.Conditions[1].Condition.Type)
	assert.Equal(t, "<", cond.Conditions[2].Evaluator.Operator)

	var sel dsl.Selector
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "conditional",
		"condition": "selfUseSkill",
		"trueSelector": "target",
		"falseSelector": {"type": "selector", "value": [1, 2], "chain": [{"type": "sum"}]}
	}`), &sel))
	assert.Equal(t, dsl.SelectorTypeConditional, sel.Type)
	assert.Equal(t, "target", sel.TrueSelector.Base)
	assert.True(t, sel.FalseSelector.Value.IsArray())
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]dsl.Format{
		"effects/burn.json": dsl.FormatJSON,
		"effects/burn.YAML": dsl.FormatYAML,
		"effects/burn.yml":  dsl.FormatYAML,
	} {
		got, ok := dsl.FormatOf(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	_, ok := dsl.FormatOf("README.md")
	assert.False(t, ok)
}
