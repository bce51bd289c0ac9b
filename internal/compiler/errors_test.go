package compiler_test

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/compiler"
	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// effectWith wraps a single operator in an otherwise valid effect
func effectWith(op string) string {
	return fmt.Sprintf(`{"id": "broken-move", "trigger": "OnHit", "apply": %s}`, op)
}

func TestParseEffect_UnknownTags(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		tag      string
		location string
	}{
		{
			name:     "operator",
			doc:      effectWith(`{"type": "explode"}`),
			tag:      "explode",
			location: "apply[0].type",
		},
		{
			name:     "base selector",
			doc:      effectWith(`{"type": "heal", "target": "everyone", "value": 1}`),
			tag:      "everyone",
			location: "apply[0].target.base",
		},
		{
			name:     "chain step",
			doc:      effectWith(`{"type": "heal", "target": {"base": "selfTeam", "chain": [{"type": "reverse"}]}, "value": 1}`),
			tag:      "reverse",
			location: "apply[0].target.chain[0].type",
		},
		{
			name:     "evaluator",
			doc:      effectWith(`{"type": "heal", "target": {"base": "selfTeam", "chain": [{"type": "where", "evaluator": {"type": "maybe"}}]}, "value": 1}`),
			tag:      "maybe",
			location: "apply[0].target.chain[0].evaluator.type",
		},
		{
			name:     "compare operator",
			doc:      effectWith(`{"type": "heal", "target": {"base": "selfTeam", "chain": [{"type": "where", "evaluator": {"type": "compare", "operator": "~=", "value": 1}}]}, "value": 1}`),
			tag:      "~=",
			location: "apply[0].target.chain[0].evaluator.operator",
		},
		{
			name:     "condition",
			doc:      `{"id": "broken-move", "trigger": "OnHit", "condition": {"type": "some", "conditions": ["selfUseSkill", "fullMoon"]}, "apply": {"type": "heal", "value": 1}}`,
			tag:      "fullMoon",
			location: "condition.conditions[1].type",
		},
		{
			name:     "value",
			doc:      effectWith(`{"type": "heal", "value": {"type": "random", "value": 3}}`),
			tag:      "random",
			location: "apply[0].value.type",
		},
		{
			name:     "raw value",
			doc:      effectWith(`{"type": "heal", "value": {"type": "raw:date", "value": 3}}`),
			tag:      "raw:date",
			location: "apply[0].value.type",
		},
		{
			name:     "trigger",
			doc:      `{"id": "broken-move", "trigger": ["OnHit", "OnNap"], "apply": {"type": "heal", "value": 1}}`,
			tag:      "OnNap",
			location: "trigger[1]",
		},
		{
			name:     "stat",
			doc:      effectWith(`{"type": "modifyStat", "stat": "luck", "delta": 1}`),
			tag:      "luck",
			location: "apply[0].stat",
		},
		{
			name:     "modifier kind",
			doc:      effectWith(`{"type": "addAttributeModifier", "stat": "attack", "kind": "double", "value": 1}`),
			tag:      "double",
			location: "apply[0].kind",
		},
		{
			name:     "phase",
			doc:      effectWith(`{"type": "addAttributeModifier", "stat": "attack", "value": 1, "phase": {"type": "lunch"}}`),
			tag:      "lunch",
			location: "apply[0].phase.type",
		},
		{
			name:     "nested conditional operator",
			doc:      effectWith(`{"type": "conditional", "condition": "selfUseSkill", "trueOperator": [{"type": "heal", "value": 1}, {"type": "teleport"}]}`),
			tag:      "teleport",
			location: "apply[0].trueOperator[1].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := compiler.New(nil, nil)

			_, err := c.ParseEffectJSON([]byte(tt.doc))
			require.Error(t, err)

			assert.True(t, battleerr.IsUnknownTag(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.tag)
			assert.Contains(t, err.Error(), "broken-move")

			meta := battleerr.GetMeta(err)
			assert.Equal(t, "broken-move", meta[battleerr.MetaEffectID])
			assert.Equal(t, tt.tag, meta[battleerr.MetaTag])
			assert.Equal(t, tt.location, meta[battleerr.MetaLocation])
		})
	}
}

func TestParseEffect_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code battleerr.Code
	}{
		{"missing id", `{"trigger": "OnHit", "apply": {"type": "heal", "value": 1}}`, battleerr.CodeValidation},
		{"missing trigger", `{"id": "x", "apply": {"type": "heal", "value": 1}}`, battleerr.CodeValidation},
		{"missing apply", `{"id": "x", "trigger": "OnHit"}`, battleerr.CodeValidation},
		{"missing operator value", effectWith(`{"type": "dealDamage"}`), battleerr.CodeValidation},
		{"missing mark", effectWith(`{"type": "addMark", "target": "foe"}`), battleerr.CodeValidation},
		{"missing transfer destination", effectWith(`{"type": "transferMark", "target": "selfMarks"}`), battleerr.CodeValidation},
		{"clamp without bounds", effectWith(`{"type": "addClampModifier", "stat": "speed"}`), battleerr.CodeValidation},
		{"conditional without branch", effectWith(`{"type": "conditional", "condition": "selfUseSkill"}`), battleerr.CodeValidation},
		{"raw number holding text", effectWith(`{"type": "heal", "value": {"type": "raw:number", "value": "ten"}}`), battleerr.CodeTypeMismatch},
		{"entity without id", effectWith(`{"type": "addMark", "mark": {"type": "entity:baseMark", "value": 7}}`), battleerr.CodeTypeMismatch},
		{"numeric step on pets", effectWith(`{"type": "heal", "value": {"type": "dynamic", "selector": {"base": "foeTeam", "chain": [{"type": "sum"}]}}}`), battleerr.CodeTypeMismatch},
		{"dynamic path argument", effectWith(`{"type": "heal", "target": {"base": "self", "chain": [{"type": "selectPath", "arg": {"type": "raw:string", "value": "currentHp"}}]}, "value": 1}`), battleerr.CodeInvalidPath},
		{"dotted selectProp", effectWith(`{"type": "heal", "target": {"base": "self", "chain": [{"type": "selectProp", "arg": "owner.rage"}]}, "value": 1}`), battleerr.CodeInvalidPath},
		{"value object without type", effectWith(`{"type": "dealDamage", "target": "foe", "value": {"value": 40, "configId": "damage"}}`), battleerr.CodeValidation},
		{"broken json", `{"id": "x",`, battleerr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.New(nil, nil).ParseEffectJSON([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.code, battleerr.GetCode(err), "got %v", err)
		})
	}
}

func TestParseEffect_PathCheckIsDevelopmentOnly(t *testing.T) {
	doc := effectWith(`{"type": "heal", "value": {"type": "dynamic", "selector": {"base": "self", "chain": [{"type": "selectPath", "arg": "marks[].colour"}]}}}`)

	t.Setenv("APP_ENV", config.EnvDevelopment)
	_, err := compiler.New(nil, nil).ParseEffectJSON([]byte(doc))
	require.Error(t, err)
	assert.True(t, battleerr.IsInvalidPath(err))
	assert.Equal(t, "apply[0].value.selector.chain[0]", battleerr.GetMeta(err)[battleerr.MetaLocation])

	t.Setenv("APP_ENV", config.EnvProduction)
	e, err := compiler.New(nil, nil).ParseEffectJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "broken-move", e.ID)
}

func TestParseEffect_UntaggedValueNamesLocation(t *testing.T) {
	doc := effectWith(`{"type": "dealDamage", "target": "foe", "value": {"value": 40, "configId": "damage"}}`)

	_, err := compiler.New(nil, nil).ParseEffectJSON([]byte(doc))
	require.Error(t, err)
	assert.True(t, battleerr.IsValidation(err))
	assert.Contains(t, err.Error(), "value type")
	assert.Equal(t, "apply[0].value.type", battleerr.GetMeta(err)[battleerr.MetaLocation])
}

func TestParseEffect_NilDocument(t *testing.T) {
	_, err := compiler.New(nil, nil).ParseEffect(nil)
	require.Error(t, err)
	assert.Equal(t, battleerr.CodeInvalidArgument, battleerr.GetCode(err))
}

func TestParseMark(t *testing.T) {
	c := compiler.New(nil, nil)
	tick, err := c.ParseEffect(&dsl.Effect{
		ID:      "burn-tick",
		Trigger: dsl.Triggers{"OnTurnEnd"},
		Apply:   dsl.Operators{{Type: "dealDamage", Value: dsl.Lit(30)}},
	})
	require.NoError(t, err)

	find := func(id string) (*effects.Effect, bool) {
		if id == tick.ID {
			return tick, true
		}
		return nil, false
	}

	base, err := c.ParseMark(&dsl.Mark{
		ID:            "burn",
		MaxStacks:     3,
		Duration:      2,
		StackStrategy: "extend",
		Tags:          []string{"dot"},
		Effects:       []string{"burn-tick"},
	}, find)
	require.NoError(t, err)
	assert.Equal(t, "burn", base.ID())
	assert.Equal(t, "burn", base.Name())
	assert.Equal(t, 3, base.MaxStacks)
	assert.Equal(t, []*effects.Effect{tick}, base.Effects)

	_, err = c.ParseMark(&dsl.Mark{ID: "freeze", Effects: []string{"ice-tick"}}, find)
	require.Error(t, err)
	assert.True(t, battleerr.IsNotFound(err))

	_, err = c.ParseMark(&dsl.Mark{ID: "freeze", StackStrategy: "pile"}, find)
	require.Error(t, err)
	assert.True(t, battleerr.IsUnknownTag(err))
}
