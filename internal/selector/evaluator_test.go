package selector_test

import (
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	mockdice "github.com/KirkDiggler/pet-battle-effects/internal/dice/mock"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		op       string
		values   []any
		operand  any
		expected bool
	}{
		{">", []any{5}, 3, true},
		{">", []any{1, 2}, 3, false},
		{">", []any{1, 4}, 3, true},
		{"<", []any{2.5}, 3, true},
		{">=", []any{3}, 3.0, true},
		{"<=", []any{4}, 3, false},
		{"==", []any{"fire"}, "fire", true},
		{"==", []any{3}, 3.0, true},
		{"==", []any{"3"}, 3, true},
		{"!=", []any{"fire"}, "water", true},
		{"!=", []any{"fire"}, "fire", false},
		{">", []any{"fire"}, 3, false},
		{">", []any{}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			ev, err := selector.Compare(tt.op, lit(tt.operand))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ev(nil, tt.values), "%v %s %v", tt.values, tt.op, tt.operand)
		})
	}

	_, err := selector.Compare("~=", lit(1))
	require.Error(t, err)
	assert.True(t, battleerr.IsUnknownTag(err))
	assert.Contains(t, err.Error(), "~=")
}

func TestCompare_AgainstSetOperand(t *testing.T) {
	ev, err := selector.Compare("==", lit([]any{"fire", "grass"}))
	require.NoError(t, err)
	assert.True(t, ev(nil, []any{"grass"}))
	assert.False(t, ev(nil, []any{"water"}))
}

func TestContain(t *testing.T) {
	arena := testutils.NewArena(nil)
	burn := &marks.Base{BaseID: "burn", BaseName: "Burn", TagList: []string{"dot", "fire"}}
	mark, err := arena.Ally.AddMark(nil, burn, battle.MarkOptions{})
	require.NoError(t, err)

	assert.True(t, selector.Contain(lit("fire"))(nil, []any{mark}))
	assert.True(t, selector.Contain(lit([]any{"buff", "dot"}))(nil, []any{mark}))
	assert.False(t, selector.Contain(lit("buff"))(nil, []any{mark}))
	assert.True(t, selector.Contain(lit("a"))(nil, []any{[]string{"a", "b"}}))
	assert.True(t, selector.Contain(lit("slash"))(nil, []any{testutils.NewSkill("s", 10, "slash")}))
}

func TestProbability_UsesBattleRNG(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{3000, 3001})
	arena := testutils.NewArena(roller)
	ctx := arena.Context(battle.OnHit, arena.Ally)

	ev := selector.Probability(lit(30))
	assert.True(t, ev(ctx, nil))
	assert.False(t, ev(ctx, nil))

	assert.True(t, selector.Probability(lit(100))(ctx, nil))
	assert.False(t, selector.Probability(lit(0))(ctx, nil))
}

func TestCombinators(t *testing.T) {
	yes := selector.Exist()
	no := selector.Not(selector.Exist())
	values := []any{1}

	assert.True(t, yes(nil, values))
	assert.False(t, yes(nil, []any{}))
	assert.False(t, no(nil, values))

	assert.True(t, selector.AnyOf(no, yes)(nil, values))
	assert.False(t, selector.AnyOf(no, no)(nil, values))
	assert.False(t, selector.AnyOf()(nil, values))

	assert.True(t, selector.AllOf(yes, yes)(nil, values))
	assert.False(t, selector.AllOf(yes, no)(nil, values))
	assert.True(t, selector.AllOf()(nil, values))
}
