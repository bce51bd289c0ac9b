package effects_test

import (
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	calls := 0
	e, err := effects.NewBuilder("regen").
		WithTriggers(battle.OnTurnStart, battle.OnSwitchIn).
		WithPriority(20).
		WithCondition(func(*battle.Context) bool { return true }).
		AddAction(counter(&calls)).
		WithConsumesStacks(1).
		WithTags("heal", "buff").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "regen", e.ID)
	assert.Equal(t, []battle.Trigger{battle.OnTurnStart, battle.OnSwitchIn}, e.Triggers)
	assert.Equal(t, 20, e.Priority)
	assert.Equal(t, 1, e.ConsumesStacks)
	assert.Equal(t, []string{"heal", "buff"}, e.Tags)
	assert.NotNil(t, e.Condition)
	assert.Len(t, e.Actions, 1)
}

func TestBuilder_Validation(t *testing.T) {
	noop := counter(new(int))

	tests := []struct {
		name    string
		builder *effects.Builder
		errMsg  string
	}{
		{
			name:    "missing id",
			builder: effects.NewBuilder("").WithTriggers(battle.OnHit).AddAction(noop),
			errMsg:  "must have an ID",
		},
		{
			name:    "no triggers",
			builder: effects.NewBuilder("x").AddAction(noop),
			errMsg:  "at least one trigger",
		},
		{
			name:    "unknown trigger",
			builder: effects.NewBuilder("x").WithTriggers(battle.Trigger("OnNap")).AddAction(noop),
			errMsg:  "OnNap",
		},
		{
			name:    "no actions",
			builder: effects.NewBuilder("x").WithTriggers(battle.OnHit),
			errMsg:  "at least one action",
		},
		{
			name:    "negative stack consumption",
			builder: effects.NewBuilder("x").WithTriggers(battle.OnHit).AddAction(noop).WithConsumesStacks(-1),
			errMsg:  "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
