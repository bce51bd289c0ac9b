package selector_test

import (
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	mockdice "github.com/KirkDiggler/pet-battle-effects/internal/dice/mock"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(v any) selector.ValueSource { return selector.Literal{Value: v} }

func run(t *testing.T, s selector.Selector, ctx *battle.Context) []any {
	t.Helper()
	fn, err := s.Build()
	require.NoError(t, err)
	return fn(ctx)
}

func fixed(typ string, values ...any) selector.Selector {
	return selector.New(typ, func(*battle.Context) []any { return values })
}

func TestSelector_ChainExample(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)

	s := selector.Self().
		SelectPath("currentHp").
		Divide(lit(5)).
		Add(lit(30)).
		ClampMax(lit(150))

	assert.Equal(t, typecheck.Number, s.Type())
	assert.Equal(t, []any{150.0}, run(t, s, ctx))
}

func TestSelector_OrAndSetSemantics(t *testing.T) {
	p1 := testutils.NewPet("p1", 100)
	p2 := testutils.NewPet("p2", 100)
	p3 := testutils.NewPet("p3", 100)

	left := fixed(typecheck.Pet, p1, p2)
	right := fixed(typecheck.Pet, p2, p3)

	assert.Equal(t, []any{p1, p2, p3}, run(t, left.Or(right, false), nil))
	assert.Equal(t, []any{p1, p2, p2, p3}, run(t, left.Or(right, true), nil))
	assert.Equal(t, []any{p2}, run(t, left.And(right), nil))

	mixed := left.Or(fixed(typecheck.Number, 1), false)
	assert.Equal(t, typecheck.Any, mixed.Type())
}

func TestSelector_NumericGuard(t *testing.T) {
	evaluated := false
	pets := selector.New(typecheck.Pet, func(*battle.Context) []any {
		evaluated = true
		return []any{}
	})

	steps := map[string]func(selector.Selector) selector.Selector{
		"sum":      func(s selector.Selector) selector.Selector { return s.Sum() },
		"add":      func(s selector.Selector) selector.Selector { return s.Add(lit(1)) },
		"multiply": func(s selector.Selector) selector.Selector { return s.Multiply(lit(2)) },
		"divide":   func(s selector.Selector) selector.Selector { return s.Divide(lit(2)) },
		"clampMin": func(s selector.Selector) selector.Selector { return s.ClampMin(lit(0)) },
		"clampMax": func(s selector.Selector) selector.Selector { return s.ClampMax(lit(9)) },
	}

	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			s := step(pets)
			require.Error(t, s.Err())
			assert.True(t, battleerr.IsTypeMismatch(s.Err()))
			assert.Contains(t, s.Err().Error(), name)

			_, err := s.Build()
			assert.Error(t, err)
			_, err = s.Apply(func(*battle.Context, []any) {})
			assert.Error(t, err)
		})
	}
	assert.False(t, evaluated)
}

func TestSelector_ErrorSticksThroughChain(t *testing.T) {
	s := selector.Self().SelectPath("nope").Length().Shuffled()
	assert.True(t, battleerr.IsInvalidPath(s.Err()))
}

func TestSelectPath_Validation(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)

	t.Run("development rejects unknown fields", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")

		s := selector.Self().SelectPath("invalidProp")
		require.Error(t, s.Err())
		assert.Contains(t, s.Err().Error(), "invalidProp")
		assert.Contains(t, s.Err().Error(), "Pet")
	})

	t.Run("production skips the check", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		s := selector.Self().SelectPath("invalidProp")
		require.NoError(t, s.Err())
		assert.Empty(t, run(t, s, ctx))
	})

	t.Run("selectProp rejects dotted names", func(t *testing.T) {
		s := selector.Self().SelectProp("owner.rage")
		assert.True(t, battleerr.IsInvalidPath(s.Err()))
	})
}

func TestSelectPath_FansOutArrays(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)

	burn := &marks.Base{BaseID: "burn", BaseName: "Burn", Duration: 3, MaxStacks: 5, TagList: []string{"dot"}}
	poison := &marks.Base{BaseID: "poison", BaseName: "Poison", Duration: 2}
	_, err := arena.Ally.AddMark(nil, burn, battle.MarkOptions{Stacks: 2})
	require.NoError(t, err)
	_, err = arena.Ally.AddMark(nil, poison, battle.MarkOptions{})
	require.NoError(t, err)

	assert.Equal(t, []any{3, 2}, run(t, selector.Self().SelectPath("marks.duration"), ctx))
	assert.Equal(t, []any{3, 2}, run(t, selector.Self().SelectPath("marks[].duration"), ctx))
	assert.Equal(t, []any{"dot"}, run(t, selector.Self().SelectPath("marks.tags"), ctx))
	assert.Equal(t, []any{1000, 600}, run(t, selector.Self().SelectPath("owner.team.currentHp"), ctx))

	stacks := selector.Self().SelectPath("marks.stack").Sum()
	require.NoError(t, stacks.Err())
	assert.Equal(t, []any{3.0}, run(t, stacks, ctx))
}

func TestSelector_Filters(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	team, err := selector.Base(selector.KeySelfTeam)
	require.NoError(t, err)

	above, err := selector.Compare(">", lit(700))
	require.NoError(t, err)

	assert.Equal(t, []any{arena.Ally}, run(t, team.WhereAttrPath("currentHp", above), ctx))
	assert.Equal(t, []any{arena.Ally}, run(t, team.Where(selector.Same(selector.Self())), ctx))
	assert.Equal(t, []any{arena.AllyBench}, run(t, team.Where(selector.NotSame(selector.Self())), ctx))

	assert.True(t, battleerr.IsInvalidPath(team.WhereAttrPath("missing", above).Err()))
}

func TestSelector_RandomSteps(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	arena := testutils.NewArena(roller)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	team, err := selector.Base(selector.KeySelfTeam)
	require.NoError(t, err)

	// the manual roller shuffles by reversing
	assert.Equal(t, []any{arena.AllyBench, arena.Ally}, run(t, team.Shuffled(), ctx))
	assert.Equal(t, []any{arena.AllyBench}, run(t, team.RandomPick(lit(1)), ctx))
	assert.Len(t, run(t, team.RandomPick(lit(5)), ctx), 2)
	assert.Empty(t, run(t, team.RandomPick(lit(0)), ctx))

	roller.SetRolls([]int{1000, 9000})
	assert.Equal(t, []any{arena.Ally}, run(t, team.RandomSample(lit(50)), ctx))
}

func TestSelector_Aggregates(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	team, err := selector.Base(selector.KeySelfTeam)
	require.NoError(t, err)

	hp := team.SelectPath("currentHp")
	assert.Equal(t, []any{1600.0}, run(t, hp.Sum(), ctx))
	assert.Equal(t, []any{2.0}, run(t, team.Length(), ctx))
	assert.Equal(t, []any{2000.0, 1200.0}, run(t, hp.Multiply(lit(2)), ctx))
	assert.Equal(t, []any{0.0, 0.0}, run(t, hp.Divide(lit(0)), ctx))
	assert.Equal(t, []any{900.0, 600.0}, run(t, hp.ClampMax(lit(900)).ClampMin(lit(0)), ctx))
	assert.Equal(t, []any{1000}, run(t, hp.Limit(lit(1)), ctx))
}

func TestSelector_When(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	hp := selector.Self().SelectPath("currentHp")

	yes := func(*battle.Context) bool { return true }
	no := func(*battle.Context) bool { return false }

	assert.Equal(t, []any{1}, run(t, hp.When(yes, lit(1), nil), ctx))
	assert.Equal(t, []any{1000}, run(t, hp.When(no, lit(1), nil), ctx))
	assert.Equal(t, []any{2}, run(t, hp.When(no, lit(1), lit(2)), ctx))
	assert.Equal(t, typecheck.Number, hp.When(no, lit(1), nil).Type())
}

func TestSelector_ConditionalAndFromSource(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	low := true
	cond := func(*battle.Context) bool { return low }

	s := selector.Conditional(cond, selector.Self(), selector.Foe())
	assert.Equal(t, typecheck.Pet, s.Type())
	assert.Equal(t, []any{arena.Ally}, run(t, s, ctx))
	low = false
	assert.Equal(t, []any{arena.Enemy}, run(t, s, ctx))

	values := selector.FromSource(typecheck.Number, lit([]any{1, 2, 3})).Sum()
	assert.Equal(t, []any{6.0}, run(t, values, ctx))

	nested := selector.FromSource(typecheck.Any, lit([]any{[]any{1, 2}, 3})).Flat()
	assert.Equal(t, []any{1, 2, 3}, run(t, nested, ctx))
}

func TestBase(t *testing.T) {
	arena := testutils.NewArena(nil)
	skill := testutils.NewSkill("slash", 80)
	use := testutils.NewSkillUse(arena.Ally, skill, arena.EnemyBench)
	ctx := arena.Context(battle.OnSkillUse, arena.Ally).WithSkillUse(use)

	tests := []struct {
		key      string
		expected []any
	}{
		{selector.KeySelf, []any{arena.Ally}},
		{selector.KeyFoe, []any{arena.Enemy}},
		{selector.KeyTarget, []any{arena.EnemyBench}},
		{selector.KeyFoeTeam, []any{arena.Enemy, arena.EnemyBench}},
		{selector.KeyPetOwners, []any{arena.Home}},
		{selector.KeyFoeOwners, []any{arena.Away}},
		{selector.KeyUsingSkillContext, []any{use}},
		{selector.KeySkill, []any{skill}},
		{selector.KeyDamageContext, []any{}},
		{selector.KeyMark, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s, err := selector.Base(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, run(t, s, ctx))
		})
	}

	_, err := selector.Base("everyone")
	require.Error(t, err)
	assert.True(t, battleerr.IsUnknownTag(err))
	assert.Contains(t, err.Error(), "everyone")
	assert.Contains(t, selector.BaseKeys(), selector.KeyAddedMark)
}

func TestBase_TargetFallsBackToFoe(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	assert.Equal(t, []any{arena.Enemy}, run(t, selector.Target(), ctx))

	dmg := &testutils.DamageCalc{SourcePet: arena.Enemy, TargetPet: arena.AllyBench, Base: 10}
	ctx.WithDamage(dmg)
	assert.Equal(t, []any{arena.AllyBench}, run(t, selector.Target(), ctx))
}
