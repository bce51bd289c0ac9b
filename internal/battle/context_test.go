package battle_test

import (
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	"github.com/KirkDiggler/pet-battle-effects/internal/marks"
	"github.com/KirkDiggler/pet-battle-effects/internal/modifiers"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Child(t *testing.T) {
	arena := testutils.NewArena(nil)
	use := testutils.NewSkillUse(arena.Ally, testutils.NewSkill("bite", 40), arena.Enemy)
	root := arena.Context(battle.OnSkillUse, arena.Ally).WithSkillUse(use)
	root.MaxDepth = 8

	child := root.Child(battle.OnDamage, arena.Enemy, nil)
	grandchild := child.Child(battle.OnMarkAdded, arena.Enemy, nil)

	assert.Equal(t, 2, grandchild.Depth)
	assert.Same(t, child, grandchild.Parent)
	assert.Same(t, root, grandchild.Root())
	assert.Equal(t, 8, grandchild.DepthLimit())
	assert.Same(t, root.Config, grandchild.Config)
	assert.Equal(t, use, grandchild.SkillUse)
	assert.Equal(t, battle.OnMarkAdded, grandchild.Trigger)
	assert.Equal(t, "enemy", grandchild.Self().ID())
}

func TestContext_DepthLimitDefault(t *testing.T) {
	ctx := battle.NewContext(nil, battle.OnTurnStart, nil, nil)
	assert.Equal(t, config.DefaultMaxEffectDepth, ctx.DepthLimit())
}

func TestContext_DepthLimitFromConfig(t *testing.T) {
	t.Setenv("EFFECT_MAX_DEPTH", "4")
	cfg, err := config.Load()
	require.NoError(t, err)

	arena := testutils.NewArenaFromConfig(&cfg.Engine)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)
	assert.Equal(t, 4, ctx.DepthLimit())
	assert.Equal(t, 4, ctx.Child(battle.OnDamage, nil, nil).DepthLimit())
}

func TestContext_Bind(t *testing.T) {
	arena := testutils.NewArena(nil)
	root := arena.Context(battle.OnTurnStart, nil)
	child := root.Child(battle.OnDamage, arena.Enemy, nil).WithSubject(arena.Enemy)
	skill := testutils.NewSkill("bite", 40)

	bound := child.Bind(arena.Ally, skill)
	assert.Equal(t, child.Depth, bound.Depth)
	assert.Same(t, root, bound.Parent)
	assert.Equal(t, battle.OnDamage, bound.Trigger)
	assert.Equal(t, "ally", bound.Self().ID())
	assert.Equal(t, skill, bound.Source)
	assert.Nil(t, bound.Subject)

	// the original context is left alone
	assert.Equal(t, "enemy", child.Self().ID())

	rootBound := root.Bind(arena.Ally, nil)
	assert.Nil(t, rootBound.Parent)
	assert.Equal(t, 0, rootBound.Depth)
}

func TestContext_SelfFallbacks(t *testing.T) {
	arena := testutils.NewArena(nil)

	mark, err := arena.Enemy.AddMark(nil, &marks.Base{BaseID: "burn", BaseName: "Burn"}, battle.MarkOptions{})
	require.NoError(t, err)
	fromMark := battle.NewContext(arena.Battle, battle.OnTurnEnd, nil, mark)
	assert.Equal(t, "enemy", fromMark.Self().ID())
	assert.Equal(t, mark, fromMark.Mark())
	assert.Nil(t, fromMark.Skill())

	skill := testutils.NewSkill("slash", 60)
	fromUse := battle.NewContext(arena.Battle, battle.OnSkillUse, nil, nil).
		WithSkillUse(testutils.NewSkillUse(arena.AllyBench, skill, arena.Enemy))
	assert.Equal(t, "ally-bench", fromUse.Self().ID())
	assert.Equal(t, "slash", fromUse.Skill().ID())

	assert.Nil(t, battle.NewContext(arena.Battle, battle.OnTurnStart, nil, nil).Self())
}

func TestContext_Sides(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)

	assert.Equal(t, "home", ctx.SelfPlayer().ID())
	assert.Equal(t, "away", ctx.FoePlayer().ID())
	assert.Equal(t, "enemy", ctx.Foe().ID())

	arena.Away.Active = 1
	assert.Equal(t, "enemy-bench", ctx.Foe().ID())

	noBattle := battle.NewContext(nil, battle.OnTurnStart, arena.Ally, nil)
	assert.Nil(t, noBattle.FoePlayer())
	assert.Nil(t, noBattle.Foe())
	assert.Nil(t, noBattle.Phases())
}

func TestContext_Target(t *testing.T) {
	arena := testutils.NewArena(nil)

	ctx := arena.Context(battle.OnHit, arena.Ally)
	assert.Equal(t, "enemy", ctx.Target().ID())

	ctx.WithDamage(&testutils.DamageCalc{SourcePet: arena.Enemy, TargetPet: arena.AllyBench})
	assert.Equal(t, "ally-bench", ctx.Target().ID())

	ctx.WithSkillUse(testutils.NewSkillUse(arena.Ally, testutils.NewSkill("heal-pulse", 0), arena.Ally))
	assert.Equal(t, "ally", ctx.Target().ID())
}

func TestContext_WithSubjectCopies(t *testing.T) {
	arena := testutils.NewArena(nil)
	ctx := arena.Context(battle.OnTurnStart, arena.Ally)

	focused := ctx.WithSubject(arena.Enemy)
	assert.Equal(t, arena.Enemy, focused.Subject)
	assert.Nil(t, ctx.Subject)
	assert.Same(t, ctx.Config, focused.Config)
}

func TestContext_Phases(t *testing.T) {
	arena := testutils.NewArena(nil)
	arena.Battle.EnterPhase(modifiers.PhaseTurn, "t1")
	arena.Battle.EnterPhase(modifiers.PhaseSkill, "s1")

	ctx := arena.Context(battle.OnSkillUse, arena.Ally)
	assert.Equal(t, []modifiers.Phase{
		{Type: modifiers.PhaseTurn, ID: "t1"},
		{Type: modifiers.PhaseSkill, ID: "s1"},
	}, ctx.Phases())
}

func TestParseTrigger(t *testing.T) {
	trigger, err := battle.ParseTrigger("OnDamage")
	require.NoError(t, err)
	assert.Equal(t, battle.OnDamage, trigger)
	assert.True(t, trigger.Valid())

	_, err = battle.ParseTrigger("OnNap")
	assert.Error(t, err)
	assert.False(t, battle.Trigger("OnNap").Valid())

	assert.Len(t, battle.AllTriggers(), 26)
}

func TestParseStat(t *testing.T) {
	for _, stat := range battle.Stats {
		parsed, err := battle.ParseStat(string(stat))
		require.NoError(t, err)
		assert.Equal(t, stat, parsed)
	}

	_, err := battle.ParseStat("luck")
	assert.Error(t, err)
}
