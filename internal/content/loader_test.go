package content_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	mockbattle "github.com/KirkDiggler/pet-battle-effects/internal/battle/mock"
	"github.com/KirkDiggler/pet-battle-effects/internal/content"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const emberJSON = `{
	"id": "ember",
	"trigger": "OnHit",
	"priority": 1,
	"apply": {"type": "dealDamage", "target": "foe", "value": {"type": "raw:number", "value": 40, "configId": "damage"}}
}`

const statusYAML = `
- id: ignite
  trigger: OnHit
  priority: 5
  apply:
    type: addMark
    target: foe
    mark: {type: "entity:baseMark", value: burn}
    stacks: 2
- id: regen
  trigger: [OnTurnEnd, OnSwitchIn]
  apply: {type: heal, value: 25}
`

const marksJSON = `{
	"effects": [
		{"id": "burn-tick", "trigger": "OnTurnEnd", "apply": {"type": "dealDamage", "value": 30}}
	],
	"marks": [
		{"id": "burn", "name": "Burn", "maxStacks": 5, "duration": 3, "effects": ["burn-tick"]}
	]
}`

type LoaderTestSuite struct {
	suite.Suite
	dir    string
	arena  *testutils.Arena
	loader *content.Loader
}

func (s *LoaderTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.arena = testutils.NewArena(nil)
	s.loader = content.NewLoader(&content.LoaderConfig{Registry: s.arena.Registry})
}

func (s *LoaderTestSuite) write(name, body string) {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
}

func (s *LoaderTestSuite) writePack() {
	s.write("skills/ember.json", emberJSON)
	s.write("status.yaml", statusYAML)
	s.write("marks/burn.json", marksJSON)
	s.write("README.txt", "not content")
}

func (s *LoaderTestSuite) TestLoadDir() {
	s.writePack()

	catalog, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().NoError(err)

	s.Equal(4, catalog.Len())
	s.Same(catalog, s.loader.Catalog())

	ids := []string{}
	for _, e := range catalog.All() {
		ids = append(ids, e.ID)
	}
	s.Equal([]string{"burn-tick", "ember", "ignite", "regen"}, ids)

	regen, ok := catalog.Get("regen")
	s.Require().True(ok)
	s.Equal([]battle.Trigger{battle.OnTurnEnd, battle.OnSwitchIn}, regen.Triggers)

	source, ok := catalog.Source("ember")
	s.Require().True(ok)
	s.Equal(filepath.Join(s.dir, "skills", "ember.json"), source)

	burn, ok := catalog.Mark("burn")
	s.Require().True(ok)
	s.Equal("Burn", burn.Name())
	s.Require().Len(burn.Effects, 1)
	s.Equal("burn-tick", burn.Effects[0].ID)
	s.Len(catalog.Marks(), 1)
}

func (s *LoaderTestSuite) TestForTriggerOrdersByPriority() {
	s.writePack()

	catalog, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().NoError(err)

	onHit := catalog.ForTrigger(battle.OnHit)
	s.Require().Len(onHit, 2)
	s.Equal("ignite", onHit[0].ID)
	s.Equal("ember", onHit[1].ID)

	s.Empty(catalog.ForTrigger(battle.OnDefeat))
}

func (s *LoaderTestSuite) TestMarksResolveAgainstCatalog() {
	s.writePack()

	catalog, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().NoError(err)

	ignite, _ := catalog.Get("ignite")
	_, err = ignite.Execute(s.arena.Context(battle.OnHit, s.arena.Ally))
	s.Require().NoError(err)

	onEnemy := s.arena.Enemy.Marks()
	s.Require().Len(onEnemy, 1)
	s.Equal("burn", onEnemy[0].BaseID())
	s.Equal(2, onEnemy[0].Stacks())
}

func (s *LoaderTestSuite) TestEngineOverrides() {
	s.writePack()
	s.write(content.EngineFile, "overrides:\n  ember.damage: 55\n  retired.move: 3\n")

	catalog, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().NoError(err)

	ember, _ := catalog.Get("ember")
	_, err = ember.Execute(s.arena.Context(battle.OnHit, s.arena.Ally))
	s.Require().NoError(err)
	s.Equal(745, s.arena.Enemy.HP)
}

func (s *LoaderTestSuite) TestDuplicateIDs() {
	s.write("a.json", emberJSON)
	s.write("b.yaml", "id: ember\ntrigger: OnHit\napply: {type: heal, value: 1}\n")

	_, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().Error(err)
	s.Equal(battleerr.CodeAlreadyExists, battleerr.GetCode(err))
	s.Contains(err.Error(), "ember")
}

func (s *LoaderTestSuite) TestCompileErrorNamesFile() {
	s.write("broken.json", `{"id": "broken-move", "trigger": "OnHit", "apply": {"type": "explode"}}`)

	_, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().Error(err)
	s.True(battleerr.IsUnknownTag(err))

	meta := battleerr.GetMeta(err)
	s.Equal("broken-move", meta[battleerr.MetaEffectID])
	s.Equal(filepath.Join(s.dir, "broken.json"), meta["file"])
}

func (s *LoaderTestSuite) TestMissingMarkEffect() {
	s.write("marks.json", `{"marks": [{"id": "freeze", "effects": ["ice-tick"]}]}`)

	_, err := s.loader.LoadDir(context.Background(), s.dir)
	s.Require().Error(err)
	s.True(battleerr.IsNotFound(err))
}

func (s *LoaderTestSuite) TestReload() {
	s.writePack()
	ctx := context.Background()

	_, err := s.loader.LoadDir(ctx, s.dir)
	s.Require().NoError(err)
	keys := s.arena.Registry.Keys()

	s.write("extra.json", `{"id": "focus", "trigger": "OnTurnStart", "apply": {"type": "addRage", "value": 10}}`)
	catalog, err := s.loader.Reload(ctx)
	s.Require().NoError(err)
	s.Equal(5, catalog.Len())
	s.Equal(keys, s.arena.Registry.Keys())

	// a broken reload keeps the last good catalog
	s.write("extra.json", `{"id": "focus", "trigger": "OnNap", "apply": {"type": "addRage", "value": 10}}`)
	_, err = s.loader.Reload(ctx)
	s.Require().Error(err)
	s.Same(catalog, s.loader.Catalog())
}

func (s *LoaderTestSuite) TestFailedReloadKeepsTunables() {
	s.writePack()
	ctx := context.Background()

	catalog, err := s.loader.LoadDir(ctx, s.dir)
	s.Require().NoError(err)

	// the edited ember compiles fine but another file in the pack does not
	s.write("skills/ember.json", strings.Replace(emberJSON, `"value": 40`, `"value": 999`, 1))
	s.write("zz-broken.json", `{"id": "broken-move", "trigger": "OnHit", "apply": {"type": "explode"}}`)

	_, err = s.loader.Reload(ctx)
	s.Require().Error(err)
	s.Same(catalog, s.loader.Catalog())

	value, ok := s.arena.Registry.Get("ember.damage", nil)
	s.Require().True(ok)
	s.Equal(40.0, value)

	ember, _ := catalog.Get("ember")
	_, err = ember.Execute(s.arena.Context(battle.OnHit, s.arena.Ally))
	s.Require().NoError(err)
	s.Equal(760, s.arena.Enemy.HP)

	// once the pack is fixed the new default goes live
	s.Require().NoError(os.Remove(filepath.Join(s.dir, "zz-broken.json")))
	_, err = s.loader.Reload(ctx)
	s.Require().NoError(err)
	value, _ = s.arena.Registry.Get("ember.damage", nil)
	s.Equal(999.0, value)
}

func (s *LoaderTestSuite) TestReloadBeforeLoad() {
	_, err := s.loader.Reload(context.Background())
	s.Require().Error(err)
	s.Equal(battleerr.CodeInvalidArgument, battleerr.GetCode(err))
}

func (s *LoaderTestSuite) TestMissingDirectory() {
	_, err := s.loader.LoadDir(context.Background(), filepath.Join(s.dir, "nope"))
	s.Error(err)
}

func (s *LoaderTestSuite) TestFallbackRepository() {
	ctrl := gomock.NewController(s.T())
	fallback := mockbattle.NewMockDataRepository(ctrl)
	loader := content.NewLoader(&content.LoaderConfig{Fallback: fallback})

	dragon := &testutils.Species{SpeciesID: "dragon", SpeciesName: "Dragon"}
	fallback.EXPECT().Species("dragon").Return(dragon, nil)
	fallback.EXPECT().Mark("frost").Return(nil, battleerr.NotFoundf("mark frost not found"))

	species, err := loader.Species("dragon")
	s.Require().NoError(err)
	s.Equal("Dragon", species.Name())

	_, err = loader.Mark("frost")
	s.True(battleerr.IsNotFound(err))

	_, err = s.loader.Skill("tackle")
	s.True(battleerr.IsNotFound(err))
}

func TestLoaderTestSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}
