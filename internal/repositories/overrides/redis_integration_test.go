//go:build integration

package overrides_test

import (
	"context"
	"testing"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
	"github.com/KirkDiggler/pet-battle-effects/internal/repositories/overrides"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	repo := overrides.NewRedis(client)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "ember.damage", 55))
		require.NoError(t, repo.Set(ctx, "ember.label", "Ember"))

		value, err := repo.Get(ctx, "ember.damage")
		require.NoError(t, err)
		assert.Equal(t, 55.0, value)

		values, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ember.damage": 55.0, "ember.label": "Ember"}, values)
	})

	t.Run("feeds registry", func(t *testing.T) {
		reg := registry.New()
		reg.Register("ember.damage", 40.0)

		applied, err := reg.LoadOverrides(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		value, ok := reg.Get("ember.damage", nil)
		require.True(t, ok)
		assert.Equal(t, 55.0, value)
	})

	t.Run("reads patches written by other tools", func(t *testing.T) {
		testutils.SeedOverrides(t, client, overrides.DefaultKey, map[string]any{
			"frost.slow":    true,
			"frost.percent": 12.5,
		})
		require.NoError(t, client.HSet(ctx, overrides.DefaultKey, "frost.broken", "{not json").Err())

		values, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, true, values["frost.slow"])
		assert.Equal(t, 12.5, values["frost.percent"])
		assert.NotContains(t, values, "frost.broken")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "ember.label"))
		_, err := repo.Get(ctx, "ember.label")
		assert.True(t, battleerr.IsNotFound(err))
	})
}
