package typecheck_test

import (
	"testing"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	tests := []struct {
		name     string
		typ      string
		path     string
		expected string
	}{
		{name: "scalar field", typ: typecheck.Pet, path: "currentHp", expected: typecheck.Number},
		{name: "nested object", typ: typecheck.Pet, path: "owner.rage", expected: typecheck.Number},
		{name: "array fan out", typ: typecheck.Pet, path: "marks.duration", expected: typecheck.Number},
		{name: "array notation", typ: typecheck.Pet, path: "marks[].duration", expected: typecheck.Number},
		{name: "array element", typ: typecheck.Player, path: "team", expected: typecheck.Pet},
		{name: "context field", typ: typecheck.UseSkillContext, path: "skill.power", expected: typecheck.Number},
		{name: "any passes through", typ: typecheck.Any, path: "whatever.deep", expected: typecheck.Any},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := typecheck.ValidatePath(tt.typ, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidatePath_InvalidInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	_, err := typecheck.ValidatePath(typecheck.Pet, "invalidProp")
	require.Error(t, err)
	assert.True(t, battleerr.IsInvalidPath(err))
	assert.Contains(t, err.Error(), "invalidProp")
	assert.Contains(t, err.Error(), "Pet")
	assert.Equal(t, "invalidProp", battleerr.GetMeta(err)[battleerr.MetaPath])

	_, err = typecheck.ValidatePath(typecheck.Mark, "owner.missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a field of Pet")

	_, err = typecheck.ValidatePath(typecheck.Pet, "name[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array")

	_, err = typecheck.ValidatePath(typecheck.Number, "value")
	require.Error(t, err)
}

func TestValidatePath_SkippedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	assert.False(t, typecheck.Enabled())
	result, err := typecheck.ValidatePath(typecheck.Pet, "invalidProp")
	require.NoError(t, err)
	assert.Equal(t, typecheck.Any, result)

	// the graph is not walked at all, so even a malformed path passes
	result, err = typecheck.ValidatePath(typecheck.Pet, "")
	require.NoError(t, err)
	assert.Equal(t, typecheck.Any, result)

	result, err = typecheck.ValidatePath(typecheck.Pet, "marks")
	require.NoError(t, err)
	assert.Equal(t, typecheck.Any, result)
}

func TestResultType(t *testing.T) {
	assert.Equal(t, typecheck.Mark, typecheck.ResultType(typecheck.Pet, "marks"))
	assert.Equal(t, typecheck.Any, typecheck.ResultType(typecheck.Pet, "nope"))
	assert.True(t, typecheck.Known(typecheck.HealContext))
	assert.False(t, typecheck.Known("Dragon"))
	assert.Contains(t, typecheck.Fields(typecheck.Species), "element")
}
