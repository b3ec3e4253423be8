package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("should work", func(t *testing.T) {
		doc := `
# build dependencies
setupRequired(afw)
setupRequired(pipe_tasks)
setupOptional(treecorr)

envPrepend(PATH, ${PRODUCT_DIR}/bin)
envPrepend(PYTHONPATH, ${PRODUCT_DIR}/python)
`
		m, err := Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, []string{"afw", "pipe_tasks"}, m.Required)
		assert.Equal(t, []string{"treecorr"}, m.Optional)
		require.Len(t, m.EnvPrepends, 2)
		assert.Equal(t, EnvPrepend{Var: "PATH", Path: "${PRODUCT_DIR}/bin"}, m.EnvPrepends[0])
		assert.Equal(t, EnvPrepend{Var: "PYTHONPATH", Path: "${PRODUCT_DIR}/python"}, m.EnvPrepends[1])

		assert.NoError(t, m.Validate())
	})
	t.Run("malformed directive should error with line number", func(t *testing.T) {
		m, err := Parse([]byte("setupRequired afw"))
		assert.Nil(t, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})
	t.Run("unknown directive should error", func(t *testing.T) {
		m, err := Parse([]byte("setupForbidden(afw)"))
		assert.Nil(t, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown directive")
	})
	t.Run("envPrepend without path should error", func(t *testing.T) {
		m, err := Parse([]byte("envPrepend(PATH)"))
		assert.Nil(t, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "envPrepend expects")
	})
	t.Run("empty product should error", func(t *testing.T) {
		m, err := Parse([]byte("setupRequired()"))
		assert.Nil(t, m)
		assert.Error(t, err)
	})
}

func TestManifest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("duplicate across required and optional should error", func(t *testing.T) {
		m := &Manifest{
			Required: []string{"afw"},
			Optional: []string{"afw"},
		}
		err := m.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "afw")
	})
	t.Run("empty env var name should error", func(t *testing.T) {
		m := &Manifest{
			EnvPrepends: []EnvPrepend{{Var: "", Path: "/bin"}},
		}
		assert.Error(t, m.Validate())
	})
}

func TestLoad_ShippedManifest(t *testing.T) {
	t.Parallel()

	m, err := Load("../../../cfg/manifest.table")
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Contains(t, m.Required, "afw")
	assert.Contains(t, m.Optional, "treecorr")
	require.Len(t, m.EnvPrepends, 2)
}
