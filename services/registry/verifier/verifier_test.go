package verifier

import (
	"testing"

	"github.com/astrovalid/srd-metrics/services/registry/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTable(t *testing.T) *specs.Table {
	table, err := specs.Load("../testdata/metrics.yaml")
	require.NoError(t, err)

	return table
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	t.Run("nil table should error", func(t *testing.T) {
		v, err := NewVerifier(nil, specs.ORR)

		assert.Nil(t, v)
		assert.True(t, v.IsInterfaceNil())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil specification table")
	})
	t.Run("invalid milestone should error", func(t *testing.T) {
		v, err := NewVerifier(loadTable(t), "FY99")

		assert.Nil(t, v)
		assert.ErrorIs(t, err, specs.ErrUnknownMilestone)
	})
	t.Run("should work", func(t *testing.T) {
		v, err := NewVerifier(loadTable(t), specs.FY20)

		require.NoError(t, err)
		assert.False(t, v.IsInterfaceNil())
		assert.Equal(t, specs.FY20, v.Milestone())
	})
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	table := loadTable(t)
	v, err := NewVerifier(table, specs.ORR)
	require.NoError(t, err)

	t.Run("passing measurement", func(t *testing.T) {
		verdict, err := v.Verify("PA1", "r", 4.2, "mmag")
		require.NoError(t, err)
		assert.True(t, verdict.Passed)
		assert.Equal(t, 5.0, verdict.Threshold)
		assert.Equal(t, "mmag", verdict.Unit)
		assert.Equal(t, specs.OperatorLE, verdict.Operator)
		assert.Equal(t, specs.ORR, verdict.Milestone)
	})
	t.Run("failing measurement", func(t *testing.T) {
		verdict, err := v.Verify("PA1", "r", 6.1, "mmag")
		require.NoError(t, err)
		assert.False(t, verdict.Passed)
	})
	t.Run("value equal to threshold passes under <=", func(t *testing.T) {
		verdict, err := v.Verify("PA1", "r", 5.0, "mmag")
		require.NoError(t, err)
		assert.True(t, verdict.Passed)
	})
	t.Run("verdict carries the level's cross-metric dependencies", func(t *testing.T) {
		verdict, err := v.Verify("PA2", "r", 10.0, "mmag")
		require.NoError(t, err)
		assert.Equal(t, []string{"PF1"}, verdict.Dependencies)
	})
	t.Run("percent unit normalization", func(t *testing.T) {
		// PF1 is stored with an empty unit; both '' and '%' are accepted
		verdict, err := v.Verify("PF1", "r", 9.0, "%")
		require.NoError(t, err)
		assert.True(t, verdict.Passed)

		verdict, err = v.Verify("PF1", "r", 9.0, "")
		require.NoError(t, err)
		assert.True(t, verdict.Passed)
	})
	t.Run("unit mismatch should error", func(t *testing.T) {
		_, err := v.Verify("PA1", "r", 4.2, "mag")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match specification unit")
	})
	t.Run("unknown metric should error", func(t *testing.T) {
		_, err := v.Verify("PA9", "r", 4.2, "mmag")
		assert.ErrorIs(t, err, specs.ErrUnknownMetric)
	})
	t.Run("uncovered filter should error", func(t *testing.T) {
		_, err := v.Verify("AM1", "u", 4.2, "marcsec")
		assert.ErrorIs(t, err, specs.ErrFilterNotCovered)
	})
}
