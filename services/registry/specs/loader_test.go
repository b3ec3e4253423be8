package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = `
PA1:
  reference:
    doc: LPM-17
    url: http://ls.st/lpm-17
    page: 21
  description: photometric repeatability
  operator: "<="
  specs:
    - level: FY17
      value: 8.0
      unit: mmag
      filter_names: [g, r, i]
    - level: ORR
      value: 5.0
      unit: mmag
      filter_names: [g, r, i]

AM1:
  reference:
    doc: LPM-17
    url: http://ls.st/lpm-17
    page: 23
  description: astrometric repeatability at 5 arcmin
  operator: "<="
  parameters:
    D:
      value: 5.0
      unit: arcmin
  specs:
    - level: ORR
      value: 10.0
      unit: marcsec
      filter_names: [r, i]
      dependencies: [PA1]
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("should work and preserve declaration order", func(t *testing.T) {
		table, err := Parse([]byte(testTable))
		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, []string{"PA1", "AM1"}, table.Codes())

		pa1, err := table.Metric("PA1")
		require.NoError(t, err)
		assert.Equal(t, "PA1", pa1.Code)
		assert.Equal(t, "LPM-17", pa1.Reference.Doc)
		assert.Equal(t, 21, pa1.Reference.Page)
		assert.Equal(t, OperatorLE, pa1.Operator)
		require.Len(t, pa1.Specs, 2)
		assert.Equal(t, FY17, pa1.Specs[0].Level)
		assert.Equal(t, 8.0, pa1.Specs[0].Value)
		assert.Equal(t, "mmag", pa1.Specs[0].Unit)
		assert.Equal(t, []string{"g", "r", "i"}, pa1.Specs[0].FilterNames)

		am1, err := table.Metric("AM1")
		require.NoError(t, err)
		require.Contains(t, am1.Parameters, "D")
		assert.Equal(t, 5.0, am1.Parameters["D"].Value)
		assert.Equal(t, "arcmin", am1.Parameters["D"].Unit)
		assert.Equal(t, []string{"PA1"}, am1.Specs[0].Dependencies)
	})
	t.Run("duplicate metric code should error", func(t *testing.T) {
		doc := `
PA1:
  operator: "<="
  specs: []
PA1:
  operator: "<="
  specs: []
`
		table, err := Parse([]byte(doc))
		assert.Nil(t, table)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateMetric)
	})
	t.Run("unknown operator should error", func(t *testing.T) {
		doc := `
PA1:
  operator: "=="
  specs: []
`
		table, err := Parse([]byte(doc))
		assert.Nil(t, table)
		assert.ErrorIs(t, err, ErrUnknownOperator)
	})
	t.Run("non-mapping root should error", func(t *testing.T) {
		table, err := Parse([]byte(`- PA1`))
		assert.Nil(t, table)
		assert.Error(t, err)
	})
	t.Run("invalid yaml should error", func(t *testing.T) {
		table, err := Parse([]byte("PA1: [unclosed"))
		assert.Nil(t, table)
		assert.Error(t, err)
	})
}

func TestTable_Metric(t *testing.T) {
	t.Parallel()

	table, err := Parse([]byte(testTable))
	require.NoError(t, err)

	_, err = table.Metric("PA9")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestTable_Threshold(t *testing.T) {
	t.Parallel()

	table, err := Parse([]byte(testTable))
	require.NoError(t, err)

	t.Run("should work", func(t *testing.T) {
		level, err := table.Threshold("PA1", ORR, "r")
		require.NoError(t, err)
		assert.Equal(t, 5.0, level.Value)
		assert.Equal(t, "mmag", level.Unit)
	})
	t.Run("unknown metric should error", func(t *testing.T) {
		_, err := table.Threshold("PA9", ORR, "r")
		assert.ErrorIs(t, err, ErrUnknownMetric)
	})
	t.Run("unknown milestone should error", func(t *testing.T) {
		_, err := table.Threshold("PA1", "FY99", "r")
		assert.ErrorIs(t, err, ErrUnknownMilestone)
	})
	t.Run("missing milestone level should error", func(t *testing.T) {
		_, err := table.Threshold("AM1", FY18, "r")
		assert.ErrorIs(t, err, ErrNoSpecForMilestone)
	})
	t.Run("uncovered filter should error", func(t *testing.T) {
		_, err := table.Threshold("AM1", ORR, "u")
		assert.ErrorIs(t, err, ErrFilterNotCovered)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file should error", func(t *testing.T) {
		table, err := Load("testdata/does-not-exist.yaml")
		assert.Nil(t, table)
		assert.Error(t, err)
	})
	t.Run("shipped table should load", func(t *testing.T) {
		table, err := Load("../testdata/metrics.yaml")
		require.NoError(t, err)
		require.Equal(t, 12, table.Len())
		assert.Equal(t, []string{
			"PA1", "PF1", "PA2",
			"AM1", "AM2", "AM3",
			"AF1", "AF2", "AF3",
			"AD1", "AD2", "AD3",
		}, table.Codes())

		// the suspect AM3 FY20 value is parsed verbatim
		level, err := table.Threshold("AM3", FY20, "r")
		require.NoError(t, err)
		assert.Equal(t, 205.0, level.Value)
		assert.Equal(t, "marcsec", level.Unit)
	})
}
