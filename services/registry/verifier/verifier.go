package verifier

import (
	"errors"
	"fmt"

	"github.com/astrovalid/srd-metrics/services/registry/common"
	"github.com/astrovalid/srd-metrics/services/registry/specs"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("verifier")

// verifier checks measurement values against the thresholds of one milestone
type verifier struct {
	table     *specs.Table
	milestone specs.Milestone
}

// NewVerifier creates a verifier bound to the provided table and milestone
func NewVerifier(table *specs.Table, milestone specs.Milestone) (*verifier, error) {
	if table == nil {
		return nil, errors.New("nil specification table")
	}
	if !milestone.IsValid() {
		return nil, fmt.Errorf("%w: %s", specs.ErrUnknownMilestone, string(milestone))
	}

	return &verifier{
		table:     table,
		milestone: milestone,
	}, nil
}

// Milestone returns the milestone the verifier checks against
func (v *verifier) Milestone() specs.Milestone {
	return v.milestone
}

// Verify resolves the threshold applying to the metric+filter at the active
// milestone and compares the measured value against it. The measurement unit
// must match the specification's; a percent measurement may carry either an
// empty unit or '%'.
func (v *verifier) Verify(code string, filterName string, value float64, unit string) (common.Verdict, error) {
	level, err := v.table.Threshold(code, v.milestone, filterName)
	if err != nil {
		return common.Verdict{}, err
	}

	if normalizeUnit(unit) != normalizeUnit(level.Unit) {
		return common.Verdict{}, errUnitMismatch{got: unit, want: level.Unit}
	}

	metric, err := v.table.Metric(code)
	if err != nil {
		return common.Verdict{}, err
	}

	verdict := common.Verdict{
		Metric:       code,
		Filter:       filterName,
		Milestone:    v.milestone,
		Value:        value,
		Threshold:    level.Value,
		Unit:         level.Unit,
		Operator:     metric.Operator,
		Passed:       metric.Operator.Compare(value, level.Value),
		Dependencies: level.Dependencies,
	}

	log.Trace("verified measurement",
		"metric", code, "filter", filterName, "value", value,
		"threshold", level.Value, "passed", verdict.Passed)

	return verdict, nil
}

// a percentage is encoded as an empty unit string in the table
func normalizeUnit(unit string) string {
	if unit == "%" {
		return ""
	}

	return unit
}

// IsInterfaceNil returns true if the value under the interface is nil
func (v *verifier) IsInterfaceNil() bool {
	return v == nil
}
