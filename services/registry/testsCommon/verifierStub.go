package testsCommon

import (
	"github.com/astrovalid/srd-metrics/services/registry/common"
	"github.com/astrovalid/srd-metrics/services/registry/specs"
)

// VerifierStub -
type VerifierStub struct {
	VerifyHandler    func(code string, filterName string, value float64, unit string) (common.Verdict, error)
	MilestoneHandler func() specs.Milestone
}

// Verify -
func (stub *VerifierStub) Verify(code string, filterName string, value float64, unit string) (common.Verdict, error) {
	if stub.VerifyHandler != nil {
		return stub.VerifyHandler(code, filterName, value, unit)
	}

	return common.Verdict{}, nil
}

// Milestone -
func (stub *VerifierStub) Milestone() specs.Milestone {
	if stub.MilestoneHandler != nil {
		return stub.MilestoneHandler()
	}

	return specs.ORR
}

// IsInterfaceNil -
func (stub *VerifierStub) IsInterfaceNil() bool {
	return stub == nil
}
