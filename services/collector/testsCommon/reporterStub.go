package testsCommon

import (
	"context"

	"github.com/astrovalid/srd-metrics/services/collector/common"
)

// ReporterStub -
type ReporterStub struct {
	ReportHandler func(ctx context.Context, results map[string]common.MeasurementResult) error
}

// Report -
func (stub *ReporterStub) Report(ctx context.Context, results map[string]common.MeasurementResult) error {
	if stub.ReportHandler != nil {
		return stub.ReportHandler(ctx, results)
	}

	return nil
}

// IsInterfaceNil -
func (stub *ReporterStub) IsInterfaceNil() bool {
	return stub == nil
}
