package testsCommon

import (
	"context"

	"github.com/astrovalid/srd-metrics/services/collector/common"
	"github.com/astrovalid/srd-metrics/services/collector/config"
)

// PollerStub -
type PollerStub struct {
	PollAllHandler func(ctx context.Context, sources []config.SourceConfig) map[string]common.MeasurementResult
}

// PollAll -
func (stub *PollerStub) PollAll(ctx context.Context, sources []config.SourceConfig) map[string]common.MeasurementResult {
	if stub.PollAllHandler != nil {
		return stub.PollAllHandler(ctx, sources)
	}

	return make(map[string]common.MeasurementResult)
}

// IsInterfaceNil -
func (stub *PollerStub) IsInterfaceNil() bool {
	return stub == nil
}
