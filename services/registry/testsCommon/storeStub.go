package testsCommon

import (
	"context"

	"github.com/astrovalid/srd-metrics/services/registry/common"
)

// StoreStub -
type StoreStub struct {
	SaveMeasurementHandler       func(ctx context.Context, rec common.MeasurementRecord) error
	GetLatestMeasurementsHandler func(ctx context.Context) ([]common.MeasurementRecord, error)
	GetMeasurementHistoryHandler func(ctx context.Context, metric string) ([]common.MeasurementRecord, error)
	GetSummaryHandler            func(ctx context.Context) (map[string]common.PassFailCount, error)
	DeleteMeasurementsHandler    func(ctx context.Context, metric string) error
}

// SaveMeasurement -
func (stub *StoreStub) SaveMeasurement(ctx context.Context, rec common.MeasurementRecord) error {
	if stub.SaveMeasurementHandler != nil {
		return stub.SaveMeasurementHandler(ctx, rec)
	}

	return nil
}

// GetLatestMeasurements -
func (stub *StoreStub) GetLatestMeasurements(ctx context.Context) ([]common.MeasurementRecord, error) {
	if stub.GetLatestMeasurementsHandler != nil {
		return stub.GetLatestMeasurementsHandler(ctx)
	}

	return nil, nil
}

// GetMeasurementHistory -
func (stub *StoreStub) GetMeasurementHistory(ctx context.Context, metric string) ([]common.MeasurementRecord, error) {
	if stub.GetMeasurementHistoryHandler != nil {
		return stub.GetMeasurementHistoryHandler(ctx, metric)
	}

	return nil, nil
}

// GetSummary -
func (stub *StoreStub) GetSummary(ctx context.Context) (map[string]common.PassFailCount, error) {
	if stub.GetSummaryHandler != nil {
		return stub.GetSummaryHandler(ctx)
	}

	return nil, nil
}

// DeleteMeasurements -
func (stub *StoreStub) DeleteMeasurements(ctx context.Context, metric string) error {
	if stub.DeleteMeasurementsHandler != nil {
		return stub.DeleteMeasurementsHandler(ctx, metric)
	}

	return nil
}

// Close -
func (stub *StoreStub) Close() error {
	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
