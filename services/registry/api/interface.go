package api

import (
	"context"

	"github.com/astrovalid/srd-metrics/services/registry/common"
	"github.com/astrovalid/srd-metrics/services/registry/specs"
)

// Storage defines the interface for persisting and querying verified measurements
type Storage interface {
	// SaveMeasurement appends one verified measurement
	SaveMeasurement(ctx context.Context, rec common.MeasurementRecord) error

	// GetLatestMeasurements returns the most recent measurement for each metric+filter pair
	GetLatestMeasurements(ctx context.Context) ([]common.MeasurementRecord, error)

	// GetMeasurementHistory returns all retained measurements for a metric
	GetMeasurementHistory(ctx context.Context, metric string) ([]common.MeasurementRecord, error)

	// GetSummary returns the pass/fail counts of retained measurements per metric
	GetSummary(ctx context.Context) (map[string]common.PassFailCount, error)

	// DeleteMeasurements removes all retained measurements for a metric
	DeleteMeasurements(ctx context.Context, metric string) error

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}

// Verifier defines the interface for checking measurement values against the active milestone
type Verifier interface {
	// Verify resolves the threshold for metric+filter and compares the measured value against it
	Verify(code string, filterName string, value float64, unit string) (common.Verdict, error)

	// Milestone returns the milestone the verifier checks against
	Milestone() specs.Milestone

	IsInterfaceNil() bool
}
