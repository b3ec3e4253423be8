package engine

import (
	"context"

	"github.com/astrovalid/srd-metrics/services/collector/common"
	"github.com/astrovalid/srd-metrics/services/collector/config"
)

// Poller defines the interface for fetching measurement values from pipeline job endpoints
type Poller interface {
	// PollAll performs concurrent HTTP GETs to all configured sources and extracts the numeric
	// measurement value at the configured JSON sub-path. Sources that fail/timeout or lack a
	// numeric value at the path are omitted from the returned map.
	PollAll(ctx context.Context, sources []config.SourceConfig) map[string]common.MeasurementResult

	IsInterfaceNil() bool
}

// Reporter defines the interface for pushing polled measurements to the registry service
type Reporter interface {
	// Report sends a payload containing the polled measurement values to the registry.
	// Reporting failures are logged and the batch is discarded without immediate retry.
	Report(ctx context.Context, results map[string]common.MeasurementResult) error

	IsInterfaceNil() bool
}
