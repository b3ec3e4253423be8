package factory

import (
	"fmt"
	"testing"

	"github.com/astrovalid/srd-metrics/services/collector/config"
	"github.com/stretchr/testify/require"
)

func TestNewComponentsHandler(t *testing.T) {
	cfg := config.Config{
		Name:                   "drp-worker-1",
		QueryIntervalInSeconds: 1,
		ReportEndpoint:         "http://localhost:8080/api/measurements",
		ReportTimeoutInSeconds: 1,
		Sources: []config.SourceConfig{
			{Name: "Job1", URL: "http://localhost:9090/status", Metric: "PA1", Filter: "r", ValuePath: "measurements.PA1.value", Unit: "mmag"},
		},
	}

	handler, err := NewComponentsHandler("test-key", cfg)
	require.NoError(t, err)
	require.NotNil(t, handler)

	require.Equal(t, "*poller.httpPoller", fmt.Sprintf("%T", handler.GetPoller()))
	require.Equal(t, "*reporter.httpReporter", fmt.Sprintf("%T", handler.GetReporter()))
	require.Equal(t, "*engine.collectorEngine", fmt.Sprintf("%T", handler.GetEngine()))

	handler.Start()
	// A second call should be a no-op
	handler.Start()

	handler.Close()
	// A second call should be a no-op
	handler.Close()
}
