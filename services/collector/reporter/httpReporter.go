package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/astrovalid/srd-metrics/services/collector/common"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("reporter")

type httpReporter struct {
	endpoint string
	apiKey   string
	agentID  string
	client   *http.Client
}

// NewHTTPReporter creates a new reporter that pushes to the configured ReportEndpoint
func NewHTTPReporter(endpoint, apiKey, agentID string, timeout time.Duration) *httpReporter {
	return &httpReporter{
		endpoint: endpoint,
		apiKey:   apiKey,
		agentID:  agentID,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Report sends the polled measurement values to the registry service
func (r *httpReporter) Report(ctx context.Context, results map[string]common.MeasurementResult) error {
	payload := common.ReportPayload{
		Source:       r.agentID,
		Measurements: make([]common.MeasurementPayload, 0, len(results)),
	}

	for _, res := range results {
		payload.Measurements = append(payload.Measurements, common.MeasurementPayload{
			Metric: res.Config.Metric,
			Filter: res.Config.Filter,
			Value:  res.Value,
			Unit:   res.Config.Unit,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error sending report: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server rejected report with status code: %d", resp.StatusCode)
	}

	log.Debug("successfully sent measurements report", "endpoint", r.endpoint, "measurements_count", len(payload.Measurements))

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *httpReporter) IsInterfaceNil() bool {
	return r == nil
}
