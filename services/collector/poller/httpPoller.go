package poller

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/astrovalid/srd-metrics/services/collector/common"
	"github.com/astrovalid/srd-metrics/services/collector/config"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("poller")

type httpPoller struct {
	client *http.Client
}

// NewHTTPPoller creates a new HTTP-based poller with a default timeout
func NewHTTPPoller(timeout time.Duration) *httpPoller {
	return &httpPoller{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// PollAll performs concurrent HTTP GETs to all configured sources and extracts the numeric measurement value
// at the configured JSON sub-path. Sources that fail/timeout or lack a numeric value at the path are omitted.
func (p *httpPoller) PollAll(ctx context.Context, sources []config.SourceConfig) map[string]common.MeasurementResult {
	results := make(map[string]common.MeasurementResult)
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(len(sources))
	for _, src := range sources {
		go func(source config.SourceConfig) {
			defer wg.Done()

			val, err := p.pollSource(ctx, source)
			if err != nil {
				log.Warn("source poll failed", "name", source.Name, "url", source.URL, "error", err)
				return // Omits from report
			}

			mu.Lock()
			results[source.Name] = common.MeasurementResult{
				Config: source,
				Value:  val,
			}
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return results
}

func (p *httpPoller) pollSource(ctx context.Context, src config.SourceConfig) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	// Use gjson to extract the path (e.g. "measurements.PA1.value")
	result := gjson.GetBytes(body, src.ValuePath)
	if !result.Exists() {
		return 0, errPathNotFound(src.ValuePath)
	}
	if result.Type != gjson.Number {
		return 0, errPathNotNumeric(src.ValuePath)
	}

	return result.Float(), nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (p *httpPoller) IsInterfaceNil() bool {
	return p == nil
}
