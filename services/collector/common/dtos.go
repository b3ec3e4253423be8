package common

import "github.com/astrovalid/srd-metrics/services/collector/config"

// MeasurementResult holds the extracted value for a specific source configuration
type MeasurementResult struct {
	Config config.SourceConfig
	Value  float64
}

// ReportPayload is the payload to be sent to the registry service
type ReportPayload struct {
	Source       string               `json:"source"`
	Measurements []MeasurementPayload `json:"measurements"`
}

// MeasurementPayload defines a single reported measurement
type MeasurementPayload struct {
	Metric string  `json:"metric"`
	Filter string  `json:"filter"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}
