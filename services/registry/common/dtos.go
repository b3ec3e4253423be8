package common

import "github.com/astrovalid/srd-metrics/services/registry/specs"

// MeasurementPayload is one measured metric value submitted by a collector
type MeasurementPayload struct {
	Metric string  `json:"metric"`
	Filter string  `json:"filter"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

// ReportPayload is the incoming JSON body on /api/measurements
type ReportPayload struct {
	Source       string               `json:"source"`
	Measurements []MeasurementPayload `json:"measurements"`
}

// Verdict is the outcome of checking one measurement against the active
// milestone's threshold
type Verdict struct {
	Metric       string          `json:"metric"`
	Filter       string          `json:"filter"`
	Milestone    specs.Milestone `json:"milestone"`
	Value        float64         `json:"value"`
	Threshold    float64         `json:"threshold"`
	Unit         string          `json:"unit"`
	Operator     specs.Operator  `json:"operator"`
	Passed       bool            `json:"passed"`
	Dependencies []string        `json:"dependencies,omitempty"`
}

// MeasurementRecord is one verified measurement persisted by the storage
type MeasurementRecord struct {
	Metric     string  `json:"metric"`
	Filter     string  `json:"filter"`
	Source     string  `json:"source"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Threshold  float64 `json:"threshold"`
	Passed     bool    `json:"passed"`
	RecordedAt int64   `json:"recordedAt"`
}

// PassFailCount sums verdicts per metric
type PassFailCount struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}
