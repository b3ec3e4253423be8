package lint

import (
	"fmt"
	"strings"

	"github.com/astrovalid/srd-metrics/services/registry/specs"
)

// Severity classifies a lint issue
type Severity int

const (
	// SeverityWarning marks a suspect value that does not prevent the table from being used
	SeverityWarning Severity = iota
	// SeverityError marks a data-integrity violation
	SeverityError
)

// String returns the human readable severity tag
func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}

	return "WARNING"
}

// Issue is one finding of the integrity checks
type Issue struct {
	Severity Severity        `json:"severity"`
	Metric   string          `json:"metric"`
	Level    specs.Milestone `json:"level,omitempty"`
	Message  string          `json:"message"`
}

// Report aggregates all findings for one table
type Report struct {
	Issues []Issue `json:"issues"`
}

// Run executes the data-integrity checks over the provided table:
//   - every dependency code resolves to a metric in the same table
//   - milestone tags come from the known set, without duplicates per metric
//   - threshold values are non-negative
//   - the unit string is identical across a metric's levels
//   - thresholds tighten (are non-increasing) across milestone order; breaks
//     are flagged as suspected transcription errors, never corrected
func Run(table *specs.Table) *Report {
	report := &Report{}

	for _, code := range table.Codes() {
		metric, err := table.Metric(code)
		if err != nil {
			continue
		}

		checkMilestones(report, metric)
		checkValues(report, metric)
		checkUnits(report, metric)
		checkDependencies(report, table, metric)
		checkTrend(report, metric)
	}

	return report
}

func checkMilestones(report *Report, metric *specs.Metric) {
	seen := make(map[specs.Milestone]bool)
	for _, level := range metric.Specs {
		if !level.Level.IsValid() {
			report.add(SeverityError, metric.Code, level.Level,
				fmt.Sprintf("milestone tag '%s' is outside the known set", level.Level))
			continue
		}
		if seen[level.Level] {
			report.add(SeverityError, metric.Code, level.Level,
				fmt.Sprintf("milestone %s declared more than once", level.Level))
		}
		seen[level.Level] = true
	}
}

func checkValues(report *Report, metric *specs.Metric) {
	for _, level := range metric.Specs {
		if level.Value < 0 {
			report.add(SeverityError, metric.Code, level.Level,
				fmt.Sprintf("negative threshold value %v", level.Value))
		}
	}
}

func checkUnits(report *Report, metric *specs.Metric) {
	if len(metric.Specs) == 0 {
		return
	}

	unit := metric.Specs[0].Unit
	for _, level := range metric.Specs[1:] {
		if level.Unit != unit {
			report.add(SeverityError, metric.Code, level.Level,
				fmt.Sprintf("unit '%s' differs from the metric's unit '%s'", level.Unit, unit))
		}
	}
}

func checkDependencies(report *Report, table *specs.Table, metric *specs.Metric) {
	for _, level := range metric.Specs {
		for _, dep := range level.Dependencies {
			_, err := table.Metric(dep)
			if err != nil {
				report.add(SeverityError, metric.Code, level.Level,
					fmt.Sprintf("dependency '%s' does not exist in the table", dep))
			}
		}
	}
}

func checkTrend(report *Report, metric *specs.Metric) {
	// walk levels in chronological milestone order, skipping unknown tags
	// (those are already reported as errors)
	var previous *specs.SpecLevel
	for _, milestone := range specs.Milestones() {
		level, found := metric.LevelAt(milestone)
		if !found {
			continue
		}

		if previous != nil && level.Value > previous.Value {
			report.add(SeverityWarning, metric.Code, level.Level,
				fmt.Sprintf("threshold loosens from %v at %s to %v at %s; suspected transcription error",
					previous.Value, previous.Level, level.Value, level.Level))
		}

		levelCopy := level
		previous = &levelCopy
	}
}

func (r *Report) add(severity Severity, metric string, level specs.Milestone, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Metric:   metric,
		Level:    level,
		Message:  message,
	})
}

// HasErrors returns true if at least one issue has error severity
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Warnings returns only the warning-severity issues
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}

	return out
}

// String renders the report as one line per issue
func (r *Report) String() string {
	if len(r.Issues) == 0 {
		return "no issues found"
	}

	var sb strings.Builder
	for _, issue := range r.Issues {
		sb.WriteString(issue.Severity.String())
		sb.WriteString(" ")
		sb.WriteString(issue.Metric)
		if len(issue.Level) > 0 {
			sb.WriteString("/")
			sb.WriteString(string(issue.Level))
		}
		sb.WriteString(": ")
		sb.WriteString(issue.Message)
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
