package specs

import (
	"fmt"
	"os"

	logger "github.com/multiversx/mx-chain-logger-go"
	"gopkg.in/yaml.v3"
)

var log = logger.GetOrCreate("specs")

// Table holds the parsed metric specification table. It preserves the metric
// declaration order of the source document and is read-only after parsing.
type Table struct {
	codes   []string
	metrics map[string]*Metric
}

// metricDoc mirrors the YAML layout of one metric entry
type metricDoc struct {
	Reference   Reference            `yaml:"reference"`
	Description string               `yaml:"description"`
	Operator    string               `yaml:"operator"`
	Parameters  map[string]Parameter `yaml:"parameters"`
	Specs       []specLevelDoc       `yaml:"specs"`
}

type specLevelDoc struct {
	Level        string   `yaml:"level"`
	Value        float64  `yaml:"value"`
	Unit         string   `yaml:"unit"`
	FilterNames  []string `yaml:"filter_names"`
	Dependencies []string `yaml:"dependencies"`
}

// Load reads and parses a metric specification table from a YAML file
func Load(filepath string) (*Table, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification file '%s': %w", filepath, err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse specification file '%s': %w", filepath, err)
	}

	return table, nil
}

// Parse decodes a metric specification table from YAML bytes. The top-level
// document must be a mapping from metric code to metric definition. Metric
// declaration order is preserved and duplicate codes are rejected. Semantic
// integrity (dangling dependencies, milestone sets, trend breaks) is the lint
// package's concern, not the parser's.
func Parse(data []byte) (*Table, error) {
	var root yaml.Node
	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, err
	}

	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty specification document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("specification document root is not a mapping")
	}

	table := &Table{
		metrics: make(map[string]*Metric),
	}

	// mapping nodes store key/value pairs as consecutive content entries
	for i := 0; i < len(doc.Content)-1; i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]

		code := keyNode.Value
		if _, exists := table.metrics[code]; exists {
			return nil, fmt.Errorf("%w: %s (line %d)", ErrDuplicateMetric, code, keyNode.Line)
		}

		var md metricDoc
		err = valueNode.Decode(&md)
		if err != nil {
			return nil, fmt.Errorf("failed to decode metric '%s': %w", code, err)
		}

		metric, err := buildMetric(code, md)
		if err != nil {
			return nil, err
		}

		table.codes = append(table.codes, code)
		table.metrics[code] = metric
	}

	log.Debug("parsed specification table", "metrics", len(table.codes))

	return table, nil
}

func buildMetric(code string, md metricDoc) (*Metric, error) {
	op, err := ParseOperator(md.Operator)
	if err != nil {
		return nil, fmt.Errorf("metric '%s': %w", code, err)
	}

	metric := &Metric{
		Code:        code,
		Reference:   md.Reference,
		Description: md.Description,
		Operator:    op,
		Parameters:  md.Parameters,
	}

	for _, sd := range md.Specs {
		metric.Specs = append(metric.Specs, SpecLevel{
			Level:        Milestone(sd.Level),
			Value:        sd.Value,
			Unit:         sd.Unit,
			FilterNames:  sd.FilterNames,
			Dependencies: sd.Dependencies,
		})
	}

	return metric, nil
}

// Codes returns the metric codes in declaration order
func (t *Table) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)

	return out
}

// Metric returns the metric definition for the provided code
func (t *Table) Metric(code string) (*Metric, error) {
	metric, found := t.metrics[code]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, code)
	}

	return metric, nil
}

// Threshold resolves the specification level of a metric applying at the
// provided milestone and photometric filter. There is no fallback to an
// earlier milestone: the level must be declared at the requested tag.
func (t *Table) Threshold(code string, milestone Milestone, filterName string) (SpecLevel, error) {
	metric, err := t.Metric(code)
	if err != nil {
		return SpecLevel{}, err
	}

	if !milestone.IsValid() {
		return SpecLevel{}, fmt.Errorf("%w: %s", ErrUnknownMilestone, string(milestone))
	}

	level, found := metric.LevelAt(milestone)
	if !found {
		return SpecLevel{}, fmt.Errorf("%w: metric %s, milestone %s", ErrNoSpecForMilestone, code, milestone)
	}

	if !level.AppliesTo(filterName) {
		return SpecLevel{}, fmt.Errorf("%w: metric %s, milestone %s, filter '%s'", ErrFilterNotCovered, code, milestone, filterName)
	}

	return level, nil
}

// Len returns the number of metrics in the table
func (t *Table) Len() int {
	return len(t.codes)
}
