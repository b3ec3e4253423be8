package specs

// Reference points to the science requirements document defining a metric
type Reference struct {
	Doc  string `json:"doc" yaml:"doc"`
	URL  string `json:"url" yaml:"url"`
	Page int    `json:"page" yaml:"page"`
}

// Parameter is a fixed named constant attached to a metric (e.g. the pair
// separation distance D of the astrometric repeatability metrics)
type Parameter struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// SpecLevel is one milestone threshold of a metric. An empty Unit means the
// value is a percentage.
type SpecLevel struct {
	Level        Milestone `json:"level"`
	Value        float64   `json:"value"`
	Unit         string    `json:"unit"`
	FilterNames  []string  `json:"filterNames"`
	Dependencies []string  `json:"dependencies,omitempty"`
}

// AppliesTo returns true if the level covers the provided photometric filter
func (sl SpecLevel) AppliesTo(filterName string) bool {
	for _, f := range sl.FilterNames {
		if f == filterName {
			return true
		}
	}

	return false
}

// Metric is one science-requirements metric together with its ordered
// per-milestone specification levels. Instances are created by the loader and
// never mutated afterwards.
type Metric struct {
	Code        string               `json:"code"`
	Reference   Reference            `json:"reference"`
	Description string               `json:"description"`
	Operator    Operator             `json:"operator"`
	Parameters  map[string]Parameter `json:"parameters,omitempty"`
	Specs       []SpecLevel          `json:"specs"`
}

// LevelAt returns the specification level declared at the provided milestone
func (m *Metric) LevelAt(milestone Milestone) (SpecLevel, bool) {
	for _, sl := range m.Specs {
		if sl.Level == milestone {
			return sl, true
		}
	}

	return SpecLevel{}, false
}
