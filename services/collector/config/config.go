package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SourceConfig defines a single pipeline job endpoint carrying a measured metric value
type SourceConfig struct {
	Name      string `toml:"Name"`
	URL       string `toml:"URL"`
	Metric    string `toml:"Metric"`
	Filter    string `toml:"Filter"`
	ValuePath string `toml:"ValuePath"`
	Unit      string `toml:"Unit"`
}

// Config maps to the config.toml file for the collector agent
type Config struct {
	Name                   string         `toml:"Name"`
	QueryIntervalInSeconds uint32         `toml:"QueryIntervalInSeconds"`
	ReportEndpoint         string         `toml:"ReportEndpoint"`
	ReportTimeoutInSeconds uint32         `toml:"ReportTimeoutInSeconds"`
	Sources                []SourceConfig `toml:"Sources"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
