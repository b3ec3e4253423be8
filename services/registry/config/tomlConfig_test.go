package config

import (
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	testString := `
ListenAddress = "127.0.0.1:8085"
SpecFile = "./cfg/metrics.yaml"
ManifestFile = "./cfg/manifest.table"
Milestone = "FY20"
DatabasePath = "./db/measurements.db"
RetentionSeconds = 2592000
`

	expectedCfg := Config{
		ListenAddress:    "127.0.0.1:8085",
		SpecFile:         "./cfg/metrics.yaml",
		ManifestFile:     "./cfg/manifest.table",
		Milestone:        "FY20",
		DatabasePath:     "./db/measurements.db",
		RetentionSeconds: 2592000,
	}

	cfg := Config{}

	err := toml.Unmarshal([]byte(testString), &cfg)
	assert.Nil(t, err)
	assert.Equal(t, expectedCfg, cfg)
}
