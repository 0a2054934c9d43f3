// Package config loads the optional tough.yaml settings file. Absence of
// the file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings tough.yaml may override.
type Config struct {
	// LLIPath overrides the lli binary resolved from PATH.
	LLIPath string `yaml:"lli_path"`
	// OptimizationLevel is read and validated (0 to 3) by Load. Nothing
	// in internal/driver reads it, and Driver.Optimize is a no-op.
	OptimizationLevel int `yaml:"optimization_level"`
}

// Default returns the zero-value configuration: lli resolved from PATH,
// optimization level 0.
func Default() *Config {
	return &Config{OptimizationLevel: 0}
}

// Load reads path and unmarshals it into a Config seeded with defaults.
// A missing file is not an error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.OptimizationLevel < 0 || cfg.OptimizationLevel > 3 {
		return nil, fmt.Errorf("%s: optimization_level must be between 0 and 3, got %d", path, cfg.OptimizationLevel)
	}
	return cfg, nil
}

// LoadDefaultPath loads "tough.yaml" from the current working directory.
func LoadDefaultPath() (*Config, error) {
	return Load("tough.yaml")
}
