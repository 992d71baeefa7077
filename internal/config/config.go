// Package config loads generator configuration from YAML, falling back to
// defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/waymaker/internal/settlement"
	"github.com/talgya/waymaker/internal/world"
)

// Config holds all configuration for a generation run.
type Config struct {
	World       world.GenConfig            `yaml:"world"`
	Settlements settlement.PlacementConfig `yaml:"settlements"`
	Roads       RoadsConfig                `yaml:"roads"`
	Database    DatabaseConfig             `yaml:"database"`
}

// RoadsConfig tunes the road network generator.
type RoadsConfig struct {
	// Buckets sizes the search node table; 0 uses the engine default (256).
	Buckets int `yaml:"buckets"`
	// MaxRounds caps the connection retry loop; 0 means one round per
	// settlement.
	MaxRounds int `yaml:"max_rounds"`
}

// DatabaseConfig holds SQLite output parameters.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		World:       world.DefaultGenConfig(),
		Settlements: settlement.DefaultPlacementConfig(),
		Roads: RoadsConfig{
			Buckets:   0,
			MaxRounds: 0,
		},
		Database: DatabaseConfig{
			Path: "data/waymaker.db",
		},
	}
}

// Load reads configuration from a YAML file. A missing file returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
