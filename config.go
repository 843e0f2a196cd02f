package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. BLEND_BEAM_WIDTH.
const EnvPrefix = "BLEND"

// Config holds search tuning parameters and logging options. Adjust the beam
// fields to trade speed for solution quality.
type Config struct {
	// BeamWidth is the number of states expanded per depth per round.
	BeamWidth int `yaml:"beamWidth" envconfig:"BEAM_WIDTH"`
	// BeamDepth is how many plies each lookahead step explores.
	BeamDepth int `yaml:"beamDepth" envconfig:"BEAM_DEPTH"`
	// BeamRounds is the number of passes over all depths per lookahead step.
	BeamRounds int `yaml:"beamRounds" envconfig:"BEAM_ROUNDS"`
	// TimeLimit bounds the lookahead phase. Zero means no limit.
	TimeLimit time.Duration `yaml:"timeLimit" envconfig:"TIME_LIMIT"`

	Logging LogConfig `yaml:"logging" envconfig:"LOG"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Development bool   `yaml:"development" envconfig:"DEV"`
}

// DefaultConfig returns the parameters the solver was tuned with.
func DefaultConfig() Config {
	return Config{
		BeamWidth:  5,
		BeamDepth:  10,
		BeamRounds: 1,
		TimeLimit:  1900 * time.Millisecond,
		Logging: LogConfig{
			Level: "warn",
		},
	}
}

// Beam returns the lookahead bounds.
func (c Config) Beam() BeamParams {
	return BeamParams{Width: c.BeamWidth, Depth: c.BeamDepth, Rounds: c.BeamRounds}
}

// Validate rejects parameters the search cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.BeamWidth <= 0 {
		errs = append(errs, fmt.Errorf("beam width must be positive, got %d", c.BeamWidth))
	}
	if c.BeamDepth <= 0 {
		errs = append(errs, fmt.Errorf("beam depth must be positive, got %d", c.BeamDepth))
	}
	if c.BeamRounds <= 0 {
		errs = append(errs, fmt.Errorf("beam rounds must be positive, got %d", c.BeamRounds))
	}
	if c.TimeLimit < 0 {
		errs = append(errs, fmt.Errorf("time limit must not be negative, got %v", c.TimeLimit))
	}
	return errors.Join(errs...)
}

// LoadConfig layers an optional YAML file and then BLEND_* environment
// variables over the defaults. Only variables that are set override.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
