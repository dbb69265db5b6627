// SPDX-License-Identifier: MIT
// Package config loads and validates the run configuration.
//
// The Config struct is resolved once at startup and then threaded by value
// through every component that needs it; nothing in this module reads
// configuration from ambient global state.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hodgeflow/shift"
)

// Defaults; single source of truth, mirrored in the CLI help text.
const (
	DefaultFamily      = shift.Base
	DefaultLayers      = 3
	DefaultHidden      = 16
	DefaultEpochs      = 50
	DefaultLearnRate   = 1e-3
	DefaultBatchSize   = 32
	DefaultTrainFrac   = 0.8
	DefaultSeed        = 1729
	DefaultMarkovOrder = 2
)

var (
	// ErrBadConfig reports a configuration value outside its valid range.
	ErrBadConfig = errors.New("config: invalid value")
)

// Experiments toggles the optional evaluation protocols.
type Experiments struct {
	Reverse   bool `yaml:"reverse"`
	Regional  bool `yaml:"regional"`
	FlipEdges bool `yaml:"flip_edges"`
	Markov    bool `yaml:"markov"`
}

// Config is the full run configuration. Fields map 1:1 onto the YAML file;
// zero values resolve to the package defaults during Load.
type Config struct {
	Family      shift.Family `yaml:"family"`
	Layers      int          `yaml:"layers"`
	Hidden      int          `yaml:"hidden"`
	Epochs      int          `yaml:"epochs"`
	LearnRate   float64      `yaml:"learn_rate"`
	WeightDecay float64      `yaml:"weight_decay"`
	BatchSize   int          `yaml:"batch_size"`
	TrainFrac   float64      `yaml:"train_frac"`
	Seed        int64        `yaml:"seed"`
	MarkovOrder int          `yaml:"markov_order"`

	DatasetPath   string `yaml:"dataset_path"`
	FlowCachePath string `yaml:"flow_cache_path"`
	StorePath     string `yaml:"store_path"`

	Experiments Experiments `yaml:"experiments"`
}

// Default returns the fully resolved default configuration.
func Default() Config {
	return Config{
		Family:      DefaultFamily,
		Layers:      DefaultLayers,
		Hidden:      DefaultHidden,
		Epochs:      DefaultEpochs,
		LearnRate:   DefaultLearnRate,
		BatchSize:   DefaultBatchSize,
		TrainFrac:   DefaultTrainFrac,
		Seed:        DefaultSeed,
		MarkovOrder: DefaultMarkovOrder,
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Errors: ErrBadConfig (wrapped with the offending field), shift
// family-lookup errors, I/O and YAML syntax errors.
func Load(path string) (Config, error) {
	cfg := Default()
	blob, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err = yaml.Unmarshal(blob, &cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// Validate checks every field once; a Config that passed Validate never needs
// re-checking downstream.
func (c Config) Validate() error {
	if _, err := shift.Lookup(c.Family); err != nil {
		return fmt.Errorf("Validate: family: %w", err)
	}
	if c.Layers < 1 {
		return fmt.Errorf("Validate: layers %d: %w", c.Layers, ErrBadConfig)
	}
	if c.Hidden < 1 {
		return fmt.Errorf("Validate: hidden %d: %w", c.Hidden, ErrBadConfig)
	}
	if c.Epochs < 1 {
		return fmt.Errorf("Validate: epochs %d: %w", c.Epochs, ErrBadConfig)
	}
	if c.LearnRate <= 0 {
		return fmt.Errorf("Validate: learn_rate %g: %w", c.LearnRate, ErrBadConfig)
	}
	if c.WeightDecay < 0 {
		return fmt.Errorf("Validate: weight_decay %g: %w", c.WeightDecay, ErrBadConfig)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("Validate: batch_size %d: %w", c.BatchSize, ErrBadConfig)
	}
	if c.TrainFrac <= 0 || c.TrainFrac >= 1 {
		return fmt.Errorf("Validate: train_frac %g: %w", c.TrainFrac, ErrBadConfig)
	}
	if c.MarkovOrder < 1 {
		return fmt.Errorf("Validate: markov_order %d: %w", c.MarkovOrder, ErrBadConfig)
	}

	return nil
}
