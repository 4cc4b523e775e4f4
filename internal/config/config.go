// Package config defines the analyzer's process configuration and its
// layered loading: compiled-in defaults, then an optional YAML file, then
// THROWBENCH_-prefixed environment variables. Later layers win.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration for the analyzer CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, or error.
	LogLevel string `koanf:"log_level"`

	// PopulationSeed selects the deterministic reference-population stream.
	PopulationSeed uint32 `koanf:"population_seed"`

	// PopulationSamples sets the synthetic reference population size.
	PopulationSamples int `koanf:"population_samples"`

	// HistogramBins sets the number of buckets per metric histogram.
	HistogramBins int `koanf:"histogram_bins"`

	// Workers bounds the concurrent analyses in a batch run.
	Workers int `koanf:"workers"`

	// Format selects the default report format: text, json, or html.
	Format string `koanf:"format"`
}

// New creates a Config with compiled-in defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		PopulationSeed:    42,
		PopulationSamples: 600,
		HistogramBins:     24,
		Workers:           runtime.NumCPU(),
		Format:            "text",
	}
}

// Validate rejects configurations the analyzer cannot run with. The format
// and level sets are kept local so config stays import-free of the layers it
// configures.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.PopulationSamples <= 0 {
		return fmt.Errorf("%w: population_samples must be positive, got %d", ErrInvalidConfig, c.PopulationSamples)
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("%w: histogram_bins must be positive, got %d", ErrInvalidConfig, c.HistogramBins)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}

	switch c.Format {
	case "text", "json", "html":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}

	return nil
}
