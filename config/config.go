// Package config loads the file-based configuration for the hedgesim CLI:
// payoff grid shape, sampler defaults, risk parameters, and where run
// records are journaled.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/hedger/payoff"
	"github.com/rustyeddy/hedger/sampler"
)

// Config is the complete tool configuration.
type Config struct {
	Grid    payoff.Grid   `json:"grid" yaml:"grid"`
	Sampler SamplerConfig `json:"sampler" yaml:"sampler"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// SamplerConfig holds sampling defaults; the CLI can override any of them
// per invocation.
type SamplerConfig struct {
	Method         string `json:"method" yaml:"method"`
	HorizonPeriods int    `json:"horizon_periods" yaml:"horizon_periods"`
	PathCount      int    `json:"path_count" yaml:"path_count"`
	Seed           int64  `json:"seed" yaml:"seed"`
	Workers        int    `json:"workers" yaml:"workers"`
}

// RiskConfig holds the rate and calendar assumptions metrics are stated
// under.
type RiskConfig struct {
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	PeriodsPerYear float64 `json:"periods_per_year" yaml:"periods_per_year"`
}

// JournalConfig selects where run records go.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "sqlite" or "csv"
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	RunsFile    string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	SamplesFile string `json:"samples_file,omitempty" yaml:"samples_file,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// extension, YAML tried first otherwise).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			err = json.Unmarshal(data, cfg)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if err := c.SamplerCfg().Validate(); err != nil {
		return err
	}
	if c.Sampler.Workers < 1 {
		return fmt.Errorf("sampler.workers must be at least 1")
	}
	if c.Risk.PeriodsPerYear <= 0 {
		return fmt.Errorf("risk.periods_per_year must be positive")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.MetricsFile == "" || c.Journal.SamplesFile == "" {
			return fmt.Errorf("journal runs_file, metrics_file and samples_file required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'csv'")
	}
	return nil
}

// SamplerCfg converts the file section into the engine's sampler config.
func (c *Config) SamplerCfg() sampler.Config {
	return sampler.Config{
		Method:         sampler.Method(c.Sampler.Method),
		HorizonPeriods: c.Sampler.HorizonPeriods,
		PathCount:      c.Sampler.PathCount,
		Seed:           c.Sampler.Seed,
	}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Grid: payoff.DefaultGrid(),
		Sampler: SamplerConfig{
			Method:         string(sampler.HistoricalBootstrap),
			HorizonPeriods: 1,
			PathCount:      10_000,
			Seed:           1,
			Workers:        4,
		},
		Risk: RiskConfig{
			RiskFreeRate:   0.0002, // ~5% annual, daily
			PeriodsPerYear: 252,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./hedger.sqlite",
		},
	}
}
