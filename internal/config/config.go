// Package config holds the tool's YAML configuration: chart defaults
// that would otherwise be repeated on every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Scope values for the true-solar-time correction.
const (
	// ScopeAll corrects the instant before resolving any pillar.
	ScopeAll = "all"
	// ScopeLuck resolves the chart from civil time and corrects only
	// the luck-onset computation. This is the default.
	ScopeLuck = "luck"
)

// Config holds all bazi configuration.
type Config struct {
	// Reference meridian for true solar time, degrees east.
	Meridian float64 `yaml:"meridian"`

	// Luck-onset computation: 1 time-branch granularity, 2 exact minutes.
	Sect int `yaml:"sect"`

	// What the true-solar correction applies to: "all" or "luck".
	TrueSolarScope string `yaml:"true_solar_scope"`

	// Number of decade pillars to schedule.
	LuckPillars int `yaml:"luck_pillars"`

	// Number of annual pillars listed per decade.
	AnnualYears int `yaml:"annual_years"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Meridian:       120.0,
		Sect:           2,
		TrueSolarScope: ScopeLuck,
		LuckPillars:    9,
		AnnualYears:    10,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BAZI_SECT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sect = n
		}
	}
	if v := os.Getenv("BAZI_MERIDIAN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Meridian = f
		}
	}
	if v := os.Getenv("BAZI_TRUE_SOLAR_SCOPE"); v != "" {
		c.TrueSolarScope = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Meridian < -180 || c.Meridian > 180 {
		return fmt.Errorf("meridian %.4f outside [-180, 180]", c.Meridian)
	}
	if c.Sect != 1 && c.Sect != 2 {
		return fmt.Errorf("invalid sect: %d (valid: 1, 2)", c.Sect)
	}
	if c.TrueSolarScope != ScopeAll && c.TrueSolarScope != ScopeLuck {
		return fmt.Errorf("invalid true_solar_scope: %s (valid: %s, %s)", c.TrueSolarScope, ScopeAll, ScopeLuck)
	}
	if c.LuckPillars < 1 || c.LuckPillars > 12 {
		return fmt.Errorf("invalid luck_pillars: %d (valid: 1..12)", c.LuckPillars)
	}
	if c.AnnualYears < 0 {
		return fmt.Errorf("invalid annual_years: %d", c.AnnualYears)
	}
	return nil
}
