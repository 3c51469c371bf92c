package config

import (
	"github.com/aki/keybit/internal/core/bitting"
	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
)

// CurrentVersion is written to new configuration files
const CurrentVersion = "1.0"

// Config is the keybit configuration stored in <home>/config.yaml
type Config struct {
	Version    string           `yaml:"version"`
	Defaults   keyway.Spec      `yaml:"defaults"`
	Calculator CalculatorConfig `yaml:"calculator"`
	// Catalog is an extra keyway catalog merged over the built-in one.
	// Relative paths are resolved against the keybit home.
	Catalog string    `yaml:"catalog,omitempty"`
	Log     LogConfig `yaml:"log"`
}

// CalculatorConfig bounds the matching-code search
type CalculatorConfig struct {
	// MaxUnknowns is a pointer so an explicit 0 ("no limit") differs from unset
	MaxUnknowns        *int   `yaml:"maxUnknowns,omitempty"`
	ResultLimit        int    `yaml:"resultLimit,omitempty"`
	CombinationCeiling uint64 `yaml:"combinationCeiling,omitempty"`
	EnforceRules       bool   `yaml:"enforceRules,omitempty"`
}

// Unknowns returns the effective unknown-position limit
func (c CalculatorConfig) Unknowns() int {
	if c.MaxUnknowns == nil {
		return calculator.DefaultMaxUnknowns
	}
	return *c.MaxUnknowns
}

// LogConfig selects the log level and encoding
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	maxUnknowns := calculator.DefaultMaxUnknowns
	return &Config{
		Version:  CurrentVersion,
		Defaults: keyway.NewSpec(keyway.DefaultSpaces, keyway.DepthsMax(keyway.DefaultMaxDepth), keyway.DefaultMACS),
		Calculator: CalculatorConfig{
			MaxUnknowns:        &maxUnknowns,
			ResultLimit:        bitting.DefaultResultLimit,
			CombinationCeiling: bitting.DefaultCombinationCeiling,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults fills fields a hand-written file left out
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	cfg.Defaults = cfg.Defaults.Merge(defaults.Defaults)
	if cfg.Calculator.MaxUnknowns == nil {
		cfg.Calculator.MaxUnknowns = defaults.Calculator.MaxUnknowns
	}
	if cfg.Calculator.ResultLimit == 0 {
		cfg.Calculator.ResultLimit = defaults.Calculator.ResultLimit
	}
	if cfg.Calculator.CombinationCeiling == 0 {
		cfg.Calculator.CombinationCeiling = defaults.Calculator.CombinationCeiling
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}
