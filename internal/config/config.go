package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ExportFormats lists the formats the export command accepts.
var ExportFormats = []string{"json", "markdown", "html", "csv", "sqlite"}

// Config represents loopatlas configuration options. Precedence is
// defaults, then config file, then environment, then CLI flags.
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" env:"LOOPATLAS_LOG_LEVEL"`

	// NoColor disables colored terminal output
	NoColor bool `yaml:"no_color" env:"LOOPATLAS_NO_COLOR"`

	// DataDir points list commands at an external dataset directory
	// instead of the embedded atlas (empty = embedded)
	DataDir string `yaml:"data_dir" env:"LOOPATLAS_DATA_DIR"`

	// ExportDir is the default output directory for exports
	ExportDir string `yaml:"export_dir" env:"LOOPATLAS_EXPORT_DIR"`

	// ExportFormat is the default export format
	ExportFormat string `yaml:"export_format" env:"LOOPATLAS_EXPORT_FORMAT"`

	// Limit caps rows printed by list commands (0 = no cap)
	Limit int `yaml:"limit" env:"LOOPATLAS_LIMIT"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		NoColor:      false,
		DataDir:      "",
		ExportDir:    ".",
		ExportFormat: "json",
		Limit:        0,
	}
}

// LoadConfig loads configuration from the specified file path, then
// applies environment overrides.
// If the file doesn't exist, defaults plus environment are returned
// without error. If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}

		// Apply non-zero values from the file over the defaults.
		if fileCfg.LogLevel != "" {
			cfg.LogLevel = fileCfg.LogLevel
		}
		if fileCfg.NoColor {
			cfg.NoColor = fileCfg.NoColor
		}
		if fileCfg.DataDir != "" {
			cfg.DataDir = fileCfg.DataDir
		}
		if fileCfg.ExportDir != "" {
			cfg.ExportDir = fileCfg.ExportDir
		}
		if fileCfg.ExportFormat != "" {
			cfg.ExportFormat = fileCfg.ExportFormat
		}
		if fileCfg.Limit != 0 {
			cfg.Limit = fileCfg.Limit
		}
	}

	// Environment wins over the file but loses to flags, which are
	// merged later by the command layer.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, letting flags take
// precedence over both the config file and the environment.
func (c *Config) MergeWithFlags(logLevel *string, noColor *bool, dataDir *string, limit *int) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if noColor != nil {
		c.NoColor = *noColor
	}
	if dataDir != nil {
		c.DataDir = *dataDir
	}
	if limit != nil {
		c.Limit = *limit
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", c.Limit)
	}

	if c.ExportFormat != "" {
		valid := false
		for _, format := range ExportFormats {
			if c.ExportFormat == format {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid export_format %q, must be one of: %v", c.ExportFormat, ExportFormats)
		}
	}

	return nil
}
