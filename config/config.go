// Package config provides CLI configuration management for the granola command-line tool.
// It supports loading configuration from YAML files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultExportDir    = "./granola-exports"
	DefaultOutputFormat = OutputFormatText
	DefaultRecentDays   = 7
	DefaultSearchLimit  = 20
	DefaultConfigDir    = ".granola-skill"
	DefaultConfigFile   = "config.yaml"
)

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// CachePath is the Granola cache file to read.
	// If empty, the platform default location is used.
	// Supports ~ for home directory expansion.
	CachePath string `yaml:"cache_path,omitempty"`

	// ExportDir is the default output directory for 'granola export'.
	ExportDir string `yaml:"export_dir"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// RecentDays is the default window for 'granola list'.
	RecentDays int `yaml:"recent_days"`

	// SearchLimit caps how many search results are printed.
	SearchLimit int `yaml:"search_limit"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		ExportDir:    DefaultExportDir,
		OutputFormat: DefaultOutputFormat,
		RecentDays:   DefaultRecentDays,
		SearchLimit:  DefaultSearchLimit,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $GRANOLA_CONFIG_DIR if set, otherwise ~/.granola-skill
func ConfigDir() (string, error) {
	if dir := os.Getenv("GRANOLA_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.granola-skill/config.yaml or $GRANOLA_CONFIG_DIR/config.yaml)
// 3. Environment variables (GRANOLA_CACHE_PATH, GRANOLA_EXPORT_DIR, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
// Keys absent from the file keep their current values.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg CLIConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.CachePath != "" {
		cfg.CachePath = fileCfg.CachePath
	}
	if fileCfg.ExportDir != "" {
		cfg.ExportDir = fileCfg.ExportDir
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.RecentDays != 0 {
		cfg.RecentDays = fileCfg.RecentDays
	}
	if fileCfg.SearchLimit != 0 {
		cfg.SearchLimit = fileCfg.SearchLimit
	}
	cfg.Debug = fileCfg.Debug

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
// Unparsable numeric values are ignored.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("GRANOLA_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}

	if v := os.Getenv("GRANOLA_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}

	if v := os.Getenv("GRANOLA_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("GRANOLA_RECENT_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.RecentDays = days
		}
	}

	if v := os.Getenv("GRANOLA_SEARCH_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.SearchLimit = limit
		}
	}

	if v := os.Getenv("GRANOLA_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.RecentDays <= 0 {
		return fmt.Errorf("recent_days must be positive")
	}

	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}

	if c.ExportDir == "" {
		return fmt.Errorf("export_dir is required")
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Set assigns a configuration value by its YAML key.
func (c *CLIConfig) Set(key, value string) error {
	switch key {
	case "cache_path":
		if _, err := ExpandPath(value); err != nil {
			return fmt.Errorf("invalid cache path: %w", err)
		}
		c.CachePath = value
	case "export_dir":
		if value == "" {
			return fmt.Errorf("export_dir cannot be empty")
		}
		c.ExportDir = value
	case "output_format":
		format := OutputFormat(value)
		if !format.IsValid() {
			return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", value)
		}
		c.OutputFormat = format
	case "recent_days", "search_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s value: %s (must be a positive integer)", key, value)
		}
		if key == "recent_days" {
			c.RecentDays = n
		} else {
			c.SearchLimit = n
		}
	case "debug":
		switch value {
		case "true", "1":
			c.Debug = true
		case "false", "0":
			c.Debug = false
		default:
			return fmt.Errorf("invalid debug value: %s (must be true or false)", value)
		}
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
