// Package config provides CLI configuration management for the granola command-line tool.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every GRANOLA_* variable the loader reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GRANOLA_CACHE_PATH",
		"GRANOLA_EXPORT_DIR",
		"GRANOLA_OUTPUT_FORMAT",
		"GRANOLA_RECENT_DAYS",
		"GRANOLA_SEARCH_LIMIT",
		"GRANOLA_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

// TestDefaultConfig verifies default configuration values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.ExportDir != DefaultExportDir {
		t.Errorf("ExportDir = %v, want %v", cfg.ExportDir, DefaultExportDir)
	}
	if cfg.OutputFormat != DefaultOutputFormat {
		t.Errorf("OutputFormat = %v, want %v", cfg.OutputFormat, DefaultOutputFormat)
	}
	if cfg.RecentDays != 7 {
		t.Errorf("RecentDays = %v, want 7", cfg.RecentDays)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %v, want %v", cfg.SearchLimit, DefaultSearchLimit)
	}
	if cfg.CachePath != "" {
		t.Errorf("CachePath = %v, want empty", cfg.CachePath)
	}
	if cfg.Debug {
		t.Error("Debug should be false by default")
	}
}

// TestOutputFormat_IsValid verifies output format validation.
func TestOutputFormat_IsValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{OutputFormatText, true},
		{OutputFormatJSON, true},
		{OutputFormatYAML, true},
		{"invalid", false},
		{"", false},
		{"JSON", false}, // Case sensitive
		{"markdown", false},
	}

	for _, tc := range tests {
		if got := tc.format.IsValid(); got != tc.valid {
			t.Errorf("OutputFormat(%q).IsValid() = %v, want %v", tc.format, got, tc.valid)
		}
	}
}

// TestCLIConfig_Validate verifies configuration validation.
func TestCLIConfig_Validate(t *testing.T) {
	valid := func() *CLIConfig { return DefaultConfig() }

	tests := []struct {
		name   string
		mutate func(*CLIConfig)
		errMsg string
	}{
		{"valid config", func(c *CLIConfig) {}, ""},
		{"invalid output format", func(c *CLIConfig) { c.OutputFormat = "xml" }, "invalid output_format"},
		{"zero recent days", func(c *CLIConfig) { c.RecentDays = 0 }, "recent_days must be positive"},
		{"negative search limit", func(c *CLIConfig) { c.SearchLimit = -1 }, "search_limit must be positive"},
		{"empty export dir", func(c *CLIConfig) { c.ExportDir = "" }, "export_dir is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tc.errMsg)
			}
		})
	}
}

// TestConfigDir verifies config directory path resolution.
func TestConfigDir(t *testing.T) {
	t.Run("with env var", func(t *testing.T) {
		customDir := filepath.Join(t.TempDir(), "granola-config")
		t.Setenv("GRANOLA_CONFIG_DIR", customDir)

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != customDir {
			t.Errorf("ConfigDir() = %v, want %v", dir, customDir)
		}
	})

	t.Run("default without env var", func(t *testing.T) {
		t.Setenv("GRANOLA_CONFIG_DIR", "")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultConfigDir)
		if dir != expected {
			t.Errorf("ConfigDir() = %v, want %v", dir, expected)
		}
	})
}

// TestLoadConfig_NoFile verifies defaults are returned when no config file exists.
func TestLoadConfig_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRANOLA_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RecentDays != DefaultRecentDays {
		t.Errorf("RecentDays = %v, want %v", cfg.RecentDays, DefaultRecentDays)
	}
}

// TestLoadConfig_FromFile verifies values are read from config.yaml.
func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GRANOLA_CONFIG_DIR", dir)

	content := `cache_path: /data/cache-v3.json
export_dir: /data/exports
output_format: json
recent_days: 14
debug: true
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CachePath != "/data/cache-v3.json" {
		t.Errorf("CachePath = %v", cfg.CachePath)
	}
	if cfg.ExportDir != "/data/exports" {
		t.Errorf("ExportDir = %v", cfg.ExportDir)
	}
	if cfg.OutputFormat != OutputFormatJSON {
		t.Errorf("OutputFormat = %v", cfg.OutputFormat)
	}
	if cfg.RecentDays != 14 {
		t.Errorf("RecentDays = %v", cfg.RecentDays)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %v, want default %v", cfg.SearchLimit, DefaultSearchLimit)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

// TestLoadConfig_InvalidFile verifies a malformed config file is reported.
func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GRANOLA_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("recent_days: [not, a, number"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected error for malformed YAML")
	}
}

// TestLoadConfig_WithEnvOverrides verifies environment variable overrides.
func TestLoadConfig_WithEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRANOLA_CONFIG_DIR", t.TempDir())
	t.Setenv("GRANOLA_CACHE_PATH", "/env/cache.json")
	t.Setenv("GRANOLA_EXPORT_DIR", "/env/out")
	t.Setenv("GRANOLA_OUTPUT_FORMAT", "yaml")
	t.Setenv("GRANOLA_RECENT_DAYS", "30")
	t.Setenv("GRANOLA_SEARCH_LIMIT", "not-a-number")
	t.Setenv("GRANOLA_DEBUG", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CachePath != "/env/cache.json" {
		t.Errorf("CachePath = %v", cfg.CachePath)
	}
	if cfg.ExportDir != "/env/out" {
		t.Errorf("ExportDir = %v", cfg.ExportDir)
	}
	if cfg.OutputFormat != OutputFormatYAML {
		t.Errorf("OutputFormat = %v", cfg.OutputFormat)
	}
	if cfg.RecentDays != 30 {
		t.Errorf("RecentDays = %v", cfg.RecentDays)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %v, want default for unparsable env", cfg.SearchLimit)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

// TestSaveConfig_RoundTrip verifies that saved config can be loaded back.
func TestSaveConfig_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("GRANOLA_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	cfg.CachePath = "~/granola/cache-v3.json"
	cfg.SearchLimit = 5
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.CachePath != cfg.CachePath {
		t.Errorf("CachePath = %v, want %v", loaded.CachePath, cfg.CachePath)
	}
	if loaded.SearchLimit != 5 {
		t.Errorf("SearchLimit = %v, want 5", loaded.SearchLimit)
	}
}

// TestCLIConfig_Set verifies setting values by key.
func TestCLIConfig_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(*CLIConfig) bool
	}{
		{"cache_path", "/tmp/cache.json", false, func(c *CLIConfig) bool { return c.CachePath == "/tmp/cache.json" }},
		{"export_dir", "./out", false, func(c *CLIConfig) bool { return c.ExportDir == "./out" }},
		{"export_dir", "", true, nil},
		{"output_format", "json", false, func(c *CLIConfig) bool { return c.OutputFormat == OutputFormatJSON }},
		{"output_format", "xml", true, nil},
		{"recent_days", "3", false, func(c *CLIConfig) bool { return c.RecentDays == 3 }},
		{"recent_days", "0", true, nil},
		{"search_limit", "abc", true, nil},
		{"search_limit", "50", false, func(c *CLIConfig) bool { return c.SearchLimit == 50 }},
		{"debug", "true", false, func(c *CLIConfig) bool { return c.Debug }},
		{"debug", "maybe", true, nil},
		{"server_address", "x", true, nil},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tc.key, tc.value)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Set(%q, %q) expected error", tc.key, tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tc.key, tc.value, err)
			}
			if !tc.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tc.key, tc.value, cfg)
			}
		})
	}
}

// TestExpandPath verifies ~ expansion.
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/cache.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != filepath.Join(home, "cache.json") {
		t.Errorf("ExpandPath() = %v", got)
	}

	got, _ = ExpandPath("/abs/path")
	if got != "/abs/path" {
		t.Errorf("ExpandPath() = %v, want unchanged", got)
	}

	got, _ = ExpandPath("")
	if got != "" {
		t.Errorf("ExpandPath(\"\") = %v, want empty", got)
	}
}
