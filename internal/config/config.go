// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"elector-dedup/internal/comparator"
	"elector-dedup/internal/records"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Threshold int    `yaml:"threshold"`
		Format    string `yaml:"format"`
		Output    string `yaml:"output"`
		Workers   int    `yaml:"workers"`
		Verbose   bool   `yaml:"verbose"`
		Debug     bool   `yaml:"debug"`
		NoColor   bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Workbook layout: which sheets and columns hold the two record sets
	Workbook struct {
		SourceSheet      string `yaml:"source_sheet"`
		TargetSheet      string `yaml:"target_sheet"`
		EnglishColumn    string `yaml:"english_column"`
		VernacularColumn string `yaml:"vernacular_column"`
	} `yaml:"workbook"`

	// Profiles for different comparison scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a comparison profile with specific settings
type Profile struct {
	Threshold   *int   `yaml:"threshold"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	Workers     int    `yaml:"workers"`
	Verbose     bool   `yaml:"verbose"`
	Debug       bool   `yaml:"debug"`
	NoColor     bool   `yaml:"no_color"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Threshold = 85
	config.Defaults.Format = "text"
	config.Defaults.Workers = 0 // auto: NumCPU capped at 8
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false

	opts := records.DefaultLoadOptions()
	config.Workbook.SourceSheet = opts.SourceSheet
	config.Workbook.TargetSheet = opts.TargetSheet
	config.Workbook.EnglishColumn = opts.EnglishColumn
	config.Workbook.VernacularColumn = opts.VernacularColumn

	// Add a strict profile for manual review runs: only near-certain
	// duplicates, exported as a workbook.
	strictThreshold := 95
	config.Profiles["strict"] = Profile{
		Threshold:   &strictThreshold,
		Format:      "xlsx",
		Description: "High-confidence duplicates only, exported for manual review",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("elector-dedup.yaml") {
		return "elector-dedup.yaml"
	}
	if fileExists("elector-dedup.yml") {
		return "elector-dedup.yml"
	}

	// Project-specific config
	if fileExists(".elector-dedup.yaml") {
		return ".elector-dedup.yaml"
	}
	if fileExists(".elector-dedup.yml") {
		return ".elector-dedup.yml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "elector-dedup", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}
	xdgConfigFile = filepath.Join(xdgConfig, "elector-dedup", "config.yml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// LoadOptions returns the workbook layout as loader options.
func (c *Config) LoadOptions() records.LoadOptions {
	return records.LoadOptions{
		SourceSheet:      c.Workbook.SourceSheet,
		TargetSheet:      c.Workbook.TargetSheet,
		EnglishColumn:    c.Workbook.EnglishColumn,
		VernacularColumn: c.Workbook.VernacularColumn,
	}
}

// ValidateConfig validates threshold ranges and workbook layout. A bad
// threshold is a configuration error surfaced here, before any comparison
// starts, never during a run.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := comparator.ValidateThreshold(config.Defaults.Threshold); err != nil {
		return err
	}
	for name, profile := range config.Profiles {
		if profile.Threshold != nil {
			if err := comparator.ValidateThreshold(*profile.Threshold); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}
	}

	if config.Workbook.SourceSheet == "" || config.Workbook.TargetSheet == "" {
		return fmt.Errorf("workbook source_sheet and target_sheet must both be set")
	}
	if config.Workbook.EnglishColumn == "" || config.Workbook.VernacularColumn == "" {
		return fmt.Errorf("workbook english_column and vernacular_column must both be set")
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it
// returns a default configuration. This is the shared helper used by both
// the CLI and the web server.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing or bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
