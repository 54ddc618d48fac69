// Package config loads and saves ferrum.yml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "ferrum.yml"

// Config represents the ferrum.yml configuration.
type Config struct {
	// Project name, used in scaffolded page titles.
	Name string `yaml:"name,omitempty"`

	// Source directory containing .frr files.
	SrcDir string `yaml:"srcDir,omitempty"`

	// Development server configuration.
	Dev *DevConfig `yaml:"dev,omitempty"`

	// Build configuration.
	Build *BuildConfig `yaml:"build,omitempty"`

	// Formatter configuration.
	Format *FormatConfig `yaml:"format,omitempty"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	Port int    `yaml:"port,omitempty"`
	Host string `yaml:"host,omitempty"`
	Open bool   `yaml:"open,omitempty"`
}

// BuildConfig contains build output configuration.
type BuildConfig struct {
	// Output directory for generated HTML and CSS.
	OutDir string `yaml:"outDir,omitempty"`
}

// FormatConfig contains formatter configuration.
type FormatConfig struct {
	// Number of indent characters per nesting level.
	IndentSize int `yaml:"indentSize,omitempty"`

	// Indent with tabs instead of spaces.
	UseTabs bool `yaml:"useTabs,omitempty"`
}

// Load reads ferrum.yml from projectPath, falling back to defaults when
// the file does not exist.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes the configuration to ferrum.yml in projectPath.
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:   "ferrum-app",
		SrcDir: "src",
		Dev: &DevConfig{
			Port: 3000,
			Host: "localhost",
			Open: false,
		},
		Build: &BuildConfig{
			OutDir: "dist",
		},
		Format: &FormatConfig{
			IndentSize: 4,
			UseTabs:    false,
		},
	}
}

// applyDefaults fills in defaults for missing values.
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Name == "" {
		config.Name = defaults.Name
	}
	if config.SrcDir == "" {
		config.SrcDir = defaults.SrcDir
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}

	if config.Build == nil {
		config.Build = defaults.Build
	} else if config.Build.OutDir == "" {
		config.Build.OutDir = defaults.Build.OutDir
	}

	if config.Format == nil {
		config.Format = defaults.Format
	} else if config.Format.IndentSize == 0 {
		config.Format.IndentSize = defaults.Format.IndentSize
	}
}

// IndentChar returns the formatter indent settings as (size, char).
func (c *Config) IndentChar() (int, rune) {
	f := c.Format
	if f == nil {
		f = DefaultConfig().Format
	}
	if f.UseTabs {
		return 1, '\t'
	}
	return f.IndentSize, ' '
}
