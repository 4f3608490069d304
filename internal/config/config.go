// Package config loads converter configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no explicit config
// file is given.
const DefaultPath = ".doxyconv.yaml"

// Config holds converter settings.
type Config struct {
	// Extensions lists file extensions eligible for conversion.
	Extensions []string `yaml:"extensions"`

	// NewFilePrefix is prepended to the base name when writing to a new
	// file instead of overwriting.
	NewFilePrefix string `yaml:"new_file_prefix"`

	// Indent is the number of spaces a docstring is indented past its
	// header.
	Indent int `yaml:"indent"`

	// SkipDirs lists extra directory names excluded from discovery.
	SkipDirs []string `yaml:"skip_dirs"`
}

// Default returns the configuration matching the original tool: Python
// files, four-space indentation, "converted_" output prefix.
func Default() *Config {
	return &Config{
		Extensions:    []string{".py"},
		NewFilePrefix: "converted_",
		Indent:        4,
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the explicit path if given, else DefaultPath if it
// exists, else the built-in defaults. Only an explicit path is required to
// exist.
func LoadOrDefault(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return Default(), nil
}

// Validate checks the configuration for values the converter cannot work
// with.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") {
			return fmt.Errorf("extension %q must start with a dot", e)
		}
	}
	if c.NewFilePrefix == "" {
		return fmt.Errorf("new_file_prefix must not be empty")
	}
	if c.Indent <= 0 {
		return fmt.Errorf("indent must be positive, got %d", c.Indent)
	}
	return nil
}

// IndentUnit returns the configured indent as a space string.
func (c *Config) IndentUnit() string {
	return strings.Repeat(" ", c.Indent)
}
