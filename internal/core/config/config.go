// Package config handles configuration loading and validation for diffpane.
package config

import (
	"fmt"
	"os"

	"github.com/colonyops/diffpane/internal/core/highlight"
	"github.com/colonyops/diffpane/internal/core/styles"
	"gopkg.in/yaml.v3"
)

// Baseline selects where a newly tracked file's baseline content comes from.
type Baseline string

const (
	BaselineHead  Baseline = "head"  // committed content at HEAD
	BaselineDisk  Baseline = "disk"  // current content on disk
	BaselineEmpty Baseline = "empty" // treat the file as new
)

// IsValid reports whether b is a known baseline source.
func (b Baseline) IsValid() bool {
	switch b {
	case BaselineHead, BaselineDisk, BaselineEmpty:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Theme       string              `yaml:"theme"`
	Baseline    Baseline            `yaml:"baseline"`
	GitPath     string              `yaml:"git_path"`
	CopyCommand string              `yaml:"copy_command"` // empty = OSC52 clipboard
	Ignore      []string            `yaml:"ignore"`       // doublestar patterns relative to the working dir
	Highlight   HighlightConfig     `yaml:"highlight"`
	Icons       bool                `yaml:"icons"` // nerd font glyphs in the pending list
	Keys        map[string][]string `yaml:"keys"` // key id -> key strings, replaces the default binding
}

// HighlightConfig controls syntax highlighting of context lines.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:    styles.DefaultTheme,
		Baseline: BaselineHead,
		GitPath:  "git",
		Ignore: []string{
			".git/**",
			"**/node_modules/**",
			".diffpane/**",
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Style:   highlight.DefaultStyle,
		},
		Keys: map[string][]string{},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Baseline == "" {
		c.Baseline = defaults.Baseline
	}
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Highlight.Style == "" {
		c.Highlight.Style = defaults.Highlight.Style
	}
	if c.Keys == nil {
		c.Keys = map[string][]string{}
	}
}

// Palette returns the palette of the configured theme.
func (c *Config) Palette() styles.Palette {
	if p, ok := styles.GetPalette(c.Theme); ok {
		return p
	}
	p, _ := styles.GetPalette(styles.DefaultTheme)
	return p
}
