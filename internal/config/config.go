// Package config loads ctxgrab settings from .ctxgrab.yaml and merges them
// with command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory
const FileName = ".ctxgrab.yaml"

// FullContent is the Depth value meaning "no skeleton, copy whole files"
const FullContent = -1

// Output targets
const (
	OutputClipboard = "clipboard"
	OutputStdout    = "stdout"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents ctxgrab configuration options
type Config struct {
	// Depth is the skeleton depth, or FullContent to copy files verbatim
	Depth int `yaml:"depth"`

	// Tags switches skeletons to definition lines from tag queries
	Tags bool `yaml:"tags"`

	// Output is where the payload goes (clipboard, stdout)
	Output string `yaml:"output"`

	// Concurrency bounds parallel resolution and extraction (0 = number of CPUs)
	Concurrency int `yaml:"concurrency"`

	// Color controls report coloring (auto, always, never)
	Color string `yaml:"color"`

	// Ignore holds extra ignore rules for fuzzy search
	Ignore []string `yaml:"ignore"`

	// MaxAmbiguousShown caps the candidates listed per ambiguous input
	MaxAmbiguousShown int `yaml:"max_ambiguous_shown"`

	// Suggestions enables "did you mean" hints for unmatched inputs
	Suggestions bool `yaml:"suggestions"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Depth:             FullContent,
		Tags:              false,
		Output:            OutputClipboard,
		Concurrency:       0,
		Color:             ColorAuto,
		Ignore:            nil,
		MaxAmbiguousShown: 8,
		Suggestions:       true,
	}
}

// fileConfig mirrors Config with pointers so absent keys keep defaults
type fileConfig struct {
	Depth             *int     `yaml:"depth"`
	Tags              *bool    `yaml:"tags"`
	Output            *string  `yaml:"output"`
	Concurrency       *int     `yaml:"concurrency"`
	Color             *string  `yaml:"color"`
	Ignore            []string `yaml:"ignore"`
	MaxAmbiguousShown *int     `yaml:"max_ambiguous_shown"`
	Suggestions       *bool    `yaml:"suggestions"`
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
func LoadConfig(path string) (*Config, error) {
	cfg, err := LoadConfigFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadConfigFile loads configuration from path and fails when it is missing
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	raw.applyTo(cfg)
	return cfg, nil
}

// LoadConfigFromDir loads configuration from .ctxgrab.yaml in dir
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

func (f fileConfig) applyTo(cfg *Config) {
	if f.Depth != nil {
		cfg.Depth = *f.Depth
	}
	if f.Tags != nil {
		cfg.Tags = *f.Tags
	}
	if f.Output != nil {
		cfg.Output = strings.ToLower(strings.TrimSpace(*f.Output))
	}
	if f.Concurrency != nil {
		cfg.Concurrency = *f.Concurrency
	}
	if f.Color != nil {
		cfg.Color = strings.ToLower(strings.TrimSpace(*f.Color))
	}
	if f.Ignore != nil {
		cfg.Ignore = append([]string(nil), f.Ignore...)
	}
	if f.MaxAmbiguousShown != nil {
		cfg.MaxAmbiguousShown = *f.MaxAmbiguousShown
	}
	if f.Suggestions != nil {
		cfg.Suggestions = *f.Suggestions
	}
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, false included.
// A depth flag without a tags flag selects skeletons over configured tags.
func (c *Config) MergeWithFlags(depth *int, tags *bool, stdout *bool, concurrency *int, noColor *bool) {
	if depth != nil {
		c.Depth = *depth
		if tags == nil {
			c.Tags = false
		}
	}
	if tags != nil {
		c.Tags = *tags
	}
	if stdout != nil {
		c.Output = OutputClipboard
		if *stdout {
			c.Output = OutputStdout
		}
	}
	if concurrency != nil {
		c.Concurrency = *concurrency
	}
	switch {
	case noColor == nil:
	case *noColor:
		c.Color = ColorNever
	case c.Color == ColorNever:
		c.Color = ColorAuto
	}
}

// SkeletonEnabled reports whether files are reduced instead of copied.
// Tags take precedence over Depth when both are set.
func (c *Config) SkeletonEnabled() bool {
	return c.Tags || c.Depth != FullContent
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Depth < FullContent {
		return fmt.Errorf("depth must be >= 0, got %d", c.Depth)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.MaxAmbiguousShown <= 0 {
		return fmt.Errorf("max_ambiguous_shown must be > 0, got %d", c.MaxAmbiguousShown)
	}

	switch c.Output {
	case OutputClipboard, OutputStdout:
	default:
		return fmt.Errorf("invalid output %q, must be one of: clipboard, stdout", c.Output)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	return nil
}
