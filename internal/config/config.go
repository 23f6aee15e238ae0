// Package config loads the YAML configuration file of the nb2docx CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2docx/internal/fileutil"
	"github.com/alnah/go-nb2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxFontLength     = 256  // font family name or font file path stem
	MaxImageWidth     = 20.0 // inches, wider than any page
	configDirName     = "go-nb2docx"
	defaultConfigName = "nb2docx"
)

// DefaultName is the config name looked up when the CLI gets no --config flag.
const DefaultName = defaultConfigName

// Config holds the CLI configuration. Zero values mean "not set": the library
// defaults apply, and CLI flags override anything set here.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Document DocumentConfig `yaml:"document"`
}

// InputConfig defines where sources are read.
type InputConfig struct {
	Notebook string `yaml:"notebook"` // notebook used when convert gets no argument
	ImageDir string `yaml:"imageDir"` // directory scanned by assemble and written by render
}

// OutputConfig defines where the document is written.
type OutputConfig struct {
	Path string `yaml:"path"` // .docx or .pdf
}

// RenderConfig defines how code cells are drawn.
type RenderConfig struct {
	Font string `yaml:"font"` // font name, "Go Mono", or .ttf path
}

// DocumentConfig defines document layout.
type DocumentConfig struct {
	ImageWidth float64 `yaml:"imageWidth"` // inches
}

// DefaultConfig returns a configuration with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.notebook", c.Input.Notebook, MaxPathLength},
		{"input.imageDir", c.Input.ImageDir, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"render.font", c.Render.Font, MaxFontLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if w := c.Document.ImageWidth; w < 0 || w > MaxImageWidth {
		return fmt.Errorf("%w: document.imageWidth must be in [0, %g], got %g", ErrInvalidValue, MaxImageWidth, w)
	}

	if p := c.Output.Path; p != "" && !fileutil.HasExtension(p, ".docx", ".pdf") {
		return fmt.Errorf("%w: output.path must end in .docx or .pdf, got %q", ErrInvalidValue, p)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or ends in .yaml/.yml, it's treated
// as a file path. Otherwise, it's a config name searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isConfigFile(nameOrPath) {
		var err error
		configPath, err = ResolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isConfigFile reports whether s names a file rather than a config to look up.
func isConfigFile(s string) bool {
	return fileutil.IsFilePath(s) || fileutil.HasExtension(s, ".yaml", ".yml")
}

// SearchPaths returns the files ResolveConfigPath tries for name, in order:
// ./<name>.yaml, ./<name>.yml, then the same names under <UserConfigDir>/go-nb2docx/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// ResolveConfigPath returns the first existing file among SearchPaths(name).
func ResolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
