package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly defaults without requiring YAML files.
type envConfig struct {
	ConfigPath string        // NB2DOCX_CONFIG: config name or path
	Notebook   string        // NB2DOCX_NOTEBOOK: default notebook
	ImageDir   string        // NB2DOCX_IMAGE_DIR: directory for render and assemble
	Output     string        // NB2DOCX_OUTPUT: default output document
	Font       string        // NB2DOCX_FONT: font name or .ttf path
	ImageWidth float64       // NB2DOCX_IMAGE_WIDTH: picture width in inches
	Timeout    time.Duration // NB2DOCX_TIMEOUT: PDF page load timeout
	Workers    int           // NB2DOCX_WORKERS: parallel workers for directories, capped
}

// knownEnvVars lists valid NB2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NB2DOCX_CONFIG":      true,
	"NB2DOCX_NOTEBOOK":    true,
	"NB2DOCX_IMAGE_DIR":   true,
	"NB2DOCX_OUTPUT":      true,
	"NB2DOCX_FONT":        true,
	"NB2DOCX_IMAGE_WIDTH": true,
	"NB2DOCX_TIMEOUT":     true,
	"NB2DOCX_WORKERS":     true,
	"NB2DOCX_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored; the worker count is capped
// at nb2docx.MaxPoolSize.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("NB2DOCX_CONFIG"),
		Notebook:   os.Getenv("NB2DOCX_NOTEBOOK"),
		ImageDir:   os.Getenv("NB2DOCX_IMAGE_DIR"),
		Output:     os.Getenv("NB2DOCX_OUTPUT"),
		Font:       os.Getenv("NB2DOCX_FONT"),
	}

	if width := os.Getenv("NB2DOCX_IMAGE_WIDTH"); width != "" {
		if w, err := strconv.ParseFloat(width, 64); err == nil && w > 0 {
			cfg.ImageWidth = w
		}
	}

	if timeout := os.Getenv("NB2DOCX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("NB2DOCX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = min(w, nb2docx.MaxPoolSize)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized NB2DOCX_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "NB2DOCX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config fields the config file left empty.
// Resulting precedence: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via mergeDocumentFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Notebook != "" && cfg.Input.Notebook == "" {
		cfg.Input.Notebook = env.Notebook
	}
	if env.ImageDir != "" && cfg.Input.ImageDir == "" {
		cfg.Input.ImageDir = env.ImageDir
	}
	if env.Output != "" && cfg.Output.Path == "" {
		cfg.Output.Path = env.Output
	}
	if env.Font != "" && cfg.Render.Font == "" {
		cfg.Render.Font = env.Font
	}
	if env.ImageWidth > 0 && cfg.Document.ImageWidth == 0 {
		cfg.Document.ImageWidth = env.ImageWidth
	}
}
