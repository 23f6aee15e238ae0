package main

import (
	"errors"
	"fmt"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/config"
	"github.com/alnah/go-nb2docx/internal/fileutil"
	"github.com/alnah/go-nb2docx/internal/hints"
)

// Sentinel errors for CLI argument handling.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// loadConfig returns the config named by the flag, else by NB2DOCX_CONFIG.
// With neither, an nb2docx.yaml found in the standard locations is used if
// present; its absence is not an error.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}

	if name == "" {
		if _, err := config.ResolveConfigPath(config.DefaultName); err != nil {
			return config.DefaultConfig(), nil
		}
		name = config.DefaultName
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveConfig loads the config file, then layers the environment and the
// document flags on top, and validates the result.
func resolveConfig(common commonFlags, doc *documentFlags, env *envConfig) (*config.Config, error) {
	cfg, err := loadConfig(common.config, env)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(env, cfg)
	if doc != nil {
		mergeDocumentFlags(doc, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeDocumentFlags merges CLI flags into config. CLI values override config values.
func mergeDocumentFlags(f *documentFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.font != "" {
		cfg.Render.Font = f.font
	}
	if f.width != 0 {
		cfg.Document.ImageWidth = f.width
	}
}

// libraryConfig maps the CLI config onto the library config. Unset fields
// keep the library defaults.
func libraryConfig(cfg *config.Config) nb2docx.Config {
	out := nb2docx.DefaultConfig()
	if cfg.Input.Notebook != "" {
		out.SourcePath = cfg.Input.Notebook
	}
	if cfg.Output.Path != "" {
		out.OutputPath = cfg.Output.Path
	}
	if cfg.Render.Font != "" {
		out.FontName = cfg.Render.Font
	}
	if cfg.Document.ImageWidth != 0 {
		out.ImageWidth = cfg.Document.ImageWidth
	}
	return out
}

// imageDir returns the configured image directory, "." when unset.
func imageDir(cfg *config.Config) string {
	if cfg.Input.ImageDir != "" {
		return cfg.Input.ImageDir
	}
	return "."
}

// resolveTimeout returns the flag timeout, else the environment timeout,
// else 0 (library default).
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue == "" {
		return env.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// converterOptions builds the library options shared by every converter of a run.
func converterOptions(env *Environment, timeout time.Duration) []nb2docx.Option {
	opts := []nb2docx.Option{nb2docx.WithNow(env.Now)}
	if timeout > 0 {
		opts = append(opts, nb2docx.WithTimeout(timeout))
	}
	return opts
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > nb2docx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, nb2docx.MaxPoolSize)
	}
	return nil
}

// atMostOne returns the single positional argument, "" for none, or a usage
// error for more.
func atMostOne(cmd string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: %s takes at most one argument, got %d", ErrUsage, cmd, len(args))
	}
}
