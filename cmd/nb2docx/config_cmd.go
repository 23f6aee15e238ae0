package main

import (
	"fmt"

	"github.com/alnah/go-nb2docx/internal/config"
	"github.com/alnah/go-nb2docx/internal/yamlutil"
)

// configHeader opens the printed config so a saved copy explains itself.
var configHeader = []string{
	"nb2docx effective configuration.",
	"Precedence: flags > this file > NB2DOCX_* environment > defaults.",
}

// runConfigCmd prints the effective configuration as YAML: the config file
// and environment layered over the defaults. The output is a valid config file.
func runConfigCmd(args []string, env *Environment) error {
	var common commonFlags
	fs := newFlagSet("config", env.Stderr, printConfigUsage)
	fs.StringVarP(&common.config, "config", "c", "", "config file name or path")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	cfg, err := resolveConfig(common, nil, loadEnvConfig())
	if err != nil {
		return err
	}

	out, err := yamlutil.Encode(effectiveConfig(cfg), configHeader...)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// effectiveConfig fills the unset fields of cfg with the values a run would use.
func effectiveConfig(cfg *config.Config) *config.Config {
	lib := libraryConfig(cfg)
	return &config.Config{
		Input:    config.InputConfig{Notebook: lib.SourcePath, ImageDir: imageDir(cfg)},
		Output:   config.OutputConfig{Path: lib.OutputPath},
		Render:   config.RenderConfig{Font: lib.FontName},
		Document: config.DocumentConfig{ImageWidth: lib.ImageWidth},
	}
}
