package main

import (
	"context"
	"fmt"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
)

// runRenderCmd parses flags and runs the render command.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runRender(ctx, positional, flags, env)
}

// runRender writes one code_cell_<n>.png per qualifying code cell.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment) error {
	arg, err := atMostOne("render", positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common, &documentFlags{font: flags.font}, envCfg)
	if err != nil {
		return err
	}
	if arg != "" {
		cfg.Input.Notebook = arg
	}
	dir := imageDir(cfg)
	if flags.dir != "" {
		dir = flags.dir
	}

	libCfg := libraryConfig(cfg)
	conv, err := nb2docx.NewConverter(libCfg, converterOptions(env, 0)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := time.Now()
	paths, err := conv.RenderImages(ctx, dir)
	if err != nil {
		return err
	}

	if flags.common.quiet {
		return nil
	}
	if len(paths) == 0 {
		fmt.Fprintf(env.Stdout, "No code cells in %s\n", libCfg.SourcePath)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(env.Stdout, "Wrote %s\n", p)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%d image(s) in %v\n", len(paths), time.Since(start).Round(time.Millisecond))
	}
	return nil
}
