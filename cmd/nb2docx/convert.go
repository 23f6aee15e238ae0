package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert converts one notebook, or every notebook under a directory.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}
	input, err := atMostOne("convert", positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}
	opts := converterOptions(env, timeout)

	if input != "" && fileutil.DirExists(input) {
		// -o names a directory here, so it stays out of the document config.
		doc := flags.doc
		doc.output = ""
		cfg, err := resolveConfig(flags.common, &doc, envCfg)
		if err != nil {
			return err
		}
		workers := flags.workers
		if workers == 0 {
			workers = envCfg.Workers
		}
		return convertDirectory(ctx, input, flags.doc.output, format, workers, libraryConfig(cfg), opts, flags.common, env)
	}

	cfg, err := resolveConfig(flags.common, &flags.doc, envCfg)
	if err != nil {
		return err
	}
	if input != "" {
		cfg.Input.Notebook = input
	}
	libCfg := libraryConfig(cfg)

	conv, err := nb2docx.NewConverter(libCfg, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := time.Now()
	result, err := conv.Convert(ctx)
	if err != nil {
		return err
	}
	printSaved(env, flags.common, result, time.Since(start))
	return nil
}

// parseFormat validates the --format value.
func parseFormat(s string) (nb2docx.Format, error) {
	switch f := nb2docx.Format(strings.ToLower(strings.TrimSpace(s))); f {
	case nb2docx.FormatDOCX, nb2docx.FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: --format %q (want docx or pdf)", ErrUsage, s)
	}
}

// printSaved reports a written document unless quiet.
func printSaved(env *Environment, common commonFlags, r *nb2docx.Result, elapsed time.Duration) {
	if common.quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "Saved %s file: %s\n", strings.ToUpper(string(r.Format)), r.OutputPath)
	if common.verbose {
		fmt.Fprintf(env.Stderr, "%d image(s), %d block(s) in %v\n", r.Images, len(r.Blocks), elapsed.Round(time.Millisecond))
	}
}
