package main

import (
	"context"
	"fmt"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/hints"
)

// runAssembleCmd parses flags and runs the assemble command.
func runAssembleCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseAssembleFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runAssemble(ctx, positional, flags, env)
}

// runAssemble writes the code_cell_<n>.png images of a directory to a document.
func runAssemble(ctx context.Context, positional []string, flags *assembleFlags, env *Environment) error {
	arg, err := atMostOne("assemble", positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.common, &flags.doc, envCfg)
	if err != nil {
		return err
	}

	dir := imageDir(cfg)
	if arg != "" {
		dir = arg
	}

	conv, err := nb2docx.NewConverter(libraryConfig(cfg), converterOptions(env, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := time.Now()
	result, err := conv.AssembleFromDisk(ctx, dir)
	if err != nil {
		return err
	}
	if result.Images == 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: no %s in %s%s\n", nb2docx.ImageFileName(0), dir, hints.ForImageDirectory())
	}
	printSaved(env, flags.common, result, time.Since(start))
	return nil
}
