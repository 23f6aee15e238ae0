package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// File permission constants.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// checkpointDir holds Jupyter autosaves, which are never converted.
const checkpointDir = ".ipynb_checkpoints"

// Sentinel errors for batch operations.
var (
	ErrNoNotebooks = errors.New("no notebooks found")
	ErrPoolInit    = errors.New("failed to initialize converter")
)

// fileConverter converts one notebook to one document.
type fileConverter interface {
	ConvertFile(ctx context.Context, notebookPath, outputPath string) (*nb2docx.Result, error)
}

// Compile-time interface implementation check.
var _ fileConverter = (*nb2docx.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (fileConverter, error)
	Release(fileConverter)
	Size() int
}

// poolAdapter exposes an nb2docx.ConverterPool as a Pool.
type poolAdapter struct {
	pool *nb2docx.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (fileConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release ignores converters the pool did not hand out.
func (a *poolAdapter) Release(c fileConverter) {
	if conv, ok := c.(*nb2docx.Converter); ok {
		a.pool.Release(conv)
	}
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// FileToConvert is a notebook and the document it becomes.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Format     nb2docx.Format
	Err        error
	Duration   time.Duration
}

// convertDirectory converts every notebook under dir on a converter pool.
func convertDirectory(
	ctx context.Context,
	dir, outputDir string,
	format nb2docx.Format,
	workers int,
	cfg nb2docx.Config,
	opts []nb2docx.Option,
	common commonFlags,
	env *Environment,
) error {
	if outputDir != "" && fileutil.HasExtension(outputDir, ".docx", ".pdf") {
		return fmt.Errorf("%w: --output must be a directory when converting %s", ErrUsage, dir)
	}

	files, err := discoverNotebooks(dir, outputDir, format)
	if err != nil {
		return fmt.Errorf("discovering notebooks: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoNotebooks, dir)
	}

	size := nb2docx.ResolvePoolSize(workers)
	if common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}
	pool, err := nb2docx.NewConverterPool(size, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files)
	return printResults(results, common, env)
}

// discoverNotebooks finds the .ipynb files under root, skipping checkpoints.
func discoverNotebooks(root, outputDir string, format nb2docx.Format) ([]FileToConvert, error) {
	var files []FileToConvert
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if d.Name() == checkpointDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExtension(path, ".ipynb") {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, root, format),
		})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the document path for a notebook. Without an
// output directory the document sits next to the notebook; with one, the
// notebook's directory layout below baseInputDir is mirrored.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, format nb2docx.Format) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + "." + string(format)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(outputDir, base)
}

// convertBatch processes files concurrently, one converter per worker.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrPoolInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts a single notebook and times it.
func convertFile(ctx context.Context, conv fileConverter, f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %v", nb2docx.ErrDocumentWrite, err)
		result.Duration = time.Since(start)
		return result
	}

	r, err := conv.ConvertFile(ctx, f.InputPath, f.OutputPath)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}
	result.Format = r.Format
	return result
}

// printResults reports each conversion and returns an error carrying the
// first failure when any conversion failed.
func printResults(results []ConversionResult, common commonFlags, env *Environment) error {
	var failed int
	var first error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if common.quiet {
			continue
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Saved %s file: %s\n", strings.ToUpper(string(r.Format)), r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed: %w", failed, len(results), first)
	}
	return nil
}
