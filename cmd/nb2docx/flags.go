package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds flags that shape the written document.
// Zero values mean "not set".
type documentFlags struct {
	output string
	font   string
	width  float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	doc     documentFlags
	workers int
	timeout string
	format  string // output format for directory input
}

// assembleFlags holds all flags for the assemble command.
type assembleFlags struct {
	common  commonFlags
	doc     documentFlags
	timeout string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	dir    string
	font   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output .docx or .pdf file")
	fs.StringVar(&f.font, "font", "", "monospace font name, \"Go Mono\", or .ttf path")
	fs.Float64Var(&f.width, "width", 0, "picture width in inches (default 6)")
}

// newFlagSet returns a FlagSet that reports errors and usage on w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", w, printConvertUsage)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for a directory (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.format, "format", "docx", "output format for a directory: docx, pdf")
	addDocumentFlags(fs, &f.doc)
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAssembleFlags parses assemble command flags and returns positional args.
func parseAssembleFlags(args []string, w io.Writer) (*assembleFlags, []string, error) {
	f := &assembleFlags{}
	fs := newFlagSet("assemble", w, printAssembleUsage)

	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	addDocumentFlags(fs, &f.doc)
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.dir, "dir", "d", "", "directory for code_cell_<n>.png (default .)")
	fs.StringVar(&f.font, "font", "", "monospace font name, \"Go Mono\", or .ttf path")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse runs fs.Parse, passing flag.ErrHelp through and marking other
// failures as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}
