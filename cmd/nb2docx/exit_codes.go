package main

import (
	"context"
	"errors"
	"os"

	nb2docx "github.com/alnah/go-nb2docx"
	"github.com/alnah/go-nb2docx/internal/config"
	"github.com/alnah/go-nb2docx/internal/hints"
)

// Exit codes for the nb2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Notebook, image or output file problems
	ExitRender  = 4 // Font or rasterization errors
	ExitBrowser = 5 // Browser/Chrome errors (PDF output)
)

// ExitInterrupted is the shell's 128+SIGINT, used when a second signal forces the exit.
const ExitInterrupted = 130

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, nb2docx.ErrBrowserConnect) ||
		errors.Is(err, nb2docx.ErrPageCreate) ||
		errors.Is(err, nb2docx.ErrPageLoad) ||
		errors.Is(err, nb2docx.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Rendering errors (exit 4)
	if errors.Is(err, nb2docx.ErrFontNotFound) ||
		errors.Is(err, nb2docx.ErrFontLoad) ||
		errors.Is(err, nb2docx.ErrRender) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, nb2docx.ErrUnsupportedFormat) ||
		errors.Is(err, nb2docx.ErrInvalidImageWidth) ||
		errors.Is(err, nb2docx.ErrEmptySourcePath) ||
		errors.Is(err, nb2docx.ErrEmptyOutputPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, nb2docx.ErrNotebookRead) ||
		errors.Is(err, nb2docx.ErrNotebookParse) ||
		errors.Is(err, nb2docx.ErrImageRead) ||
		errors.Is(err, nb2docx.ErrImageDecode) ||
		errors.Is(err, nb2docx.ErrDocumentWrite) ||
		errors.Is(err, ErrNoNotebooks) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
// Config lookup hints are attached where the searched paths are known.
func hintFor(err error) string {
	switch {
	case errors.Is(err, nb2docx.ErrFontNotFound):
		return hints.ForFontNotFound()
	case errors.Is(err, nb2docx.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, nb2docx.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, nb2docx.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, nb2docx.ErrDocumentWrite):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
