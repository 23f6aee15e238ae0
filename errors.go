package nb2docx

import (
	"errors"

	"github.com/alnah/go-nb2docx/internal/docx"
	"github.com/alnah/go-nb2docx/internal/notebook"
	"github.com/alnah/go-nb2docx/internal/render"
)

// Sentinel errors for library operations.
var (
	// Notebook loading errors.
	ErrNotebookRead  = notebook.ErrRead
	ErrNotebookParse = notebook.ErrParse

	// Rasterization errors.
	ErrFontNotFound = render.ErrFontNotFound
	ErrFontLoad     = render.ErrFontLoad
	ErrRender       = render.ErrRender

	// Assembly errors.
	ErrImageRead         = errors.New("failed to read image")
	ErrImageDecode       = docx.ErrImageDecode
	ErrDocumentWrite     = errors.New("failed to write document")
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// PDF backend errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Configuration validation errors.
	ErrInvalidImageWidth = errors.New("invalid image width")
	ErrEmptySourcePath   = errors.New("source path cannot be empty")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")
)
