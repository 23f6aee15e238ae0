package nb2docx

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-nb2docx/internal/docx"
	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// Configuration defaults.
const (
	DefaultSourcePath = "notebook.ipynb"
	DefaultOutputPath = "Notebook_Code_Cells.docx"
	DefaultFontName   = "DejaVu Sans Mono"
	DefaultImageWidth = 6.0 // inches
)

// MaxImageWidth is the widest picture accepted, in inches.
const MaxImageWidth = 20.0

// DocumentHeading is the level-1 heading that opens every document.
const DocumentHeading = "Notebook Code Cells"

// defaultTimeout bounds page loading in the PDF backend.
const defaultTimeout = 30 * time.Second

// Config holds the inputs of a conversion. There is no package-level state:
// every Converter carries its own Config.
type Config struct {
	SourcePath string  // notebook read by Convert
	OutputPath string  // document written by Convert and AssembleFromDisk
	FontName   string  // monospace font name or .ttf path
	ImageWidth float64 // picture width in inches; height follows the aspect ratio
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		SourcePath: DefaultSourcePath,
		OutputPath: DefaultOutputPath,
		FontName:   DefaultFontName,
		ImageWidth: DefaultImageWidth,
	}
}

// Validate checks that the configuration can drive a conversion.
// The font is not resolved here; font problems surface on first render.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourcePath) == "" {
		return ErrEmptySourcePath
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return ErrEmptyOutputPath
	}
	if c.ImageWidth <= 0 || c.ImageWidth > MaxImageWidth {
		return fmt.Errorf("%w: %g (must be in (0, %g])", ErrInvalidImageWidth, c.ImageWidth, MaxImageWidth)
	}
	return nil
}

// Format is an output document format.
type Format string

// Supported output formats.
const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// FormatFor returns the output format implied by the path extension.
func FormatFor(path string) (Format, error) {
	switch {
	case fileutil.HasExtension(path, ".docx"):
		return FormatDOCX, nil
	case fileutil.HasExtension(path, ".pdf"):
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q (want .docx or .pdf)", ErrUnsupportedFormat, path)
	}
}

// ImageSource is one picture to place in a document.
// Data wins over Path when both are set.
type ImageSource struct {
	Path    string
	Data    []byte
	Caption string // paragraph written before the picture; "" for none
}

// Block kinds reported in Result.Blocks.
const (
	BlockHeading   = string(docx.BlockHeading)
	BlockParagraph = string(docx.BlockParagraph)
	BlockImage     = string(docx.BlockImage)
)

// Block is one top-level element of a written document.
type Block struct {
	Kind string
	Text string // heading or paragraph text; "" for pictures and spacers
}

// Result describes a written document.
type Result struct {
	OutputPath string
	Format     Format
	Images     int
	Blocks     []Block
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the page load timeout of the PDF backend.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("nb2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithNow sets the clock used for the document creation date.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// withRasterizer replaces the font-backed rasterizer (for tests).
func withRasterizer(r rasterizer) Option {
	return func(c *Converter) {
		c.raster = r
	}
}

// withPDFConverter replaces the headless Chrome backend (for tests).
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdf = p
	}
}
