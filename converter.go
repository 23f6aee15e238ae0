package nb2docx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-nb2docx/internal/fileutil"
	"github.com/alnah/go-nb2docx/internal/notebook"
	"github.com/alnah/go-nb2docx/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ rasterizer   = (*render.Rasterizer)(nil)
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// rasterizer turns one code cell into PNG bytes.
type rasterizer interface {
	Render(code, language string) ([]byte, error)
	Close() error
}

// Converter runs conversions for one Config.
// Create with NewConverter and call Close when done. Not safe for concurrent use.
type Converter struct {
	cfg     Config
	timeout time.Duration
	now     func() time.Time

	raster rasterizer
	pdf    pdfConverter
}

// NewConverter creates a Converter for cfg.
// The font and the browser are loaded on first use, so a disk-only assembly
// never needs either.
func NewConverter(cfg Config, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{
		cfg:     cfg,
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.pdf == nil {
		c.pdf = newRodConverter(c.timeout)
	}
	return c, nil
}

// Config returns the converter's configuration.
func (c *Converter) Config() Config {
	return c.cfg
}

// Convert writes the code cells of Config.SourcePath to Config.OutputPath.
func (c *Converter) Convert(ctx context.Context) (*Result, error) {
	return c.ConvertFile(ctx, c.cfg.SourcePath, c.cfg.OutputPath)
}

// ConvertFile writes the code cells of the notebook at notebookPath to outputPath.
// Cells are rendered and appended one at a time, in notebook order.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertFile(ctx context.Context, notebookPath, outputPath string) (result *Result, err error) {
	defer recoverInto(&err)

	format, err := FormatFor(outputPath)
	if err != nil {
		return nil, err
	}

	nb, err := notebook.Load(notebookPath)
	if err != nil {
		return nil, err
	}
	cells := notebook.CodeCells(nb)
	language := notebook.Language(nb)

	doc := c.newDocument()
	if len(cells) > 0 {
		raster, err := c.ensureRasterizer()
		if err != nil {
			return nil, err
		}
		for _, cell := range cells {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			img, err := raster.Render(cell.Code, language)
			if err != nil {
				return nil, fmt.Errorf("cell %d: %w", cell.Index, err)
			}
			if err := addPicture(doc, img, c.cfg.ImageWidth); err != nil {
				return nil, fmt.Errorf("cell %d: %w", cell.Index, err)
			}
			doc.AddParagraph("")
		}
	}

	return c.save(ctx, doc, format, outputPath)
}

// AssembleFromDisk writes the code_cell_<n>.png images found in dir to
// Config.OutputPath, each preceded by a "Code Cell <n>:" caption.
func (c *Converter) AssembleFromDisk(ctx context.Context, dir string) (*Result, error) {
	sources, err := DiscoverImages(dir)
	if err != nil {
		return nil, err
	}
	return c.Assemble(ctx, sources, c.cfg.OutputPath)
}

// Assemble writes sources to outputPath in the given order: the heading, then
// per source an optional caption, the picture and an empty spacer paragraph.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Assemble(ctx context.Context, sources []ImageSource, outputPath string) (result *Result, err error) {
	defer recoverInto(&err)

	format, err := FormatFor(outputPath)
	if err != nil {
		return nil, err
	}

	doc := c.newDocument()
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := src.load()
		if err != nil {
			return nil, err
		}
		if src.Caption != "" {
			doc.AddParagraph(src.Caption)
		}
		if err := addPicture(doc, data, c.cfg.ImageWidth); err != nil {
			if src.Path != "" {
				return nil, fmt.Errorf("%s: %w", src.Path, err)
			}
			return nil, err
		}
		doc.AddParagraph("")
	}

	return c.save(ctx, doc, format, outputPath)
}

// RenderImages renders the code cells of Config.SourcePath into dir as
// code_cell_0.png, code_cell_1.png, ... numbered by qualifying-cell position,
// and returns the written paths. dir is created if missing. Images left by an
// earlier, longer render are removed so DiscoverImages stops after the last cell.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) RenderImages(ctx context.Context, dir string) (paths []string, err error) {
	defer recoverInto(&err)

	nb, err := notebook.Load(c.cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	cells := notebook.CodeCells(nb)
	if len(cells) == 0 {
		return nil, removeImagesFrom(dir, 0)
	}
	language := notebook.Language(nb)

	raster, err := c.ensureRasterizer()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrDocumentWrite, dir, err)
	}

	for i, cell := range cells {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		img, err := raster.Render(cell.Code, language)
		if err != nil {
			return paths, fmt.Errorf("cell %d: %w", cell.Index, err)
		}
		path := filepath.Join(dir, ImageFileName(i))
		if err := fileutil.WriteFileAtomic(path, img, 0o644); err != nil {
			return paths, fmt.Errorf("%w: %v", ErrDocumentWrite, err)
		}
		paths = append(paths, path)
	}
	return paths, removeImagesFrom(dir, len(cells))
}

// Close releases the font face and the headless browser.
func (c *Converter) Close() error {
	var errs []error
	if c.raster != nil {
		if err := c.raster.Close(); err != nil {
			errs = append(errs, err)
		}
		c.raster = nil
	}
	if c.pdf != nil {
		if err := c.pdf.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ensureRasterizer lazily loads the configured font.
func (c *Converter) ensureRasterizer() (rasterizer, error) {
	if c.raster != nil {
		return c.raster, nil
	}
	r, err := render.NewRasterizer(render.Options{Font: c.cfg.FontName})
	if err != nil {
		return nil, err
	}
	c.raster = r
	return r, nil
}

// load returns the source bytes, reading Path when Data is empty.
func (s ImageSource) load() ([]byte, error) {
	if len(s.Data) > 0 {
		return s.Data, nil
	}
	data, err := os.ReadFile(s.Path) // #nosec G304 -- image path is discovered or user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	return data, nil
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}
