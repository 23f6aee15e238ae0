// Package docx writes WordprocessingML (.docx) documents made of headings,
// plain paragraphs and inline pictures.
//
// A Document is an append-only list of blocks. Nothing is serialized until
// Write is called, which lays the blocks over godocx's base package with the
// embedded heading styles, US Letter page geometry and a fresh
// docProps/core.xml.
package docx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"time"
)

// Sentinel errors for document building and serialization.
var (
	ErrImageDecode  = errors.New("failed to decode image")
	ErrInvalidWidth = errors.New("invalid image width")
	ErrWrite        = errors.New("failed to write document")
)

// maxHeadingLevel is the deepest heading style defined in styles.xml.
const maxHeadingLevel = 2

// BlockKind identifies the type of a body block.
type BlockKind string

// Block kinds.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockImage     BlockKind = "image"
)

// Block is one top-level element of the document body.
type Block struct {
	Kind    BlockKind
	Text    string   // heading and paragraph text; "" for a spacer
	Level   int      // heading level, 1-based
	Picture *Picture // set for BlockImage
}

// Picture is an embedded raster image.
type Picture struct {
	Data        []byte
	Format      string // "png", "jpeg" or "gif"
	PixelWidth  int
	PixelHeight int
	WidthInches float64
}

// HeightInches returns the displayed height, keeping the aspect ratio.
func (p *Picture) HeightInches() float64 {
	if p.PixelWidth == 0 {
		return 0
	}
	return p.WidthInches * float64(p.PixelHeight) / float64(p.PixelWidth)
}

// Extension returns the file extension used inside the package, without dot.
func (p *Picture) Extension() string {
	return p.Format
}

// Document is an in-memory .docx document.
type Document struct {
	Title   string    // docProps/core.xml dc:title
	Created time.Time // docProps/core.xml dcterms:created; zero omits it

	blocks []Block
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// AddHeading appends a heading. Levels outside 1..2 are clamped.
func (d *Document) AddHeading(text string, level int) {
	level = min(max(level, 1), maxHeadingLevel)
	d.blocks = append(d.blocks, Block{Kind: BlockHeading, Text: text, Level: level})
}

// AddParagraph appends a plain paragraph. An empty text produces a spacer.
func (d *Document) AddParagraph(text string) {
	d.blocks = append(d.blocks, Block{Kind: BlockParagraph, Text: text})
}

// AddPicture appends an inline picture scaled to widthInches.
// data must decode as PNG, JPEG or GIF.
func (d *Document) AddPicture(data []byte, widthInches float64) error {
	if widthInches <= 0 {
		return fmt.Errorf("%w: %g inches", ErrInvalidWidth, widthInches)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrImageDecode, cfg.Width, cfg.Height)
	}

	d.blocks = append(d.blocks, Block{
		Kind: BlockImage,
		Picture: &Picture{
			Data:        data,
			Format:      format,
			PixelWidth:  cfg.Width,
			PixelHeight: cfg.Height,
			WidthInches: widthInches,
		},
	})
	return nil
}

// Blocks returns a copy of the body blocks in document order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Len returns the number of body blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Pictures returns the number of image blocks.
func (d *Document) Pictures() int {
	n := 0
	for _, b := range d.blocks {
		if b.Kind == BlockImage {
			n++
		}
	}
	return n
}
