// Package render rasterizes source code into syntax-highlighted PNG images.
//
// Tokens come from chroma's lexers and are coloured with a chroma style; glyphs
// are drawn with gg on a freetype face. Every image carries a line-number gutter.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// ErrRender indicates the code could not be tokenized or drawn.
var ErrRender = errors.New("failed to render code image")

// Layout defaults, in pixels unless noted.
const (
	DefaultFontSize = 14         // points at 72 DPI
	DefaultStyle    = "pygments" // chroma style name
	linePad         = 2          // extra space between lines
	imagePad        = 10         // border around the code
	lineNumberPad   = 6          // space on each side of the numbers
	tabWidth        = 4
)

// Gutter colours used when the style defines none.
var (
	defaultGutterBackground = color.RGBA{R: 0xee, G: 0xee, B: 0xdd, A: 0xff}
	defaultGutterForeground = color.RGBA{R: 0x88, G: 0x88, B: 0x66, A: 0xff}
	defaultBackground       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultForeground       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

// Options configures a Rasterizer.
type Options struct {
	Font     string  // font name or path, see ResolveFont
	FontSize float64 // points; 0 = DefaultFontSize
	Style    string  // chroma style; "" = DefaultStyle
}

// Rasterizer turns code into PNG images.
// A Rasterizer is not safe for concurrent use: the font face caches glyphs.
type Rasterizer struct {
	face       font.Face
	style      *chroma.Style
	charWidth  float64
	lineHeight float64
	ascent     float64
}

// NewRasterizer loads the font and style. Font problems surface here, before
// any cell is rendered.
func NewRasterizer(opts Options) (*Rasterizer, error) {
	data, err := ResolveFont(opts.Font)
	if err != nil {
		return nil, err
	}
	ttf, err := parseFont(opts.Font, data)
	if err != nil {
		return nil, err
	}

	size := opts.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		_ = face.Close()
		return nil, fmt.Errorf("%w: %s has no glyph for 'M'", ErrFontLoad, opts.Font)
	}

	styleName := opts.Style
	if styleName == "" {
		styleName = DefaultStyle
	}

	metrics := face.Metrics()
	return &Rasterizer{
		face:       face,
		style:      styles.Get(styleName),
		charWidth:  float64(advance) / 64,
		lineHeight: float64(metrics.Height.Ceil() + linePad),
		ascent:     float64(metrics.Ascent.Ceil()),
	}, nil
}

// Close releases the font face.
func (r *Rasterizer) Close() error {
	if r.face == nil {
		return nil
	}
	err := r.face.Close()
	r.face = nil
	return err
}

// Render draws code highlighted for language and returns PNG bytes.
// Unknown languages fall back to plain text.
func (r *Rasterizer) Render(code, language string) ([]byte, error) {
	if r.face == nil {
		return nil, fmt.Errorf("%w: rasterizer is closed", ErrRender)
	}
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrRender)
	}

	lines, err := tokenLines(code, language)
	if err != nil {
		return nil, err
	}

	maxCols := 0
	for _, line := range lines {
		cols := 0
		for _, tok := range line {
			cols += utf8.RuneCountInString(strings.TrimRight(tok.Value, "\n"))
		}
		maxCols = max(maxCols, cols)
	}

	digits := len(strconv.Itoa(len(lines)))
	gutterWidth := float64(digits)*r.charWidth + 2*lineNumberPad
	codeX := gutterWidth + imagePad
	width := int(math.Ceil(codeX + float64(maxCols)*r.charWidth + imagePad))
	height := int(math.Ceil(2*imagePad + float64(len(lines))*r.lineHeight))

	dc := gg.NewContext(width, height)
	dc.SetFontFace(r.face)

	dc.SetColor(r.background())
	dc.Clear()

	gutterBG, gutterFG := r.gutterColours()
	dc.SetColor(gutterBG)
	dc.DrawRectangle(0, 0, gutterWidth, float64(height))
	dc.Fill()

	for i, line := range lines {
		baseline := imagePad + float64(i)*r.lineHeight + r.ascent

		num := strconv.Itoa(i + 1)
		dc.SetColor(gutterFG)
		dc.DrawString(num, gutterWidth-lineNumberPad-float64(len(num))*r.charWidth, baseline)

		x := codeX
		for _, tok := range line {
			text := strings.TrimRight(tok.Value, "\n")
			if text == "" {
				continue
			}
			dc.SetColor(r.tokenColour(tok.Type))
			dc.DrawString(text, x, baseline)
			x += float64(utf8.RuneCountInString(text)) * r.charWidth
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: encoding PNG: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// normalizeCode converts line endings to \n and expands tabs.
func normalizeCode(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	return strings.ReplaceAll(code, "\t", strings.Repeat(" ", tabWidth))
}

// lineCount is the number of displayed lines; a final newline does not open a new line.
func lineCount(code string) int {
	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}
	return n
}

// tokenLines lexes code and splits the tokens into exactly lineCount(code) lines.
func tokenLines(code, language string) ([][]chroma.Token, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenizing %s: %v", ErrRender, language, err)
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	want := lineCount(code)
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines, nil
}

// background returns the style's background colour.
func (r *Rasterizer) background() color.Color {
	entry := r.style.Get(chroma.Background)
	if entry.Background.IsSet() {
		return toRGBA(entry.Background)
	}
	return defaultBackground
}

// gutterColours returns the line-number background and foreground.
func (r *Rasterizer) gutterColours() (bg, fg color.Color) {
	bg, fg = defaultGutterBackground, defaultGutterForeground
	if !r.style.Has(chroma.LineNumbers) {
		return bg, fg
	}
	entry := r.style.Get(chroma.LineNumbers)
	if entry.Background.IsSet() {
		bg = toRGBA(entry.Background)
	}
	if entry.Colour.IsSet() {
		fg = toRGBA(entry.Colour)
	}
	return bg, fg
}

// tokenColour returns the foreground colour for a token type.
func (r *Rasterizer) tokenColour(t chroma.TokenType) color.Color {
	entry := r.style.Get(t)
	if entry.Colour.IsSet() {
		return toRGBA(entry.Colour)
	}
	return defaultForeground
}

func toRGBA(c chroma.Colour) color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}
