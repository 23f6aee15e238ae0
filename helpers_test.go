package nb2docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fixedNow keeps document metadata stable across test runs.
func fixedNow() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

// testCell is a notebook cell as written to disk.
type testCell struct {
	Type   string
	Source any // string, []string or nil
}

func code(src ...string) testCell     { return testCell{Type: "code", Source: src} }
func markdown(src ...string) testCell { return testCell{Type: "markdown", Source: src} }

// writeNotebook writes an nbformat-4 notebook with cells to dir/name.
func writeNotebook(t *testing.T, dir, name string, cells ...testCell) string {
	t.Helper()

	type cell struct {
		CellType string   `json:"cell_type"`
		Metadata struct{} `json:"metadata"`
		Source   any      `json:"source"`
	}
	doc := struct {
		Cells         []cell         `json:"cells"`
		Metadata      map[string]any `json:"metadata"`
		NBFormat      int            `json:"nbformat"`
		NBFormatMinor int            `json:"nbformat_minor"`
	}{
		Metadata: map[string]any{
			"kernelspec": map[string]string{"name": "python3", "language": "python"},
		},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
	for _, c := range cells {
		doc.Cells = append(doc.Cells, cell{CellType: c.Type, Source: c.Source})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// makePNG returns a w x h PNG image.
func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{B: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockRasterizer returns a fixed PNG and records the code it was asked to draw.
type mockRasterizer struct {
	mu      sync.Mutex
	png     []byte
	codes   []string
	langs   []string
	err     error
	panicOn string
	closed  bool
}

func newMockRasterizer(t *testing.T) *mockRasterizer {
	t.Helper()
	return &mockRasterizer{png: makePNG(t, 120, 40)}
}

func (m *mockRasterizer) Render(code, language string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicOn != "" && code == m.panicOn {
		panic("rasterizer exploded")
	}
	if m.err != nil {
		return nil, m.err
	}
	m.codes = append(m.codes, code)
	m.langs = append(m.langs, language)
	return m.png, nil
}

func (m *mockRasterizer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// mockPDFConverter records the HTML it receives.
type mockPDFConverter struct {
	html   string
	opts   *pdfOptions
	result []byte
	err    error
	closed bool
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.html = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

// newTestConverter builds a converter writing to dir with mocked backends.
func newTestConverter(t *testing.T, cfg Config, raster rasterizer, pdf pdfConverter) *Converter {
	t.Helper()
	opts := []Option{WithNow(fixedNow)}
	if raster != nil {
		opts = append(opts, withRasterizer(raster))
	}
	if pdf != nil {
		opts = append(opts, withPDFConverter(pdf))
	}
	conv, err := NewConverter(cfg, opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

// ---------------------------------------------------------------------------
// DOCX inspection
// ---------------------------------------------------------------------------

// docxParagraph is the namespace-agnostic view of one body paragraph.
type docxParagraph struct {
	Style string
	Text  string
	Image bool
}

// readDocx returns the body paragraphs and media file names of a .docx.
func readDocx(t *testing.T, path string) ([]docxParagraph, []string) {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("zip.OpenReader(%s) error = %v", path, err)
	}
	defer zr.Close()

	var raw []byte
	var media []string
	for _, f := range zr.File {
		if filepath.Dir(f.Name) == "word/media" {
			media = append(media, f.Name)
		}
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		raw, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatal(err)
		}
	}
	if raw == nil {
		t.Fatalf("%s has no word/document.xml", path)
	}

	var doc struct {
		Paragraphs []struct {
			Style struct {
				Val string `xml:"val,attr"`
			} `xml:"pPr>pStyle"`
			Texts    []string   `xml:"r>t"`
			Drawings []struct{} `xml:"r>drawing"`
		} `xml:"body>p"`
	}
	if err := xml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("xml.Unmarshal(document.xml) error = %v", err)
	}

	paras := make([]docxParagraph, len(doc.Paragraphs))
	for i, p := range doc.Paragraphs {
		var text string
		for _, s := range p.Texts {
			text += s
		}
		paras[i] = docxParagraph{Style: p.Style.Val, Text: text, Image: len(p.Drawings) > 0}
	}
	return paras, media
}
