package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	nb2docx "github.com/alnah/go-nb2docx"
)

// goMono selects the embedded font so tests never depend on host fonts.
const goMono = "--font=Go Mono"

var fixedTime = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// testEnv returns an Environment writing into buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return fixedTime },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeNotebook writes a notebook with one code cell per entry of code.
func writeNotebook(t *testing.T, path string, code ...string) {
	t.Helper()

	type cell struct {
		CellType string   `json:"cell_type"`
		Source   []string `json:"source"`
	}
	nb := struct {
		Cells []cell `json:"cells"`
	}{Cells: []cell{{CellType: "markdown", Source: []string{"# Title"}}}}
	for _, c := range code {
		nb.Cells = append(nb.Cells, cell{CellType: "code", Source: []string{c}})
	}

	data, err := json.Marshal(nb)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// writePNG writes a small opaque PNG.
func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for x := range 40 {
		for y := range 10 {
			img.Set(x, y, color.RGBA{R: 0x30, G: 0x60, B: 0x90, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// docxMedia returns the media file names packaged in a .docx.
func docxMedia(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer func() { _ = zr.Close() }()

	var media []string
	for _, f := range zr.File {
		if filepath.Dir(f.Name) == "word/media" {
			media = append(media, filepath.Base(f.Name))
		}
	}
	return media
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockConverter records notebooks and fails on failOn.
type mockConverter struct {
	mu     sync.Mutex
	calls  []string
	failOn string
	err    error
}

func (m *mockConverter) ConvertFile(_ context.Context, notebookPath, outputPath string) (*nb2docx.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, notebookPath)
	m.mu.Unlock()

	if notebookPath == m.failOn {
		return nil, m.err
	}
	return &nb2docx.Result{OutputPath: outputPath, Format: nb2docx.FormatDOCX}, nil
}

func (m *mockConverter) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// mockPool hands the same converter to every worker.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error
	acquired   atomic.Int32
	released   atomic.Int32
}

func (p *mockPool) Acquire() (fileConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired.Add(1)
	return p.conv, nil
}

func (p *mockPool) Release(fileConverter) { p.released.Add(1) }

func (p *mockPool) Size() int { return p.size }
