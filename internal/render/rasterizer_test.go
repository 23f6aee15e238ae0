package render

// Notes:
// - All rasterizer tests use the embedded Go Mono font so they do not depend on
//   fonts installed on the host.
// - Pixel colours are not asserted beyond the gutter/background split; the
//   chroma style owns the palette.
// - Tests that replace FontDirs are not parallel: FontDirs is package state.

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func newTestRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer(Options{Font: BuiltinFont})
	if err != nil {
		t.Fatalf("NewRasterizer() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

// ---------------------------------------------------------------------------
// TestRender - PNG output
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		language string
	}{
		{name: "python", code: "def f(x):\n    return x * 2\n", language: "python"},
		{name: "no trailing newline", code: "print('hi')", language: "python"},
		{name: "unknown language falls back", code: "some text", language: "no-such-language"},
		{name: "tabs and CRLF", code: "if x:\r\n\tpass\r\n", language: "python"},
		{name: "unicode", code: "s = 'héllo wörld'\n", language: "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRasterizer(t)
			data, err := r.Render(tt.code, tt.language)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			img := decodePNG(t, data)
			if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
				t.Errorf("image bounds = %v, want non-empty", img.Bounds())
			}
		})
	}
}

func TestRender_HeightGrowsWithLines(t *testing.T) {
	t.Parallel()

	r := newTestRasterizer(t)

	one, err := r.Render("a = 1\n", "python")
	if err != nil {
		t.Fatal(err)
	}
	three, err := r.Render("a = 1\nb = 2\nc = 3\n", "python")
	if err != nil {
		t.Fatal(err)
	}

	h1 := decodePNG(t, one).Bounds().Dy()
	h3 := decodePNG(t, three).Bounds().Dy()
	want := h1 + 2*int(r.lineHeight)
	if h3 != want {
		t.Errorf("3-line height = %d, want %d (1-line height %d + 2 lines)", h3, want, h1)
	}
}

func TestRender_WidthGrowsWithLongestLine(t *testing.T) {
	t.Parallel()

	r := newTestRasterizer(t)

	short, err := r.Render("x\n", "python")
	if err != nil {
		t.Fatal(err)
	}
	long, err := r.Render("x\nthis_is_a_much_longer_line = 1\n", "python")
	if err != nil {
		t.Fatal(err)
	}

	if decodePNG(t, long).Bounds().Dx() <= decodePNG(t, short).Bounds().Dx() {
		t.Error("longer line did not widen the image")
	}
}

func TestRender_GutterDiffersFromBackground(t *testing.T) {
	t.Parallel()

	r := newTestRasterizer(t)
	data, err := r.Render("x = 1\n", "python")
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)

	gutter := img.At(1, 1)
	body := img.At(img.Bounds().Dx()-2, 1)
	gr, gg, gb, _ := gutter.RGBA()
	br, bg, bb, _ := body.RGBA()
	if gr == br && gg == bg && gb == bb {
		t.Errorf("gutter colour %v equals background %v", gutter, body)
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	r := newTestRasterizer(t)
	a, err := r.Render("for i in range(3):\n    print(i)\n", "python")
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render("for i in range(3):\n    print(i)\n", "python")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same code differ")
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		r := newTestRasterizer(t)
		if _, err := r.Render("", "python"); !errors.Is(err, ErrRender) {
			t.Errorf("Render(\"\") error = %v, want %v", err, ErrRender)
		}
	})

	t.Run("closed rasterizer", func(t *testing.T) {
		t.Parallel()
		r, err := NewRasterizer(Options{Font: BuiltinFont})
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if _, err := r.Render("x", "python"); !errors.Is(err, ErrRender) {
			t.Errorf("Render() after Close error = %v, want %v", err, ErrRender)
		}
		if err := r.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLineCount
// ---------------------------------------------------------------------------

func TestLineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want int
	}{
		{code: "a", want: 1},
		{code: "a\n", want: 1},
		{code: "a\nb", want: 2},
		{code: "a\nb\n", want: 2},
		{code: "\na\n", want: 2},
		{code: "a\n\n", want: 2},
	}

	for _, tt := range tests {
		if got := lineCount(tt.code); got != tt.want {
			t.Errorf("lineCount(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewRasterizer - Font failures
// ---------------------------------------------------------------------------

func TestNewRasterizer_FontErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing font path", func(t *testing.T) {
		t.Parallel()
		_, err := NewRasterizer(Options{Font: filepath.Join(t.TempDir(), "none.ttf")})
		if !errors.Is(err, ErrFontNotFound) {
			t.Errorf("NewRasterizer() error = %v, want %v", err, ErrFontNotFound)
		}
	})

	t.Run("corrupt font file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.ttf")
		if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewRasterizer(Options{Font: path})
		if !errors.Is(err, ErrFontLoad) {
			t.Errorf("NewRasterizer() error = %v, want %v", err, ErrFontLoad)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewRasterizer(Options{Font: ""})
		if !errors.Is(err, ErrFontNotFound) {
			t.Errorf("NewRasterizer() error = %v, want %v", err, ErrFontNotFound)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveFont - Name and path resolution
// ---------------------------------------------------------------------------

func TestResolveFont_Builtin(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Go Mono", "go mono", "  GO MONO "} {
		data, err := ResolveFont(name)
		if err != nil {
			t.Fatalf("ResolveFont(%q) error = %v", name, err)
		}
		if !bytes.Equal(data, gomono.TTF) {
			t.Errorf("ResolveFont(%q) did not return the embedded font", name)
		}
	}
}

func TestResolveFont_Path(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := ResolveFont(path)
	if err != nil {
		t.Fatalf("ResolveFont() error = %v", err)
	}
	if !bytes.Equal(data, gomono.TTF) {
		t.Error("ResolveFont() returned different bytes")
	}
}

func TestResolveFont_SearchesFontDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "truetype", "dejavu")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "DejaVuSansMono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "DejaVuSansMono-Bold.ttf"), []byte("bold"), 0o644); err != nil {
		t.Fatal(err)
	}

	original := FontDirs
	FontDirs = func() []string { return []string{filepath.Join(dir, "missing"), dir} }
	t.Cleanup(func() { FontDirs = original })

	data, err := ResolveFont("DejaVu Sans Mono")
	if err != nil {
		t.Fatalf("ResolveFont() error = %v", err)
	}
	if !bytes.Equal(data, gomono.TTF) {
		t.Error("ResolveFont() matched the wrong file")
	}

	if _, err := ResolveFont("Fira Code"); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("ResolveFont(missing) error = %v, want %v", err, ErrFontNotFound)
	}
}

func TestFontKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "DejaVu Sans Mono", want: "dejavusansmono"},
		{in: "DejaVuSansMono", want: "dejavusansmono"},
		{in: "Source_Code-Pro", want: "sourcecodepro"},
	}
	for _, tt := range tests {
		if got := fontKey(tt.in); got != tt.want {
			t.Errorf("fontKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
