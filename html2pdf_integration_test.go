//go:build integration

package nb2docx

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-nb2docx/internal/render"
)

func TestConvert_PDFWithChrome(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.FontName = render.BuiltinFont
	cfg.OutputPath = filepath.Join(dir, "cells.pdf")
	writeNotebook(t, dir, "notebook.ipynb", code("print('hello')"), code("x = [i for i in range(3)]"))

	conv, err := NewConverter(cfg, WithTimeout(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := conv.Convert(ctx)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Images != 2 {
		t.Errorf("Images = %d, want 2", res.Images)
	}

	data, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF")
	}
}
