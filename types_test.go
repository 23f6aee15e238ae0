package nb2docx

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty source", mutate: func(c *Config) { c.SourcePath = "" }, wantErr: ErrEmptySourcePath},
		{name: "blank source", mutate: func(c *Config) { c.SourcePath = "   " }, wantErr: ErrEmptySourcePath},
		{name: "empty output", mutate: func(c *Config) { c.OutputPath = "" }, wantErr: ErrEmptyOutputPath},
		{name: "zero width", mutate: func(c *Config) { c.ImageWidth = 0 }, wantErr: ErrInvalidImageWidth},
		{name: "negative width", mutate: func(c *Config) { c.ImageWidth = -2 }, wantErr: ErrInvalidImageWidth},
		{name: "width at maximum", mutate: func(c *Config) { c.ImageWidth = MaxImageWidth }},
		{name: "width above maximum", mutate: func(c *Config) { c.ImageWidth = MaxImageWidth + 0.1 }, wantErr: ErrInvalidImageWidth},
		{name: "empty font is allowed until render", mutate: func(c *Config) { c.FontName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	want := Config{
		SourcePath: "notebook.ipynb",
		OutputPath: "Notebook_Code_Cells.docx",
		FontName:   "DejaVu Sans Mono",
		ImageWidth: 6,
	}
	if cfg != want {
		t.Errorf("DefaultConfig() = %+v, want %+v", cfg, want)
	}
}

// ---------------------------------------------------------------------------
// TestFormatFor
// ---------------------------------------------------------------------------

func TestFormatFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr error
	}{
		{path: "Notebook_Code_Cells.docx", want: FormatDOCX},
		{path: "out/REPORT.DOCX", want: FormatDOCX},
		{path: "cells.pdf", want: FormatPDF},
		{path: "cells.odt", wantErr: ErrUnsupportedFormat},
		{path: "cells", wantErr: ErrUnsupportedFormat},
		{path: "docx", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := FormatFor(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FormatFor(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFor(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}
