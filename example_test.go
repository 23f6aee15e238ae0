package nb2docx_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	nb2docx "github.com/alnah/go-nb2docx"
)

// Example converts a two-cell notebook to DOCX with the built-in font.
func Example() {
	dir, err := os.MkdirTemp("", "nb2docx-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	notebook := `{"cells":[
		{"cell_type":"markdown","source":["# Notes"]},
		{"cell_type":"code","source":["import math\n","print(math.pi)"]},
		{"cell_type":"code","source":["x = 2 ** 10"]}
	]}`
	src := filepath.Join(dir, "notebook.ipynb")
	if err := os.WriteFile(src, []byte(notebook), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg := nb2docx.DefaultConfig()
	cfg.SourcePath = src
	cfg.OutputPath = filepath.Join(dir, "cells.docx")
	cfg.FontName = "Go Mono"

	conv, err := nb2docx.NewConverter(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("images:", result.Images)
	for _, b := range result.Blocks {
		fmt.Printf("%s %q\n", b.Kind, b.Text)
	}
	// Output:
	// images: 2
	// heading "Notebook Code Cells"
	// image ""
	// paragraph ""
	// image ""
	// paragraph ""
}

// ExampleImageFileName shows the names the disk-backed assembler looks for.
func ExampleImageFileName() {
	for n := range 3 {
		fmt.Println(nb2docx.ImageFileName(n), nb2docx.CaptionFor(n))
	}
	// Output:
	// code_cell_0.png Code Cell 0:
	// code_cell_1.png Code Cell 1:
	// code_cell_2.png Code Cell 2:
}
