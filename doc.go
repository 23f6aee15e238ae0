// Package nb2docx turns the code cells of a Jupyter notebook into a document
// of syntax-highlighted images.
//
// # Quick Start
//
// Create a converter from a Config, convert, and close when done:
//
//	cfg := nb2docx.DefaultConfig()
//	cfg.SourcePath = "analysis.ipynb"
//
//	conv, err := nb2docx.NewConverter(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Saved DOCX file:", result.OutputPath)
//
// # Conversion Paths
//
// Convert reads the notebook, keeps the code cells whose source is not blank,
// renders each one to a PNG with a line-number gutter, and writes a document
// holding the heading "Notebook Code Cells" followed by one picture and one
// empty spacer paragraph per cell.
//
// AssembleFromDisk skips the notebook: it reads code_cell_0.png,
// code_cell_1.png, ... from a directory, stopping at the first missing index,
// and writes each picture preceded by a "Code Cell <n>:" caption.
// RenderImages produces such a directory from a notebook.
//
// # Output Formats
//
// The output path extension selects the format: .docx is written directly,
// .pdf is printed from an HTML page by headless Chrome (go-rod).
//
// # Parallel Processing
//
// A Converter is not safe for concurrent use. For batch conversion, use
// ConverterPool, which hands each worker its own Converter:
//
//	pool, err := nb2docx.NewConverterPool(nb2docx.ResolvePoolSize(0), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.ConvertFile(ctx, "a.ipynb", "a.docx")
//
// # Error Handling
//
// Every failure aborts the run. Errors wrap the sentinels in errors.go and
// can be tested with errors.Is:
//
//	if errors.Is(err, nb2docx.ErrFontNotFound) {
//	    // install the font or pass another one
//	}
package nb2docx
