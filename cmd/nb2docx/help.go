package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Render notebook code cells into a .docx or .pdf document")
	fmt.Fprintln(w, "  assemble   Build a document from code_cell_<n>.png images")
	fmt.Fprintln(w, "  render     Write code_cell_<n>.png images for a notebook")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check font, browser and directories")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nb2docx help <command>' for details on a specific command.")
}

// printDocumentFlags prints the flags shared by convert and assemble.
func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .docx or .pdf file (default Notebook_Code_Cells.docx)")
	fmt.Fprintln(w, "      --font <name>         Monospace font name, \"Go Mono\", or .ttf path")
	fmt.Fprintln(w, "      --width <f>           Picture width in inches (default 6, max 20)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF page load timeout (e.g., 30s, 2m)")
}

// printCommonFlags prints the flags every command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx convert [notebook|directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each non-empty code cell as a syntax-highlighted image and write")
	fmt.Fprintln(w, "them, in order, under a \"Notebook Code Cells\" heading.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  notebook   .ipynb file (default: input.notebook, then notebook.ipynb)")
	fmt.Fprintln(w, "  directory  convert every .ipynb below it; -o names an output directory")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Directories:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --format <s>          Output format: docx, pdf (default docx)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printAssembleUsage prints usage for the assemble command.
func printAssembleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx assemble [directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read code_cell_0.png, code_cell_1.png, ... from directory, stopping at the")
	fmt.Fprintln(w, "first missing number, and write them with \"Code Cell <n>:\" captions.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directory  image directory (default: input.imageDir, then .)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx render [notebook] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write one code_cell_<n>.png per non-empty code cell, numbered from 0.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --dir <path>          Image directory (default: input.imageDir, then .)")
	fmt.Fprintln(w, "      --font <name>         Monospace font name, \"Go Mono\", or .ttf path")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx config [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a run would use, as YAML.")
	fmt.Fprintln(w, "Config files are looked up as ./<name>.yaml, ./<name>.yml, then in the")
	fmt.Fprintln(w, "go-nb2docx directory of the user config directory. Default name: nb2docx.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2docx doctor [--json] [--font name] [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the font loads, Chrome is available for PDF output, and the")
	fmt.Fprintln(w, "temp and output directories are writable.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "assemble":
		printAssembleUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nb2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nb2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
