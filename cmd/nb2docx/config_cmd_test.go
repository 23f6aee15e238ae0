package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-nb2docx/internal/config"
	"github.com/alnah/go-nb2docx/internal/yamlutil"
)

func TestRunConfigCmd_Defaults(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if err := runConfigCmd(nil, env); err != nil {
		t.Fatalf("runConfigCmd() error = %v", err)
	}

	var got config.Config
	if err := yamlutil.Decode(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not a valid config file: %v\n%s", err, stdout)
	}
	if !strings.HasPrefix(stdout.String(), "# nb2docx effective configuration.\n") {
		t.Errorf("output should open with the header comment:\n%s", stdout)
	}
	if got.Input.Notebook != "notebook.ipynb" {
		t.Errorf("Input.Notebook = %q, want notebook.ipynb", got.Input.Notebook)
	}
	if got.Input.ImageDir != "." {
		t.Errorf("Input.ImageDir = %q, want .", got.Input.ImageDir)
	}
	if got.Output.Path != "Notebook_Code_Cells.docx" {
		t.Errorf("Output.Path = %q", got.Output.Path)
	}
	if got.Document.ImageWidth != 6 {
		t.Errorf("Document.ImageWidth = %v, want 6", got.Document.ImageWidth)
	}
}

func TestRunConfigCmd_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "output:\n  path: report.pdf\nrender:\n  font: Go Mono\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	env, stdout, _ := testEnv()
	if err := runConfigCmd([]string{"-c", path}, env); err != nil {
		t.Fatalf("runConfigCmd() error = %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"path: report.pdf", "font: Go Mono", "notebook: notebook.ipynb"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunConfigCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("extra argument", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		if err := runConfigCmd([]string{"extra"}, env); !errors.Is(err, ErrUsage) {
			t.Errorf("runConfigCmd() error = %v, want %v", err, ErrUsage)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		err := runConfigCmd([]string{"-c", filepath.Join(t.TempDir(), "none.yaml")}, env)
		if err == nil {
			t.Fatal("runConfigCmd() error = nil, want error")
		}
		if code := exitCodeFor(err); code != ExitUsage && code != ExitIO {
			t.Errorf("exitCodeFor() = %d, want usage or I/O", code)
		}
	})
}
