// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser connection errors.
// Only PDF output needs a browser, so the DOCX route is always suggested.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "write a .docx file to skip the browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow PDF pages.
func ForTimeout() string {
	return format("for notebooks with many cells, use --timeout flag")
}

// ForFontNotFound returns hints for unresolvable font names.
func ForFontNotFound() string {
	return formatHints([]string{
		`use --font "Go Mono" for the built-in font`,
		"or pass the path of a .ttf file",
	})
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config file to create.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if filepath.IsAbs(p) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForImageDirectory returns hints for disk assembly that found nothing to read.
func ForImageDirectory() string {
	return format("images must be named code_cell_0.png, code_cell_1.png, ... with no gaps; see 'nb2docx render'")
}

// ForUnsupportedFormat returns hints for unknown output extensions.
func ForUnsupportedFormat() string {
	return format("output path must end in .docx or .pdf")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
