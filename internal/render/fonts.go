package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// Sentinel errors for font resolution.
var (
	ErrFontNotFound = errors.New("font not found")
	ErrFontLoad     = errors.New("failed to load font")
)

// BuiltinFont is the name of the monospace font compiled into the binary.
const BuiltinFont = "Go Mono"

// FontDirs lists the directories searched for named fonts, in order.
// Overridable for tests.
var FontDirs = defaultFontDirs

// defaultFontDirs returns the platform font directories.
func defaultFontDirs() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		dirs := []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Fonts"),
			"/Library/Fonts",
			"/System/Library/Fonts",
		}
	default:
		dirs := []string{
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
			"/usr/local/share/fonts",
			"/usr/share/fonts",
		}
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dirs = append([]string{filepath.Join(xdg, "fonts")}, dirs...)
		}
		return dirs
	}
}

// ResolveFont returns the TrueType data for a font name or path.
//
//   - "Go Mono" resolves to the embedded Go Mono font.
//   - A value containing a path separator is read as a font file.
//   - Anything else is matched against .ttf file names in FontDirs, ignoring
//     case and spaces ("DejaVu Sans Mono" matches DejaVuSansMono.ttf).
//
// There is no fallback: an unresolvable name returns ErrFontNotFound.
func ResolveFont(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty font name", ErrFontNotFound)
	}

	if strings.EqualFold(name, BuiltinFont) {
		return gomono.TTF, nil
	}

	if fileutil.IsFilePath(name) {
		data, err := os.ReadFile(name) // #nosec G304 -- font path is user-provided
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
		}
		return data, nil
	}

	path, err := FindFont(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered font path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
	}
	return data, nil
}

// FindFont searches FontDirs for a .ttf file matching name.
func FindFont(name string) (string, error) {
	want := fontKey(name)

	var found string
	for _, dir := range FontDirs() {
		if !fileutil.DirExists(dir) {
			continue
		}
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtrees are skipped
			}
			if d.IsDir() || !fileutil.HasExtension(path, ".ttf") {
				return nil
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if fontKey(base) == want {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("%w: %q (searched %s)", ErrFontNotFound, name, strings.Join(FontDirs(), ", "))
}

// fontKey normalizes a font name or file base name for comparison.
func fontKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// parseFont parses TrueType data, wrapping failures in ErrFontLoad.
func parseFont(name string, data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
	}
	return f, nil
}
