package nb2docx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// imageFilePrefix and imageFileExt frame the index in rendered image names.
const (
	imageFilePrefix = "code_cell_"
	imageFileExt    = ".png"
)

// ImageFileName returns the file name of the n-th rendered code cell.
func ImageFileName(n int) string {
	return imageFilePrefix + strconv.Itoa(n) + imageFileExt
}

// CaptionFor returns the caption written before the n-th image on the disk path.
func CaptionFor(n int) string {
	return fmt.Sprintf("Code Cell %d:", n)
}

// DiscoverImages returns the images code_cell_0.png, code_cell_1.png, ... in
// dir, stopping at the first missing index. Files after a gap are never
// reached: with 0, 1 and 3 present only 0 and 1 are returned.
// Only existence is checked; content errors surface during assembly.
func DiscoverImages(dir string) ([]ImageSource, error) {
	if !fileutil.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrImageRead, dir)
	}

	var sources []ImageSource
	for n := 0; ; n++ {
		path := filepath.Join(dir, ImageFileName(n))
		if !fileutil.FileExists(path) {
			break
		}
		sources = append(sources, ImageSource{Path: path, Caption: CaptionFor(n)})
	}
	return sources, nil
}

// removeImagesFrom deletes code_cell_<n>.png for n = from, from+1, ... up to
// the first missing index. A missing dir is not an error.
func removeImagesFrom(dir string, from int) error {
	for n := from; ; n++ {
		path := filepath.Join(dir, ImageFileName(n))
		if !fileutil.FileExists(path) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: removing stale %s: %v", ErrDocumentWrite, path, err)
		}
	}
}
