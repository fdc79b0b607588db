// Package imagecheck sniffs and verifies image files.
package imagecheck

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotImage indicates a file whose header matches no registered image format.
	ErrNotImage = errors.New("imagecheck: not an image")
	// ErrCorrupt indicates a file that looks like an image but cannot be fully decoded.
	ErrCorrupt = errors.New("imagecheck: corrupt image")
)

// IsImage reports whether the file header matches a registered image format.
func IsImage(path string) bool {
	_, err := Sniff(path)
	return err == nil
}

// Sniff returns the format name of the image at path.
func Sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	return format, nil
}

// Verify fully decodes the image at path.
func Verify(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, _, err := image.Decode(f); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrCorrupt, err)
	}
	return nil
}

// Finding is one corrupt image found by FindCorrupt.
type Finding struct {
	Path string
	Err  error
}

// FindCorrupt walks root recursively and reports every file that sniffs as an
// image but fails to decode. Files that are not images are ignored.
func FindCorrupt(root string) ([]Finding, error) {
	var out []Finding
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := Verify(path); err != nil && !errors.Is(err, ErrNotImage) {
			out = append(out, Finding{Path: path, Err: err})
		}
		return nil
	})
	return out, err
}
