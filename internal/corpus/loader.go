// Package corpus discovers image files with sidecar caption files.
package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filewords/internal/domain"
	"filewords/internal/imagecheck"
	"filewords/internal/logging"
)

// DefaultCaptionExt is the extension of caption sidecar files.
const DefaultCaptionExt = ".txt"

// Options configures corpus discovery.
type Options struct {
	CaptionExt string
	Logger     *slog.Logger
}

// Pair is an image file and its caption file, both relative to the corpus directory.
type Pair struct {
	Image   string
	Caption string
}

// Pairs lists dir (non-recursively, sorted by name) and returns every image
// that has a caption file with the same stem.
func Pairs(dir string, opts Options) ([]Pair, error) {
	opts = withDefaults(opts)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Pair
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !imagecheck.IsImage(filepath.Join(dir, name)) {
			continue
		}
		caption := strings.TrimSuffix(name, filepath.Ext(name)) + opts.CaptionExt
		info, err := os.Stat(filepath.Join(dir, caption))
		if err != nil || info.IsDir() {
			opts.Logger.Debug("image without caption skipped", "image", name)
			continue
		}
		out = append(out, Pair{Image: name, Caption: caption})
	}
	return out, nil
}

// Load reads the caption of every pair in dir. Captions are trimmed of
// surrounding whitespace; document order follows Pairs.
func Load(dir string, opts Options) ([]domain.Document, error) {
	opts = withDefaults(opts)
	pairs, err := Pairs(dir, opts)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(pairs))
	for _, p := range pairs {
		data, err := os.ReadFile(filepath.Join(dir, p.Caption))
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{ID: p.Image, Caption: strings.TrimSpace(string(data))})
	}
	opts.Logger.Info("corpus loaded", "dir", dir, "files", len(docs))
	return docs, nil
}

func withDefaults(opts Options) Options {
	if opts.CaptionExt == "" {
		opts.CaptionExt = DefaultCaptionExt
	}
	if !strings.HasPrefix(opts.CaptionExt, ".") {
		opts.CaptionExt = "." + opts.CaptionExt
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return opts
}
