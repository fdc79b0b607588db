// Package export copies labelled files into an output directory under names
// built from their labels.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"filewords/internal/domain"
)

// DefaultSeparator joins labels inside a file name.
const DefaultSeparator = "-"

// FileName builds "<index>-<labels><ext>" where index is 1-based and
// zero-padded to one digit more than the total count needs.
// A file without labels becomes "<index><ext>".
func FileName(index, total int, a domain.LabelAssignment, sep string) string {
	width := len(strconv.Itoa(total)) + 1
	num := fmt.Sprintf("%0*d", width, index)
	ext := filepath.Ext(a.File)
	labels := make([]string, 0, len(a.Labels))
	for _, l := range a.Labels {
		labels = append(labels, sanitize(l))
	}
	if len(labels) == 0 {
		return num + ext
	}
	return num + sep + strings.Join(labels, sep) + ext
}

// FromTagSets names files after their full caption tags instead of selected labels.
func FromTagSets(files []string, sets []domain.TagSet) []domain.LabelAssignment {
	out := make([]domain.LabelAssignment, len(files))
	for i, f := range files {
		out[i] = domain.LabelAssignment{File: f, Labels: sets[i].Tags()}
	}
	return out
}

// CopyFiles copies every assigned file from inputDir into outputDir, creating
// it if needed, and returns the written paths in assignment order.
func CopyFiles(inputDir, outputDir string, assignments []domain.LabelAssignment, sep string) ([]string, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	written := make([]string, 0, len(assignments))
	for i, a := range assignments {
		dst := filepath.Join(outputDir, FileName(i+1, len(assignments), a, sep))
		if err := copyFile(filepath.Join(inputDir, a.File), dst); err != nil {
			return written, fmt.Errorf("copy %s: %w", a.File, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// sanitize keeps labels from escaping the output directory.
func sanitize(label string) string {
	return strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(label)
}
