// Package tags turns raw caption text into normalized tag sets.
package tags

import (
	"strings"

	"filewords/internal/domain"
)

// DefaultSeparator splits a caption into tags.
const DefaultSeparator = ","

// Extractor splits captions on a separator and trims each piece.
// No case folding or synonym merging is applied.
type Extractor struct {
	separator string
}

func NewExtractor(separator string) *Extractor {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Extractor{separator: separator}
}

// Extract returns the tag set of one caption. Empty input yields an empty set.
func (e *Extractor) Extract(caption string) domain.TagSet {
	pieces := strings.Split(caption, e.separator)
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return domain.NewTagSet(out...)
}

// ExtractAll returns one tag set per document, in document order.
func (e *Extractor) ExtractAll(docs []domain.Document) []domain.TagSet {
	sets := make([]domain.TagSet, len(docs))
	for i, d := range docs {
		sets[i] = e.Extract(d.Caption)
	}
	return sets
}

// Extract splits caption on commas using the default extractor.
func Extract(caption string) domain.TagSet {
	return NewExtractor(DefaultSeparator).Extract(caption)
}
