// Package tagmatrix builds the corpus tag vocabulary and the binary
// (file × tag) incidence matrix used for reduction.
package tagmatrix

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
)

// Order selects how vocabulary columns are arranged.
type Order string

const (
	// OrderFirstSeen keeps tags in order of first appearance, walking files then tags.
	OrderFirstSeen Order = "first-seen"
	// OrderSorted arranges tags lexicographically.
	OrderSorted Order = "sorted"
)

// ParseOrder maps a config string to an Order. Empty means OrderFirstSeen.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderFirstSeen:
		return OrderFirstSeen, nil
	case OrderSorted:
		return OrderSorted, nil
	default:
		return "", fmt.Errorf("unknown vocabulary order %q", s)
	}
}

// Matrix is the incidence matrix together with the row and column labels it was built from.
type Matrix struct {
	// Incidence is nil when the corpus has no files or no tags.
	Incidence  *mat.Dense
	Vocabulary domain.Vocabulary
	Files      []string
}

// IsEmpty reports whether the matrix has a zero dimension.
func (m *Matrix) IsEmpty() bool {
	return m.Incidence == nil
}

// Dims returns (files, tags).
func (m *Matrix) Dims() (int, int) {
	return len(m.Files), m.Vocabulary.Len()
}

// Row recovers the tag set of file r from the nonzero columns of its row.
func (m *Matrix) Row(r int) domain.TagSet {
	if m.IsEmpty() {
		return domain.NewTagSet()
	}
	var out []string
	for c := 0; c < m.Vocabulary.Len(); c++ {
		if m.Incidence.At(r, c) != 0 {
			out = append(out, m.Vocabulary.Tag(c))
		}
	}
	return domain.NewTagSet(out...)
}

// Build derives the vocabulary of sets and fills the incidence matrix.
// files[r] labels row r and must align with sets[r].
func Build(files []string, sets []domain.TagSet, order Order) (*Matrix, error) {
	if len(files) != len(sets) {
		return nil, fmt.Errorf("%d files but %d tag sets: %w", len(files), len(sets), domain.ErrShapeMismatch)
	}
	rowLabels := make([]string, len(files))
	copy(rowLabels, files)

	vocab := domain.NewVocabulary(collectTerms(sets, order))
	m := &Matrix{Vocabulary: vocab, Files: rowLabels}
	if len(files) == 0 || vocab.Len() == 0 {
		return m, nil
	}

	data := make([]float64, len(files)*vocab.Len())
	for r, set := range sets {
		for _, tag := range set.Tags() {
			c, _ := vocab.Index(tag)
			data[r*vocab.Len()+c] = 1
		}
	}
	m.Incidence = mat.NewDense(len(files), vocab.Len(), data)
	return m, nil
}

func collectTerms(sets []domain.TagSet, order Order) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, set := range sets {
		for _, tag := range set.Tags() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			terms = append(terms, tag)
		}
	}
	if order == OrderSorted {
		sort.Strings(terms)
	}
	return terms
}
