package domain

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Document is a single image file paired with its caption text.
type Document struct {
	ID      string
	Caption string
}

// TagSet is an ordered set of caption tags belonging to one file.
// Tags keep the order in which they were first added.
type TagSet struct {
	tags  []string
	index map[string]struct{}
}

// NewTagSet builds a TagSet, dropping empty strings and repeats.
func NewTagSet(tags ...string) TagSet {
	s := TagSet{index: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := s.index[t]; ok {
			continue
		}
		s.index[t] = struct{}{}
		s.tags = append(s.tags, t)
	}
	return s
}

func (s TagSet) Len() int { return len(s.tags) }

func (s TagSet) Contains(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Tags returns a copy of the tags in insertion order.
func (s TagSet) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Vocabulary maps every distinct tag in a corpus to a stable column index.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary creates a vocabulary from already de-duplicated terms.
// Later repeats of a term are ignored.
func NewVocabulary(terms []string) Vocabulary {
	v := Vocabulary{index: make(map[string]int, len(terms))}
	for _, t := range terms {
		if _, ok := v.index[t]; ok {
			continue
		}
		v.index[t] = len(v.terms)
		v.terms = append(v.terms, t)
	}
	return v
}

func (v Vocabulary) Len() int { return len(v.terms) }

// Index returns the column of tag.
func (v Vocabulary) Index(tag string) (int, bool) {
	i, ok := v.index[tag]
	return i, ok
}

// Tag returns the tag stored at column i.
func (v Vocabulary) Tag(i int) string { return v.terms[i] }

// Tags returns a copy of the vocabulary in column order.
func (v Vocabulary) Tags() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Reduction is the output of fitting a linear reduction model on an incidence matrix.
type Reduction struct {
	// Reduced has one row per file and one column per component.
	Reduced *mat.Dense
	// Reconstructed is the lossy inverse transform of Reduced.
	Reconstructed *mat.Dense
	// Loadings has one row per component and one column per vocabulary tag.
	Loadings *mat.Dense
	// Mean holds the column means removed before projection.
	Mean []float64
	// ExplainedVariance is the variance captured by each component.
	ExplainedVariance      []float64
	ExplainedVarianceRatio []float64
	Components             int
}

// LabelAssignment is the compact label set chosen for one file.
// Labels are ordered by the component that produced them.
type LabelAssignment struct {
	File   string
	Labels []string
}

// Join concatenates the labels with sep, e.g. for building file names.
func (a LabelAssignment) Join(sep string) string {
	return strings.Join(a.Labels, sep)
}

// Result is everything a pipeline run produces.
type Result struct {
	RunID       string
	Files       []string
	TagSets     []TagSet
	Vocabulary  Vocabulary
	Reduction   *Reduction
	Assignments []LabelAssignment
	// Representatives holds the per-component global labels of selectors that have them.
	Representatives []string
	// Empty is set when the corpus had no files or no tags.
	Empty bool
	// Warning carries a non-fatal condition such as ErrEmptyCorpus.
	Warning error
}

// Reducer fits a linear, variance-maximizing projection of a matrix onto k components.
type Reducer interface {
	Fit(x mat.Matrix, k int) (*Reduction, error)
}

// LabelSelector collapses a reduced row back into a small set of tag labels.
// Prepare is called once per run with the fitted loadings before any Select.
type LabelSelector interface {
	Name() string
	Prepare(loadings mat.Matrix, vocab Vocabulary) error
	Select(row []float64, actual TagSet) ([]string, error)
}

// Representer is implemented by selectors that assign one global label per component.
type Representer interface {
	Representatives() []string
}
