// Package labeler collapses reduced rows back into small sets of tag labels.
//
// Two policies are available:
//
//   - threshold: for every component whose reduced value reaches the
//     threshold, pick the highest-loading tag the file actually carries.
//   - greedy: give every component one globally unique representative tag
//     (highest |loading| not claimed by an earlier component) and attach it to
//     every file whose |reduced value| reaches the threshold.
package labeler

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
	"filewords/internal/logging"
)

// Policy names a label selection strategy.
type Policy string

const (
	PolicyThreshold Policy = "threshold"
	PolicyGreedy    Policy = "greedy"
)

// OnMissing decides what the threshold policy does when a component meets the
// threshold but the file has no unpicked tag left to offer.
type OnMissing string

const (
	// SkipMissing lets the component contribute nothing.
	SkipMissing OnMissing = "skip"
	// FailMissing aborts selection with domain.ErrNoCandidateTag.
	FailMissing OnMissing = "error"
)

// ParsePolicy maps a config string to a Policy. Empty means PolicyThreshold.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyThreshold, "a", "A":
		return PolicyThreshold, nil
	case PolicyGreedy, "b", "B":
		return PolicyGreedy, nil
	default:
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownPolicy)
	}
}

// ParseOnMissing maps a config string to an OnMissing. Empty means SkipMissing.
func ParseOnMissing(s string) (OnMissing, error) {
	switch OnMissing(s) {
	case "", SkipMissing:
		return SkipMissing, nil
	case FailMissing:
		return FailMissing, nil
	default:
		return "", fmt.Errorf("unknown on_missing value %q", s)
	}
}

type options struct {
	onMissing OnMissing
	logger    *slog.Logger
}

// Option configures a selector.
type Option func(*options)

// WithOnMissing sets the no-candidate behaviour of the threshold policy.
func WithOnMissing(m OnMissing) Option {
	return func(o *options) { o.onMissing = m }
}

// WithLogger routes per-file debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds the selector for policy with the given threshold.
func New(policy Policy, threshold float64, opts ...Option) (domain.LabelSelector, error) {
	o := options{
		onMissing: SkipMissing,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	switch policy {
	case PolicyThreshold, "":
		return NewThreshold(threshold, o.onMissing, o.logger), nil
	case PolicyGreedy:
		return NewGreedy(threshold, o.logger), nil
	default:
		return nil, fmt.Errorf("%q: %w", policy, domain.ErrUnknownPolicy)
	}
}

var (
	_ domain.LabelSelector = (*Threshold)(nil)
	_ domain.LabelSelector = (*Greedy)(nil)
	_ domain.Representer   = (*Greedy)(nil)
)

// rankRows applies rank to every row of loadings after checking it against vocab.
func rankRows(loadings mat.Matrix, vocab domain.Vocabulary, rank func([]float64) []int) ([][]int, error) {
	k, cols := loadings.Dims()
	if cols != vocab.Len() {
		return nil, fmt.Errorf("loadings have %d columns, vocabulary has %d tags: %w", cols, vocab.Len(), domain.ErrShapeMismatch)
	}
	ranked := make([][]int, k)
	for i := 0; i < k; i++ {
		ranked[i] = rank(mat.Row(nil, i, loadings))
	}
	return ranked, nil
}

func checkRow(row []float64, k int) error {
	if len(row) != k {
		return fmt.Errorf("reduced row has %d values, expected %d components: %w", len(row), k, domain.ErrShapeMismatch)
	}
	return nil
}
