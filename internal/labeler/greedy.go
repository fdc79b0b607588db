package labeler

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
)

// Greedy assigns each component one globally unique representative tag and
// labels a file with the representatives of every component whose reduced
// value has magnitude >= threshold. The file's own tags are not consulted.
type Greedy struct {
	threshold       float64
	logger          *slog.Logger
	representatives []string
	prepared        bool
}

func NewGreedy(threshold float64, logger *slog.Logger) *Greedy {
	return &Greedy{threshold: threshold, logger: logger}
}

func (s *Greedy) Name() string { return string(PolicyGreedy) }

// Prepare walks components in order, each claiming the tag with the largest
// |loading| that no earlier component claimed. A component finding every tag
// already claimed gets no representative.
func (s *Greedy) Prepare(loadings mat.Matrix, vocab domain.Vocabulary) error {
	ranked, err := rankRows(loadings, vocab, RankByMagnitude)
	if err != nil {
		return err
	}
	claimed := make(map[int]struct{}, len(ranked))
	reps := make([]string, len(ranked))
	for i, order := range ranked {
		for _, c := range order {
			if _, ok := claimed[c]; ok {
				continue
			}
			claimed[c] = struct{}{}
			reps[i] = vocab.Tag(c)
			break
		}
		if reps[i] == "" {
			s.logger.Debug("component has no representative", "component", i)
		}
	}
	s.representatives = reps
	s.prepared = true
	return nil
}

// Representatives returns one tag per component; "" marks a component without one.
func (s *Greedy) Representatives() []string {
	out := make([]string, len(s.representatives))
	copy(out, s.representatives)
	return out
}

func (s *Greedy) Select(row []float64, _ domain.TagSet) ([]string, error) {
	if !s.prepared {
		return nil, domain.ErrNotPrepared
	}
	if err := checkRow(row, len(s.representatives)); err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(row))
	for idx, value := range row {
		if !(math.Abs(value) >= s.threshold) || s.representatives[idx] == "" {
			continue
		}
		labels = append(labels, s.representatives[idx])
	}
	return labels, nil
}
