package labeler

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
)

// Threshold picks, for every component whose reduced value is >= threshold,
// the highest-loading tag that the file carries and has not already received.
// Loadings are ranked by signed value, not magnitude.
type Threshold struct {
	threshold float64
	onMissing OnMissing
	logger    *slog.Logger
	vocab     domain.Vocabulary
	ranked    [][]int
}

func NewThreshold(threshold float64, onMissing OnMissing, logger *slog.Logger) *Threshold {
	if onMissing == "" {
		onMissing = SkipMissing
	}
	return &Threshold{threshold: threshold, onMissing: onMissing, logger: logger}
}

func (s *Threshold) Name() string { return string(PolicyThreshold) }

func (s *Threshold) Prepare(loadings mat.Matrix, vocab domain.Vocabulary) error {
	ranked, err := rankRows(loadings, vocab, RankDescending)
	if err != nil {
		return err
	}
	s.vocab = vocab
	s.ranked = ranked
	return nil
}

// RankedTags returns the vocabulary of component i ordered by descending loading.
func (s *Threshold) RankedTags(i int) []string {
	out := make([]string, len(s.ranked[i]))
	for j, c := range s.ranked[i] {
		out[j] = s.vocab.Tag(c)
	}
	return out
}

func (s *Threshold) Select(row []float64, actual domain.TagSet) ([]string, error) {
	if s.ranked == nil {
		return nil, domain.ErrNotPrepared
	}
	if err := checkRow(row, len(s.ranked)); err != nil {
		return nil, err
	}
	picked := make(map[string]struct{})
	labels := make([]string, 0, len(row))
	for idx, value := range row {
		if !(value >= s.threshold) {
			continue
		}
		tag, ok := s.firstCandidate(idx, actual, picked)
		if !ok {
			if s.onMissing == FailMissing {
				return nil, fmt.Errorf("component %d (value %.4f): %w", idx, value, domain.ErrNoCandidateTag)
			}
			s.logger.Debug("no candidate tag, component skipped", "component", idx, "value", value)
			continue
		}
		picked[tag] = struct{}{}
		labels = append(labels, tag)
	}
	return labels, nil
}

func (s *Threshold) firstCandidate(idx int, actual domain.TagSet, picked map[string]struct{}) (string, bool) {
	for _, c := range s.ranked[idx] {
		tag := s.vocab.Tag(c)
		if !actual.Contains(tag) {
			continue
		}
		if _, done := picked[tag]; done {
			continue
		}
		return tag, true
	}
	return "", false
}
