package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
	"filewords/internal/tagmatrix"
	"filewords/internal/tags"
)

// Stage names reported in domain.StageError.
const (
	StageExtract = "extract"
	StageMatrix  = "matrix"
	StageReduce  = "reduce"
	StageSelect  = "select"
)

// Options holds the pipeline parameters that are not components.
type Options struct {
	Components int
	Order      tagmatrix.Order
}

// Pipeline runs extraction, matrix building, reduction and label selection
// as one synchronous pass over an in-memory corpus.
type Pipeline struct {
	extractor *tags.Extractor
	reducer   domain.Reducer
	selector  domain.LabelSelector
	opts      Options
	logger    *slog.Logger
}

func NewPipeline(extractor *tags.Extractor, reducer domain.Reducer, selector domain.LabelSelector, opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{extractor: extractor, reducer: reducer, selector: selector, opts: opts, logger: logger}
}

// Run labels every document. A corpus without files or tags is not an error:
// every file gets an empty assignment and Result.Warning is ErrEmptyCorpus.
// Any other failure aborts the run and is returned as a *domain.StageError.
func (p *Pipeline) Run(ctx context.Context, docs []domain.Document) (*domain.Result, error) {
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)
	start := time.Now()

	files, err := fileOrder(docs)
	if err != nil {
		return nil, &domain.StageError{Stage: StageExtract, Err: err}
	}
	sets := p.extractor.ExtractAll(docs)
	log.Info("tags extracted", "files", len(files))
	if err := ctx.Err(); err != nil {
		return nil, &domain.StageError{Stage: StageExtract, Err: err}
	}

	m, err := tagmatrix.Build(files, sets, p.opts.Order)
	if err != nil {
		return nil, &domain.StageError{Stage: StageMatrix, Err: err}
	}
	rows, cols := m.Dims()
	log.Info("incidence matrix built", "files", rows, "tags", cols, "order", string(p.opts.Order))

	res := &domain.Result{
		RunID:      runID,
		Files:      files,
		TagSets:    sets,
		Vocabulary: m.Vocabulary,
	}
	if m.IsEmpty() {
		log.Warn("empty corpus, no components can be produced", "files", rows, "tags", cols)
		res.Empty = true
		res.Warning = domain.ErrEmptyCorpus
		res.Assignments = emptyAssignments(files)
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.StageError{Stage: StageMatrix, Err: err}
	}

	red, err := p.reducer.Fit(m.Incidence, p.opts.Components)
	if err != nil {
		return nil, &domain.StageError{Stage: StageReduce, Err: err}
	}
	res.Reduction = red
	log.Info("reduction fitted", "components", red.Components)
	log.Debug("explained variance", "ratio", red.ExplainedVarianceRatio)
	if err := ctx.Err(); err != nil {
		return nil, &domain.StageError{Stage: StageReduce, Err: err}
	}

	assignments, err := p.selectLabels(log, files, sets, m.Vocabulary, red)
	if err != nil {
		return nil, &domain.StageError{Stage: StageSelect, Err: err}
	}
	res.Assignments = assignments
	if rep, ok := p.selector.(domain.Representer); ok {
		res.Representatives = rep.Representatives()
	}
	log.Info("labels selected", "policy", p.selector.Name(), "elapsed", time.Since(start))
	return res, nil
}

func (p *Pipeline) selectLabels(log *slog.Logger, files []string, sets []domain.TagSet, vocab domain.Vocabulary, red *domain.Reduction) ([]domain.LabelAssignment, error) {
	if err := p.selector.Prepare(red.Loadings, vocab); err != nil {
		return nil, err
	}
	out := make([]domain.LabelAssignment, len(files))
	for r, file := range files {
		row := mat.Row(nil, r, red.Reduced)
		labels, err := p.selector.Select(row, sets[r])
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", file, err)
		}
		log.Debug("file labelled", "file", file, "labels", labels)
		out[r] = domain.LabelAssignment{File: file, Labels: labels}
	}
	return out, nil
}

func fileOrder(docs []domain.Document) ([]string, error) {
	files := make([]string, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if _, ok := seen[d.ID]; ok {
			return nil, fmt.Errorf("%q: %w", d.ID, domain.ErrDuplicateFile)
		}
		seen[d.ID] = struct{}{}
		files[i] = d.ID
	}
	return files, nil
}

func emptyAssignments(files []string) []domain.LabelAssignment {
	out := make([]domain.LabelAssignment, len(files))
	for i, f := range files {
		out[i] = domain.LabelAssignment{File: f, Labels: []string{}}
	}
	return out
}
