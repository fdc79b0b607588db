package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus indicates zero files or zero tags after extraction.
	ErrEmptyCorpus = errors.New("filewords: corpus has no files or no tags")
	// ErrInvalidComponentCount indicates k outside [1, min(files, tags)].
	ErrInvalidComponentCount = errors.New("filewords: invalid component count")
	// ErrNoCandidateTag indicates a component met the threshold but no unpicked tag of the file remains.
	ErrNoCandidateTag = errors.New("filewords: no candidate tag for component")
	// ErrShapeMismatch indicates inputs whose lengths or dimensions disagree.
	ErrShapeMismatch = errors.New("filewords: shape mismatch")
	// ErrFactorization indicates the singular value decomposition did not converge.
	ErrFactorization = errors.New("filewords: matrix factorization failed")
	// ErrUnknownPolicy indicates an unsupported label selection policy.
	ErrUnknownPolicy = errors.New("filewords: unknown selection policy")
	// ErrDuplicateFile indicates two corpus entries with the same file identifier.
	ErrDuplicateFile = errors.New("filewords: duplicate file in corpus")
	// ErrNotPrepared indicates Select was called before Prepare.
	ErrNotPrepared = errors.New("filewords: selector not prepared")
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
