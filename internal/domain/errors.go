package domain

import "fmt"

// FailureKind classifies pipeline-stage failures for the status API.
type FailureKind string

const (
	ErrKindExtraction FailureKind = "EXTRACTION_FAILED"
	ErrKindScoring    FailureKind = "SCORING_FAILED"
	ErrKindLLM        FailureKind = "LLM_FAILED"
	ErrKindRender     FailureKind = "RENDER_FAILED"
	ErrKindTimeout    FailureKind = "TIMEOUT"
)

// StageError wraps a stage failure with its kind. The message it renders is
// what the polling client eventually sees.
type StageError struct {
	Kind FailureKind
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError builds a StageError from a kind and cause.
func NewStageError(kind FailureKind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}
