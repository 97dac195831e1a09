package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"resume-enhancer/internal/domain"
)

// MinResumeLength is the minimum number of extracted characters required
// before the LLM stages are worth running.
const MinResumeLength = 50

type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type Scorer interface {
	Score(ctx context.Context, text string) (int, error)
}

type Enhancer interface {
	Suggest(ctx context.Context, text string) (string, error)
	Rewrite(ctx context.Context, text, suggestions string) (string, error)
}

type Renderer interface {
	RenderText(ctx context.Context, text string) (string, error)
}

// PipelineState is the working record threaded through the stages. Each
// field is written by exactly one stage and only after that stage
// succeeded; no stage touches a field an earlier stage produced.
type PipelineState struct {
	OriginalText  string
	OriginalScore int
	Suggestions   string
	EnhancedText  string
	EnhancedScore int
	RenderedPath  string
}

// Pipeline strings the leaf stages into the fixed enhancement sequence:
// extract, score, suggest, rewrite, score, render.
type Pipeline struct {
	extractor TextExtractor
	scorer    Scorer
	enhancer  Enhancer
	renderer  Renderer
}

func NewPipeline(e TextExtractor, s Scorer, ai Enhancer, r Renderer) *Pipeline {
	return &Pipeline{extractor: e, scorer: s, enhancer: ai, renderer: r}
}

// Run executes the stages in order against the uploaded bytes. onStatus is
// called at the observable boundaries (before extraction and before the
// first LLM call); a nil callback is allowed. A stage failure halts the
// sequence and is returned as a *domain.StageError.
func (p *Pipeline) Run(ctx context.Context, data []byte, onStatus func(domain.TaskStatus)) (*PipelineState, error) {
	notify := func(s domain.TaskStatus) {
		if onStatus != nil {
			onStatus(s)
		}
	}

	state := &PipelineState{}

	notify(domain.StatusParsingResume)
	text, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindExtraction, fmt.Errorf("could not read PDF: %w", err))
	}
	if len(text) < MinResumeLength {
		return nil, domain.NewStageError(domain.ErrKindExtraction,
			fmt.Errorf("extracted text too short (%d chars, need %d); the PDF may be image-only or empty", len(text), MinResumeLength))
	}
	state.OriginalText = text

	score, err := p.scorer.Score(ctx, state.OriginalText)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindScoring, err)
	}
	state.OriginalScore = score
	log.Printf("pipeline: original ATS score %d", score)

	notify(domain.StatusCallingAI)
	suggestions, err := p.enhancer.Suggest(ctx, state.OriginalText)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindLLM, err)
	}
	state.Suggestions = suggestions

	enhanced, err := p.enhancer.Rewrite(ctx, state.OriginalText, state.Suggestions)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindLLM, err)
	}
	if enhanced == "" {
		return nil, domain.NewStageError(domain.ErrKindLLM, errors.New("model returned an empty rewrite"))
	}
	state.EnhancedText = enhanced

	score, err = p.scorer.Score(ctx, state.EnhancedText)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindScoring, err)
	}
	state.EnhancedScore = score
	log.Printf("pipeline: enhanced ATS score %d", score)

	path, err := p.renderer.RenderText(ctx, state.EnhancedText)
	if err != nil {
		return nil, domain.NewStageError(domain.ErrKindRender, err)
	}
	state.RenderedPath = path

	return state, nil
}

// Result converts a completed state into the task payload.
func (s *PipelineState) Result() *domain.EnhancementResult {
	return &domain.EnhancementResult{
		OriginalATSScore: s.OriginalScore,
		EnhancedATSScore: s.EnhancedScore,
		Suggestions:      s.Suggestions,
		EnhancedText:     s.EnhancedText,
		PDFPath:          s.RenderedPath,
	}
}
