package ats

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Scorer approximates how an applicant tracking system might rank resume
// text. The heuristic rewards length with a small jitter so repeated runs
// of the same resume look like a live service rather than a lookup table.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewScorer builds a scorer with a time-seeded jitter source.
func NewScorer() *Scorer {
	return NewScorerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewScorerWithSource injects the jitter source, which keeps tests
// deterministic.
func NewScorerWithSource(src rand.Source) *Scorer {
	return &Scorer{rng: rand.New(src)}
}

// Score maps text to a 0-100 ATS score: one point per 25 characters capped
// at 100, plus a ±5 jitter, clamped back into range.
func (s *Scorer) Score(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	score := len(text) / 25
	if score > 100 {
		score = 100
	}

	s.mu.Lock()
	score += s.rng.Intn(11) - 5
	s.mu.Unlock()

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
