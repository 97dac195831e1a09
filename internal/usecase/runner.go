package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"resume-enhancer/internal/adapter/repository"
	"resume-enhancer/internal/domain"

	"github.com/google/uuid"
)

// DefaultPipelineTimeout bounds the whole pipeline from extraction to
// rendering.
const DefaultPipelineTimeout = 15 * time.Second

// Runner launches the pipeline as a background unit of work per task and
// is the only writer of that task's registry entry.
type Runner struct {
	repo     *repository.TasksRepo
	pipeline *Pipeline
	timeout  time.Duration
}

func NewRunner(repo *repository.TasksRepo, p *Pipeline, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultPipelineTimeout
	}
	return &Runner{repo: repo, pipeline: p, timeout: timeout}
}

type pipelineOutcome struct {
	state *PipelineState
	err   error
}

// Launch starts the pipeline for the task in a new goroutine and returns
// immediately. The upload handler has already answered the client by the
// time anything here runs; failures surface only through the status API.
func (r *Runner) Launch(id uuid.UUID, data []byte) {
	go r.run(id, data)
}

func (r *Runner) run(id uuid.UUID, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	done := make(chan pipelineOutcome, 1)
	go func() {
		state, err := r.pipeline.Run(ctx, data, func(s domain.TaskStatus) {
			if err := r.repo.SetStatus(id, s); err != nil {
				log.Printf("runner: task %s: dropped status update to %s: %v", id, s, err)
			}
		})
		done <- pipelineOutcome{state: state, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			r.fail(id, out.err)
			return
		}
		if err := r.repo.Complete(id, out.state.Result()); err != nil {
			log.Printf("runner: task %s: dropped completion: %v", id, err)
			return
		}
		log.Printf("runner: task %s completed", id)
	case <-ctx.Done():
		// The in-flight stage keeps running until it notices the cancelled
		// context; its eventual write is rejected by the terminal check in
		// the registry.
		if err := r.repo.Fail(id, string(domain.ErrKindTimeout)+": processing timed out; the resume could not be enhanced in time"); err != nil {
			log.Printf("runner: task %s: dropped timeout: %v", id, err)
			return
		}
		log.Printf("runner: task %s timed out after %s", id, r.timeout)
	}
}

func (r *Runner) fail(id uuid.UUID, cause error) {
	msg := cause.Error()
	// A stage that noticed the cancelled context reports the same event as
	// the timeout branch; keep the message timeout-shaped either way.
	if errors.Is(cause, context.DeadlineExceeded) {
		msg = string(domain.ErrKindTimeout) + ": processing timed out; the resume could not be enhanced in time"
	}
	if err := r.repo.Fail(id, msg); err != nil {
		log.Printf("runner: task %s: dropped failure %q: %v", id, msg, err)
		return
	}
	log.Printf("runner: task %s failed: %s", id, msg)
}
