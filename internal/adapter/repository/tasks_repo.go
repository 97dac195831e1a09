package repository

import (
	"errors"
	"sync"
	"time"

	"resume-enhancer/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a task id has no registry entry.
	ErrNotFound = errors.New("task not found")
	// ErrTerminal is returned on any write to a task that already reached
	// a terminal status.
	ErrTerminal = errors.New("task is terminal")
)

// TasksRepo is the process-wide task registry. It lives only in memory:
// the service makes no durability promise and every task is lost on
// restart. Entries are never evicted.
type TasksRepo struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{tasks: map[uuid.UUID]*domain.Task{}}
}

// Create allocates a fresh task in the initial processing status and
// returns a copy of it.
func (r *TasksRepo) Create() domain.Task {
	now := time.Now()
	t := &domain.Task{
		ID:        uuid.New(),
		Status:    domain.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	return *t
}

// Count returns the number of registered tasks.
func (r *TasksRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// Get returns a copy of the task so callers never alias registry state.
func (r *TasksRepo) Get(id uuid.UUID) (domain.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return *t, true
}

// SetStatus advances a task to a non-terminal status. Writes to terminal
// tasks are refused, which makes a late pipeline write after a timeout a
// harmless no-op.
func (r *TasksRepo) SetStatus(id uuid.UUID, status domain.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status.Terminal() {
		return ErrTerminal
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// Complete records the success payload and moves the task to completed.
func (r *TasksRepo) Complete(id uuid.UUID, res *domain.EnhancementResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status.Terminal() {
		return ErrTerminal
	}
	t.Status = domain.StatusCompleted
	t.Result = res
	t.UpdatedAt = time.Now()
	return nil
}

// Fail records a human-readable failure message and moves the task to error.
func (r *TasksRepo) Fail(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status.Terminal() {
		return ErrTerminal
	}
	t.Status = domain.StatusError
	t.Error = msg
	t.UpdatedAt = time.Now()
	return nil
}
