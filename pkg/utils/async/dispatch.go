package async

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

// Task is a handle of a unit of work started by Runner.Go
type Task struct {
	ID   string
	Name string

	done chan struct{}
	err  error
}

// Done is closed when the task has returned or panicked
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task result. It must be called after Done is closed.
func (t *Task) Err() error {
	return t.err
}

// Runner owns detached tasks that outlive the request which started them.
// The process lifecycle decides, through Wait, whether to await or abandon them.
type Runner struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	tasks  map[string]*Task
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRunner creates a Runner. Cancelling the returned Runner (via Wait timeout)
// cancels the context passed to every running task.
func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		tasks:  make(map[string]*Task),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Go executes handler asynchronously in a new goroutine. The handler receives a
// context detached from ctx (so request cancellation does not stop it) that keeps
// the logger of ctx. Errors and panics are logged and stored in the task.
func (r *Runner) Go(ctx context.Context, name string, handler func(ctx context.Context) error) *Task {
	task := &Task{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Name: name,
		done: make(chan struct{}),
	}

	logger := logging.From(ctx).With("task_id", task.ID, "task", name)
	bgCtx := logging.With(r.ctx, logger)

	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			delete(r.tasks, task.ID)
			r.mu.Unlock()
			close(task.done)
		}()
		defer func() {
			if rec := recover(); rec != nil {
				task.err = goerr.New("panic in async handler", goerr.V("panic", rec))
				logger.Error("panic in async handler", "panic", rec)
			}
		}()

		if err := handler(bgCtx); err != nil {
			task.err = err
			logger.Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()

	return task
}

// Running returns the number of tasks that have not returned yet
func (r *Runner) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Wait blocks until every task returns or ctx is done. On ctx expiry the
// remaining tasks are abandoned: their context is cancelled and their names are
// logged, and Wait returns ctx.Err() without waiting for them.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.mu.Lock()
		for _, task := range r.tasks {
			logging.Default().Warn("abandoning detached task", "task_id", task.ID, "task", task.Name)
		}
		r.mu.Unlock()
		r.cancel()
		return goerr.Wrap(ctx.Err(), "detached tasks did not finish in time", goerr.V("running", r.Running()))
	}
}

// WaitTimeout is a shorthand of Wait with a timeout context
func (r *Runner) WaitTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Wait(ctx)
}
