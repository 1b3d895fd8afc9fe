package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background task processing.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewRunner creates a new Runner.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
	}
}

// Submit adds a new task to the queue. It never blocks: when the queue is
// full the task is dropped with an error so request handling stays fast.
// The lock is held across the send so a racing Stop cannot close the
// channel between the closed check and the send.
func (r *Runner) Submit(task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("task runner is stopped")
	}

	select {
	case r.taskChan <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

// Start initializes the worker pool and begins processing tasks.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("task runner already started")
	}
	r.started = true

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.logger.Info("task runner started",
		slog.Int("workers", r.config.WorkerCount),
		slog.Int("queue_size", r.config.QueueSize))
	return nil
}

// Stop gracefully shuts down the runner: no new submissions are accepted,
// queued tasks are drained, and workers exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.taskChan)
	r.wg.Wait()
	r.cancelFunc()

	r.logger.Info("task runner stopped")
}

// worker consumes tasks from the queue until it is closed and drained.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	log := r.logger.With(slog.Int("worker", id))

	for task := range r.taskChan {
		log.Debug("executing task",
			slog.String("task_id", task.ID().String()),
			slog.String("task_type", task.Type()))

		if err := r.execute(task); err != nil {
			log.Error("task execution failed",
				slog.String("task_id", task.ID().String()),
				slog.String("task_type", task.Type()),
				slog.String("error", err.Error()))
		}
	}
}

// execute runs a single task, converting panics into errors so one bad task
// cannot kill a worker.
func (r *Runner) execute(task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()

	return task.Execute(r.ctx)
}
