// Package runloop provides the host-side task loop that consumes fired
// timer tasks. It implements timerlib.TaskQueue: the timer worker posts a
// task, and the loop's single consumer goroutine executes it, so all timer
// callbacks run serialized on one execution context.
package runloop

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/timerq/timerq/pkg/logger"
	"github.com/timerq/timerq/pkg/timerlib"
)

// Sentinel errors for the run loop.
var (
	// ErrAlreadyRunning is returned when Run is called on a running loop.
	ErrAlreadyRunning = errors.New("run loop is already running")

	// ErrNotRunning is returned when Post is called before Run or after
	// the loop has exited.
	ErrNotRunning = errors.New("run loop is not running")

	// ErrQueueFull is returned by Post when the task buffer is saturated.
	// The caller decides what to do with the rejected task; the loop
	// never retries on its behalf.
	ErrQueueFull = errors.New("run loop task queue is full")
)

// DefaultQueueSize is the task buffer capacity used when Config.QueueSize
// is zero.
const DefaultQueueSize = 256

// Config holds the configuration for a Loop.
type Config struct {
	// QueueSize is the task buffer capacity. Zero means DefaultQueueSize.
	QueueSize int

	// Logger receives lifecycle messages and recovered panics.
	// Nil means messages are discarded.
	Logger logger.Logger
}

// applyConfigDefaults returns a Config with defaults applied for zero fields.
func applyConfigDefaults(config *Config) *Config {
	cfg := &Config{}
	if config != nil {
		*cfg = *config
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}
	return cfg
}

// Loop is a single-consumer task loop. Create one with New, hand it to
// timerlib.WithQueue, and call Run to process tasks until the context is
// cancelled.
type Loop struct {
	log   logger.Logger
	tasks chan timerlib.Task

	mu      sync.Mutex
	running bool
}

// New creates a stopped Loop with the given configuration.
// If config is nil, default values are used.
func New(config *Config) *Loop {
	cfg := applyConfigDefaults(config)
	return &Loop{
		log:   cfg.Logger,
		tasks: make(chan timerlib.Task, cfg.QueueSize),
	}
}

// Post enqueues a task for the consumer goroutine. It never blocks:
// a saturated buffer rejects the task with ErrQueueFull, and a stopped
// loop rejects it with ErrNotRunning. Safe to call from any goroutine
// without holding any timerlib lock.
func (l *Loop) Post(task timerlib.Task) error {
	l.mu.Lock()
	running := l.running
	l.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	select {
	case l.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run consumes and executes tasks until ctx is cancelled, then drains any
// tasks already buffered and returns ctx.Err(). Returns ErrAlreadyRunning
// if the loop is already started. Tasks posted concurrently with shutdown
// may be dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = true
	l.mu.Unlock()
	l.log.Info("run loop started")

	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			l.running = false
			l.mu.Unlock()
			l.drain()
			l.log.Info("run loop stopped")
			return ctx.Err()
		case task := <-l.tasks:
			l.runTask(task)
		}
	}
}

// Running reports whether the loop is currently consuming tasks.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Pending reports the number of buffered tasks awaiting execution.
func (l *Loop) Pending() int {
	return len(l.tasks)
}

// drain executes whatever is already buffered without waiting for more.
func (l *Loop) drain() {
	for {
		select {
		case task := <-l.tasks:
			l.runTask(task)
		default:
			return
		}
	}
}

// runTask executes one task with panic recovery. A panicking task is
// logged with its stack trace; it never takes the loop down.
func (l *Loop) runTask(task timerlib.Task) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	task()
}

// Ensure Loop satisfies the TaskQueue interface.
var _ timerlib.TaskQueue = (*Loop)(nil)
