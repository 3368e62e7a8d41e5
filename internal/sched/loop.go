package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the default task queue capacity.
const DefaultQueueSize = 256

// Loop executes tasks one at a time on a single goroutine.
type Loop struct {
	tasks chan func()

	running atomic.Bool
	stopped chan struct{}
	drained chan struct{}

	// timers tracks outstanding delayed tasks so Stop can wait for
	// already-fired timers to finish enqueuing.
	timers sync.WaitGroup

	// Stats
	executed atomic.Uint64
	dropped  atomic.Uint64
}

// LoopOption configures a Loop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	queueSize int
}

// WithQueueSize sets the task queue capacity.
func WithQueueSize(n int) LoopOption {
	return func(c *loopConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// NewLoop creates a new task loop. Call Start before posting tasks.
func NewLoop(opts ...LoopOption) *Loop {
	cfg := loopConfig{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Loop{
		tasks:   make(chan func(), cfg.queueSize),
		stopped: make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Start starts the loop goroutine.
func (l *Loop) Start() error {
	if l.running.Swap(true) {
		return ErrLoopAlreadyRunning
	}
	go l.run()
	return nil
}

// Stop stops the loop, draining queued tasks until the context is
// cancelled. Tasks posted after Stop are dropped.
func (l *Loop) Stop(ctx context.Context) error {
	if !l.running.Swap(false) {
		return ErrLoopNotRunning
	}
	close(l.stopped)

	select {
	case <-l.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues a task for execution. Returns false if the loop is not
// running or the queue is full.
func (l *Loop) Post(task func()) bool {
	if task == nil || !l.running.Load() {
		l.dropped.Add(1)
		return false
	}

	select {
	case l.tasks <- task:
		return true
	default:
		l.dropped.Add(1)
		return false
	}
}

// PostWait queues a task like Post but blocks while the queue is full,
// applying backpressure to the producer instead of dropping the task.
// Returns false only when the loop is not running.
func (l *Loop) PostWait(task func()) bool {
	if task == nil || !l.running.Load() {
		l.dropped.Add(1)
		return false
	}

	select {
	case l.tasks <- task:
		return true
	case <-l.stopped:
		l.dropped.Add(1)
		return false
	}
}

// PostDelayed queues a task for execution after the given delay.
// The task runs on the loop goroutine like any other.
func (l *Loop) PostDelayed(d time.Duration, task func()) bool {
	if task == nil || !l.running.Load() {
		l.dropped.Add(1)
		return false
	}

	l.timers.Add(1)
	time.AfterFunc(d, func() {
		defer l.timers.Done()
		l.Post(task)
	})
	return true
}

// NextTick queues a task to run after all currently queued tasks.
// On a serialized loop this is the same ordering as Post; the separate
// name documents intent at call sites that must defer past the current
// event handler.
func (l *Loop) NextTick(task func()) bool {
	return l.Post(task)
}

// Executed returns the number of tasks run so far.
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

// Dropped returns the number of tasks rejected or discarded.
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// IsRunning returns true if the loop accepts tasks.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

func (l *Loop) run() {
	defer close(l.drained)

	for {
		select {
		case task := <-l.tasks:
			task()
			l.executed.Add(1)
		case <-l.stopped:
			// Drain whatever is already queued, then exit.
			for {
				select {
				case task := <-l.tasks:
					task()
					l.executed.Add(1)
				default:
					return
				}
			}
		}
	}
}
