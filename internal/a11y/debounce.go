package a11y

import "time"

// RefreshDelay is how long the debouncer coalesces refresh requests
// before flushing them as one row write.
const RefreshDelay = 10 * time.Millisecond

// Scheduler serializes the engine's work. All methods queue the
// function for execution on the scheduler's single goroutine.
type Scheduler interface {
	// Post queues fn to run as soon as possible.
	Post(fn func()) bool

	// PostWait queues fn like Post but blocks until queue space is
	// available. Reports false only when the scheduler has stopped.
	PostWait(fn func()) bool

	// PostDelayed queues fn to run after the given delay.
	PostDelayed(d time.Duration, fn func()) bool

	// NextTick queues fn to run after the currently executing batch,
	// for work that must not interleave with the mutation that
	// triggered it.
	NextTick(fn func()) bool
}

// RenderDebouncer coalesces row refresh requests. The first request
// after a flush arms a single deferred flush; requests arriving before
// it fires widen the pending range to the union without resetting the
// clock, so no request is ever dropped, only merged.
type RenderDebouncer struct {
	sched Scheduler
	flush func(start, end int)
	stats *counters

	pending    bool
	start, end int
	disposed   bool
}

// NewRenderDebouncer creates a debouncer that delivers merged ranges to
// flush on the given scheduler.
func NewRenderDebouncer(sched Scheduler, flush func(start, end int), stats *counters) *RenderDebouncer {
	return &RenderDebouncer{sched: sched, flush: flush, stats: stats}
}

// Refresh records a refresh request for rows start..end inclusive.
func (d *RenderDebouncer) Refresh(start, end int) {
	if d.disposed {
		return
	}
	if end < start {
		start, end = end, start
	}

	if d.pending {
		if start < d.start {
			d.start = start
		}
		if end > d.end {
			d.end = end
		}
		if d.stats != nil {
			d.stats.mergedRefreshes.Add(1)
		}
		return
	}

	d.pending = true
	d.start = start
	d.end = end
	d.sched.PostDelayed(RefreshDelay, d.flushNow)
}

// Pending reports whether a flush is armed.
func (d *RenderDebouncer) Pending() bool {
	return d.pending
}

// Dispose stops the debouncer. An already-armed flush becomes a no-op.
func (d *RenderDebouncer) Dispose() {
	d.disposed = true
	d.pending = false
}

func (d *RenderDebouncer) flushNow() {
	if d.disposed || !d.pending {
		return
	}
	start, end := d.start, d.end
	d.pending = false

	if d.stats != nil {
		d.stats.flushes.Add(1)
	}
	d.flush(start, end)
}
