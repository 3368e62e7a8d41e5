package a11y

import (
	"testing"
	"time"
)

// fakeScheduler runs posted work synchronously on demand and advances
// delayed work with a manual clock, keeping tests deterministic.
type fakeScheduler struct {
	tasks   []func()
	delayed []fakeDelayed
	stopped bool
}

type fakeDelayed struct {
	remaining time.Duration
	fn        func()
}

func (s *fakeScheduler) Post(fn func()) bool {
	if s.stopped {
		return false
	}
	s.tasks = append(s.tasks, fn)
	return true
}

func (s *fakeScheduler) PostWait(fn func()) bool {
	return s.Post(fn)
}

func (s *fakeScheduler) PostDelayed(d time.Duration, fn func()) bool {
	if s.stopped {
		return false
	}
	s.delayed = append(s.delayed, fakeDelayed{remaining: d, fn: fn})
	return true
}

func (s *fakeScheduler) NextTick(fn func()) bool {
	return s.Post(fn)
}

// run drains the immediate queue, including work queued while draining.
func (s *fakeScheduler) run() {
	for len(s.tasks) > 0 {
		fn := s.tasks[0]
		s.tasks = s.tasks[1:]
		fn()
	}
}

// advance moves the clock forward, firing delayed work that comes due,
// then drains the immediate queue.
func (s *fakeScheduler) advance(d time.Duration) {
	var remaining []fakeDelayed
	for _, dt := range s.delayed {
		dt.remaining -= d
		if dt.remaining <= 0 {
			s.tasks = append(s.tasks, dt.fn)
		} else {
			remaining = append(remaining, dt)
		}
	}
	s.delayed = remaining
	s.run()
}

func TestRenderDebouncerCoalescesIntoUnion(t *testing.T) {
	sched := &fakeScheduler{}
	var got [][2]int
	d := NewRenderDebouncer(sched, func(start, end int) {
		got = append(got, [2]int{start, end})
	}, nil)

	d.Refresh(3, 5)
	d.Refresh(0, 1)
	d.Refresh(4, 9)

	if len(got) != 0 {
		t.Fatalf("flushed before delay elapsed: %v", got)
	}
	if !d.Pending() {
		t.Fatal("Pending() = false, want true")
	}

	sched.advance(RefreshDelay)

	if len(got) != 1 {
		t.Fatalf("flush count = %d, want 1", len(got))
	}
	if got[0] != [2]int{0, 9} {
		t.Errorf("flushed range = %v, want [0 9]", got[0])
	}
	if d.Pending() {
		t.Error("Pending() = true after flush, want false")
	}
}

func TestRenderDebouncerMergeDoesNotResetClock(t *testing.T) {
	sched := &fakeScheduler{}
	var flushes int
	d := NewRenderDebouncer(sched, func(start, end int) { flushes++ }, nil)

	d.Refresh(0, 0)
	sched.advance(RefreshDelay / 2)
	d.Refresh(1, 1)
	sched.advance(RefreshDelay / 2)

	if flushes != 1 {
		t.Errorf("flushes = %d after original delay elapsed, want 1", flushes)
	}
}

func TestRenderDebouncerRefreshAfterFlushArmsAgain(t *testing.T) {
	sched := &fakeScheduler{}
	var got [][2]int
	d := NewRenderDebouncer(sched, func(start, end int) {
		got = append(got, [2]int{start, end})
	}, nil)

	d.Refresh(0, 2)
	sched.advance(RefreshDelay)
	d.Refresh(5, 7)
	sched.advance(RefreshDelay)

	want := [][2]int{{0, 2}, {5, 7}}
	if len(got) != len(want) {
		t.Fatalf("flushes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flush %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRenderDebouncerSwapsInvertedRange(t *testing.T) {
	sched := &fakeScheduler{}
	var got [2]int
	d := NewRenderDebouncer(sched, func(start, end int) {
		got = [2]int{start, end}
	}, nil)

	d.Refresh(8, 2)
	sched.advance(RefreshDelay)

	if got != [2]int{2, 8} {
		t.Errorf("flushed range = %v, want [2 8]", got)
	}
}

func TestRenderDebouncerDispose(t *testing.T) {
	sched := &fakeScheduler{}
	var flushes int
	d := NewRenderDebouncer(sched, func(start, end int) { flushes++ }, nil)

	d.Refresh(0, 3)
	d.Dispose()
	sched.advance(RefreshDelay)

	if flushes != 0 {
		t.Errorf("flushes = %d after dispose, want 0", flushes)
	}

	d.Refresh(0, 1)
	sched.advance(RefreshDelay)
	if flushes != 0 {
		t.Errorf("flushes = %d after refresh on disposed debouncer, want 0", flushes)
	}
}

func TestRenderDebouncerCountsStats(t *testing.T) {
	sched := &fakeScheduler{}
	stats := &counters{}
	d := NewRenderDebouncer(sched, func(start, end int) {}, stats)

	d.Refresh(0, 0)
	d.Refresh(1, 1)
	d.Refresh(2, 2)
	sched.advance(RefreshDelay)

	snap := stats.snapshot()
	if snap.Flushes != 1 {
		t.Errorf("Flushes = %d, want 1", snap.Flushes)
	}
	if snap.MergedRefreshes != 2 {
		t.Errorf("MergedRefreshes = %d, want 2", snap.MergedRefreshes)
	}
}
