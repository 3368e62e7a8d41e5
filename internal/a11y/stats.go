package a11y

import "sync/atomic"

// counters accumulates engine activity. Atomic so Stats snapshots can
// be taken from outside the scheduler goroutine.
type counters struct {
	announcedChars   atomic.Uint64
	suppressedEchoes atomic.Uint64
	flushes          atomic.Uint64
	mergedRefreshes  atomic.Uint64
}

// Stats is a point-in-time snapshot of engine activity.
type Stats struct {
	// AnnouncedChars is the number of characters appended to the live
	// region.
	AnnouncedChars uint64

	// SuppressedEchoes is the number of output characters dropped as
	// keystroke echo.
	SuppressedEchoes uint64

	// Flushes is the number of debounced row writes applied.
	Flushes uint64

	// MergedRefreshes is the number of refresh requests absorbed into
	// an already-armed flush.
	MergedRefreshes uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		AnnouncedChars:   c.announcedChars.Load(),
		SuppressedEchoes: c.suppressedEchoes.Load(),
		Flushes:          c.flushes.Load(),
		MergedRefreshes:  c.mergedRefreshes.Load(),
	}
}
