package a11y

// LiveLineCeiling is the maximum number of output lines announced per
// input interaction before the announcer gives up and tells the user to
// read rows manually.
const LiveLineCeiling = 20

// TooMuchOutput is appended to the live region exactly once when the
// line ceiling is crossed.
const TooMuchOutput = "\ntoo much output, navigate manually"

// nbsp replaces announced spaces so spoken and braille output preserve
// visible spacing.
const nbsp = ' '

// LiveAnnouncer accumulates terminal output into an assertive live
// region character by character. A FIFO of pending keystrokes suppresses
// output that merely echoes what the user just typed: the native input
// control already voices the echo, and announcing it again would
// double-speak every typed character.
type LiveAnnouncer struct {
	tree  *Tree
	host  *Node // parent the live node attaches to
	live  *Node
	sched Scheduler
	stats *counters

	// reattachWorkaround is set on platform families whose assistive
	// technology loses track of a live region unless it reappears as
	// new content. Decided once at construction.
	reattachWorkaround bool

	pending      []rune
	lineCount    int
	attachQueued bool
	disposed     bool
}

// NewLiveAnnouncer creates an announcer owning the given live node,
// which must already be attached under host.
func NewLiveAnnouncer(tree *Tree, host, live *Node, sched Scheduler, reattachWorkaround bool, stats *counters) *LiveAnnouncer {
	return &LiveAnnouncer{
		tree:               tree,
		host:               host,
		live:               live,
		sched:              sched,
		stats:              stats,
		reattachWorkaround: reattachWorkaround,
	}
}

// OnKey records a raw key press. A new input interaction always starts
// a fresh announcement, so the live buffer clears before the key is
// queued for echo suppression.
func (a *LiveAnnouncer) OnKey(ch rune) {
	if a.disposed {
		return
	}
	a.clearLive()
	a.pending = append(a.pending, ch)
}

// OnChar processes one character of terminal output.
func (a *LiveAnnouncer) OnChar(ch rune) {
	if a.disposed || a.lineCount > LiveLineCeiling {
		return
	}

	suppressed := false
	if len(a.pending) > 0 {
		k := a.pending[0]
		a.pending = a.pending[1:]
		suppressed = k == ch
	}

	if suppressed {
		if a.stats != nil {
			a.stats.suppressedEchoes.Add(1)
		}
	} else {
		out := ch
		if ch == ' ' {
			out = nbsp
		}
		a.live.AppendText(string(out))
		if a.stats != nil {
			a.stats.announcedChars.Add(1)
		}
	}

	if ch == '\n' {
		a.lineCount++
		if a.lineCount == LiveLineCeiling+1 {
			a.live.AppendText(TooMuchOutput)
		}
	}

	a.maybeScheduleReattach()
}

// OnTab expands a tab into the given number of spaces, each run through
// the OnChar path so echo suppression and space encoding apply.
func (a *LiveAnnouncer) OnTab(columns int) {
	for i := 0; i < columns; i++ {
		a.OnChar(' ')
	}
}

// OnBlur clears the live buffer when the terminal loses focus. Queued
// keystrokes stay pending; their echo may still arrive.
func (a *LiveAnnouncer) OnBlur() {
	if a.disposed {
		return
	}
	a.clearLive()
}

// Announce replaces the live buffer with an arbitrary string.
func (a *LiveAnnouncer) Announce(text string) {
	if a.disposed {
		return
	}
	a.clearLive()
	a.live.SetText(text)
	a.maybeScheduleReattach()
}

// PendingKeystrokes returns the number of keystrokes awaiting an echo
// check.
func (a *LiveAnnouncer) PendingKeystrokes() int {
	return len(a.pending)
}

// LineCount returns the announced line count since the last clear.
func (a *LiveAnnouncer) LineCount() int {
	return a.lineCount
}

// Dispose stops the announcer. Scheduled reattachment work becomes a
// no-op.
func (a *LiveAnnouncer) Dispose() {
	a.disposed = true
}

// clearLive resets the buffer and line counter. On workaround platforms
// the live node is also detached so its next non-empty text can be
// re-presented as new content.
func (a *LiveAnnouncer) clearLive() {
	a.live.SetText("")
	a.lineCount = 0
	if a.reattachWorkaround && a.live.Attached() {
		a.tree.Remove(a.live)
	}
}

// maybeScheduleReattach re-attaches the detached live node on the next
// scheduler tick, after the mutation that produced its text has fully
// settled. Only fires when there is text to present.
func (a *LiveAnnouncer) maybeScheduleReattach() {
	if !a.reattachWorkaround || a.attachQueued {
		return
	}
	if a.live.Text() == "" || a.live.Attached() {
		return
	}

	a.attachQueued = true
	a.sched.NextTick(func() {
		a.attachQueued = false
		if a.disposed {
			return
		}
		if a.live.Text() != "" && !a.live.Attached() {
			a.tree.Append(a.host, a.live)
		}
	})
}
