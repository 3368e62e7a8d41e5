package a11y

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// Terminal is the surface the engine consumes from the hosting
// terminal. *term.Screen implements it.
type Terminal interface {
	Rows() int
	CursorRow() int
	RowText(abs int) string
	ViewportOffset() int
	CanScrollBack() bool
	ScrollLines(delta int) bool

	OnResize(fn func(cols, rows int)) func()
	OnRefresh(fn func(start, end int)) func()
	OnScroll(fn func()) func()
	OnChar(fn func(ch rune)) func()
	OnLineFeed(fn func()) func()
	OnTab(fn func(columns int)) func()
	OnKey(fn func(ch rune)) func()
	OnBlur(fn func()) func()
}

// Renderer is the surface the engine consumes from the renderer.
// *render.Metrics implements it.
type Renderer interface {
	CellSize() (width, height int)
	OnChange(fn func()) func()
}

// Options configures a Manager.
type Options struct {
	Terminal  Terminal
	Renderer  Renderer
	Scheduler Scheduler

	// ReattachWorkaround enables the live-region detach/reattach cycle
	// for platforms whose assistive technology only announces content
	// that appears as new. Decided once by the host at startup.
	ReattachWorkaround bool

	// Rewrite, when non-nil, transforms whole-string announcements
	// before they reach the live region. It never sees the incremental
	// character stream.
	Rewrite func(text string) string
}

// managerSeq numbers Manager instances so focus-marker IDs stay unique
// per terminal yet deterministic within a process.
var managerSeq atomic.Uint64

// Manager owns the accessible tree for one terminal and keeps it in
// sync with terminal output, renderer metrics, and user navigation.
//
// All methods except Stats must be called on the scheduler goroutine.
// Dispose may run on another goroutine, but only once the scheduler has
// stopped executing engine work: hosts stop the loop first, then
// dispose. Event subscriptions taken out on the terminal and renderer
// post their work onto the scheduler, so handlers never touch engine
// state from a foreign goroutine.
type Manager struct {
	term    Terminal
	rend    Renderer
	sched   Scheduler
	rewrite func(string) string

	tree    *Tree
	input   *Node // textbox the terminal's keystrokes land in
	rowHost *Node // container holding one node per viewport row
	live    *Node
	marker  *Node // transient focus marker moved between rows

	mirror    *RowMirror
	debouncer *RenderDebouncer
	announcer *LiveAnnouncer
	nav       *NavigationMode

	stats   *counters
	unsubs  []func()
	dispose atomic.Bool

	// Refresh notifications are folded into a pending union before they
	// reach the scheduler. refreshQueued caps the queue at one delivery
	// task no matter how fast the terminal emits.
	refreshMu      sync.Mutex
	refreshPending bool
	refreshQueued  bool
	refreshStart   int
	refreshEnd     int
}

// NewManager builds the accessible tree for the given terminal and
// wires every event source. The terminal's current content is mirrored
// immediately.
func NewManager(opts Options) (*Manager, error) {
	if opts.Terminal == nil {
		return nil, ErrNilTerminal
	}
	if opts.Renderer == nil {
		return nil, ErrNilRenderer
	}
	if opts.Scheduler == nil {
		return nil, ErrNilScheduler
	}

	seq := managerSeq.Add(1)

	m := &Manager{
		term:    opts.Terminal,
		rend:    opts.Renderer,
		sched:   opts.Scheduler,
		rewrite: opts.Rewrite,
		tree:    NewTree(),
		stats:   &counters{},
	}

	m.input = m.tree.NewNode(fmt.Sprintf("acc-input-%d", seq), RoleTextBox)
	m.input.SetFocusable(true)
	m.tree.Append(m.tree.Root(), m.input)

	m.rowHost = m.tree.NewNode(fmt.Sprintf("acc-rows-%d", seq), RoleNone)
	m.tree.Append(m.tree.Root(), m.rowHost)

	m.live = m.tree.NewLiveNode(fmt.Sprintf("acc-live-%d", seq), LiveAssertive)
	m.tree.Append(m.tree.Root(), m.live)

	m.marker = m.tree.NewNode(fmt.Sprintf("acc-focus-marker-%d", seq), RoleNone)

	m.mirror = NewRowMirror(m.tree, m.rowHost, m.term, m.rend)
	m.debouncer = NewRenderDebouncer(m.sched, m.mirror.WriteRange, m.stats)
	m.announcer = NewLiveAnnouncer(m.tree, m.tree.Root(), m.live, m.sched, opts.ReattachWorkaround, m.stats)
	m.nav = NewNavigationMode(m, m.announcer.Announce)

	m.mirror.Resize(m.term.Rows())
	m.mirror.WriteRange(0, m.mirror.RowCount()-1)

	m.subscribe()
	m.tree.SetFocus(m.input)
	return m, nil
}

func (m *Manager) subscribe() {
	m.unsubs = append(m.unsubs,
		m.term.OnResize(func(cols, rows int) {
			m.post(func() { m.handleResize(rows) })
		}),
		m.term.OnRefresh(m.queueRefresh),
		m.term.OnScroll(func() {
			m.queueRefresh(0, math.MaxInt)
		}),
		m.term.OnChar(func(ch rune) {
			m.post(func() { m.announcer.OnChar(ch) })
		}),
		m.term.OnLineFeed(func() {
			m.post(func() { m.announcer.OnChar('\n') })
		}),
		m.term.OnTab(func(columns int) {
			m.post(func() { m.announcer.OnTab(columns) })
		}),
		m.term.OnKey(func(ch rune) {
			m.post(func() { m.announcer.OnKey(ch) })
		}),
		m.term.OnBlur(func() {
			m.post(func() { m.announcer.OnBlur() })
		}),
		m.rend.OnChange(func() {
			m.post(func() { m.mirror.RefreshDimensions() })
		}),
	)
}

// post hands engine work to the scheduler. It blocks the producer while
// the queue is full rather than dropping: a lost char or key event would
// desynchronize the keystroke echo queue, so terminal events may only be
// delayed. Delivery fails silently once the scheduler has stopped.
func (m *Manager) post(fn func()) {
	m.sched.PostWait(func() {
		if m.dispose.Load() {
			return
		}
		fn()
	})
}

// queueRefresh folds a refresh notification into the pending union and
// queues at most one delivery task. A notification arriving while the
// scheduler is saturated widens the union held here and rides the task
// already queued, so it can be delayed or merged but never lost.
func (m *Manager) queueRefresh(start, end int) {
	m.refreshMu.Lock()
	if m.refreshPending {
		if start < m.refreshStart {
			m.refreshStart = start
		}
		if end > m.refreshEnd {
			m.refreshEnd = end
		}
	} else {
		m.refreshPending = true
		m.refreshStart, m.refreshEnd = start, end
	}
	queued := m.refreshQueued
	m.refreshQueued = true
	m.refreshMu.Unlock()

	if queued {
		return
	}
	if !m.sched.PostWait(m.deliverRefresh) {
		// Scheduler stopped. Leave the union pending so a delivery
		// attempt after a later notification still carries this range.
		m.refreshMu.Lock()
		m.refreshQueued = false
		m.refreshMu.Unlock()
	}
}

func (m *Manager) deliverRefresh() {
	m.refreshMu.Lock()
	start, end := m.refreshStart, m.refreshEnd
	m.refreshPending = false
	m.refreshQueued = false
	m.refreshMu.Unlock()

	if m.dispose.Load() {
		return
	}
	m.debouncer.Refresh(start, end)
}

func (m *Manager) handleResize(rows int) {
	m.mirror.Resize(rows)
	m.mirror.WriteRange(0, m.mirror.RowCount()-1)
	m.mirror.RefreshDimensions()
	m.nav.HandleResize()
}

// Tree returns the accessible tree. Bridges register their announce and
// focus callbacks on it.
func (m *Manager) Tree() *Tree {
	return m.tree
}

// InputNode returns the textbox node holding default input focus.
func (m *Manager) InputNode() *Node {
	return m.input
}

// Announce speaks an arbitrary message through the live region,
// transformed by the configured rewriter.
func (m *Manager) Announce(text string) {
	if m.rewrite != nil {
		text = m.rewrite(text)
	}
	m.announcer.Announce(text)
}

// EnterNavigationMode engages row navigation, focusing the row under
// the terminal cursor.
func (m *Manager) EnterNavigationMode() {
	m.nav.Enter()
}

// IsNavigationModeActive reports whether row navigation is engaged.
func (m *Manager) IsNavigationModeActive() bool {
	return m.nav.Active()
}

// HandleKey routes a key to navigation mode. Returns true when the key
// was consumed and must not reach the terminal.
func (m *Manager) HandleKey(k Key) bool {
	return m.nav.HandleKey(k)
}

// Stats returns a snapshot of engine activity counters. Safe to call
// from any goroutine.
func (m *Manager) Stats() Stats {
	return m.stats.snapshot()
}

// Dispose tears the engine down: subscriptions are released, pending
// debounced work is cancelled, and the row nodes are removed from the
// tree. Safe to call more than once. The scheduler must no longer be
// executing engine tasks when Dispose runs.
func (m *Manager) Dispose() {
	if m.dispose.Swap(true) {
		return
	}

	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil

	m.nav.Dispose()
	m.debouncer.Dispose()
	m.announcer.Dispose()
	m.mirror.Resize(0)
	m.tree.Remove(m.live)
	m.tree.Remove(m.rowHost)
	m.tree.Remove(m.input)
}

// RowCount implements RowFocusView.
func (m *Manager) RowCount() int {
	return m.mirror.RowCount()
}

// CursorRow implements RowFocusView.
func (m *Manager) CursorRow() int {
	return m.term.CursorRow()
}

// FocusRow implements RowFocusView. The row's text is re-read from the
// terminal before focusing so navigation after a scroll speaks the
// line now occupying the row, not the label it held before.
func (m *Manager) FocusRow(index int) {
	row := m.mirror.Row(index)
	if row == nil {
		return
	}

	m.mirror.WriteRange(index, index)

	if m.marker.Parent() != row {
		m.tree.Remove(m.marker)
		m.tree.Append(row, m.marker)
	}

	m.rowHost.SetRole(RoleMenu)
	m.rowHost.SetFocusable(true)
	m.rowHost.SetActiveDescendant(row.ID())
	m.tree.SetFocus(m.rowHost)
}

// ClearFocusMarker implements RowFocusView, returning focus to the
// terminal's input textbox.
func (m *Manager) ClearFocusMarker() {
	m.tree.Remove(m.marker)
	m.rowHost.SetActiveDescendant("")
	m.rowHost.SetFocusable(false)
	m.rowHost.SetRole(RoleNone)
	m.tree.SetFocus(m.input)
}

// ScrollRequest implements RowFocusView. The mirrored rows are
// rewritten synchronously after a successful scroll so subsequent
// focus reads see the new viewport.
func (m *Manager) ScrollRequest(delta int) bool {
	if !m.term.ScrollLines(delta) {
		return false
	}
	m.mirror.WriteRange(0, m.mirror.RowCount()-1)
	return true
}
