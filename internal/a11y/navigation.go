package a11y

// Status messages spoken when navigation state changes.
const (
	msgNavigationOn  = "row navigation on, use arrow keys, escape to exit"
	msgNavigationOff = "row navigation off"
	msgTopOfHistory  = "top of history"
	msgEndOfScreen   = "end of screen"
)

// RowFocusView is the narrow surface NavigationMode drives. The Manager
// implements it against the accessible tree; tests substitute a fake.
type RowFocusView interface {
	// RowCount returns the number of mirrored rows.
	RowCount() int

	// CursorRow returns the viewport row under the terminal cursor.
	CursorRow() int

	// FocusRow moves the focus marker and active-descendant reference
	// to the given row and focuses the row container.
	FocusRow(index int)

	// ClearFocusMarker strips the marker and temporary container
	// attributes and returns input focus to the terminal's primary
	// input element.
	ClearFocusMarker()

	// ScrollRequest asks the terminal to move the viewport by delta
	// lines. Reports whether the viewport moved.
	ScrollRequest(delta int) bool
}

// NavigationMode is the two-state machine behind screen-reader row
// browsing. Inactive is the default; while Active, key events on the
// row container move a focus pointer instead of reaching the terminal.
type NavigationMode struct {
	view     RowFocusView
	announce func(string)

	active   bool
	focused  int
	disposed bool
}

// NewNavigationMode creates an inactive navigation state machine.
func NewNavigationMode(view RowFocusView, announce func(string)) *NavigationMode {
	return &NavigationMode{view: view, announce: announce}
}

// Active reports whether navigation mode is engaged.
func (n *NavigationMode) Active() bool {
	return n.active
}

// FocusedRow returns the focused row index; meaningful only while
// active.
func (n *NavigationMode) FocusedRow() int {
	return n.focused
}

// Enter activates navigation mode, placing focus on the row under the
// terminal cursor. Re-entering while active is a no-op.
func (n *NavigationMode) Enter() {
	if n.disposed || n.active || n.view.RowCount() == 0 {
		return
	}

	n.active = true
	n.announce(msgNavigationOn)
	n.focused = n.clamp(n.view.CursorRow())
	n.view.FocusRow(n.focused)
}

// HandleKey processes a key while navigation is active. Returns true
// when the key was consumed; inactive navigation consumes nothing.
func (n *NavigationMode) HandleKey(k Key) bool {
	if n.disposed || !n.active {
		return false
	}

	switch k {
	case KeyEscape:
		n.exit()
	case KeyArrowUp:
		n.moveUp()
	case KeyArrowDown:
		n.moveDown()
	default:
		// Swallowed so unrelated keys cannot leak into terminal input
		// while the user is browsing rows.
	}
	return true
}

// HandleResize re-clamps the focus pointer after the mirrored row range
// changed. No-op while inactive.
func (n *NavigationMode) HandleResize() {
	if n.disposed || !n.active {
		return
	}
	clamped := n.clamp(n.focused)
	if clamped != n.focused {
		n.focused = clamped
		n.view.FocusRow(n.focused)
	}
}

// Dispose permanently deactivates the state machine. Re-entering after
// disposal is not supported.
func (n *NavigationMode) Dispose() {
	if n.disposed {
		return
	}
	if n.active {
		n.active = false
		n.view.ClearFocusMarker()
	}
	n.disposed = true
}

func (n *NavigationMode) exit() {
	n.active = false
	n.announce(msgNavigationOff)
	n.view.ClearFocusMarker()
}

func (n *NavigationMode) moveUp() {
	if n.focused > 0 {
		n.focused--
		n.view.FocusRow(n.focused)
		return
	}

	// At the top row: pull one line of history into view and keep the
	// pointer pinned to row 0. FocusRow re-reads the row content after
	// the scroll so the announced text is the scrolled-in line, not the
	// stale label.
	if n.view.ScrollRequest(-1) {
		n.view.FocusRow(0)
		return
	}
	n.announce(msgTopOfHistory)
}

func (n *NavigationMode) moveDown() {
	if n.focused < n.view.RowCount()-1 {
		n.focused++
		n.view.FocusRow(n.focused)
		return
	}
	n.announce(msgEndOfScreen)
}

func (n *NavigationMode) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if max := n.view.RowCount() - 1; i > max {
		return max
	}
	return i
}
