package term

import (
	"strings"
	"sync"
)

// Default screen dimensions and scrollback depth.
const (
	DefaultCols       = 80
	DefaultRows       = 24
	DefaultScrollback = 1000

	tabStopWidth = 8
)

// line is a single row of the buffer.
type line struct {
	runes []rune
}

func newLine(cols int) *line {
	runes := make([]rune, cols)
	for i := range runes {
		runes[i] = ' '
	}
	return &line{runes: runes}
}

func (l *line) resize(cols int) {
	if cols == len(l.runes) {
		return
	}
	if cols < len(l.runes) {
		l.runes = l.runes[:cols]
		return
	}
	for len(l.runes) < cols {
		l.runes = append(l.runes, ' ')
	}
}

func (l *line) text() string {
	return strings.TrimRight(string(l.runes), " ")
}

// Screen is a terminal text grid with bounded scrollback.
//
// The buffer is one contiguous sequence of lines; the trailing Rows()
// entries form the active screen. The viewport offset selects the first
// displayed line and pins to the bottom until the user scrolls back.
type Screen struct {
	mu sync.RWMutex

	cols int
	rows int

	lines         []*line
	maxScrollback int

	// base is the absolute index of the active screen's first line,
	// always len(lines)-rows.
	base int

	// viewOff is the absolute index of the first displayed line,
	// in [0, base].
	viewOff int

	// Cursor position within the active screen.
	curX int
	curY int

	events screenEvents
}

// ScreenOptions configures a new Screen.
type ScreenOptions struct {
	// Cols is the number of columns (default 80).
	Cols int

	// Rows is the number of rows (default 24).
	Rows int

	// Scrollback is the maximum number of history lines kept above the
	// active screen (default 1000).
	Scrollback int
}

// NewScreen creates a screen buffer with the given options.
func NewScreen(opts ScreenOptions) *Screen {
	if opts.Cols < 1 {
		opts.Cols = DefaultCols
	}
	if opts.Rows < 1 {
		opts.Rows = DefaultRows
	}
	if opts.Scrollback < 0 {
		opts.Scrollback = DefaultScrollback
	}

	s := &Screen{
		cols:          opts.Cols,
		rows:          opts.Rows,
		maxScrollback: opts.Scrollback,
		lines:         make([]*line, opts.Rows),
	}
	for i := range s.lines {
		s.lines[i] = newLine(opts.Cols)
	}
	return s
}

// Cols returns the column count.
func (s *Screen) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cols
}

// Rows returns the row count of the active screen.
func (s *Screen) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// BufferLength returns the total number of buffer lines, scrollback
// included.
func (s *Screen) BufferLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// ViewportOffset returns the absolute buffer index of the first
// displayed row.
func (s *Screen) ViewportOffset() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewOff
}

// CanScrollBack reports whether any history exists above the viewport.
func (s *Screen) CanScrollBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewOff > 0
}

// CursorRow returns the cursor's viewport-relative row, clamped to the
// displayed range when the viewport has scrolled away from the cursor.
func (s *Screen) CursorRow() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.base + s.curY - s.viewOff
	if row < 0 {
		row = 0
	}
	if row >= s.rows {
		row = s.rows - 1
	}
	return row
}

// CursorCol returns the cursor's column.
func (s *Screen) CursorCol() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curX
}

// RowText returns the text of the buffer line at the given absolute
// index, trailing blanks trimmed. Out-of-range indices yield "".
func (s *Screen) RowText(abs int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if abs < 0 || abs >= len(s.lines) {
		return ""
	}
	return s.lines[abs].text()
}

// Feed writes decoded output text into the grid. Printable runes write
// at the cursor and advance it; '\n', '\r', and '\t' receive their
// terminal meaning. Content events fire in input order after the grid
// has been updated.
func (s *Screen) Feed(text string) {
	s.mu.Lock()

	var fires []func()
	dirtyStart, dirtyEnd := -1, -1
	scrolled := false

	markDirty := func(viewRow int) {
		if viewRow < 0 || viewRow >= s.rows {
			return
		}
		if dirtyStart == -1 || viewRow < dirtyStart {
			dirtyStart = viewRow
		}
		if viewRow > dirtyEnd {
			dirtyEnd = viewRow
		}
	}

	for _, r := range text {
		switch r {
		case '\n':
			if s.lineFeedLocked() {
				scrolled = true
				dirtyStart, dirtyEnd = 0, s.rows-1
			}
			fires = append(fires, func() { s.events.lineFeed.fire(struct{}{}) })
		case '\r':
			s.curX = 0
		case '\t':
			n := s.tabLocked()
			if n > 0 {
				markDirty(s.base + s.curY - s.viewOff)
				fires = append(fires, func() { s.events.tab.fire(n) })
			}
		default:
			if r < ' ' {
				continue // unhandled control characters are dropped
			}
			if s.curX >= s.cols {
				// Wrap is silent: it is not a line feed the user produced.
				s.curX = 0
				if s.lineFeedLocked() {
					scrolled = true
					dirtyStart, dirtyEnd = 0, s.rows-1
				}
			}
			s.lines[s.base+s.curY].runes[s.curX] = r
			s.curX++
			markDirty(s.base + s.curY - s.viewOff)
			r := r
			fires = append(fires, func() { s.events.char.fire(r) })
		}
	}

	s.mu.Unlock()

	for _, fire := range fires {
		fire()
	}
	if scrolled {
		s.events.scroll.fire(struct{}{})
	}
	if dirtyStart != -1 {
		s.events.refresh.fire(refreshEvent{start: dirtyStart, end: dirtyEnd})
	}
}

// lineFeedLocked moves the cursor down one line, growing the buffer at
// the bottom edge. Returns true if the buffer shifted.
func (s *Screen) lineFeedLocked() bool {
	if s.curY < s.rows-1 {
		s.curY++
		return false
	}

	pinned := s.viewOff == s.base

	s.lines = append(s.lines, newLine(s.cols))
	s.base++

	// Trim scrollback overflow from the front.
	if excess := len(s.lines) - (s.maxScrollback + s.rows); excess > 0 {
		s.lines = s.lines[excess:]
		s.base -= excess
		s.viewOff -= excess
		if s.viewOff < 0 {
			s.viewOff = 0
		}
	}

	if pinned {
		s.viewOff = s.base
	}
	return true
}

// tabLocked advances the cursor to the next tab stop, filling with
// spaces. Returns the number of columns covered.
func (s *Screen) tabLocked() int {
	if s.curX >= s.cols-1 {
		return 0
	}
	stop := (s.curX/tabStopWidth + 1) * tabStopWidth
	if stop > s.cols-1 {
		stop = s.cols - 1
	}
	n := stop - s.curX
	row := s.lines[s.base+s.curY]
	for i := 0; i < n; i++ {
		row.runes[s.curX+i] = ' '
	}
	s.curX = stop
	return n
}

// Resize changes the screen dimensions. Existing content is preserved
// where it fits; the viewport re-pins to the bottom.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}

	s.mu.Lock()

	for _, l := range s.lines {
		l.resize(cols)
	}
	for len(s.lines) < rows {
		s.lines = append(s.lines, newLine(cols))
	}

	s.cols = cols
	s.rows = rows
	s.base = len(s.lines) - rows
	s.viewOff = s.base

	if s.curX >= cols {
		s.curX = cols - 1
	}
	if s.curY >= rows {
		s.curY = rows - 1
	}

	s.mu.Unlock()

	s.events.resize.fire(resizeEvent{cols: cols, rows: rows})
	s.events.refresh.fire(refreshEvent{start: 0, end: rows - 1})
}

// ScrollLines moves the viewport by delta lines; negative values scroll
// back into history. Returns true if the viewport moved.
func (s *Screen) ScrollLines(delta int) bool {
	s.mu.Lock()

	off := s.viewOff + delta
	if off < 0 {
		off = 0
	}
	if off > s.base {
		off = s.base
	}
	moved := off != s.viewOff
	s.viewOff = off

	s.mu.Unlock()

	if moved {
		s.events.scroll.fire(struct{}{})
	}
	return moved
}

// ScrollToBottom re-pins the viewport to the active screen.
func (s *Screen) ScrollToBottom() {
	s.ScrollLines(1 << 30)
}

// KeyPress reports a raw key the user pressed. The screen grid is not
// touched; the press is published so the accessibility layer can
// suppress its echo.
func (s *Screen) KeyPress(r rune) {
	s.events.key.fire(r)
}

// Blur reports that the terminal lost input focus.
func (s *Screen) Blur() {
	s.events.blur.fire(struct{}{})
}
