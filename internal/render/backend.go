package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termreader/internal/term"
)

// Backend draws a term.Screen viewport onto the host terminal with
// tcell and exposes the host event queue.
type Backend struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewBackend creates a new tcell display backend.
func NewBackend() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// Init initializes the host terminal.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.Init()
}

// Shutdown restores the host terminal.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Fini()
}

// Size returns the host terminal dimensions.
func (b *Backend) Size() (cols, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.Size()
}

// Draw paints the screen viewport plus a status line at the bottom of
// the host terminal, then flushes.
func (b *Backend) Draw(s *term.Screen, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.screen.Clear()

	cols, hostRows := b.screen.Size()
	rows := s.Rows()
	off := s.ViewportOffset()

	for y := 0; y < rows && y < hostRows-1; y++ {
		text := []rune(s.RowText(off + y))
		for x := 0; x < len(text) && x < cols; x++ {
			b.screen.SetContent(x, y, text[x], nil, tcell.StyleDefault)
		}
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	statusRow := hostRows - 1
	line := []rune(status)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		b.screen.SetContent(x, statusRow, r, nil, statusStyle)
	}

	b.screen.ShowCursor(s.CursorCol(), s.CursorRow())
	b.screen.Show()
}

// PollEvent blocks for the next host terminal event.
func (b *Backend) PollEvent() tcell.Event {
	return b.screen.PollEvent()
}

// Interrupt wakes a pending PollEvent.
func (b *Backend) Interrupt() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = b.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Beep sounds the host terminal bell.
func (b *Backend) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = b.screen.Beep() // best-effort; terminal may not support beep
}
