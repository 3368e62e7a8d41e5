package term

import "sync"

// resizeEvent carries new screen dimensions.
type resizeEvent struct {
	cols int
	rows int
}

// refreshEvent carries a viewport-relative row range that changed,
// inclusive on both ends.
type refreshEvent struct {
	start int
	end   int
}

// emitter is a subscription list for one event kind. Add returns an
// unsubscribe function; fired handlers run in registration order.
type emitter[T any] struct {
	mu       sync.Mutex
	handlers []func(T)
}

func (e *emitter[T]) add(fn func(T)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.handlers = append(e.handlers, fn)
	index := len(e.handlers) - 1

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		// Nil out rather than reslice so other indices stay valid.
		if index < len(e.handlers) {
			e.handlers[index] = nil
		}
	}
}

func (e *emitter[T]) fire(v T) {
	e.mu.Lock()
	handlers := make([]func(T), len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.Unlock()

	for _, fn := range handlers {
		if fn != nil {
			fn(v)
		}
	}
}

// screenEvents holds all of a Screen's subscription lists.
type screenEvents struct {
	resize   emitter[resizeEvent]
	refresh  emitter[refreshEvent]
	scroll   emitter[struct{}]
	char     emitter[rune]
	lineFeed emitter[struct{}]
	tab      emitter[int]
	key      emitter[rune]
	blur     emitter[struct{}]
}

// OnResize subscribes to dimension changes.
func (s *Screen) OnResize(fn func(cols, rows int)) func() {
	return s.events.resize.add(func(ev resizeEvent) { fn(ev.cols, ev.rows) })
}

// OnRefresh subscribes to row content changes; start and end are
// viewport-relative row indices, inclusive.
func (s *Screen) OnRefresh(fn func(start, end int)) func() {
	return s.events.refresh.add(func(ev refreshEvent) { fn(ev.start, ev.end) })
}

// OnScroll subscribes to viewport movement.
func (s *Screen) OnScroll(fn func()) func() {
	return s.events.scroll.add(func(struct{}) { fn() })
}

// OnChar subscribes to single printable characters written to the grid.
func (s *Screen) OnChar(fn func(rune)) func() {
	return s.events.char.add(fn)
}

// OnLineFeed subscribes to line feeds.
func (s *Screen) OnLineFeed(fn func()) func() {
	return s.events.lineFeed.add(func(struct{}) { fn() })
}

// OnTab subscribes to tab expansions; the payload is the number of
// space columns the tab covered.
func (s *Screen) OnTab(fn func(int)) func() {
	return s.events.tab.add(fn)
}

// OnKey subscribes to raw key presses reported via KeyPress.
func (s *Screen) OnKey(fn func(rune)) func() {
	return s.events.key.add(fn)
}

// OnBlur subscribes to focus-loss notifications reported via Blur.
func (s *Screen) OnBlur(fn func()) func() {
	return s.events.blur.add(func(struct{}) { fn() })
}
