package render

import "sync"

// Default raster characteristics, CSS-pixel base sizes at font scale 1.
const (
	DefaultCellWidth  = 9
	DefaultCellHeight = 17
	DefaultFontScale  = 1.0
	DefaultDPR        = 1.0
)

// Metrics exposes cell raster dimensions and notifies on changes.
type Metrics struct {
	mu sync.RWMutex

	baseWidth  int
	baseHeight int
	fontScale  float64
	dpr        float64

	handlers []func()
}

// NewMetrics creates metrics with default cell dimensions.
func NewMetrics() *Metrics {
	return &Metrics{
		baseWidth:  DefaultCellWidth,
		baseHeight: DefaultCellHeight,
		fontScale:  DefaultFontScale,
		dpr:        DefaultDPR,
	}
}

// CellSize returns the current cell dimensions in device pixels.
func (m *Metrics) CellSize() (width, height int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scale := m.fontScale * m.dpr
	return int(float64(m.baseWidth)*scale + 0.5), int(float64(m.baseHeight)*scale + 0.5)
}

// DPR returns the current device pixel ratio.
func (m *Metrics) DPR() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dpr
}

// SetFontScale changes the font scale factor (zoom). Fires a change
// notification when the value moves.
func (m *Metrics) SetFontScale(scale float64) {
	if scale <= 0 {
		return
	}

	m.mu.Lock()
	changed := scale != m.fontScale
	m.fontScale = scale
	handlers := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		for _, fn := range handlers {
			if fn != nil {
				fn()
			}
		}
	}
}

// SetDPR changes the device pixel ratio. Fires a change notification
// when the value moves.
func (m *Metrics) SetDPR(dpr float64) {
	if dpr <= 0 {
		return
	}

	m.mu.Lock()
	changed := dpr != m.dpr
	m.dpr = dpr
	handlers := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		for _, fn := range handlers {
			if fn != nil {
				fn()
			}
		}
	}
}

// OnChange subscribes to metric changes. Returns an unsubscribe
// function.
func (m *Metrics) OnChange(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers = append(m.handlers, fn)
	index := len(m.handlers) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.handlers) {
			m.handlers[index] = nil
		}
	}
}

func (m *Metrics) snapshotLocked() []func() {
	handlers := make([]func(), len(m.handlers))
	copy(handlers, m.handlers)
	return handlers
}
