package a11y

import "fmt"

// RowSource provides row text by absolute buffer line index along with
// the viewport position. Implemented by the terminal screen.
type RowSource interface {
	RowText(abs int) string
	ViewportOffset() int
}

// CellMetrics provides the renderer's current cell dimensions in
// device pixels.
type CellMetrics interface {
	CellSize() (width, height int)
}

// RowMirror owns the accessible row nodes, one per terminal row.
// Resize only ever appends or discards trailing rows, so surviving row
// identities are stable.
type RowMirror struct {
	tree      *Tree
	container *Node
	source    RowSource
	metrics   CellMetrics

	rows []*Node
}

// NewRowMirror creates a mirror writing row nodes under container.
func NewRowMirror(tree *Tree, container *Node, source RowSource, metrics CellMetrics) *RowMirror {
	return &RowMirror{
		tree:      tree,
		container: container,
		source:    source,
		metrics:   metrics,
	}
}

// RowCount returns the number of mirrored rows.
func (m *RowMirror) RowCount() int {
	return len(m.rows)
}

// Row returns the node for the given viewport row, or nil when out of
// range.
func (m *RowMirror) Row(i int) *Node {
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return m.rows[i]
}

// Resize grows or shrinks the row sequence to exactly rowCount.
// Existing rows keep their positions; growth appends, shrink discards
// from the end.
func (m *RowMirror) Resize(rowCount int) {
	if rowCount < 0 {
		rowCount = 0
	}

	for len(m.rows) > rowCount {
		last := m.rows[len(m.rows)-1]
		m.tree.Remove(last)
		m.rows = m.rows[:len(m.rows)-1]
	}

	_, h := m.metrics.CellSize()
	for len(m.rows) < rowCount {
		row := m.tree.NewNode(fmt.Sprintf("acc-row-%d", len(m.rows)), RoleMenuItem)
		row.SetHeightPx(h)
		m.tree.Append(m.container, row)
		m.rows = append(m.rows, row)
	}
}

// RefreshDimensions recomputes every row's display height from the
// renderer's current cell metrics.
func (m *RowMirror) RefreshDimensions() {
	_, h := m.metrics.CellSize()
	for _, row := range m.rows {
		row.SetHeightPx(h)
	}
}

// WriteRange overwrites text and label for rows start..end inclusive
// from the terminal's buffer, addressed at the current viewport offset.
// Indices outside the mirrored range are clamped; an empty resulting
// range writes nothing.
func (m *RowMirror) WriteRange(start, end int) {
	if len(m.rows) == 0 {
		return
	}
	if start < 0 {
		start = 0
	}
	if end >= len(m.rows) {
		end = len(m.rows) - 1
	}

	off := m.source.ViewportOffset()
	for i := start; i <= end; i++ {
		text := m.source.RowText(off + i)
		m.rows[i].SetText(text)
		m.rows[i].SetLabel(text)
	}
}
