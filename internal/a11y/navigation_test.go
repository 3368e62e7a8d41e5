package a11y

import "testing"

type fakeFocusView struct {
	rows      int
	cursor    int
	scrollOK  bool
	focused   []int
	cleared   int
	scrolled  []int
}

func (f *fakeFocusView) RowCount() int  { return f.rows }
func (f *fakeFocusView) CursorRow() int { return f.cursor }

func (f *fakeFocusView) FocusRow(index int) {
	f.focused = append(f.focused, index)
}

func (f *fakeFocusView) ClearFocusMarker() {
	f.cleared++
}

func (f *fakeFocusView) ScrollRequest(delta int) bool {
	f.scrolled = append(f.scrolled, delta)
	return f.scrollOK
}

func lastFocus(t *testing.T, f *fakeFocusView) int {
	t.Helper()
	if len(f.focused) == 0 {
		t.Fatal("no focus calls recorded")
	}
	return f.focused[len(f.focused)-1]
}

func newTestNav(rows, cursor int) (*NavigationMode, *fakeFocusView, *[]string) {
	view := &fakeFocusView{rows: rows, cursor: cursor}
	var announced []string
	nav := NewNavigationMode(view, func(text string) { announced = append(announced, text) })
	return nav, view, &announced
}

func TestNavigationEnterFocusesCursorRow(t *testing.T) {
	nav, view, announced := newTestNav(24, 7)

	nav.Enter()

	if !nav.Active() {
		t.Fatal("Active() = false after Enter")
	}
	if got := lastFocus(t, view); got != 7 {
		t.Errorf("focused row = %d, want 7", got)
	}
	if len(*announced) != 1 || (*announced)[0] != msgNavigationOn {
		t.Errorf("announced = %v, want [%q]", *announced, msgNavigationOn)
	}
}

func TestNavigationEnterClampsCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		want   int
	}{
		{"negative", -3, 0},
		{"beyond last row", 99, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, view, _ := newTestNav(24, tt.cursor)
			nav.Enter()
			if got := lastFocus(t, view); got != tt.want {
				t.Errorf("focused row = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNavigationEnterNoRows(t *testing.T) {
	nav, _, _ := newTestNav(0, 0)
	nav.Enter()
	if nav.Active() {
		t.Error("Active() = true with no rows")
	}
}

func TestNavigationEnterWhileActiveIsNoop(t *testing.T) {
	nav, view, announced := newTestNav(24, 5)
	nav.Enter()
	nav.Enter()

	if len(view.focused) != 1 {
		t.Errorf("focus calls = %d, want 1", len(view.focused))
	}
	if len(*announced) != 1 {
		t.Errorf("announcements = %d, want 1", len(*announced))
	}
}

func TestNavigationArrowsMove(t *testing.T) {
	nav, view, _ := newTestNav(24, 5)
	nav.Enter()

	if !nav.HandleKey(KeyArrowUp) {
		t.Fatal("ArrowUp not consumed")
	}
	if got := lastFocus(t, view); got != 4 {
		t.Errorf("focused row after up = %d, want 4", got)
	}

	nav.HandleKey(KeyArrowDown)
	nav.HandleKey(KeyArrowDown)
	if got := lastFocus(t, view); got != 6 {
		t.Errorf("focused row after two downs = %d, want 6", got)
	}
}

func TestNavigationBottomBoundary(t *testing.T) {
	nav, view, announced := newTestNav(3, 2)
	nav.Enter()

	nav.HandleKey(KeyArrowDown)

	if nav.FocusedRow() != 2 {
		t.Errorf("FocusedRow() = %d, want 2", nav.FocusedRow())
	}
	if len(view.focused) != 1 {
		t.Errorf("focus calls = %d, boundary must not re-focus", len(view.focused))
	}
	if got := (*announced)[len(*announced)-1]; got != msgEndOfScreen {
		t.Errorf("announced %q, want %q", got, msgEndOfScreen)
	}
}

func TestNavigationTopScrollsHistory(t *testing.T) {
	nav, view, _ := newTestNav(24, 0)
	view.scrollOK = true
	nav.Enter()

	if !nav.HandleKey(KeyArrowUp) {
		t.Fatal("ArrowUp not consumed")
	}

	if len(view.scrolled) != 1 || view.scrolled[0] != -1 {
		t.Fatalf("scroll requests = %v, want [-1]", view.scrolled)
	}
	// After the viewport moved, focus re-pins to row 0 so the
	// scrolled-in line is read.
	if got := lastFocus(t, view); got != 0 {
		t.Errorf("focused row = %d, want 0", got)
	}
	if nav.FocusedRow() != 0 {
		t.Errorf("FocusedRow() = %d, want 0", nav.FocusedRow())
	}
}

func TestNavigationTopWithoutHistory(t *testing.T) {
	nav, view, announced := newTestNav(24, 0)
	view.scrollOK = false
	nav.Enter()

	nav.HandleKey(KeyArrowUp)

	if nav.FocusedRow() != 0 {
		t.Errorf("FocusedRow() = %d, want 0", nav.FocusedRow())
	}
	if got := (*announced)[len(*announced)-1]; got != msgTopOfHistory {
		t.Errorf("announced %q, want %q", got, msgTopOfHistory)
	}
}

func TestNavigationEscapeExits(t *testing.T) {
	nav, view, announced := newTestNav(24, 5)
	nav.Enter()

	if !nav.HandleKey(KeyEscape) {
		t.Fatal("Escape not consumed")
	}
	if nav.Active() {
		t.Error("Active() = true after Escape")
	}
	if view.cleared != 1 {
		t.Errorf("ClearFocusMarker calls = %d, want 1", view.cleared)
	}
	if got := (*announced)[len(*announced)-1]; got != msgNavigationOff {
		t.Errorf("announced %q, want %q", got, msgNavigationOff)
	}
}

func TestNavigationSwallowsOtherKeysWhileActive(t *testing.T) {
	nav, _, _ := newTestNav(24, 5)
	nav.Enter()

	if !nav.HandleKey(KeyOther) {
		t.Error("unrelated key leaked through active navigation")
	}
}

func TestNavigationInactiveConsumesNothing(t *testing.T) {
	nav, _, _ := newTestNav(24, 5)

	for _, k := range []Key{KeyEscape, KeyArrowUp, KeyArrowDown, KeyOther} {
		if nav.HandleKey(k) {
			t.Errorf("inactive navigation consumed %v", k)
		}
	}
}

func TestNavigationHandleResizeReclamps(t *testing.T) {
	nav, view, _ := newTestNav(24, 20)
	nav.Enter()

	view.rows = 10
	nav.HandleResize()

	if nav.FocusedRow() != 9 {
		t.Errorf("FocusedRow() = %d after shrink, want 9", nav.FocusedRow())
	}
	if got := lastFocus(t, view); got != 9 {
		t.Errorf("focused row = %d after shrink, want 9", got)
	}
}

func TestNavigationDispose(t *testing.T) {
	nav, view, _ := newTestNav(24, 5)
	nav.Enter()

	nav.Dispose()
	nav.Dispose()

	if nav.Active() {
		t.Error("Active() = true after Dispose")
	}
	if view.cleared != 1 {
		t.Errorf("ClearFocusMarker calls = %d, want 1", view.cleared)
	}
	if nav.HandleKey(KeyArrowDown) {
		t.Error("disposed navigation consumed a key")
	}
	nav.Enter()
	if nav.Active() {
		t.Error("disposed navigation re-entered")
	}
}
