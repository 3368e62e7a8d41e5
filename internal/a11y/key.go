package a11y

// Key is a logical key action routed to navigation mode. Mapping from
// platform key identifiers is the host's concern; only these three
// actions matter here.
type Key int

const (
	// KeyOther is any key without a navigation meaning.
	KeyOther Key = iota

	// KeyEscape exits navigation mode.
	KeyEscape

	// KeyArrowUp moves the focused row up.
	KeyArrowUp

	// KeyArrowDown moves the focused row down.
	KeyArrowDown
)

// String returns a human-readable key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	default:
		return "Other"
	}
}
