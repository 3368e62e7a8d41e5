package a11y

// Role is an accessible semantic role.
type Role string

// Roles used by the accessible tree.
const (
	RoleNone     Role = ""
	RoleMenu     Role = "menu"
	RoleMenuItem Role = "menuitem"
	RoleTextBox  Role = "textbox"
)

// Live is a live-region politeness level. Assistive technology monitors
// nodes with a non-off politeness and speaks their text when it changes.
type Live string

// Politeness levels.
const (
	LiveOff       Live = ""
	LiveAssertive Live = "assertive"
)

// Node is one element of the accessible tree. Nodes are not safe for
// concurrent use; the owning Manager mutates them only on its scheduler.
type Node struct {
	id    string
	role  Role
	label string
	text  string
	live  Live

	focusable        bool
	activeDescendant string
	heightPx         int
	attrs            map[string]string

	tree     *Tree
	parent   *Node
	children []*Node
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

// Role returns the node's semantic role.
func (n *Node) Role() Role { return n.role }

// SetRole changes the node's semantic role.
func (n *Node) SetRole(r Role) { n.role = r }

// Label returns the node's accessible label.
func (n *Node) Label() string { return n.label }

// SetLabel changes the node's accessible label.
func (n *Node) SetLabel(label string) { n.label = label }

// Text returns the node's text content.
func (n *Node) Text() string { return n.text }

// SetText replaces the node's text content.
func (n *Node) SetText(text string) {
	n.text = text
	n.notifyText()
}

// AppendText appends to the node's text content.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.text += text
	n.notifyText()
}

// Focusable reports whether the node can take input focus.
func (n *Node) Focusable() bool { return n.focusable }

// SetFocusable changes whether the node can take input focus.
func (n *Node) SetFocusable(v bool) { n.focusable = v }

// ActiveDescendant returns the ID of the node's logically focused
// child, or "".
func (n *Node) ActiveDescendant() string { return n.activeDescendant }

// SetActiveDescendant marks the child with the given ID as logically
// focused. Pass "" to clear.
func (n *Node) SetActiveDescendant(id string) { n.activeDescendant = id }

// HeightPx returns the node's display height in device pixels.
func (n *Node) HeightPx() int { return n.heightPx }

// SetHeightPx changes the node's display height.
func (n *Node) SetHeightPx(h int) { n.heightPx = h }

// Attr returns the named attribute, or "".
func (n *Node) Attr(key string) string { return n.attrs[key] }

// SetAttr sets a named attribute.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// RemoveAttr deletes a named attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// Attached reports whether the node is currently part of the tree.
func (n *Node) Attached() bool {
	for p := n.parent; p != nil; p = p.parent {
		if n.tree != nil && p == n.tree.root {
			return true
		}
	}
	return n.tree != nil && n == n.tree.root
}

// Children returns the node's children in order. The returned slice is
// shared; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) notifyText() {
	if n.tree == nil {
		return
	}
	if n.live != LiveOff && n.Attached() && n.text != "" && n.tree.announceFn != nil {
		n.tree.announceFn(n.text)
	}
}

// Tree is the accessible tree mirroring the terminal. It owns a root
// container; assistive-technology bridges observe it through the
// announce and focus callbacks.
type Tree struct {
	root    *Node
	focused *Node

	announceFn func(text string)
	focusFn    func(n *Node)
}

// NewTree creates a tree with an empty root container.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.NewNode("root", RoleNone)
	return t
}

// NewNode creates a detached node belonging to this tree.
func (t *Tree) NewNode(id string, role Role) *Node {
	return &Node{id: id, role: role, tree: t}
}

// NewLiveNode creates a detached live-region node.
func (t *Tree) NewLiveNode(id string, politeness Live) *Node {
	n := t.NewNode(id, RoleNone)
	n.live = politeness
	return n
}

// Root returns the root container.
func (t *Tree) Root() *Node { return t.root }

// Append attaches child as parent's last child. Attaching a live node
// that already carries text announces it, which is what the
// reattachment workaround relies on.
func (t *Tree) Append(parent, child *Node) {
	if parent == nil || child == nil || child.parent != nil {
		return
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	child.notifyText()
}

// Remove detaches child from its parent. Focus held by the removed
// subtree is dropped.
func (t *Tree) Remove(child *Node) {
	if child == nil || child.parent == nil {
		return
	}
	p := child.parent
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	if t.focused == child {
		t.focused = nil
	}
}

// SetFocus moves input focus to the given node. Focus changes are
// reported even when the node is already focused: re-focusing a
// container is how active-descendant changes get announced.
func (t *Tree) SetFocus(n *Node) {
	if n == nil || !n.focusable {
		return
	}
	t.focused = n
	if t.focusFn != nil {
		t.focusFn(n)
	}
}

// Focused returns the node holding input focus, or nil.
func (t *Tree) Focused() *Node { return t.focused }

// SetAnnounceFunc registers the callback invoked when an attached live
// node's text changes to a non-empty value.
func (t *Tree) SetAnnounceFunc(fn func(text string)) { t.announceFn = fn }

// SetFocusFunc registers the callback invoked when input focus moves.
func (t *Tree) SetFocusFunc(fn func(n *Node)) { t.focusFn = fn }
