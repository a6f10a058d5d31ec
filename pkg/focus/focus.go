// Package focus provides the per-overlay focus trap.
//
// A [Trap] holds the focusable descendants of one mounted overlay in tab
// order. While active, Tab and Shift+Tab cycle focus among them and wrap at
// either end, so keyboard focus never escapes to the page behind the overlay.
package focus

// KeyEventResult indicates how a key event was handled.
type KeyEventResult int

const (
	// KeyEventIgnored indicates the event was not handled.
	KeyEventIgnored KeyEventResult = iota

	// KeyEventHandled indicates the event was consumed.
	KeyEventHandled
)

// KeyEvent is a key press seen by a trap.
type KeyEvent struct {
	Key   string
	Shift bool
}

// FocusNode represents a focusable element inside an overlay.
type FocusNode struct {
	CanRequestFocus bool
	SkipTraversal   bool
	DebugLabel      string

	OnFocusChange func(hasFocus bool)

	hasFocus bool
}

// NewNode returns a node that can receive focus.
func NewNode(label string) *FocusNode {
	return &FocusNode{CanRequestFocus: true, DebugLabel: label}
}

// canReceiveFocus reports whether the node can receive focus.
func (n *FocusNode) canReceiveFocus() bool {
	return n != nil && n.CanRequestFocus && !n.SkipTraversal
}

// HasFocus reports whether this node has focus.
func (n *FocusNode) HasFocus() bool {
	return n.hasFocus
}

// setFocusState updates the focus flag and notifies the callback.
func (n *FocusNode) setFocusState(hasFocus bool) {
	if n.hasFocus == hasFocus {
		return
	}
	n.hasFocus = hasFocus
	if n.OnFocusChange != nil {
		n.OnFocusChange(hasFocus)
	}
}

// Trap confines keyboard focus to a set of nodes.
type Trap struct {
	// Nodes are the focusable descendants in tab order.
	Nodes []*FocusNode

	primary  *FocusNode
	previous *FocusNode
	active   bool
}

// NewTrap returns an inactive trap over nodes.
func NewTrap(nodes ...*FocusNode) *Trap {
	return &Trap{Nodes: nodes}
}

// Activate focuses the first focusable node. previous is the node that held
// focus outside the overlay; Release hands it back.
func (t *Trap) Activate(previous *FocusNode) {
	if t.active {
		return
	}
	t.active = true
	t.previous = previous
	if previous != nil {
		previous.setFocusState(false)
	}
	t.SetFirstFocus()
}

// Release drops focus from the trap and restores the node focused before
// Activate. It returns that node, which may be nil.
func (t *Trap) Release() *FocusNode {
	if !t.active {
		return nil
	}
	t.active = false
	t.setPrimaryFocus(nil)
	prev := t.previous
	t.previous = nil
	if prev != nil {
		prev.setFocusState(true)
	}
	return prev
}

// Active reports whether the trap currently owns focus.
func (t *Trap) Active() bool {
	return t.active
}

// PrimaryFocus returns the focused node inside the trap, if any.
func (t *Trap) PrimaryFocus() *FocusNode {
	return t.primary
}

// SetFirstFocus focuses the first focusable node.
func (t *Trap) SetFirstFocus() {
	for _, n := range t.Nodes {
		if n.canReceiveFocus() {
			t.setPrimaryFocus(n)
			return
		}
	}
	t.setPrimaryFocus(nil)
}

// RequestFocus focuses n if it belongs to the trap and can take focus.
func (t *Trap) RequestFocus(n *FocusNode) bool {
	if !t.active || !n.canReceiveFocus() || t.indexOf(n) < 0 {
		return false
	}
	t.setPrimaryFocus(n)
	return true
}

// Remove drops n from the trap, moving focus forward if n had it.
func (t *Trap) Remove(n *FocusNode) {
	i := t.indexOf(n)
	if i < 0 {
		return
	}
	hadFocus := t.primary == n
	t.Nodes = append(t.Nodes[:i], t.Nodes[i+1:]...)
	if hadFocus {
		n.setFocusState(false)
		t.primary = nil
		if t.active {
			t.SetFirstFocus()
		}
	}
}

// MoveFocus moves focus by delta positions, wrapping at either end and
// skipping nodes that cannot take focus.
func (t *Trap) MoveFocus(delta int) bool {
	count := len(t.Nodes)
	if !t.active || count == 0 {
		return false
	}
	current := t.indexOf(t.primary)
	if current < 0 && delta < 0 {
		current = 0
	}
	for step := 1; step <= count; step++ {
		candidate := t.Nodes[wrapIndex(current+delta*step, count)]
		if candidate.canReceiveFocus() {
			t.setPrimaryFocus(candidate)
			return true
		}
	}
	return false
}

// HandleKey cycles focus on Tab (forward) and Shift+Tab (backward). Other
// keys are ignored.
func (t *Trap) HandleKey(e KeyEvent) KeyEventResult {
	if !t.active || e.Key != "Tab" {
		return KeyEventIgnored
	}
	delta := 1
	if e.Shift {
		delta = -1
	}
	t.MoveFocus(delta)
	// Tab never leaves the overlay, even when nothing inside can take focus.
	return KeyEventHandled
}

func (t *Trap) indexOf(n *FocusNode) int {
	if n == nil {
		return -1
	}
	for i, node := range t.Nodes {
		if node == n {
			return i
		}
	}
	return -1
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

// setPrimaryFocus updates the primary focus to the given node.
func (t *Trap) setPrimaryFocus(node *FocusNode) {
	if t.primary == node {
		return
	}
	if t.primary != nil {
		t.primary.setFocusState(false)
	}
	t.primary = node
	if node != nil {
		node.setFocusState(true)
	}
}
