// Package overlay mounts preview sessions above the page and provides the
// programmatic and trigger-driven ways of opening them.
package overlay

import (
	"sync/atomic"

	"github.com/go-drift/preview/pkg/focus"
	"github.com/go-drift/preview/pkg/preview"
)

// nextEntryID is an atomic counter for unique entry IDs.
var nextEntryID uint64

// Control names the focusable parts of a mounted overlay, in tab order.
const (
	ControlBackdrop    = "backdrop"
	ControlClose       = "close"
	ControlPrev        = "prev"
	ControlNext        = "next"
	ControlZoomOut     = "zoom-out"
	ControlZoomIn      = "zoom-in"
	ControlRotateLeft  = "rotate-left"
	ControlRotateRight = "rotate-right"
	ControlFlipH       = "flip-horizontal"
	ControlFlipV       = "flip-vertical"
	ControlReset       = "reset"
)

// Entry is one mounted overlay node: a viewer plus its focusable controls.
type Entry struct {
	Viewer *preview.Viewer

	// Focusables are the focusable descendants in tab order. The first is
	// always the backdrop.
	Focusables []*focus.FocusNode

	actions map[*focus.FocusNode]func()
	id      uint64
	mounted bool
}

// NewEntry creates an entry for v whose controls follow v's current frame:
// hidden chrome gets no focusable node.
func NewEntry(v *preview.Viewer) *Entry {
	e := &Entry{
		Viewer:  v,
		actions: make(map[*focus.FocusNode]func()),
		id:      atomic.AddUint64(&nextEntryID, 1),
	}
	f := v.Render()
	act := v.Actions()

	e.add(ControlBackdrop, act.Close)
	e.add(ControlClose, act.Close)
	if f.ShowNavigation {
		e.add(ControlPrev, act.Prev)
		e.add(ControlNext, act.Next)
	}
	if f.ShowToolbar {
		if f.ShowZoom {
			e.add(ControlZoomOut, act.ZoomOut)
			e.add(ControlZoomIn, act.ZoomIn)
		}
		if f.ShowRotate {
			e.add(ControlRotateLeft, act.RotateLeft)
			e.add(ControlRotateRight, act.RotateRight)
		}
		if f.ShowFlip {
			e.add(ControlFlipH, act.FlipHorizontal)
			e.add(ControlFlipV, act.FlipVertical)
		}
		e.add(ControlReset, act.Reset)
	}
	return e
}

func (e *Entry) add(label string, fn func()) {
	n := focus.NewNode(label)
	e.Focusables = append(e.Focusables, n)
	e.actions[n] = fn
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() uint64 {
	return e.id
}

// Mounted reports whether the entry is attached to a host.
func (e *Entry) Mounted() bool {
	return e.mounted
}

// Backdrop returns the backdrop's focus node.
func (e *Entry) Backdrop() *focus.FocusNode {
	if len(e.Focusables) == 0 {
		return nil
	}
	return e.Focusables[0]
}

// Control returns the focus node with the given label, or nil.
func (e *Entry) Control(label string) *focus.FocusNode {
	for _, n := range e.Focusables {
		if n.DebugLabel == label {
			return n
		}
	}
	return nil
}

// Activate runs the action bound to n, as a click on the control would.
// Nodes outside the entry are ignored.
func (e *Entry) Activate(n *focus.FocusNode) bool {
	fn, ok := e.actions[n]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}
