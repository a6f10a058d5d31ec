package preview

import (
	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/graphics"
)

// Actions is the bundle of operations handed to custom content and toolbar
// extension slots.
type Actions struct {
	Next           func()
	Prev           func()
	JumpTo         func(index int)
	Close          func()
	ZoomIn         func()
	ZoomOut        func()
	RotateLeft     func()
	RotateRight    func()
	FlipHorizontal func()
	FlipVertical   func()
	Reset          func()
}

// Actions returns the operations bound to this viewer.
func (v *Viewer) Actions() Actions {
	return Actions{
		Next:           v.Next,
		Prev:           v.Prev,
		JumpTo:         v.JumpTo,
		Close:          v.Close,
		ZoomIn:         v.ZoomIn,
		ZoomOut:        v.ZoomOut,
		RotateLeft:     v.RotateLeft,
		RotateRight:    v.RotateRight,
		FlipHorizontal: v.FlipHorizontal,
		FlipVertical:   v.FlipVertical,
		Reset:          v.Reset,
	}
}

// ZoomIn raises the scale by one step, up to the maximum.
func (v *Viewer) ZoomIn() {
	defer errors.Recover("preview.ZoomIn")
	v.zoomBy(v.tuning.ZoomStep)
}

// ZoomOut lowers the scale by one step, down to the minimum.
func (v *Viewer) ZoomOut() {
	defer errors.Recover("preview.ZoomOut")
	v.zoomBy(-v.tuning.ZoomStep)
}

func (v *Viewer) zoomBy(step float64) {
	if !v.toolbarEnabled() {
		return
	}
	v.state.Scale = clampScale(v.state.Scale+step, v.tuning)
	v.afterDiscreteAction(true)
}

// RotateLeft turns the item 90 degrees counter-clockwise.
func (v *Viewer) RotateLeft() {
	defer errors.Recover("preview.RotateLeft")
	if !v.toolbarEnabled() {
		return
	}
	v.state.Rotate -= 90
	v.afterDiscreteAction(true)
}

// RotateRight turns the item 90 degrees clockwise.
func (v *Viewer) RotateRight() {
	defer errors.Recover("preview.RotateRight")
	if !v.toolbarEnabled() {
		return
	}
	v.state.Rotate += 90
	v.afterDiscreteAction(true)
}

// FlipHorizontal mirrors the item left to right.
func (v *Viewer) FlipHorizontal() {
	defer errors.Recover("preview.FlipHorizontal")
	if !v.toolbarEnabled() {
		return
	}
	v.state.FlipH = !v.state.FlipH
	v.afterDiscreteAction(false)
}

// FlipVertical mirrors the item top to bottom.
func (v *Viewer) FlipVertical() {
	defer errors.Recover("preview.FlipVertical")
	if !v.toolbarEnabled() {
		return
	}
	v.state.FlipV = !v.state.FlipV
	v.afterDiscreteAction(false)
}

// Reset restores the identity transform.
func (v *Viewer) Reset() {
	defer errors.Recover("preview.Reset")
	if !v.toolbarEnabled() {
		return
	}
	v.state.resetTransform()
	v.afterDiscreteAction(false)
}

func (v *Viewer) toolbarEnabled() bool {
	if v.inputBlocked() {
		return false
	}
	p := v.state.Phase
	return p == PhaseIdle || p == PhaseInertia
}

// afterDiscreteAction stops momentum and any snap-back tween, then drops
// cached bounds. Zoom, rotation and an interrupted tween re-clamp the
// translation on the next frame, once the host has laid out the new size.
func (v *Viewer) afterDiscreteAction(reclamp bool) {
	if v.motion != nil {
		reclamp = true
	}
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()
	v.state.Velocity.X, v.state.Velocity.Y = 0, 0
	v.setPhase(PhaseIdle)
	v.invalidateConstraints()
	if reclamp {
		v.after(0, v.reclamp)
	}
	v.notify()
}

func (v *Viewer) reclamp() {
	t := graphics.Offset{}
	if !v.state.atUnitScale() {
		t = v.Constraints().Clamp(v.state.Translate())
	}
	v.state.setTranslate(t)
	v.notify()
}

// KeyEvent is a key press delivered while the overlay is mounted. Key uses
// DOM key values ("ArrowLeft", "Escape", "+", " ").
type KeyEvent struct {
	Key string
	// OnBackdrop is true when the backdrop element has focus.
	OnBackdrop bool
}

// HandleKey applies the keyboard equivalents of the pointer gestures and
// reports whether the key was consumed. Tab is left to the focus trap.
func (v *Viewer) HandleKey(e KeyEvent) bool {
	defer errors.Recover("preview.HandleKey")
	if v.closed {
		return false
	}
	switch e.Key {
	case "ArrowLeft":
		v.Prev()
	case "ArrowRight":
		v.Next()
	case "Escape":
		v.Close()
	case "+", "=":
		v.ZoomIn()
	case "-":
		v.ZoomOut()
	case "0":
		v.Reset()
	case "Enter", " ":
		if !e.OnBackdrop {
			return false
		}
		v.Close()
	default:
		return false
	}
	return true
}
