package testing

import (
	"time"

	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
)

// DefaultDragSteps is the number of move events in a simulated drag.
const DefaultDragSteps = 10

// Down presses a new pointer at pos and returns its ID.
func (t *ViewerTester) Down(pos graphics.Offset, kind gestures.PointerKind) int64 {
	t.nextID++
	id := t.nextID
	t.pointers[id] = pos
	t.send(id, kind, gestures.PointerPhaseDown, pos)
	return id
}

// Move moves pointer id to pos.
func (t *ViewerTester) Move(id int64, pos graphics.Offset, kind gestures.PointerKind) {
	if _, ok := t.pointers[id]; !ok {
		return
	}
	t.pointers[id] = pos
	t.send(id, kind, gestures.PointerPhaseMove, pos)
}

// Up releases pointer id at its last position.
func (t *ViewerTester) Up(id int64, kind gestures.PointerKind) {
	pos, ok := t.pointers[id]
	if !ok {
		return
	}
	delete(t.pointers, id)
	t.send(id, kind, gestures.PointerPhaseUp, pos)
}

// Cancel cancels pointer id.
func (t *ViewerTester) Cancel(id int64, kind gestures.PointerKind) {
	pos, ok := t.pointers[id]
	if !ok {
		return
	}
	delete(t.pointers, id)
	t.send(id, kind, gestures.PointerPhaseCancel, pos)
}

func (t *ViewerTester) send(id int64, kind gestures.PointerKind, phase gestures.PointerPhase, pos graphics.Offset) {
	t.Viewer.HandlePointer(gestures.PointerEvent{
		PointerID: id,
		Kind:      kind,
		Phase:     phase,
		Position:  pos,
		Time:      t.clock.Now(),
	})
}

// DragTo presses at start and moves to start+delta in DefaultDragSteps
// frames, leaving the pointer down. It returns the pointer ID.
func (t *ViewerTester) DragTo(start, delta graphics.Offset, kind gestures.PointerKind) int64 {
	id := t.Down(start, kind)
	for i := 1; i <= DefaultDragSteps; i++ {
		t.Frame()
		frac := float64(i) / DefaultDragSteps
		t.Move(id, start.Add(delta.Scale(frac)), kind)
	}
	return id
}

// Drag simulates a touch drag from start by delta followed by a release.
// The release velocity is delta spread over DefaultDragSteps frames.
func (t *ViewerTester) Drag(start, delta graphics.Offset) {
	id := t.DragTo(start, delta, gestures.PointerKindTouch)
	t.Up(id, gestures.PointerKindTouch)
}

// DragAndHold drags like Drag but holds still for hold before releasing,
// so the release velocity decays to zero.
func (t *ViewerTester) DragAndHold(start, delta graphics.Offset, hold time.Duration) {
	id := t.DragTo(start, delta, gestures.PointerKindTouch)
	t.PumpFor(hold)
	t.Up(id, gestures.PointerKindTouch)
}

// Fling moves from start by delta within d and releases immediately.
func (t *ViewerTester) Fling(start, delta graphics.Offset, d time.Duration) {
	const steps = 5
	id := t.Down(start, gestures.PointerKindTouch)
	step := d / steps
	for i := 1; i <= steps; i++ {
		t.clock.Advance(step)
		t.Move(id, start.Add(delta.Scale(float64(i)/steps)), gestures.PointerKindTouch)
	}
	t.Up(id, gestures.PointerKindTouch)
}

// Pinch places two fingers symmetrically around focal, spreads them from
// fromDistance to toDistance and lifts both.
func (t *ViewerTester) Pinch(focal graphics.Offset, fromDistance, toDistance float64) {
	half := func(d float64) graphics.Offset { return graphics.Offset{X: d / 2} }
	a := t.Down(focal.Sub(half(fromDistance)), gestures.PointerKindTouch)
	b := t.Down(focal.Add(half(fromDistance)), gestures.PointerKindTouch)
	for i := 1; i <= DefaultDragSteps; i++ {
		t.Frame()
		d := fromDistance + (toDistance-fromDistance)*float64(i)/DefaultDragSteps
		t.Move(a, focal.Sub(half(d)), gestures.PointerKindTouch)
		t.Move(b, focal.Add(half(d)), gestures.PointerKindTouch)
	}
	t.Up(b, gestures.PointerKindTouch)
	t.Up(a, gestures.PointerKindTouch)
}

// Tap presses and releases at pos.
func (t *ViewerTester) Tap(pos graphics.Offset) {
	id := t.Down(pos, gestures.PointerKindTouch)
	t.clock.Advance(40 * time.Millisecond)
	t.Up(id, gestures.PointerKindTouch)
}

// DoubleTap taps twice at pos within the double-tap window.
func (t *ViewerTester) DoubleTap(pos graphics.Offset) {
	t.Tap(pos)
	t.clock.Advance(100 * time.Millisecond)
	t.Tap(pos)
}

// Scroll sends a wheel event at pos.
func (t *ViewerTester) Scroll(pos graphics.Offset, deltaY float64) {
	t.Viewer.HandleScroll(gestures.ScrollEvent{
		Position: pos,
		Delta:    graphics.Offset{Y: deltaY},
		Time:     t.clock.Now(),
	})
}

// Key sends a key press to the viewer.
func (t *ViewerTester) Key(key string) bool {
	return t.Viewer.HandleKey(preview.KeyEvent{Key: key})
}

// LoadCurrent reports the current item as loaded.
func (t *ViewerTester) LoadCurrent() {
	s := t.Viewer.State()
	t.Viewer.ImageLoaded(s.Current().ID(s.CurrentIndex))
}
