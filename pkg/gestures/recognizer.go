package gestures

import (
	"fmt"
	"time"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/graphics"
)

const (
	// DefaultTapSlop is the farthest a pointer may travel and still count as a tap.
	DefaultTapSlop = 10.0
	// DefaultTapMaxSamples is the most move samples a tap may contain.
	DefaultTapMaxSamples = 5
)

// Mode is the recognizer's pointer-count state.
type Mode int

const (
	// ModeIdle means no pointer is down.
	ModeIdle Mode = iota
	// ModeDrag means exactly one tracked pointer is down.
	ModeDrag
	// ModePinch means two or more pointers are down.
	ModePinch
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrag:
		return "drag"
	case ModePinch:
		return "pinch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DragStartDetails reports the start of a single-pointer drag.
type DragStartDetails struct {
	Position graphics.Offset
	Kind     PointerKind
	// Resumed is true when the drag continues a pinch after a finger lifted.
	Resumed bool
}

// DragUpdateDetails reports pointer movement during a drag.
type DragUpdateDetails struct {
	Position graphics.Offset
	// Delta is the movement since the previous update.
	Delta graphics.Offset
	// Total is the movement since the drag started.
	Total graphics.Offset
	Kind  PointerKind
}

// DragEndDetails reports the release of a drag.
type DragEndDetails struct {
	Position graphics.Offset
	Total    graphics.Offset
	// Velocity is the release velocity in pixels per millisecond.
	Velocity graphics.Offset
	// Samples is the number of move samples seen during the drag.
	Samples  int
	Kind     PointerKind
	Canceled bool
}

// PinchDetails reports the state of a two-pointer pinch.
type PinchDetails struct {
	// Focal is the current midpoint between the two pointers.
	Focal graphics.Offset
	// InitialFocal is the midpoint when the pinch started.
	InitialFocal graphics.Offset
	// Distance is the current distance between the pointers.
	Distance float64
	// Scale is Distance divided by the starting distance, or 1 when the
	// starting distance was zero.
	Scale float64
}

// PinchEndDetails reports the end of a pinch.
type PinchEndDetails struct {
	// Remaining is the number of pointers still down.
	Remaining int
}

// TapDetails reports a tap or double tap.
type TapDetails struct {
	Position graphics.Offset
	Kind     PointerKind
}

type trackedPointer struct {
	id       int64
	kind     PointerKind
	position graphics.Offset
}

// Recognizer classifies raw pointer events into drag, pinch, tap and
// double-tap intents. Events must be delivered in order from a single
// goroutine.
type Recognizer struct {
	TapSlop       float64
	TapMaxSamples int
	Tracker       VelocityTracker
	DoubleTap     DoubleTapDetector

	OnDragStart   func(DragStartDetails)
	OnDragUpdate  func(DragUpdateDetails)
	OnDragEnd     func(DragEndDetails)
	OnPinchStart  func(PinchDetails)
	OnPinchUpdate func(PinchDetails)
	OnPinchEnd    func(PinchEndDetails)
	OnTap         func(TapDetails)
	OnDoubleTap   func(TapDetails)

	mode          Mode
	pointers      []trackedPointer
	start         graphics.Offset
	last          graphics.Offset
	samples       int
	pinched       bool
	pinchDistance float64
	pinchFocal    graphics.Offset
}

// Mode returns the current pointer-count state.
func (r *Recognizer) Mode() Mode {
	return r.mode
}

// PointerCount returns the number of tracked pointers.
func (r *Recognizer) PointerCount() int {
	return len(r.pointers)
}

// Reset forgets all pointers without emitting callbacks.
func (r *Recognizer) Reset() {
	r.mode = ModeIdle
	r.pointers = r.pointers[:0]
	r.Tracker.Reset()
	r.DoubleTap.Reset()
	r.samples = 0
	r.pinched = false
}

// Handle processes one pointer event.
func (r *Recognizer) Handle(event PointerEvent) {
	if event.Time.IsZero() {
		event.Time = animation.Now()
	}
	switch event.Phase {
	case PointerPhaseDown:
		r.handleDown(event)
	case PointerPhaseMove:
		r.handleMove(event)
	case PointerPhaseUp, PointerPhaseCancel:
		r.handleUp(event)
	}
}

func (r *Recognizer) handleDown(event PointerEvent) {
	if r.indexOf(event.PointerID) >= 0 {
		return
	}
	r.pointers = append(r.pointers, trackedPointer{id: event.PointerID, kind: event.Kind, position: event.Position})
	switch len(r.pointers) {
	case 1:
		r.pinched = false
		r.beginDrag(event.Position, event.Kind, event.Time, false)
	case 2:
		r.beginPinch()
	}
}

func (r *Recognizer) handleMove(event PointerEvent) {
	i := r.indexOf(event.PointerID)
	if i < 0 {
		return
	}
	r.pointers[i].position = event.Position

	switch r.mode {
	case ModeDrag:
		delta := event.Position.Sub(r.last)
		r.last = event.Position
		r.samples++
		r.Tracker.Add(event.Position, event.Time)
		if r.OnDragUpdate != nil {
			r.OnDragUpdate(DragUpdateDetails{
				Position: event.Position,
				Delta:    delta,
				Total:    event.Position.Sub(r.start),
				Kind:     event.Kind,
			})
		}
	case ModePinch:
		if i > 1 {
			return
		}
		if r.OnPinchUpdate != nil {
			r.OnPinchUpdate(r.pinchDetails())
		}
	}
}

func (r *Recognizer) handleUp(event PointerEvent) {
	i := r.indexOf(event.PointerID)
	if i < 0 {
		return
	}
	canceled := event.Phase == PointerPhaseCancel
	r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)

	switch r.mode {
	case ModeDrag:
		r.endDrag(event, canceled)
	case ModePinch:
		remaining := len(r.pointers)
		if remaining >= 2 {
			if i <= 1 {
				r.beginPinch()
			}
			return
		}
		if r.OnPinchEnd != nil {
			r.OnPinchEnd(PinchEndDetails{Remaining: remaining})
		}
		if remaining == 1 {
			p := r.pointers[0]
			r.beginDrag(p.position, p.kind, event.Time, true)
			return
		}
		r.mode = ModeIdle
	}
}

func (r *Recognizer) beginDrag(pos graphics.Offset, kind PointerKind, at time.Time, resumed bool) {
	r.mode = ModeDrag
	r.start = pos
	r.last = pos
	r.samples = 0
	r.Tracker.Reset()
	r.Tracker.Add(pos, at)
	if r.OnDragStart != nil {
		r.OnDragStart(DragStartDetails{Position: pos, Kind: kind, Resumed: resumed})
	}
}

func (r *Recognizer) endDrag(event PointerEvent, canceled bool) {
	r.mode = ModeIdle
	var velocity graphics.Offset
	if !canceled {
		r.Tracker.Add(event.Position, event.Time)
		velocity = r.Tracker.Velocity(event.Time)
	}
	total := event.Position.Sub(r.start)
	if r.OnDragEnd != nil {
		r.OnDragEnd(DragEndDetails{
			Position: event.Position,
			Total:    total,
			Velocity: velocity,
			Samples:  r.samples,
			Kind:     event.Kind,
			Canceled: canceled,
		})
	}
	if canceled || r.pinched || !r.isTap(total) {
		r.DoubleTap.Reset()
		return
	}
	details := TapDetails{Position: event.Position, Kind: event.Kind}
	if r.DoubleTap.Tap(event.Position, event.Time) {
		if r.OnDoubleTap != nil {
			r.OnDoubleTap(details)
		}
		return
	}
	if r.OnTap != nil {
		r.OnTap(details)
	}
}

func (r *Recognizer) beginPinch() {
	r.mode = ModePinch
	r.pinched = true
	a, b := r.pointers[0].position, r.pointers[1].position
	r.pinchDistance = b.Sub(a).Distance()
	r.pinchFocal = graphics.Midpoint(a, b)
	if r.OnPinchStart != nil {
		r.OnPinchStart(r.pinchDetails())
	}
}

func (r *Recognizer) pinchDetails() PinchDetails {
	a, b := r.pointers[0].position, r.pointers[1].position
	distance := b.Sub(a).Distance()
	scale := 1.0
	if r.pinchDistance > 0 {
		scale = distance / r.pinchDistance
	}
	return PinchDetails{
		Focal:        graphics.Midpoint(a, b),
		InitialFocal: r.pinchFocal,
		Distance:     distance,
		Scale:        scale,
	}
}

func (r *Recognizer) isTap(total graphics.Offset) bool {
	slop := r.TapSlop
	if slop <= 0 {
		slop = DefaultTapSlop
	}
	maxSamples := r.TapMaxSamples
	if maxSamples <= 0 {
		maxSamples = DefaultTapMaxSamples
	}
	return total.Distance() < slop && r.samples <= maxSamples
}

func (r *Recognizer) indexOf(id int64) int {
	for i, p := range r.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}
