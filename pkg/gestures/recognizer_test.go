package gestures

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/preview/pkg/graphics"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func pt(x, y float64) graphics.Offset {
	return graphics.Offset{X: x, Y: y}
}

type recorder struct {
	events []string
	end    DragEndDetails
	pinch  PinchDetails
}

func newRecorded() (*Recognizer, *recorder) {
	rec := &recorder{}
	r := &Recognizer{
		OnDragStart: func(d DragStartDetails) {
			if d.Resumed {
				rec.events = append(rec.events, "drag-resume")
				return
			}
			rec.events = append(rec.events, "drag-start")
		},
		OnDragUpdate: func(DragUpdateDetails) { rec.events = append(rec.events, "drag-update") },
		OnDragEnd: func(d DragEndDetails) {
			rec.end = d
			rec.events = append(rec.events, "drag-end")
		},
		OnPinchStart:  func(p PinchDetails) { rec.pinch = p; rec.events = append(rec.events, "pinch-start") },
		OnPinchUpdate: func(p PinchDetails) { rec.pinch = p; rec.events = append(rec.events, "pinch-update") },
		OnPinchEnd:    func(PinchEndDetails) { rec.events = append(rec.events, "pinch-end") },
		OnTap:         func(TapDetails) { rec.events = append(rec.events, "tap") },
		OnDoubleTap:   func(TapDetails) { rec.events = append(rec.events, "double-tap") },
	}
	return r, rec
}

func (rec *recorder) last() string {
	if len(rec.events) == 0 {
		return ""
	}
	return rec.events[len(rec.events)-1]
}

func TestResolveLock(t *testing.T) {
	tests := []struct {
		name  string
		total graphics.Offset
		want  LockDirection
	}{
		{"below threshold", pt(9, 9), LockNone},
		{"exactly threshold", pt(10, 0), LockNone},
		{"horizontal", pt(11, 3), LockHorizontal},
		{"vertical", pt(3, 11), LockVertical},
		{"diagonal favors horizontal", pt(12, 12), LockHorizontal},
		{"vertical needs 1.2x", pt(10, 12.5), LockVertical},
		{"negative vertical", pt(0, -40), LockVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLock(tt.total, 10, 1.2); got != tt.want {
				t.Errorf("ResolveLock(%v) = %v, want %v", tt.total, got, tt.want)
			}
		})
	}
}

func TestVelocityTracker_OldestToNewest(t *testing.T) {
	var v VelocityTracker
	v.Add(pt(0, 0), at(0))
	v.Add(pt(10, 20), at(20))
	v.Add(pt(40, 80), at(80))

	got := v.Velocity(at(80))
	if math.Abs(got.X-0.5) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Velocity = %v, want (0.5, 1)", got)
	}
}

func TestVelocityTracker_PrunesStaleSamples(t *testing.T) {
	var v VelocityTracker
	v.Add(pt(0, 0), at(0))
	v.Add(pt(100, 0), at(50))
	if got := v.Velocity(at(300)); got != (graphics.Offset{}) {
		t.Errorf("stale history should yield zero velocity, got %v", got)
	}
	if v.Len() != 0 {
		t.Errorf("Len = %d after pruning, want 0", v.Len())
	}
}

func TestVelocityTracker_CapsSamples(t *testing.T) {
	v := VelocityTracker{Cap: 4, Window: time.Second}
	for i := 0; i < 10; i++ {
		v.Add(pt(float64(i), 0), at(i))
	}
	if v.Len() != 4 {
		t.Fatalf("Len = %d, want 4", v.Len())
	}
	if first := v.Samples()[0].Position.X; first != 6 {
		t.Errorf("oldest retained sample = %v, want 6", first)
	}
}

func TestVelocityTracker_EmptyAndZeroDurationAreZero(t *testing.T) {
	var v VelocityTracker
	if got := v.Velocity(at(0)); got != (graphics.Offset{}) {
		t.Errorf("empty tracker velocity = %v", got)
	}
	v.Add(pt(0, 0), at(10))
	v.Add(pt(50, 50), at(10))
	if got := v.Velocity(at(10)); got != (graphics.Offset{}) {
		t.Errorf("zero-duration velocity = %v", got)
	}
}

func TestDoubleTapDetector(t *testing.T) {
	var d DoubleTapDetector
	if d.Tap(pt(100, 100), at(0)) {
		t.Fatal("first tap cannot be a double tap")
	}
	if !d.Tap(pt(105, 100), at(250)) {
		t.Fatal("second tap within window should complete a double tap")
	}
	if d.Tap(pt(105, 100), at(400)) {
		t.Error("third tap should start a new sequence")
	}
	if d.Tap(pt(105, 100), at(800)) {
		t.Error("tap outside window should not complete a double tap")
	}
	if d.Tap(pt(300, 300), at(900)) {
		t.Error("tap outside slop should not complete a double tap")
	}
}

func TestRecognizer_DragLifecycle(t *testing.T) {
	r, rec := newRecorded()
	r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseDown, Position: pt(100, 100), Time: at(0)})
	for i := 1; i <= 5; i++ {
		r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseMove, Position: pt(100+float64(i)*10, 100), Time: at(i * 16)})
	}
	r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseUp, Position: pt(150, 100), Time: at(80)})

	if r.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle", r.Mode())
	}
	if rec.last() != "drag-end" {
		t.Errorf("last event = %q, want drag-end (a 50px drag is not a tap)", rec.last())
	}
	if rec.end.Total != pt(50, 0) {
		t.Errorf("Total = %v", rec.end.Total)
	}
	if rec.end.Velocity.X <= 0 || rec.end.Velocity.Y != 0 {
		t.Errorf("Velocity = %v, want positive X only", rec.end.Velocity)
	}
}

func TestRecognizer_TapAndDoubleTap(t *testing.T) {
	r, rec := newRecorded()
	tap := func(id int64, ms int) {
		r.Handle(PointerEvent{PointerID: id, Phase: PointerPhaseDown, Position: pt(200, 200), Time: at(ms)})
		r.Handle(PointerEvent{PointerID: id, Phase: PointerPhaseUp, Position: pt(201, 200), Time: at(ms + 40)})
	}
	tap(1, 0)
	if rec.last() != "tap" {
		t.Fatalf("first release = %q, want tap", rec.last())
	}
	tap(2, 150)
	if rec.last() != "double-tap" {
		t.Fatalf("second release = %q, want double-tap", rec.last())
	}
}

func TestRecognizer_PinchThenResumeDrag(t *testing.T) {
	r, rec := newRecorded()
	r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseDown, Position: pt(100, 100), Time: at(0)})
	r.Handle(PointerEvent{PointerID: 2, Phase: PointerPhaseDown, Position: pt(200, 100), Time: at(5)})
	if r.Mode() != ModePinch {
		t.Fatalf("mode = %v, want pinch", r.Mode())
	}
	if rec.pinch.Distance != 100 || rec.pinch.Focal != pt(150, 100) {
		t.Errorf("pinch start = %+v", rec.pinch)
	}

	r.Handle(PointerEvent{PointerID: 2, Phase: PointerPhaseMove, Position: pt(300, 100), Time: at(20)})
	if math.Abs(rec.pinch.Scale-2) > 1e-9 {
		t.Errorf("pinch scale = %v, want 2", rec.pinch.Scale)
	}
	if rec.pinch.InitialFocal != pt(150, 100) || rec.pinch.Focal != pt(200, 100) {
		t.Errorf("focal tracking = %+v", rec.pinch)
	}

	r.Handle(PointerEvent{PointerID: 2, Phase: PointerPhaseUp, Position: pt(300, 100), Time: at(30)})
	if r.Mode() != ModeDrag {
		t.Fatalf("mode after lifting one finger = %v, want drag", r.Mode())
	}
	if rec.last() != "drag-resume" {
		t.Errorf("last event = %q, want drag-resume", rec.last())
	}

	r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseUp, Position: pt(100, 100), Time: at(40)})
	if rec.last() != "drag-end" {
		t.Errorf("a pinch that ends in place must not register as a tap, got %q", rec.last())
	}
}

func TestRecognizer_ZeroDistancePinchReportsUnitScale(t *testing.T) {
	r, rec := newRecorded()
	r.Handle(PointerEvent{PointerID: 1, Phase: PointerPhaseDown, Position: pt(50, 50), Time: at(0)})
	r.Handle(PointerEvent{PointerID: 2, Phase: PointerPhaseDown, Position: pt(50, 50), Time: at(0)})
	r.Handle(PointerEvent{PointerID: 2, Phase: PointerPhaseMove, Position: pt(90, 50), Time: at(16)})
	if rec.pinch.Scale != 1 {
		t.Errorf("scale = %v, want 1 when starting distance is zero", rec.pinch.Scale)
	}
}

func TestRecognizer_IgnoresUnknownPointers(t *testing.T) {
	r, rec := newRecorded()
	r.Handle(PointerEvent{PointerID: 9, Phase: PointerPhaseMove, Position: pt(1, 1), Time: at(0)})
	r.Handle(PointerEvent{PointerID: 9, Phase: PointerPhaseUp, Position: pt(1, 1), Time: at(1)})
	if len(rec.events) != 0 {
		t.Errorf("hover events produced callbacks: %v", rec.events)
	}
}
