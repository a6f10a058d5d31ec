// Package gestures turns raw pointer samples into pan, pinch, tap and
// double-tap intents.
//
// A [Recognizer] consumes [PointerEvent] values in arrival order and reports
// intents through its callbacks. It keeps the short rolling history needed
// for release velocity ([VelocityTracker]) and the last tap needed for
// double-tap detection ([DoubleTapDetector]). It never touches transform
// state; interpreting an intent is the caller's job.
package gestures

import (
	"fmt"
	"time"

	"github.com/go-drift/preview/pkg/graphics"
)

// PointerPhase describes where a pointer is in its down/move/up lifecycle.
type PointerPhase int

const (
	// PointerPhaseDown is sent when a finger touches or a button is pressed.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove is sent while the pointer is down and moving.
	PointerPhaseMove
	// PointerPhaseUp is sent when the pointer is released.
	PointerPhaseUp
	// PointerPhaseCancel is sent when the platform takes the pointer away.
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerKind identifies the input device.
type PointerKind int

const (
	// PointerKindTouch is a finger on a touch screen.
	PointerKindTouch PointerKind = iota
	// PointerKindMouse is a mouse with its primary button held.
	PointerKindMouse
	// PointerKindPen is a stylus.
	PointerKindPen
)

func (k PointerKind) String() string {
	switch k {
	case PointerKindTouch:
		return "touch"
	case PointerKindMouse:
		return "mouse"
	case PointerKindPen:
		return "pen"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerEvent is a single raw pointer sample in viewport coordinates.
type PointerEvent struct {
	PointerID int64
	Kind      PointerKind
	Phase     PointerPhase
	Position  graphics.Offset
	// Time stamps the sample. Zero means "now" on the animation clock.
	Time time.Time
}

// ScrollEvent is a wheel or trackpad scroll at Position.
type ScrollEvent struct {
	Position graphics.Offset
	// Delta is the scroll amount in pixels; positive Y scrolls down.
	Delta graphics.Offset
	Time  time.Time
}

// LockDirection is the axis a single-finger drag committed to.
type LockDirection int

const (
	// LockNone means the drag has not moved far enough to pick an axis.
	LockNone LockDirection = iota
	// LockHorizontal commits the drag to swipe navigation.
	LockHorizontal
	// LockVertical commits the drag to pull-to-dismiss.
	LockVertical
)

func (d LockDirection) String() string {
	switch d {
	case LockNone:
		return "none"
	case LockHorizontal:
		return "horizontal"
	case LockVertical:
		return "vertical"
	default:
		return fmt.Sprintf("LockDirection(%d)", int(d))
	}
}

// ResolveLock decides the drag axis from the displacement since the drag
// started. It returns LockNone until either axis exceeds threshold; after
// that the drag is vertical when |dy| > ratio*|dx| and horizontal otherwise.
func ResolveLock(total graphics.Offset, threshold, ratio float64) LockDirection {
	dx, dy := abs(total.X), abs(total.Y)
	if dx <= threshold && dy <= threshold {
		return LockNone
	}
	if dy > ratio*dx {
		return LockVertical
	}
	return LockHorizontal
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
