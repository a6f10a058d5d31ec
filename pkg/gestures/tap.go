package gestures

import (
	"time"

	"github.com/go-drift/preview/pkg/graphics"
)

const (
	// DefaultDoubleTapWindow is the longest gap between two taps of a double tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultDoubleTapSlop is how far apart the two taps may land.
	DefaultDoubleTapSlop = 30.0
)

// DoubleTapDetector pairs consecutive taps into double taps.
type DoubleTapDetector struct {
	Window time.Duration
	Slop   float64

	armed   bool
	lastAt  time.Time
	lastPos graphics.Offset
}

// Tap records a tap and reports whether it completes a double tap. A
// completed double tap disarms the detector so a third tap starts over.
func (d *DoubleTapDetector) Tap(pos graphics.Offset, at time.Time) bool {
	window, slop := d.Window, d.Slop
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	if slop <= 0 {
		slop = DefaultDoubleTapSlop
	}
	if d.armed && at.Sub(d.lastAt) <= window && pos.Sub(d.lastPos).Distance() <= slop {
		d.armed = false
		return true
	}
	d.armed = true
	d.lastAt = at
	d.lastPos = pos
	return false
}

// Reset forgets any pending first tap.
func (d *DoubleTapDetector) Reset() {
	d.armed = false
}
