package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
)

const (
	// DefaultViewportWidth is the default logical width of the test viewport.
	DefaultViewportWidth = 800
	// DefaultViewportHeight is the default logical height of the test viewport.
	DefaultViewportHeight = 600
	// FrameDuration is how far the clock advances per pumped frame.
	FrameDuration = 16 * time.Millisecond
)

// DefaultImageSize is the rendered image size used when Options.Surface is
// nil: a landscape image letterboxed inside the viewport.
var DefaultImageSize = graphics.Size{Width: 800, Height: 400}

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// ViewerTester drives a preview.Viewer with a fake clock and simulated
// pointer input.
type ViewerTester struct {
	Viewer  *preview.Viewer
	Surface *preview.FixedSurface

	surface    preview.Surface
	clock      *FakeClock
	closeCount int
	nextID     int64
	pointers   map[int64]graphics.Offset
}

// NewViewerTester opens a viewer for the duration of the test. Options left
// empty get a fixed 800x600 surface, test logging and a close counter; a
// caller-supplied OnClose still runs.
func NewViewerTester(t testing.TB, opts preview.Options) *ViewerTester {
	t.Helper()
	tester := &ViewerTester{
		clock:    InstallFakeClock(t),
		pointers: make(map[int64]graphics.Offset),
	}
	if opts.Surface == nil {
		tester.Surface = &preview.FixedSurface{
			Viewport: graphics.Size{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
			Image:    DefaultImageSize,
		}
		opts.Surface = tester.Surface
	} else if fixed, ok := opts.Surface.(*preview.FixedSurface); ok {
		tester.Surface = fixed
	}
	tester.surface = opts.Surface
	if opts.Logger.GetSink() == nil {
		opts.Logger = testr.NewWithInterface(t, testr.Options{Verbosity: 1})
	}
	onClose := opts.OnClose
	opts.OnClose = func() {
		tester.closeCount++
		if onClose != nil {
			onClose()
		}
	}
	tester.Viewer = preview.New(opts)
	t.Cleanup(tester.Viewer.Dispose)
	return tester
}

// Clock returns the fake animation clock.
func (t *ViewerTester) Clock() *FakeClock {
	return t.clock
}

// CloseCount returns how many times OnClose has fired.
func (t *ViewerTester) CloseCount() int {
	return t.closeCount
}

// State returns a copy of the viewer state.
func (t *ViewerTester) State() preview.State {
	return t.Viewer.State()
}

// Center returns the viewport center in viewport coordinates.
func (t *ViewerTester) Center() graphics.Offset {
	return t.surface.ViewportSize().Center()
}

// Pump steps the frame loop once without advancing the clock.
func (t *ViewerTester) Pump() {
	animation.StepTickers()
}

// Frame advances the clock by one frame and steps the frame loop.
func (t *ViewerTester) Frame() {
	t.clock.Advance(FrameDuration)
	animation.StepTickers()
}

// PumpFor runs frames until d has elapsed.
func (t *ViewerTester) PumpFor(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameDuration {
		t.Frame()
	}
}

// PumpAndSettle runs frames until no ticker or timer is pending or the
// timeout is reached.
func (t *ViewerTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !animation.HasActiveTickers() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}
