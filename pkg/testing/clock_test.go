package testing

import (
	"testing"
	"time"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/preview"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
	if clk.Since() != 100*time.Millisecond {
		t.Errorf("Since = %v", clk.Since())
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestInstallFakeClock_DrivesAnimationClock(t *testing.T) {
	clk := InstallFakeClock(t)
	if !animation.Now().Equal(Epoch) {
		t.Fatalf("animation clock = %v, want Epoch", animation.Now())
	}
	clk.Advance(time.Second)
	if got := animation.Now().Sub(Epoch); got != time.Second {
		t.Errorf("animation clock advanced %v, want 1s", got)
	}
}

func TestViewerTester_Clock(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Src: "a.jpg"})
	clk := tester.Clock()

	if clk == nil {
		t.Fatal("expected non-nil clock")
	}

	start := clk.Now()
	clk.Advance(500 * time.Millisecond)
	if clk.Now().Sub(start) != 500*time.Millisecond {
		t.Error("clock advancement not reflected")
	}
}

func TestSlide_FollowsClock(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: []preview.Item{{Src: "a"}, {Src: "b"}}})
	tester.Viewer.Next()

	// Nothing moves until a frame is stepped.
	tester.Clock().Advance(100 * time.Millisecond)
	if got := tester.State().TranslateX; got != 0 {
		t.Errorf("moved without a frame: %v", got)
	}
	tester.Pump()
	mid := tester.State().TranslateX
	if mid >= 0 || mid <= -820 {
		t.Errorf("mid-slide TranslateX = %v, want in (-820, 0)", mid)
	}

	tester.Clock().Advance(time.Second)
	tester.Pump()
	if got := tester.State().CurrentIndex; got != 1 {
		t.Errorf("CurrentIndex = %d after the slide window", got)
	}
}

func TestPumpAndSettle_Slide(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: []preview.Item{{Src: "a"}, {Src: "b"}}})
	tester.Viewer.Next()

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Errorf("expected settle after slide completes, got: %v", err)
	}
	if tester.Clock().Since() < 350*time.Millisecond {
		t.Errorf("settled too early at %v", tester.Clock().Since())
	}
}
