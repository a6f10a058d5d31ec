package preview_test

import (
	"testing"
	"time"

	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
	previewtest "github.com/go-drift/preview/pkg/testing"
)

func TestDismiss_VerticalPullClosesAfterSettle(t *testing.T) {
	tester := previewtest.NewViewerTester(t, preview.Options{Items: abc(), InitialIndex: 1})
	tester.DragAndHold(tester.Center(), graphics.Offset{Y: 150}, 120*time.Millisecond)

	if got := tester.State().Phase; got != preview.PhaseClosing {
		t.Fatalf("Phase = %v, want closing", got)
	}
	tester.PumpFor(100 * time.Millisecond)
	if tester.CloseCount() != 0 {
		t.Error("OnClose fired before the fly-away finished")
	}
	if s := tester.State(); s.TranslateY <= 150 {
		t.Errorf("item should keep moving down, TranslateY = %v", s.TranslateY)
	}
	if f := tester.Viewer.Render(); f.Opacity >= 1 {
		t.Errorf("overlay should fade, opacity %v", f.Opacity)
	}

	tester.PumpFor(150 * time.Millisecond)
	if tester.CloseCount() != 1 {
		t.Errorf("CloseCount = %d, want 1", tester.CloseCount())
	}
	if got := tester.State().CurrentIndex; got != 1 {
		t.Errorf("dismissal changed the index to %d", got)
	}
}

func TestDismiss_FastFlickUp(t *testing.T) {
	tester := previewtest.NewViewerTester(t, preview.Options{Src: "a.jpg"})
	tester.Fling(tester.Center(), graphics.Offset{Y: -60}, 50*time.Millisecond)
	if got := tester.State().Phase; got != preview.PhaseClosing {
		t.Fatalf("Phase = %v, want closing", got)
	}
	tester.PumpFor(100 * time.Millisecond)
	if got := tester.State().TranslateY; got >= -60 {
		t.Errorf("item should fly up, TranslateY = %v", got)
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if tester.CloseCount() != 1 {
		t.Errorf("CloseCount = %d, want 1", tester.CloseCount())
	}
}

func TestDismiss_SmallPullSnapsBack(t *testing.T) {
	tester := previewtest.NewViewerTester(t, preview.Options{Src: "a.jpg"})
	tester.DragAndHold(tester.Center(), graphics.Offset{Y: 60}, 120*time.Millisecond)
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	s := tester.State()
	if s.Phase != preview.PhaseIdle || s.TranslateY != 0 || tester.CloseCount() != 0 {
		t.Errorf("phase=%v translateY=%v closed=%d", s.Phase, s.TranslateY, tester.CloseCount())
	}
}

func TestDismiss_NotWhileZoomed(t *testing.T) {
	tester := previewtest.NewViewerTester(t, preview.Options{Src: "a.jpg"})
	zoomToTwo(t, tester)
	tester.DragAndHold(tester.Center(), graphics.Offset{Y: 300}, 120*time.Millisecond)
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	s := tester.State()
	if s.Phase == preview.PhaseClosing || tester.CloseCount() != 0 {
		t.Fatal("a zoomed pan must not dismiss")
	}
	if s.TranslateY != 100 {
		t.Errorf("TranslateY = %v, want settled at the bound 100", s.TranslateY)
	}
}

func TestClose_FiresOnce(t *testing.T) {
	tests := []struct {
		name  string
		close func(*previewtest.ViewerTester)
	}{
		{"button", func(tt *previewtest.ViewerTester) { tt.Viewer.Close() }},
		{"escape", func(tt *previewtest.ViewerTester) { tt.Key("Escape") }},
		{"backdrop key", func(tt *previewtest.ViewerTester) {
			tt.Viewer.HandleKey(preview.KeyEvent{Key: "Enter", OnBackdrop: true})
		}},
		{"backdrop tap", func(tt *previewtest.ViewerTester) { tt.Tap(graphics.Offset{X: 400, Y: 40}) }},
		{"gesture", func(tt *previewtest.ViewerTester) {
			tt.DragAndHold(tt.Center(), graphics.Offset{Y: 150}, 120*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := previewtest.NewViewerTester(t, preview.Options{Items: abc()})
			tt.close(tester)
			tester.Viewer.Close()
			tester.Key("Escape")
			tester.PumpFor(100 * time.Millisecond)
			tester.Viewer.Close()
			tester.PumpFor(time.Second)
			tester.Viewer.Close()
			if tester.CloseCount() != 1 {
				t.Errorf("CloseCount = %d, want 1", tester.CloseCount())
			}
			if !tester.Viewer.IsClosed() || tester.Viewer.Render().Opacity != 0 {
				t.Error("viewer should be closed and transparent")
			}
		})
	}
}

func TestClose_DuringSlide(t *testing.T) {
	tester := previewtest.NewViewerTester(t, preview.Options{Items: abc()})
	tester.Viewer.Next()
	tester.PumpFor(50 * time.Millisecond)
	tester.Viewer.Close()
	tester.PumpFor(time.Second)
	if tester.CloseCount() != 1 {
		t.Errorf("CloseCount = %d, want 1", tester.CloseCount())
	}
	if got := tester.State().CurrentIndex; got != 0 {
		t.Errorf("interrupted slide still navigated to %d", got)
	}
}

func TestEntryAnimation_PlaysOnce(t *testing.T) {
	opener := graphics.RectFromLTWH(100, 100, 80, 40)
	tester := previewtest.NewViewerTester(t, preview.Options{Items: abc(), OpenerRect: &opener})

	tester.LoadCurrent()
	f := tester.Viewer.Render()
	cur, _ := f.Current()
	if want := "translate3d(-260px, -180px, 0) scale(0.1)"; cur.Transform != want {
		t.Errorf("entry start = %q, want %q", cur.Transform, want)
	}
	if !f.Animating {
		t.Error("entry frame should be animating")
	}

	tester.PumpFor(450 * time.Millisecond)
	identity := "translate3d(0px, 0px, 0) scale(1) rotate(0deg) scaleX(1) scaleY(1)"
	f = tester.Viewer.Render()
	cur, _ = f.Current()
	if cur.Transform != identity || f.Animating {
		t.Errorf("after entry transform=%q animating=%v", cur.Transform, f.Animating)
	}

	tester.LoadCurrent()
	cur, _ = tester.Viewer.Render().Current()
	if cur.Transform != identity {
		t.Errorf("entry replayed: %q", cur.Transform)
	}
}

func TestEntryAnimation_SkippedAfterNavigation(t *testing.T) {
	opener := graphics.RectFromLTWH(100, 100, 80, 40)
	tester := previewtest.NewViewerTester(t, preview.Options{Items: abc(), OpenerRect: &opener})
	tester.Viewer.JumpTo(1)
	tester.LoadCurrent()
	if tester.Viewer.Render().Animating {
		t.Error("entry animation should only play for the initially opened item")
	}
}

func TestEntryAnimation_InterruptedByGesture(t *testing.T) {
	opener := graphics.RectFromLTWH(100, 100, 80, 40)
	tester := previewtest.NewViewerTester(t, preview.Options{Src: "a.jpg", OpenerRect: &opener})
	tester.LoadCurrent()
	tester.PumpFor(100 * time.Millisecond)
	tester.DoubleTap(tester.Center())
	cur, _ := tester.Viewer.Render().Current()
	if want := "translate3d(0px, 0px, 0) scale(2) rotate(0deg) scaleX(1) scaleY(1)"; cur.Transform != want {
		t.Errorf("Transform = %q, want %q", cur.Transform, want)
	}
}
