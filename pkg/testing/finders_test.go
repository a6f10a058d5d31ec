package testing

import (
	"testing"

	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
)

func threeItems() []preview.Item {
	return []preview.Item{{Src: "a.jpg"}, {Src: "b.jpg"}, {Src: "c.jpg"}}
}

func TestBySrc(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems(), InitialIndex: 1})

	result := tester.Find(BySrc("c.jpg"))
	if !result.Exists() {
		t.Fatal("expected to find c.jpg")
	}
	if got := result.First().Offset; got != 1 {
		t.Errorf("offset = %d, want 1", got)
	}
	if tester.Find(BySrc("z.jpg")).Exists() {
		t.Error("should not find z.jpg")
	}
}

func TestByOffsetAndIndex(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems()})

	if tester.Find(ByOffset(-1)).Exists() {
		t.Error("first item has no previous layer")
	}
	if got := tester.Find(ByIndex(1)).First().Offset; got != 1 {
		t.Errorf("index 1 at offset %d", got)
	}
	if got := tester.Find(ByOffset(1)).Transform(); got != "translate3d(820px, 0px, 0) scale(1)" {
		t.Errorf("next transform = %q", got)
	}
}

func TestCurrentFinder(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems(), InitialIndex: 2})
	cur := tester.Find(Current())
	if cur.Count() != 1 || cur.First().Item.Src != "c.jpg" {
		t.Errorf("current = %+v", cur.All())
	}
}

func TestByTransformContaining(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems(), InitialIndex: 1})
	id := tester.DragTo(tester.Center(), graphics.Offset{Y: 120}, gestures.PointerKindTouch)
	defer tester.Cancel(id, gestures.PointerKindTouch)

	if got := tester.Find(ByTransformContaining("scale(0)")).Count(); got != 2 {
		t.Errorf("collapsed neighbors = %d, want 2", got)
	}
}

func TestByPredicate(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems(), InitialIndex: 1})
	neighbors := tester.Find(ByPredicate(func(l preview.Layer) bool { return !l.Current }, "neighbors"))
	if neighbors.Count() != 2 {
		t.Errorf("neighbors = %d, want 2", neighbors.Count())
	}
	if got := neighbors.At(1).Item.Src; got != "c.jpg" {
		t.Errorf("At(1) = %q", got)
	}
}

func TestFinderResult_FirstPanicsWhenEmpty(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Src: "a.jpg"})
	defer func() {
		if recover() == nil {
			t.Error("expected First to panic on an empty result")
		}
	}()
	tester.Find(ByOffset(1)).First()
}

func TestFindIn(t *testing.T) {
	s := preview.State{Items: threeItems(), Scale: 1}
	f := preview.ComputeFrame(s, preview.FrameEnv{
		Viewport: graphics.Size{Width: 400, Height: 300},
		Tuning:   preview.DefaultTuning(),
	})
	if got := FindIn(f, ByOffset(1)).Transform(); got != "translate3d(420px, 0px, 0) scale(1)" {
		t.Errorf("transform = %q", got)
	}
}
