// Package testing provides a test harness for the preview engine.
//
// # Quick Start
//
// Open a viewer, drive it with simulated input and assert on its state:
//
//	func TestSwipe(t *testing.T) {
//	    tester := previewtest.NewViewerTester(t, preview.Options{Items: items})
//
//	    tester.Drag(tester.Center(), graphics.Offset{X: -240})
//	    tester.PumpFor(400 * time.Millisecond)
//
//	    if tester.State().CurrentIndex != 1 {
//	        t.Error("expected the swipe to advance")
//	    }
//	}
//
// The tester installs a [FakeClock] as the animation clock, gives the viewer
// an 800x600 surface with an 800x400 image and routes engine logs to the
// test log.
//
// # Finding Layers
//
// Locate rendered slides in the current frame:
//
//	next := tester.Find(previewtest.ByOffset(1)).Transform()
//
// # Snapshot Testing
//
// Capture and compare frame snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/gallery.snapshot.json")
//
// Update snapshots with:
//
//	PREVIEW_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Control time for deterministic animation tests:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import previewtest "github.com/go-drift/preview/pkg/testing"
package testing
