package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/preview/pkg/preview"
)

// recordingT stands in for *testing.T so failures can be asserted on.
type recordingT struct {
	name   string
	fatals []string
	errs   []string
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return r.name }

func TestCaptureSnapshot_Golden(t *testing.T) {
	t.Setenv("PREVIEW_UPDATE_SNAPSHOTS", "")
	tester := NewViewerTester(t, preview.Options{Items: threeItems(), InitialIndex: 1})
	tester.CaptureSnapshot().MatchesFile(t, filepath.Join("testdata", "three_items.snapshot.json"))
}

func TestSnapshot_Diff(t *testing.T) {
	tester := NewViewerTester(t, preview.Options{Items: threeItems()})
	before := tester.CaptureSnapshot()

	if d := before.Diff(tester.CaptureSnapshot()); d != "" {
		t.Errorf("unchanged viewer produced a diff:\n%s", d)
	}

	tester.Viewer.RotateRight()
	if d := before.Diff(tester.CaptureSnapshot()); d == "" {
		t.Error("rotation produced no diff")
	}
}

func TestSnapshot_UpdateThenMatch(t *testing.T) {
	t.Setenv("PREVIEW_UPDATE_SNAPSHOTS", "")
	snap := NewViewerTester(t, preview.Options{Src: "a.jpg"}).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "nested", "single.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	rec := &recordingT{name: t.Name()}
	snap.MatchesFile(rec, path)
	if len(rec.fatals)+len(rec.errs) != 0 {
		t.Errorf("freshly written golden did not match: %v %v", rec.fatals, rec.errs)
	}
}

func TestSnapshot_MatchesFileFailures(t *testing.T) {
	t.Setenv("PREVIEW_UPDATE_SNAPSHOTS", "")
	tester := NewViewerTester(t, preview.Options{Items: threeItems()})
	golden := filepath.Join(t.TempDir(), "gallery.snapshot.json")
	if err := tester.CaptureSnapshot().UpdateFile(golden); err != nil {
		t.Fatal(err)
	}
	tester.Viewer.JumpTo(2)
	moved := tester.CaptureSnapshot()

	missing := &recordingT{name: t.Name()}
	moved.MatchesFile(missing, filepath.Join(t.TempDir(), "absent.json"))
	if len(missing.fatals) != 1 || !strings.Contains(missing.fatals[0], "PREVIEW_UPDATE_SNAPSHOTS=1") {
		t.Errorf("missing golden: fatals = %q", missing.fatals)
	}

	stale := &recordingT{name: t.Name()}
	moved.MatchesFile(stale, golden)
	if len(stale.fatals) != 0 || len(stale.errs) != 1 || !strings.Contains(stale.errs[0], "snapshot mismatch") {
		t.Errorf("stale golden: fatals = %q, errs = %q", stale.fatals, stale.errs)
	}
}

func TestSnapshot_UpdateModeWritesGolden(t *testing.T) {
	snap := NewViewerTester(t, preview.Options{Src: "a.jpg"}).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv("PREVIEW_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("golden not written in update mode: %v", err)
	}
}
