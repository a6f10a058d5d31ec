package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/preview/pkg/preview"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the render-relevant parts of a frame.
type Snapshot struct {
	Phase   string      `json:"phase"`
	Counter string      `json:"counter,omitempty"`
	Opacity float64     `json:"opacity"`
	Loading bool        `json:"loading,omitempty"`
	Error   bool        `json:"error,omitempty"`
	Chrome  []string    `json:"chrome,omitempty"`
	Layers  []LayerNode `json:"layers"`
}

// LayerNode is one rendered slide.
type LayerNode struct {
	Index     int    `json:"index"`
	Offset    int    `json:"offset"`
	Src       string `json:"src,omitempty"`
	Transform string `json:"transform"`
	Current   bool   `json:"current,omitempty"`
}

// CaptureSnapshot renders the viewer and captures the frame.
func (t *ViewerTester) CaptureSnapshot() *Snapshot {
	return SnapshotFrame(t.Viewer.Render())
}

// SnapshotFrame converts a frame into its serializable form.
func SnapshotFrame(f preview.Frame) *Snapshot {
	snap := &Snapshot{
		Phase:   f.Phase.String(),
		Counter: f.Counter,
		Opacity: round2(f.Opacity),
		Loading: f.Loading,
		Error:   f.Error,
		Layers:  []LayerNode{},
	}
	chrome := []struct {
		name  string
		shown bool
	}{
		{"navigation", f.ShowNavigation},
		{"counter", f.ShowCounter},
		{"thumbnails", f.ShowThumbnails},
		{"toolbar", f.ShowToolbar},
		{"zoom", f.ShowZoom},
		{"rotate", f.ShowRotate},
		{"flip", f.ShowFlip},
	}
	for _, c := range chrome {
		if c.shown {
			snap.Chrome = append(snap.Chrome, c.name)
		}
	}
	for _, l := range f.Layers {
		snap.Layers = append(snap.Layers, LayerNode{
			Index:     l.Index,
			Offset:    l.Offset,
			Src:       l.Item.Src,
			Transform: l.Transform,
			Current:   l.Current,
		})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When PREVIEW_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("PREVIEW_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: PREVIEW_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: PREVIEW_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
