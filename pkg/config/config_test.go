package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/preview/pkg/preview"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), f); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := writeConfig(t, `
version: v1.2.0
tuning:
  max_scale: 8
  slide_duration: 250ms
display:
  show_thumbnails: false
toolbar:
  show_flip: false
`)
	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := preview.DefaultTuning()
	want.MaxScale = 8
	want.SlideDuration = 250 * time.Millisecond
	if diff := cmp.Diff(want, f.Tuning); diff != "" {
		t.Errorf("tuning mismatch (-want +got):\n%s", diff)
	}
	if f.Version != "v1.2.0" {
		t.Errorf("Version = %q", f.Version)
	}

	var opts preview.Options
	f.Apply(&opts)
	if opts.Tuning == nil || opts.Tuning.MaxScale != 8 {
		t.Errorf("Apply tuning = %+v", opts.Tuning)
	}
	wantDisplay := preview.Display{HideThumbnails: true}
	if opts.Display != wantDisplay {
		t.Errorf("Display = %+v, want %+v", opts.Display, wantDisplay)
	}
	wantToolbar := preview.ToolbarConfig{HideFlip: true}
	if opts.Toolbar != wantToolbar {
		t.Errorf("Toolbar = %+v, want %+v", opts.Toolbar, wantToolbar)
	}
}

func TestParse_EmptyAndCommentOnly(t *testing.T) {
	for _, body := range []string{"", "# nothing here\n"} {
		f, err := Parse([]byte(body))
		if err != nil {
			t.Fatalf("Parse(%q): %v", body, err)
		}
		if diff := cmp.Diff(Default(), f); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", body, diff)
		}
	}
}

func TestParse_Versions(t *testing.T) {
	tests := []struct {
		version string
		want    string
		wantErr error
	}{
		{"1", "v1", nil},
		{"v1", "v1", nil},
		{"1.4", "v1.4", nil},
		{"v1.0.3", "v1.0.3", nil},
		{"v2.0.0", "", ErrUnsupportedVersion},
		{"0.9", "", ErrUnsupportedVersion},
		{"latest", "", ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			f, err := Parse([]byte("version: \"" + tt.version + "\"\n"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if f.Version != tt.want {
				t.Errorf("Version = %q, want %q", f.Version, tt.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		substr  string
	}{
		{"unknown key", "tuning:\n  max_zoom: 3\n", nil, "max_zoom"},
		{"bad duration", "tuning:\n  snap_duration: soon\n", nil, "soon"},
		{"friction out of range", "tuning:\n  friction: 1.5\n", ErrInvalid, "friction"},
		{"inverted scale range", "tuning:\n  min_scale: 2\n  max_scale: 1.5\n", ErrInvalid, "scale range"},
		{"zero duration", "tuning:\n  close_settle: 0s\n", ErrInvalid, "close_settle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("err = %q, want it to mention %q", err, tt.substr)
			}
		})
	}
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	dir := writeConfig(t, "version: v3\n")
	_, err := Load(dir)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(err.Error(), FileName+": ") {
		t.Errorf("err = %q, want it prefixed with the file name", err)
	}
}

func TestMarshal_DurationsAreReadable(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "slide_duration: 350ms") {
		t.Errorf("durations not encoded as strings:\n%s", data)
	}
	if strings.Contains(string(data), "display:") {
		t.Errorf("empty display section encoded:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(Default())): %v", err)
	}
	if diff := cmp.Diff(Default(), back); diff != "" {
		t.Errorf("reparsed config mismatch (-want +got):\n%s", diff)
	}
}
