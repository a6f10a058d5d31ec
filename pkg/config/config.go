// Package config loads the optional preview.yaml tuning file.
//
// A file only needs the keys it changes; everything else keeps the value
// from preview.DefaultTuning:
//
//	version: v1
//	tuning:
//	  max_scale: 8
//	  slide_duration: 250ms
//	display:
//	  show_thumbnails: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/preview/pkg/preview"
)

// FileName is the file Load looks for.
const FileName = "preview.yaml"

// SupportedMajor is the schema major version this package reads.
const SupportedMajor = "v1"

var (
	// ErrUnsupportedVersion is returned for files written for another major
	// schema version.
	ErrUnsupportedVersion = errors.New("unsupported config version")
	// ErrInvalid is returned when a file decodes but its values are
	// inconsistent.
	ErrInvalid = errors.New("invalid config")
)

// File is the decoded preview.yaml.
type File struct {
	Version string         `yaml:"version"`
	Tuning  preview.Tuning `yaml:"tuning"`
	Display DisplayConfig  `yaml:"display,omitempty"`
	Toolbar ToolbarConfig  `yaml:"toolbar,omitempty"`
}

// DisplayConfig toggles the built-in chrome. Unset keys keep it visible.
type DisplayConfig struct {
	ShowNavigation *bool `yaml:"show_navigation,omitempty"`
	ShowCounter    *bool `yaml:"show_counter,omitempty"`
	ShowThumbnails *bool `yaml:"show_thumbnails,omitempty"`
	ShowToolbar    *bool `yaml:"show_toolbar,omitempty"`
}

// ToolbarConfig toggles toolbar groups. Unset keys keep them visible.
type ToolbarConfig struct {
	ShowZoom   *bool `yaml:"show_zoom,omitempty"`
	ShowRotate *bool `yaml:"show_rotate,omitempty"`
	ShowFlip   *bool `yaml:"show_flip,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *File {
	return &File{Version: SupportedMajor, Tuning: preview.DefaultTuning()}
}

// Load reads FileName from dir. A missing file yields Default.
func Load(dir string) (*File, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads the file at path. A missing file yields Default.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse decodes data over Default. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := Default()
	f.Version = ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	version, err := normalizeVersion(f.Version)
	if err != nil {
		return nil, err
	}
	f.Version = version

	if err := f.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return f, nil
}

// normalizeVersion accepts "1", "v1", "1.2" and full semver strings. An empty
// version means the current schema.
func normalizeVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return SupportedMajor, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return "", fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return v, nil
}

// Apply copies the file's settings into opts.
func (f *File) Apply(opts *preview.Options) {
	tuning := f.Tuning
	opts.Tuning = &tuning
	opts.Display = preview.Display{
		HideNavigation: hidden(f.Display.ShowNavigation),
		HideCounter:    hidden(f.Display.ShowCounter),
		HideThumbnails: hidden(f.Display.ShowThumbnails),
		HideToolbar:    hidden(f.Display.ShowToolbar),
	}
	opts.Toolbar = preview.ToolbarConfig{
		HideZoom:   hidden(f.Toolbar.ShowZoom),
		HideRotate: hidden(f.Toolbar.ShowRotate),
		HideFlip:   hidden(f.Toolbar.ShowFlip),
	}
}

func hidden(show *bool) bool {
	return show != nil && !*show
}

// Marshal encodes f as YAML.
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
