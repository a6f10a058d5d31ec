package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/preview/pkg/graphics"
)

// Script is a recorded session: the surface, the items and the input to
// replay against them.
type Script struct {
	Viewport     Size     `yaml:"viewport"`
	Image        Size     `yaml:"image"`
	Items        []string `yaml:"items"`
	InitialIndex int      `yaml:"initial_index"`
	Opener       *Rect    `yaml:"opener,omitempty"`
	Steps        []Step   `yaml:"steps"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (s Size) graphics() graphics.Size {
	return graphics.Size{Width: s.Width, Height: s.Height}
}

// Rect is a box given by its top-left corner and size.
type Rect struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Point is written as a two-element sequence: [x, y].
type Point struct {
	X, Y float64
}

// UnmarshalYAML decodes [x, y].
func (p *Point) UnmarshalYAML(n *yaml.Node) error {
	var xy []float64
	if err := n.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: point needs exactly 2 coordinates, got %d", n.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) offset() graphics.Offset {
	return graphics.Offset{X: p.X, Y: p.Y}
}

// Step is one input. Exactly one field is set.
type Step struct {
	Drag      *Drag         `yaml:"drag,omitempty"`
	Pinch     *Pinch        `yaml:"pinch,omitempty"`
	Tap       *Point        `yaml:"tap,omitempty"`
	DoubleTap *Point        `yaml:"double_tap,omitempty"`
	Wheel     *Wheel        `yaml:"wheel,omitempty"`
	Key       string        `yaml:"key,omitempty"`
	Action    string        `yaml:"action,omitempty"`
	Load      bool          `yaml:"load,omitempty"`
	Fail      bool          `yaml:"fail,omitempty"`
	Wait      time.Duration `yaml:"wait,omitempty"`
}

// Drag presses at From, moves by By over Duration, optionally holds still
// and releases.
type Drag struct {
	From     Point         `yaml:"from"`
	By       Point         `yaml:"by"`
	Duration time.Duration `yaml:"duration"`
	Hold     time.Duration `yaml:"hold"`
	// Kind is touch (default), mouse or pen.
	Kind string `yaml:"kind"`
}

// Pinch spreads two fingers around Focal from one distance to another.
type Pinch struct {
	Focal    Point         `yaml:"focal"`
	From     float64       `yaml:"from"`
	To       float64       `yaml:"to"`
	Duration time.Duration `yaml:"duration"`
}

// Wheel is a single wheel notch.
type Wheel struct {
	At     Point   `yaml:"at"`
	DeltaY float64 `yaml:"delta_y"`
}

var actions = map[string]bool{
	"next": true, "prev": true, "close": true,
	"zoom_in": true, "zoom_out": true,
	"rotate_left": true, "rotate_right": true,
	"flip_horizontal": true, "flip_vertical": true,
	"reset": true,
}

// ErrInvalidScript is returned for scripts that decode but cannot run.
var ErrInvalidScript = errors.New("invalid script")

// ParseScript decodes a YAML script. Unknown keys are rejected; a missing
// viewport defaults to 800x600 with an 800x400 image.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{
		Viewport: Size{Width: 800, Height: 600},
		Image:    Size{Width: 800, Height: 400},
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidScript)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must have a positive size", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if n := st.kinds(); n != 1 {
			return fmt.Errorf("%w: step %d sets %d inputs, want 1", ErrInvalidScript, i+1, n)
		}
		if st.Action != "" && !actions[st.Action] {
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i+1, st.Action)
		}
		if st.Drag != nil {
			if _, err := pointerKind(st.Drag.Kind); err != nil {
				return fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i+1, err)
			}
		}
		if st.Pinch != nil && (st.Pinch.From <= 0 || st.Pinch.To <= 0) {
			return fmt.Errorf("%w: step %d: pinch distances must be positive", ErrInvalidScript, i+1)
		}
	}
	return nil
}

func (st Step) kinds() int {
	n := 0
	for _, set := range []bool{
		st.Drag != nil, st.Pinch != nil, st.Tap != nil, st.DoubleTap != nil,
		st.Wheel != nil, st.Key != "", st.Action != "", st.Load, st.Fail, st.Wait > 0,
	} {
		if set {
			n++
		}
	}
	return n
}
