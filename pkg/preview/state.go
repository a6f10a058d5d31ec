package preview

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
)

// Phase is the interaction state. Exactly one phase is active at a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhasePinching
	PhaseInertia
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhasePinching:
		return "pinching"
	case PhaseInertia:
		return "inertia"
	case PhaseClosing:
		return "closing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the authoritative record of one open session.
//
// TranslateX and TranslateY are offsets of the current item from the
// viewport center. At scale 1 during a drag they carry gesture-relative
// meaning (swipe or pull distance) rather than a clamped position.
type State struct {
	Items        []Item
	CurrentIndex int

	Scale      float64
	TranslateX float64
	TranslateY float64
	// Rotate is a multiple of 90 degrees, unbounded.
	Rotate int
	FlipH  bool
	FlipV  bool

	// Loaded is the set of item IDs that finished loading.
	Loaded  map[string]bool
	Loading bool
	Error   bool

	Phase    Phase
	Lock     gestures.LockDirection
	Velocity graphics.Offset
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Items = slices.Clone(s.Items)
	s.Loaded = maps.Clone(s.Loaded)
	return s
}

// Current returns the displayed item.
func (s State) Current() Item {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Items) {
		return Item{}
	}
	return s.Items[s.CurrentIndex]
}

// Translate returns the translation as an offset.
func (s State) Translate() graphics.Offset {
	return graphics.Offset{X: s.TranslateX, Y: s.TranslateY}
}

// IsIdentity reports whether the transform is untouched.
func (s State) IsIdentity() bool {
	return s.Scale == 1 && s.TranslateX == 0 && s.TranslateY == 0 &&
		s.Rotate == 0 && !s.FlipH && !s.FlipV
}

func (s *State) resetTransform() {
	s.Scale = 1
	s.TranslateX = 0
	s.TranslateY = 0
	s.Rotate = 0
	s.FlipH = false
	s.FlipV = false
}

func (s *State) setTranslate(t graphics.Offset) {
	s.TranslateX = t.X
	s.TranslateY = t.Y
}

// atUnitScale reports whether the item is shown unzoomed, where drags mean
// swipe or dismiss rather than pan.
func (s State) atUnitScale() bool {
	return graphics.NearlyEqual(s.Scale, 1)
}

// Snapshot is the read-only view handed to custom content and toolbar slots.
type Snapshot struct {
	Src     string
	Index   int
	Count   int
	Scale   float64
	Rotate  int
	FlipH   bool
	FlipV   bool
	Loading bool
	Error   bool
}

func (s State) snapshot() Snapshot {
	return Snapshot{
		Src:     s.Current().Src,
		Index:   s.CurrentIndex,
		Count:   len(s.Items),
		Scale:   s.Scale,
		Rotate:  s.Rotate,
		FlipH:   s.FlipH,
		FlipV:   s.FlipV,
		Loading: s.Loading,
		Error:   s.Error,
	}
}
