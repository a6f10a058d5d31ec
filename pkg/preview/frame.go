package preview

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
)

// Slot is one entry of the active buffer.
type Slot struct {
	Item  Item
	Index int
	// Offset is -1 for the previous item, 0 for the current and 1 for the next.
	Offset int
}

// ActiveBuffer returns the previous, current and next items around current.
// It never wraps: the first item has no previous slot and the last has no
// next slot.
func ActiveBuffer(items []Item, current int) []Slot {
	if current < 0 || current >= len(items) {
		return nil
	}
	slots := make([]Slot, 0, 3)
	for offset := -1; offset <= 1; offset++ {
		i := current + offset
		if i < 0 || i >= len(items) {
			continue
		}
		slots = append(slots, Slot{Item: items[i], Index: i, Offset: offset})
	}
	return slots
}

// EntryOverride describes a running entry animation: the current item starts
// at the opener rectangle and settles into its final rectangle.
type EntryOverride struct {
	// Delta is the opener center minus the final center.
	Delta  graphics.Offset
	ScaleX float64
	ScaleY float64
	// Progress runs from 0 (at the opener) to 1 (settled).
	Progress float64
}

// newEntryOverride inverts the final rectangle onto the opener rectangle.
func newEntryOverride(opener, final graphics.Rect) *EntryOverride {
	if opener.IsEmpty() || final.IsEmpty() {
		return nil
	}
	return &EntryOverride{
		Delta:  opener.Center().Sub(final.Center()),
		ScaleX: opener.Width() / final.Width(),
		ScaleY: opener.Height() / final.Height(),
	}
}

// FrameEnv carries the per-session inputs to ComputeFrame that are not part
// of State.
type FrameEnv struct {
	Viewport graphics.Size
	Tuning   Tuning
	Toolbar  ToolbarConfig
	Display  Display
	// Entry is non-nil while the entry animation runs.
	Entry *EntryOverride
	// Opacity fades the whole overlay while closing; 1 when fully shown.
	Opacity          float64
	Animating        bool
	Content          any
	ToolbarExtension any
}

// Layer is the render description of one buffered item. Transform is a CSS
// transform applied about the element center; Matrix is the same transform
// as an affine matrix.
type Layer struct {
	Item      Item
	Index     int
	Offset    int
	Srcset    string
	Transform string
	Matrix    graphics.Affine
	Current   bool
}

// Frame is everything a host needs to paint one frame.
type Frame struct {
	Layers  []Layer
	Phase   Phase
	Counter string
	HasPrev bool
	HasNext bool

	ShowNavigation bool
	ShowCounter    bool
	ShowThumbnails bool
	ShowToolbar    bool
	ShowZoom       bool
	ShowRotate     bool
	ShowFlip       bool

	Loading   bool
	Error     bool
	Opacity   float64
	Animating bool

	Content          any
	ToolbarExtension any
}

// Current returns the layer of the current item.
func (f Frame) Current() (Layer, bool) {
	for _, l := range f.Layers {
		if l.Current {
			return l, true
		}
	}
	return Layer{}, false
}

// ComputeFrame derives the render description from state. It has no side
// effects.
func ComputeFrame(s State, env FrameEnv) Frame {
	multi := len(s.Items) > 1
	f := Frame{
		Phase:          s.Phase,
		HasPrev:        s.CurrentIndex > 0,
		HasNext:        s.CurrentIndex < len(s.Items)-1,
		ShowNavigation: multi && !env.Display.HideNavigation,
		ShowCounter:    multi && !env.Display.HideCounter,
		ShowThumbnails: multi && !env.Display.HideThumbnails,
		ShowToolbar:    !env.Display.HideToolbar,
		ShowZoom:       !env.Toolbar.HideZoom,
		ShowRotate:     !env.Toolbar.HideRotate,
		ShowFlip:       !env.Toolbar.HideFlip,
		Loading:        s.Loading,
		Error:          s.Error,
		Opacity:        env.Opacity,
		Animating:      env.Animating || env.Entry != nil,

		Content:          env.Content,
		ToolbarExtension: env.ToolbarExtension,
	}
	if len(s.Items) > 0 {
		f.Counter = strconv.Itoa(s.CurrentIndex+1) + " / " + strconv.Itoa(len(s.Items))
	}

	stride := env.Viewport.Width + env.Tuning.SlideSpacing
	collapse := s.Lock == gestures.LockVertical || s.Phase == PhaseClosing
	for _, slot := range ActiveBuffer(s.Items, s.CurrentIndex) {
		layer := Layer{
			Item:    slot.Item,
			Index:   slot.Index,
			Offset:  slot.Offset,
			Srcset:  slot.Item.Srcset,
			Current: slot.Offset == 0,
		}
		if layer.Current {
			layer.Transform, layer.Matrix = currentTransform(s, env)
		} else {
			x := float64(slot.Offset)*stride + s.TranslateX
			scale := 1.0
			if collapse {
				x = float64(slot.Offset) * stride
				scale = 0
			}
			layer.Transform = buildTransform(x, 0, scale, scale)
			layer.Matrix = buildMatrix(x, 0, scale, scale, 0, 1, 1)
		}
		f.Layers = append(f.Layers, layer)
	}
	return f
}

func currentTransform(s State, env FrameEnv) (string, graphics.Affine) {
	if e := env.Entry; e != nil {
		t := e.Progress
		x := e.Delta.X * (1 - t)
		y := e.Delta.Y * (1 - t)
		sx := animation.LerpFloat64(e.ScaleX, 1, t)
		sy := animation.LerpFloat64(e.ScaleY, 1, t)
		return buildTransform(x, y, sx, sy), buildMatrix(x, y, sx, sy, 0, 1, 1)
	}

	fx, fy := 1.0, 1.0
	if s.FlipH {
		fx = -1
	}
	if s.FlipV {
		fy = -1
	}
	x, y, scale := s.TranslateX, s.TranslateY, s.Scale
	if s.atUnitScale() && (s.Phase == PhaseClosing || (s.Phase == PhaseDragging && s.Lock == gestures.LockVertical)) {
		scale, y = liquid(s.TranslateY, env.Tuning)
	}
	css := buildTransform(x, y, scale, scale) +
		" rotate(" + strconv.Itoa(s.Rotate) + "deg) scaleX(" + formatNumber(fx) + ") scaleY(" + formatNumber(fy) + ")"
	return css, buildMatrix(x, y, scale, scale, s.Rotate, fx, fy)
}

// liquid returns the shrunken scale and damped vertical offset for a pull of
// dy pixels.
func liquid(dy float64, t Tuning) (scale, y float64) {
	d := math.Abs(dy)
	scale = math.Max(t.LiquidFloor, 1-d/t.LiquidDivisor)
	y = math.Copysign(math.Pow(d, t.LiquidExponent), dy)
	return scale, y
}

func buildTransform(x, y, sx, sy float64) string {
	var b strings.Builder
	b.WriteString("translate3d(")
	b.WriteString(formatNumber(x))
	b.WriteString("px, ")
	b.WriteString(formatNumber(y))
	b.WriteString("px, 0) scale(")
	b.WriteString(formatNumber(sx))
	if sx != sy {
		b.WriteString(", ")
		b.WriteString(formatNumber(sy))
	}
	b.WriteString(")")
	return b.String()
}

// buildMatrix mirrors buildTransform: CSS applies the rightmost function
// first, so flips come first and translation last.
func buildMatrix(x, y, sx, sy float64, rotate int, fx, fy float64) graphics.Affine {
	return graphics.Translation(x, y).
		Mul(graphics.Scaling(sx, sy)).
		Mul(graphics.Rotation(float64(rotate))).
		Mul(graphics.Scaling(fx, fy))
}

// formatNumber rounds to three decimals and never prints negative zero.
func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
