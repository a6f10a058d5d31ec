package preview

import (
	"math"
	"time"

	"github.com/go-drift/preview/pkg/graphics"
)

// Constraints bound the translation of the current item. Known is false when
// the viewport or image has not been laid out; callers then pass values
// through unclamped.
type Constraints struct {
	MaxX  float64
	MaxY  float64
	Known bool
}

// ComputeConstraints returns the translation bounds for an image of the given
// rendered size shown at scale and rotate degrees inside viewport. A quarter
// turn swaps the effective width and height.
func ComputeConstraints(viewport, image graphics.Size, scale float64, rotate int) Constraints {
	if viewport.IsEmpty() || image.IsEmpty() {
		return Constraints{}
	}
	w, h := image.Width, image.Height
	if quarterTurn(rotate) {
		w, h = h, w
	}
	return Constraints{
		MaxX:  math.Max(0, (w*scale-viewport.Width)/2),
		MaxY:  math.Max(0, (h*scale-viewport.Height)/2),
		Known: true,
	}
}

func quarterTurn(rotate int) bool {
	r := rotate % 180
	return r == 90 || r == -90
}

// Clamp hard-limits t to the bounds. An axis whose content fits the viewport
// is forced to the center.
func (c Constraints) Clamp(t graphics.Offset) graphics.Offset {
	if !c.Known {
		return t
	}
	return graphics.Offset{X: clampAxis(t.X, c.MaxX), Y: clampAxis(t.Y, c.MaxY)}
}

// RubberBand damps the part of t beyond the bounds by factor.
func (c Constraints) RubberBand(t graphics.Offset, factor float64) graphics.Offset {
	if !c.Known {
		return t
	}
	return graphics.Offset{X: rubberBandAxis(t.X, c.MaxX, factor), Y: rubberBandAxis(t.Y, c.MaxY, factor)}
}

// Contains reports whether t is within bounds.
func (c Constraints) Contains(t graphics.Offset) bool {
	if !c.Known {
		return true
	}
	return math.Abs(t.X) <= c.MaxX && math.Abs(t.Y) <= c.MaxY
}

func clampAxis(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Max(-limit, math.Min(limit, v))
}

func rubberBandAxis(v, limit, factor float64) float64 {
	switch {
	case v > limit:
		return limit + (v-limit)*factor
	case v < -limit:
		return -limit + (v+limit)*factor
	}
	return v
}

func clampScale(s float64, t Tuning) float64 {
	return math.Max(t.MinScale, math.Min(t.MaxScale, s))
}

// focalTranslate returns the translation that keeps the content under focal
// fixed while scale changes from s0 to s1. All points are relative to the
// viewport center.
func focalTranslate(focal, t0 graphics.Offset, s0, s1 float64) graphics.Offset {
	if s0 == 0 {
		return t0
	}
	return focal.Sub(focal.Sub(t0).Scale(s1 / s0))
}

// inertia integrates release velocity with exponential time-based friction.
type inertia struct {
	velocity graphics.Offset
	last     time.Duration
}

func newInertia(v graphics.Offset, t Tuning) *inertia {
	clamp := func(x float64) float64 {
		return math.Max(-t.MaxVelocity, math.Min(t.MaxVelocity, x))
	}
	return &inertia{velocity: graphics.Offset{X: clamp(v.X), Y: clamp(v.Y)}}
}

// step advances to elapsed and returns the new translation and whether the
// motion has come to rest.
func (in *inertia) step(elapsed time.Duration, pos graphics.Offset, c Constraints, t Tuning) (graphics.Offset, bool) {
	dt := min(elapsed-in.last, t.MaxFrameDelta)
	in.last = elapsed
	if dt <= 0 {
		return pos, in.resting(t)
	}
	ms := float64(dt) / float64(time.Millisecond)
	friction := math.Pow(t.Friction, ms/16)
	in.velocity = in.velocity.Scale(friction)

	next := pos.Add(in.velocity.Scale(ms))
	if c.Known {
		if next.X > c.MaxX || next.X < -c.MaxX {
			next.X = clampAxis(next.X, c.MaxX)
			in.velocity.X = 0
		}
		if next.Y > c.MaxY || next.Y < -c.MaxY {
			next.Y = clampAxis(next.Y, c.MaxY)
			in.velocity.Y = 0
		}
	}
	return next, in.resting(t)
}

func (in *inertia) resting(t Tuning) bool {
	return math.Abs(in.velocity.X) <= t.VelocityThreshold && math.Abs(in.velocity.Y) <= t.VelocityThreshold
}
