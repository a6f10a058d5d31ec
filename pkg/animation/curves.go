package animation

import "math"

// LinearCurve is the identity easing.
func LinearCurve(t float64) float64 {
	return t
}

// Curves used by the preview engine, named after their CSS counterparts.
var (
	// EntryCurve decelerates a preview growing out of its thumbnail,
	// cubic-bezier(0.2, 0, 0.2, 1).
	EntryCurve = CubicBezier(0.2, 0.0, 0.2, 1.0)
	// EaseIn accelerates the close fade and fly-away, cubic-bezier(0.4, 0, 1, 1).
	EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)
	// EaseOut decelerates slides and snap-backs, cubic-bezier(0, 0, 0.2, 1).
	EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)
)

// bezier holds the polynomial coefficients of one axis of a unit cubic
// bezier: f(u) = ((a*u + b)*u + c)*u.
type bezier struct{ a, b, c float64 }

func newBezier(p1, p2 float64) bezier {
	c := 3 * p1
	b := 3*(p2-p1) - c
	return bezier{a: 1 - c - b, b: b, c: c}
}

func (z bezier) at(u float64) float64    { return ((z.a*u+z.b)*u + z.c) * u }
func (z bezier) slope(u float64) float64 { return (3*z.a*u+2*z.b)*u + z.c }

// CubicBezier returns the easing defined by CSS cubic-bezier(x1, y1, x2, y2).
// Progress outside (0, 1) is pinned to the endpoints.
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	xs, ys := newBezier(x1, x2), newBezier(y1, y2)
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return ys.at(solveX(xs, t))
	}
}

// solveX finds u with xs.at(u) == x: Newton steps first, bisection when the
// slope flattens out.
func solveX(xs bezier, x float64) float64 {
	const eps = 1e-7
	u := x
	for range 8 {
		d := xs.at(u) - x
		if math.Abs(d) < eps {
			return u
		}
		s := xs.slope(u)
		if math.Abs(s) < eps {
			break
		}
		u -= d / s
	}
	lo, hi := 0.0, 1.0
	u = min(max(u, lo), hi)
	for range 24 {
		d := xs.at(u) - x
		if math.Abs(d) < eps {
			break
		}
		if d > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}
