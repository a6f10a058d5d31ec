package graphics

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine matrix in row-major order with an implicit
// bottom row of [0 0 1]:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine f64.Aff3

// Identity returns the identity matrix.
func Identity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// Translation returns a matrix translating by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{1, 0, dx, 0, 1, dy}
}

// Scaling returns a matrix scaling by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Rotation returns a matrix rotating clockwise (screen coordinates, y down)
// by the given number of degrees about the origin.
func Rotation(degrees float64) Affine {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	// Snap quarter turns so 90° multiples stay exact.
	sin, cos = snapUnit(sin), snapUnit(cos)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// Mul returns a·b, the transform that applies b first and then a.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Then is shorthand for next.Mul(a): a is applied first.
func (a Affine) Then(next Affine) Affine {
	return next.Mul(a)
}

// Apply transforms the point p.
func (a Affine) Apply(p Offset) Offset {
	return Offset{
		X: a[0]*p.X + a[1]*p.Y + a[2],
		Y: a[3]*p.X + a[4]*p.Y + a[5],
	}
}

// Aff3 returns the matrix as the x/image representation, suitable for
// golang.org/x/image/draw transformers.
func (a Affine) Aff3() f64.Aff3 {
	return f64.Aff3(a)
}

func snapUnit(v float64) float64 {
	switch {
	case math.Abs(v) < 1e-12:
		return 0
	case math.Abs(v-1) < 1e-12:
		return 1
	case math.Abs(v+1) < 1e-12:
		return -1
	}
	return v
}
