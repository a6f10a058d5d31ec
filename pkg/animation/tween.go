package animation

import "github.com/go-drift/preview/pkg/graphics"

// Tween maps controller progress onto the range From..To.
type Tween[T any] struct {
	From, To T
	lerp     func(a, b T, t float64) T
}

// Evaluate returns the value at progress t. t is not clamped, so overshooting
// curves overshoot the range too.
func (tw *Tween[T]) Evaluate(t float64) T {
	return tw.lerp(tw.From, tw.To, t)
}

// Transform returns the value at the controller's current progress.
func (tw *Tween[T]) Transform(c *AnimationController) T {
	return tw.Evaluate(c.Value)
}

func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return a.Add(b.Sub(a).Scale(t))
}

// TweenFloat64 tweens a scale, an opacity or a single translate axis.
func TweenFloat64(from, to float64) *Tween[float64] {
	return &Tween[float64]{From: from, To: to, lerp: LerpFloat64}
}

// TweenOffset tweens a 2D translation.
func TweenOffset(from, to graphics.Offset) *Tween[graphics.Offset] {
	return &Tween[graphics.Offset]{From: from, To: to, lerp: LerpOffset}
}
