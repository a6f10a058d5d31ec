package gestures

import (
	"math"
	"time"

	"github.com/go-drift/preview/pkg/graphics"
)

const (
	// DefaultHistoryWindow is how long a sample stays relevant for velocity.
	DefaultHistoryWindow = 100 * time.Millisecond
	// DefaultHistoryCap bounds the number of retained samples.
	DefaultHistoryCap = 20
)

// Sample is one timestamped pointer position.
type Sample struct {
	Position graphics.Offset
	Time     time.Time
}

// VelocityTracker keeps a short time-windowed history of positions and
// estimates release velocity from its oldest and newest samples.
// The zero value uses DefaultHistoryWindow and DefaultHistoryCap.
type VelocityTracker struct {
	Window time.Duration
	Cap    int

	samples []Sample
}

// Reset drops all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Add records a sample and prunes the ones that fell out of the window.
func (v *VelocityTracker) Add(pos graphics.Offset, at time.Time) {
	v.samples = append(v.samples, Sample{Position: pos, Time: at})
	v.prune(at)
	if limit := v.limit(); len(v.samples) > limit {
		v.samples = append(v.samples[:0], v.samples[len(v.samples)-limit:]...)
	}
}

// Len returns the number of retained samples.
func (v *VelocityTracker) Len() int {
	return len(v.samples)
}

// Samples returns a copy of the retained history, oldest first.
func (v *VelocityTracker) Samples() []Sample {
	out := make([]Sample, len(v.samples))
	copy(out, v.samples)
	return out
}

// Velocity returns the estimated velocity in pixels per millisecond as of
// now. Samples older than the window are discarded first; with fewer than
// two samples or no elapsed time the velocity is zero.
func (v *VelocityTracker) Velocity(now time.Time) graphics.Offset {
	v.prune(now)
	if len(v.samples) < 2 {
		return graphics.Offset{}
	}
	oldest := v.samples[0]
	newest := v.samples[len(v.samples)-1]
	dt := float64(newest.Time.Sub(oldest.Time)) / float64(time.Millisecond)
	if dt <= 0 {
		return graphics.Offset{}
	}
	vel := newest.Position.Sub(oldest.Position).Scale(1 / dt)
	if math.IsNaN(vel.X) || math.IsInf(vel.X, 0) || math.IsNaN(vel.Y) || math.IsInf(vel.Y, 0) {
		return graphics.Offset{}
	}
	return vel
}

func (v *VelocityTracker) prune(now time.Time) {
	cutoff := now.Add(-v.window())
	i := 0
	for i < len(v.samples) && v.samples[i].Time.Before(cutoff) {
		i++
	}
	if i > 0 {
		v.samples = append(v.samples[:0], v.samples[i:]...)
	}
}

func (v *VelocityTracker) window() time.Duration {
	if v.Window > 0 {
		return v.Window
	}
	return DefaultHistoryWindow
}

func (v *VelocityTracker) limit() int {
	if v.Cap > 0 {
		return v.Cap
	}
	return DefaultHistoryCap
}
