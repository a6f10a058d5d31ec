package preview

import (
	"fmt"
	"time"
)

// Tuning holds every physics and timing constant the engine uses. Distances
// are in pixels and velocities in pixels per millisecond.
//
// The yaml tags let pkg/config decode a partial file over DefaultTuning.
type Tuning struct {
	MinScale       float64 `yaml:"min_scale"`
	MaxScale       float64 `yaml:"max_scale"`
	ZoomStep       float64 `yaml:"zoom_step"`
	DoubleTapScale float64 `yaml:"double_tap_scale"`
	WheelZoomSpeed float64 `yaml:"wheel_zoom_speed"`

	SlideSpacing  float64 `yaml:"slide_spacing"`
	SwipeFraction float64 `yaml:"swipe_fraction"`
	LockThreshold float64 `yaml:"lock_threshold"`
	LockRatio     float64 `yaml:"lock_ratio"`
	RubberBand    float64 `yaml:"rubber_band"`

	DismissDistance       float64       `yaml:"dismiss_distance"`
	DismissVelocity       float64       `yaml:"dismiss_velocity"`
	FlyAwayDistance       float64       `yaml:"fly_away_distance"`
	FlyAwayVelocityFactor float64       `yaml:"fly_away_velocity_factor"`
	CloseSettle           time.Duration `yaml:"close_settle"`

	Friction          float64       `yaml:"friction"`
	VelocityThreshold float64       `yaml:"velocity_threshold"`
	MaxVelocity       float64       `yaml:"max_velocity"`
	MaxFrameDelta     time.Duration `yaml:"max_frame_delta"`

	DoubleTapWindow time.Duration `yaml:"double_tap_window"`
	DoubleTapSlop   float64       `yaml:"double_tap_slop"`
	TapMaxSamples   int           `yaml:"tap_max_samples"`
	HistoryWindow   time.Duration `yaml:"history_window"`
	HistoryCap      int           `yaml:"history_cap"`

	SlideDuration     time.Duration `yaml:"slide_duration"`
	SnapDuration      time.Duration `yaml:"snap_duration"`
	EntryDuration     time.Duration `yaml:"entry_duration"`
	CloseFadeDuration time.Duration `yaml:"close_fade_duration"`

	LiquidFloor    float64 `yaml:"liquid_floor"`
	LiquidDivisor  float64 `yaml:"liquid_divisor"`
	LiquidExponent float64 `yaml:"liquid_exponent"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		MinScale:       0.5,
		MaxScale:       5,
		ZoomStep:       0.5,
		DoubleTapScale: 2,
		WheelZoomSpeed: 0.0015,

		SlideSpacing:  20,
		SwipeFraction: 0.25,
		LockThreshold: 10,
		LockRatio:     1.2,
		RubberBand:    0.5,

		DismissDistance:       100,
		DismissVelocity:       0.5,
		FlyAwayDistance:       800,
		FlyAwayVelocityFactor: 300,
		CloseSettle:           200 * time.Millisecond,

		Friction:          0.92,
		VelocityThreshold: 0.01,
		MaxVelocity:       3,
		MaxFrameDelta:     64 * time.Millisecond,

		DoubleTapWindow: 300 * time.Millisecond,
		DoubleTapSlop:   30,
		TapMaxSamples:   5,
		HistoryWindow:   100 * time.Millisecond,
		HistoryCap:      20,

		SlideDuration:     350 * time.Millisecond,
		SnapDuration:      200 * time.Millisecond,
		EntryDuration:     400 * time.Millisecond,
		CloseFadeDuration: 150 * time.Millisecond,

		LiquidFloor:    0.65,
		LiquidDivisor:  1000,
		LiquidExponent: 0.82,
	}
}

// Validate reports the first inconsistent constant.
func (t Tuning) Validate() error {
	switch {
	case t.MinScale <= 0:
		return fmt.Errorf("min_scale must be positive, got %v", t.MinScale)
	case t.MinScale > 1 || t.MaxScale < 1:
		return fmt.Errorf("scale range [%v, %v] must contain 1", t.MinScale, t.MaxScale)
	case t.ZoomStep <= 0:
		return fmt.Errorf("zoom_step must be positive, got %v", t.ZoomStep)
	case t.DoubleTapScale < 1 || t.DoubleTapScale > t.MaxScale:
		return fmt.Errorf("double_tap_scale %v outside [1, %v]", t.DoubleTapScale, t.MaxScale)
	case t.Friction <= 0 || t.Friction >= 1:
		return fmt.Errorf("friction must be in (0, 1), got %v", t.Friction)
	case t.RubberBand < 0 || t.RubberBand > 1:
		return fmt.Errorf("rubber_band must be in [0, 1], got %v", t.RubberBand)
	case t.SwipeFraction <= 0 || t.SwipeFraction >= 1:
		return fmt.Errorf("swipe_fraction must be in (0, 1), got %v", t.SwipeFraction)
	case t.LockThreshold < 0 || t.LockRatio <= 0:
		return fmt.Errorf("invalid axis lock %v/%v", t.LockThreshold, t.LockRatio)
	case t.LiquidFloor <= 0 || t.LiquidFloor > 1 || t.LiquidDivisor <= 0 || t.LiquidExponent <= 0:
		return fmt.Errorf("invalid liquid shrink parameters")
	case t.VelocityThreshold <= 0 || t.MaxVelocity <= t.VelocityThreshold:
		return fmt.Errorf("velocity threshold %v must be positive and below max %v", t.VelocityThreshold, t.MaxVelocity)
	case t.TapMaxSamples <= 0 || t.HistoryCap < 2:
		return fmt.Errorf("tap_max_samples and history_cap must be positive")
	}
	for name, d := range map[string]time.Duration{
		"close_settle":        t.CloseSettle,
		"max_frame_delta":     t.MaxFrameDelta,
		"double_tap_window":   t.DoubleTapWindow,
		"history_window":      t.HistoryWindow,
		"slide_duration":      t.SlideDuration,
		"snap_duration":       t.SnapDuration,
		"entry_duration":      t.EntryDuration,
		"close_fade_duration": t.CloseFadeDuration,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}
