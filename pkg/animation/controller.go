package animation

import (
	"fmt"
	"time"
)

// AnimationStatus reports where a controller is in its run.
type AnimationStatus int

const (
	// AnimationIdle means Forward has not been called yet.
	AnimationIdle AnimationStatus = iota
	// AnimationForward means the value is moving toward 1.
	AnimationForward
	// AnimationCompleted means the value reached 1.
	AnimationCompleted
	// AnimationStopped means the run was interrupted before reaching 1.
	AnimationStopped
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationForward:
		return "forward"
	case AnimationCompleted:
		return "completed"
	case AnimationStopped:
		return "stopped"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController runs Value from where it is to 1 over Duration, eased by
// Curve, one frame per [StepTickers] call. Slides, snap-backs, the entry
// animation and the close fade each own one controller; map Value onto
// offsets and scales with a [Tween].
//
// Dispose stops the run and drops listeners without a status change.
type AnimationController struct {
	// Value is the current progress in [0, 1].
	Value float64

	// Duration is the length of a full 0→1 run. Zero or negative completes on
	// the first frame.
	Duration time.Duration

	// Curve eases linear progress. Nil means linear.
	Curve func(float64) float64

	status    AnimationStatus
	ticker    *Ticker
	from      float64
	listeners []func()
	watchers  []func(AnimationStatus)
}

// NewAnimationController returns an idle controller.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration, Curve: LinearCurve}
}

// Forward starts, or restarts, the run toward 1 from the current Value.
func (c *AnimationController) Forward() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.from = c.Value
	c.setStatus(AnimationForward)
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	progress := 1.0
	if c.Duration > 0 {
		progress = min(float64(elapsed)/float64(c.Duration), 1)
	}
	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.from + (1-c.from)*eased
	for _, fn := range c.listeners {
		fn()
	}
	if progress < 1 || c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.setStatus(AnimationCompleted)
}

// Stop holds Value where it is. A running controller reports AnimationStopped.
func (c *AnimationController) Stop() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.setStatus(AnimationStopped)
}

// Status returns the controller's status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil
}

// AddListener registers fn to run on every value change.
func (c *AnimationController) AddListener(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// AddStatusListener registers fn to run on every status change.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) {
	c.watchers = append(c.watchers, fn)
}

func (c *AnimationController) setStatus(s AnimationStatus) {
	if c.status == s {
		return
	}
	c.status = s
	for _, fn := range c.watchers {
		fn(s)
	}
}

// Dispose stops the run silently and drops all listeners.
func (c *AnimationController) Dispose() {
	c.listeners = nil
	c.watchers = nil
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}
