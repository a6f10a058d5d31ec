// Package animation provides the frame loop and tweening primitives the
// preview engine runs on.
//
// # Core Components
//
//   - [Ticker]: a per-frame callback, the equivalent of a self-rescheduling
//     requestAnimationFrame loop. Stop cancels it.
//
//   - [Timer]: a one-shot deferred callback (setTimeout equivalent) created
//     with [AfterFunc]. Timers fire from the frame loop, never from another
//     goroutine, so they observe the same single-writer discipline as input.
//
//   - [AnimationController]: drives a value from 0.0 to 1.0 over a duration
//     with an easing [CubicBezier] curve.
//
//   - [Tween]: maps controller progress onto float64 or Offset ranges.
//
// The host calls [StepTickers] once per frame. Tickers and timers registered
// while a step is running are first serviced on the following step.
package animation

import (
	"slices"
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers []*Ticker
	pendingTimers []*Timer
)

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called. Tickers are
// driven by the host's frame loop via [StepTickers].
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers = append(activeTickers, t)
	tickerMu.Unlock()
}

// Stop deactivates the ticker. A stopped ticker never fires again, even if
// it was already collected for the current frame.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	activeTickers = slices.DeleteFunc(activeTickers, func(other *Ticker) bool { return other == t })
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// Timer is a one-shot callback scheduled with AfterFunc.
type Timer struct {
	fn       func()
	deadline time.Time
	pending  bool
}

// AfterFunc schedules fn to run on the first frame step at or after d has
// elapsed on the animation clock. A zero or negative d fires on the next step.
func AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{fn: fn, deadline: Now().Add(d), pending: true}
	tickerMu.Lock()
	pendingTimers = append(pendingTimers, t)
	tickerMu.Unlock()
	return t
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || !t.pending {
		return false
	}
	t.pending = false
	tickerMu.Lock()
	pendingTimers = slices.DeleteFunc(pendingTimers, func(other *Timer) bool { return other == t })
	tickerMu.Unlock()
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (t *Timer) Pending() bool {
	return t != nil && t.pending
}

// StepTickers advances all active tickers and fires due timers.
// This should be called once per frame by the host.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 && len(pendingTimers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers without holding the lock.
	tickers := slices.Clone(activeTickers)
	timers := slices.Clone(pendingTimers)
	tickerMu.Unlock()

	now := Now()
	for _, timer := range timers {
		if !timer.pending || now.Before(timer.deadline) {
			continue
		}
		timer.Stop()
		if timer.fn != nil {
			timer.fn()
		}
	}

	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(Now().Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers or timers are pending.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0 || len(pendingTimers) > 0
}
