// Package preview implements the gesture and transform engine of an image
// preview overlay.
//
// A [Viewer] owns the [State] of one open session. The host feeds it raw
// pointer, scroll and key events, steps the animation frame loop
// (animation.StepTickers) once per frame and paints the [Frame] returned by
// [Viewer.Render]. Rendering is a pure function of state ([ComputeFrame]).
//
// All methods must be called from the host's UI goroutine. Timers and frame
// callbacks run from animation.StepTickers on that same goroutine, so the
// engine needs no locks; phases are kept exclusive by the state machine.
package preview

import (
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
)

// Viewer is the engine instance for one open overlay.
type Viewer struct {
	state     State
	tuning    Tuning
	opts      Options
	surface   Surface
	preloader Preloader
	log       logr.Logger

	rec *gestures.Recognizer

	dragOrigin graphics.Offset
	dragKind   gestures.PointerKind
	cache      Constraints
	cacheValid bool

	pinchScale     float64
	pinchTranslate graphics.Offset

	inertia       *inertia
	inertiaTicker *animation.Ticker

	motion  *animation.AnimationController
	sliding bool

	entry     *EntryOverride
	entryCtl  *animation.AnimationController
	entryDone bool

	opacity float64
	fade    *animation.AnimationController

	timers    []*animation.Timer
	closeOnce sync.Once
	closed    bool

	listeners      map[int]func()
	nextListenerID int
}

// New opens a session. Invalid options are reported and replaced with
// defaults; New never fails.
func New(opts Options) *Viewer {
	tuning := DefaultTuning()
	if opts.Tuning != nil {
		if err := opts.Tuning.Validate(); err != nil {
			errors.Report(&errors.PreviewError{Op: "preview.New", Kind: errors.KindConfig, Err: err})
		} else {
			tuning = *opts.Tuning
		}
	}

	v := &Viewer{
		tuning:    tuning,
		opts:      opts,
		surface:   opts.Surface,
		preloader: opts.Preloader,
		log:       opts.Logger,
		opacity:   1,
		entryDone: opts.OpenerRect == nil,
		listeners: make(map[int]func()),
	}
	if v.log.GetSink() == nil {
		v.log = logr.Discard()
	}
	if v.surface == nil {
		v.surface = &FixedSurface{}
	}
	if v.preloader == nil {
		v.preloader = noPreload{}
	}

	items := opts.normalizeItems()
	index := opts.InitialIndex
	if index < 0 || index >= len(items) {
		errors.Errorf("preview.New", errors.KindConfig, "initial index %d out of range [0, %d)", index, len(items))
		index = min(max(index, 0), len(items)-1)
	}
	v.state = State{
		Items:        items,
		CurrentIndex: index,
		Scale:        1,
		Loaded:       make(map[string]bool),
	}
	v.state.Loading = !v.state.Current().IsCustom()

	v.rec = &gestures.Recognizer{
		TapMaxSamples: tuning.TapMaxSamples,
		Tracker:       gestures.VelocityTracker{Window: tuning.HistoryWindow, Cap: tuning.HistoryCap},
		DoubleTap:     gestures.DoubleTapDetector{Window: tuning.DoubleTapWindow, Slop: tuning.DoubleTapSlop},
		OnDragStart:   v.onDragStart,
		OnDragUpdate:  v.onDragUpdate,
		OnDragEnd:     v.onDragEnd,
		OnPinchStart:  v.onPinchStart,
		OnPinchUpdate: v.onPinchUpdate,
		OnPinchEnd:    v.onPinchEnd,
		OnTap:         v.onTap,
		OnDoubleTap:   v.onDoubleTap,
	}

	v.preloadNeighbors()
	v.log.V(1).Info("opened", "items", len(items), "index", index)
	return v
}

// State returns a copy of the current state.
func (v *Viewer) State() State {
	return v.state.Clone()
}

// Snapshot returns the read-only view used by custom content slots.
func (v *Viewer) Snapshot() Snapshot {
	return v.state.snapshot()
}

// Tuning returns the constants in effect.
func (v *Viewer) Tuning() Tuning {
	return v.tuning
}

// IsClosed reports whether the session has ended.
func (v *Viewer) IsClosed() bool {
	return v.closed
}

// Constraints returns translation bounds computed fresh from the surface.
func (v *Viewer) Constraints() Constraints {
	img, ok := v.surface.ImageSize()
	if !ok {
		return Constraints{}
	}
	return ComputeConstraints(v.surface.ViewportSize(), img, v.state.Scale, v.state.Rotate)
}

// dragConstraints returns the bounds cached at drag start, if any.
func (v *Viewer) dragConstraints() Constraints {
	if v.cacheValid {
		return v.cache
	}
	return v.Constraints()
}

func (v *Viewer) invalidateConstraints() {
	v.cacheValid = false
}

// Render computes the frame for the current state.
func (v *Viewer) Render() Frame {
	env := FrameEnv{
		Viewport:         v.surface.ViewportSize(),
		Tuning:           v.tuning,
		Toolbar:          v.opts.Toolbar,
		Display:          v.opts.Display,
		Opacity:          v.opacity,
		Animating:        v.motion != nil || v.inertiaTicker != nil || v.fade != nil,
		Content:          v.opts.Content,
		ToolbarExtension: v.opts.ToolbarExtension,
	}
	if v.entry != nil {
		e := *v.entry
		env.Entry = &e
	}
	return ComputeFrame(v.state, env)
}

// Subscribe registers fn to run after every state change. It returns an
// unsubscribe function.
func (v *Viewer) Subscribe(fn func()) func() {
	id := v.nextListenerID
	v.nextListenerID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

func (v *Viewer) notify() {
	for _, fn := range v.listeners {
		fn()
	}
}

func (v *Viewer) setPhase(p Phase) {
	if v.state.Phase == p {
		return
	}
	v.log.V(1).Info("phase", "from", v.state.Phase.String(), "to", p.String())
	v.state.Phase = p
}

// inputBlocked reports whether pointer and navigation input is ignored.
func (v *Viewer) inputBlocked() bool {
	return v.closed || v.state.Phase == PhaseClosing || v.sliding
}

func (v *Viewer) viewportCenter() graphics.Offset {
	return v.surface.ViewportSize().Center()
}

// after schedules fn on the frame loop. Timers never run once the session
// has closed.
func (v *Viewer) after(d time.Duration, fn func()) {
	v.timers = slices.DeleteFunc(v.timers, func(t *animation.Timer) bool { return !t.Pending() })
	v.timers = append(v.timers, animation.AfterFunc(d, func() {
		defer errors.Recover("preview.timer")
		if v.closed {
			return
		}
		fn()
	}))
}

// animateTo tweens scale and translation to the target. done runs once the
// tween completes; an interrupted tween never calls it.
func (v *Viewer) animateTo(to graphics.Offset, scale float64, d time.Duration, curve func(float64) float64, done func()) {
	v.stopMotion()
	ctl := animation.NewAnimationController(d)
	ctl.Curve = curve
	pos := animation.TweenOffset(v.state.Translate(), to)
	size := animation.TweenFloat64(v.state.Scale, scale)
	ctl.AddListener(func() {
		v.state.setTranslate(pos.Transform(ctl))
		v.state.Scale = size.Transform(ctl)
		v.notify()
	})
	ctl.AddStatusListener(func(status animation.AnimationStatus) {
		if status != animation.AnimationCompleted {
			return
		}
		defer errors.Recover("preview.animate")
		ctl.Dispose()
		v.motion = nil
		if done != nil && !v.closed {
			done()
		}
		v.notify()
	})
	v.motion = ctl
	ctl.Forward()
}

func (v *Viewer) stopMotion() {
	if v.motion != nil {
		v.motion.Dispose()
		v.motion = nil
	}
}

func (v *Viewer) stopInertia() {
	if v.inertiaTicker != nil {
		v.inertiaTicker.Stop()
		v.inertiaTicker = nil
	}
	v.inertia = nil
}

func (v *Viewer) startInertia() {
	in := newInertia(v.state.Velocity, v.tuning)
	if in.resting(v.tuning) {
		v.state.Velocity = graphics.Offset{}
		v.setPhase(PhaseIdle)
		return
	}
	v.stopInertia()
	v.inertia = in
	v.state.Velocity = in.velocity
	v.setPhase(PhaseInertia)
	v.inertiaTicker = animation.NewTicker(v.stepInertia)
	v.inertiaTicker.Start()
}

func (v *Viewer) stepInertia(elapsed time.Duration) {
	defer errors.Recover("preview.inertia")
	if v.closed || v.inertia == nil {
		v.stopInertia()
		return
	}
	pos, rest := v.inertia.step(elapsed, v.state.Translate(), v.Constraints(), v.tuning)
	v.state.setTranslate(pos)
	v.state.Velocity = v.inertia.velocity
	if rest {
		v.stopInertia()
		v.state.Velocity = graphics.Offset{}
		v.setPhase(PhaseIdle)
	}
	v.notify()
}
