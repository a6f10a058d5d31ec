// Package sim replays gesture scripts against a preview engine on a
// simulated clock.
package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
)

// FrameDuration is the simulated frame interval.
const FrameDuration = 16 * time.Millisecond

// SettleLimit bounds how long Run waits for animations after the last step.
const SettleLimit = 5 * time.Second

// ErrUnsettled is returned when animations are still running SettleLimit
// after the last step.
var ErrUnsettled = errors.New("animations did not settle")

// Record is the observable state after one frame.
type Record struct {
	At        time.Duration
	Phase     preview.Phase
	Index     int
	Count     int
	Scale     float64
	Opacity   float64
	Transform string
	Closed    bool
}

// String formats the record as one output line.
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6dms  %-9s  %d/%d  scale=%.2f  opacity=%.2f  %s",
		r.At.Milliseconds(), r.Phase, r.Index+1, r.Count, r.Scale, r.Opacity, r.Transform)
	if r.Closed {
		b.WriteString("  [closed]")
	}
	return b.String()
}

func (r Record) sameAs(o Record) bool {
	return r.Phase == o.Phase && r.Index == o.Index && r.Transform == o.Transform &&
		r.Opacity == o.Opacity && r.Closed == o.Closed
}

// Options control a run.
type Options struct {
	// Base is applied before the script's surface and items.
	Base preview.Options
	// AllFrames emits every frame instead of only frames that changed.
	AllFrames bool
	Logger    logr.Logger
}

type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

type runner struct {
	viewer  *preview.Viewer
	clock   *simClock
	start   time.Time
	nextID  int64
	emit    func(Record)
	all     bool
	last    Record
	emitted bool
	closed  bool
}

// Run replays s and calls emit for each frame. It installs its own
// animation clock for the duration of the run, so runs must not overlap.
func Run(s *Script, opts Options, emit func(Record)) error {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := &simClock{now: start}
	prev := animation.SetClock(clk)
	defer animation.SetClock(prev)

	r := &runner{clock: clk, start: start, emit: emit, all: opts.AllFrames}

	vo := opts.Base
	vo.Items = make([]preview.Item, len(s.Items))
	for i, src := range s.Items {
		vo.Items[i] = preview.Item{Src: src}
	}
	vo.InitialIndex = s.InitialIndex
	vo.Surface = &preview.FixedSurface{Viewport: s.Viewport.graphics(), Image: s.Image.graphics()}
	if s.Opener != nil {
		rect := graphics.RectFromLTWH(s.Opener.Left, s.Opener.Top, s.Opener.Width, s.Opener.Height)
		vo.OpenerRect = &rect
	}
	vo.Logger = opts.Logger
	onClose := vo.OnClose
	vo.OnClose = func() {
		r.closed = true
		if onClose != nil {
			onClose()
		}
	}
	r.viewer = preview.New(vo)
	defer r.viewer.Dispose()

	r.record()
	for i, st := range s.Steps {
		if r.closed {
			opts.Logger.V(1).Info("viewer closed, skipping remaining steps", "step", i+1)
			break
		}
		r.step(st)
	}
	return r.settle()
}

func (r *runner) step(st Step) {
	switch {
	case st.Drag != nil:
		r.drag(*st.Drag)
	case st.Pinch != nil:
		r.pinch(*st.Pinch)
	case st.Tap != nil:
		r.tap(st.Tap.offset())
	case st.DoubleTap != nil:
		r.tap(st.DoubleTap.offset())
		r.advance(100 * time.Millisecond)
		r.tap(st.DoubleTap.offset())
	case st.Wheel != nil:
		r.viewer.HandleScroll(gestures.ScrollEvent{
			Position: st.Wheel.At.offset(),
			Delta:    graphics.Offset{Y: st.Wheel.DeltaY},
			Time:     r.clock.now,
		})
		r.frame()
	case st.Key != "":
		r.viewer.HandleKey(preview.KeyEvent{Key: st.Key})
		r.frame()
	case st.Action != "":
		r.action(st.Action)
		r.frame()
	case st.Load, st.Fail:
		s := r.viewer.State()
		id := s.Current().ID(s.CurrentIndex)
		if st.Load {
			r.viewer.ImageLoaded(id)
		} else {
			r.viewer.ImageFailed(id, errors.New("simulated load failure"))
		}
		r.frame()
	case st.Wait > 0:
		r.frames(st.Wait)
	}
}

func (r *runner) action(name string) {
	a := r.viewer.Actions()
	fn := map[string]func(){
		"next":            a.Next,
		"prev":            a.Prev,
		"close":           a.Close,
		"zoom_in":         a.ZoomIn,
		"zoom_out":        a.ZoomOut,
		"rotate_left":     a.RotateLeft,
		"rotate_right":    a.RotateRight,
		"flip_horizontal": a.FlipHorizontal,
		"flip_vertical":   a.FlipVertical,
		"reset":           a.Reset,
	}[name]
	if fn != nil {
		fn()
	}
}

func pointerKind(name string) (gestures.PointerKind, error) {
	switch name {
	case "", "touch":
		return gestures.PointerKindTouch, nil
	case "mouse":
		return gestures.PointerKindMouse, nil
	case "pen":
		return gestures.PointerKindPen, nil
	default:
		return 0, fmt.Errorf("unknown pointer kind %q", name)
	}
}

func (r *runner) pointer(id int64, kind gestures.PointerKind, phase gestures.PointerPhase, pos graphics.Offset) {
	r.viewer.HandlePointer(gestures.PointerEvent{
		PointerID: id,
		Kind:      kind,
		Phase:     phase,
		Position:  pos,
		Time:      r.clock.now,
	})
}

func steps(d time.Duration) int {
	return max(int(d/FrameDuration), 1)
}

func (r *runner) drag(d Drag) {
	kind, _ := pointerKind(d.Kind)
	r.nextID++
	id := r.nextID
	from, by := d.From.offset(), d.By.offset()
	r.pointer(id, kind, gestures.PointerPhaseDown, from)
	n := steps(d.Duration)
	for i := 1; i <= n; i++ {
		r.frame()
		r.pointer(id, kind, gestures.PointerPhaseMove, from.Add(by.Scale(float64(i)/float64(n))))
	}
	if d.Hold > 0 {
		r.frames(d.Hold)
	}
	r.pointer(id, kind, gestures.PointerPhaseUp, from.Add(by))
	r.frame()
}

func (r *runner) pinch(p Pinch) {
	focal := p.Focal.offset()
	half := func(d float64) graphics.Offset { return graphics.Offset{X: d / 2} }
	a, b := r.nextID+1, r.nextID+2
	r.nextID += 2
	r.pointer(a, gestures.PointerKindTouch, gestures.PointerPhaseDown, focal.Sub(half(p.From)))
	r.pointer(b, gestures.PointerKindTouch, gestures.PointerPhaseDown, focal.Add(half(p.From)))
	n := steps(p.Duration)
	var d float64
	for i := 1; i <= n; i++ {
		r.frame()
		d = p.From + (p.To-p.From)*float64(i)/float64(n)
		r.pointer(a, gestures.PointerKindTouch, gestures.PointerPhaseMove, focal.Sub(half(d)))
		r.pointer(b, gestures.PointerKindTouch, gestures.PointerPhaseMove, focal.Add(half(d)))
	}
	r.pointer(b, gestures.PointerKindTouch, gestures.PointerPhaseUp, focal.Add(half(d)))
	r.pointer(a, gestures.PointerKindTouch, gestures.PointerPhaseUp, focal.Sub(half(d)))
	r.frame()
}

func (r *runner) tap(pos graphics.Offset) {
	r.nextID++
	id := r.nextID
	r.pointer(id, gestures.PointerKindTouch, gestures.PointerPhaseDown, pos)
	r.advance(40 * time.Millisecond)
	r.pointer(id, gestures.PointerKindTouch, gestures.PointerPhaseUp, pos)
	r.frame()
}

// advance moves the clock without stepping frames.
func (r *runner) advance(d time.Duration) {
	r.clock.now = r.clock.now.Add(d)
}

func (r *runner) frame() {
	r.advance(FrameDuration)
	animation.StepTickers()
	r.record()
}

func (r *runner) frames(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameDuration {
		r.frame()
	}
}

func (r *runner) settle() error {
	for elapsed := time.Duration(0); elapsed < SettleLimit; elapsed += FrameDuration {
		if !animation.HasActiveTickers() {
			return nil
		}
		r.frame()
	}
	return ErrUnsettled
}

func (r *runner) record() {
	f := r.viewer.Render()
	s := r.viewer.State()
	rec := Record{
		At:      r.clock.now.Sub(r.start),
		Phase:   f.Phase,
		Index:   s.CurrentIndex,
		Count:   len(s.Items),
		Scale:   s.Scale,
		Opacity: f.Opacity,
		Closed:  r.closed,
	}
	if cur, ok := f.Current(); ok {
		rec.Transform = cur.Transform
	}
	if !r.all && r.emitted && rec.sameAs(r.last) {
		return
	}
	r.last, r.emitted = rec, true
	r.emit(rec)
}
