package preview

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/graphics"
)

// ImageLoaded records that the image identified by id finished loading. The
// first load of the initially opened item starts the entry animation when
// an opener rectangle was given.
func (v *Viewer) ImageLoaded(id string) {
	defer errors.Recover("preview.ImageLoaded")
	if v.closed {
		return
	}
	s := &v.state
	s.Loaded[id] = true
	if s.Current().ID(s.CurrentIndex) == id {
		s.Loading = false
		s.Error = false
		v.startEntry()
	}
	v.notify()
}

// ImageFailed marks the current item as broken when id matches it and
// reports the failure. Navigation is unaffected; revisiting the item retries
// the load.
func (v *Viewer) ImageFailed(id string, cause error) {
	defer errors.Recover("preview.ImageFailed")
	if v.closed {
		return
	}
	if cause == nil {
		cause = fmt.Errorf("image failed to load")
	}
	errors.Report(&errors.PreviewError{Op: "preview.ImageFailed", Kind: errors.KindLoad, Err: cause, Item: id})
	s := &v.state
	if s.Current().ID(s.CurrentIndex) != id {
		return
	}
	s.Loading = false
	s.Error = true
	v.entryDone = true
	v.notify()
}

// startEntry plays the entry animation at most once per session.
func (v *Viewer) startEntry() {
	if v.entryDone {
		return
	}
	v.entryDone = true
	img, ok := v.surface.ImageSize()
	if !ok || v.opts.OpenerRect == nil {
		return
	}
	final := graphics.RectFromCenter(v.viewportCenter(), img)
	entry := newEntryOverride(*v.opts.OpenerRect, final)
	if entry == nil {
		return
	}
	v.entry = entry
	ctl := animation.NewAnimationController(v.tuning.EntryDuration)
	ctl.Curve = animation.EntryCurve
	ctl.AddListener(func() {
		if v.entry != nil {
			v.entry.Progress = ctl.Value
		}
		v.notify()
	})
	ctl.AddStatusListener(func(status animation.AnimationStatus) {
		if status == animation.AnimationCompleted {
			v.finishEntry()
			v.notify()
		}
	})
	v.entryCtl = ctl
	v.log.V(1).Info("entry animation", "opener", *v.opts.OpenerRect, "final", final)
	ctl.Forward()
}

// finishEntry drops the entry override so the normal transform resumes.
func (v *Viewer) finishEntry() {
	if v.entryCtl != nil {
		v.entryCtl.Dispose()
		v.entryCtl = nil
	}
	v.entry = nil
}

// Close runs the default close: the overlay fades out, then OnClose fires.
// Calling Close again, or after a gesture dismissal started, has no effect.
func (v *Viewer) Close() {
	defer errors.Recover("preview.Close")
	if v.closed || v.state.Phase == PhaseClosing {
		return
	}
	v.beginClosing("default")
	v.fadeOut(v.tuning.CloseFadeDuration)
	v.after(v.tuning.CloseFadeDuration, v.finishClose)
	v.notify()
}

// flyAway dismisses the item in the direction it was pulled or flung.
func (v *Viewer) flyAway() {
	s := &v.state
	t := v.tuning
	dir := math.Copysign(1, s.TranslateY)
	if s.TranslateY == 0 {
		dir = math.Copysign(1, s.Velocity.Y)
	}
	target := s.Velocity.Y*t.FlyAwayVelocityFactor + dir*t.FlyAwayDistance

	v.beginClosing("gesture")
	v.animateTo(graphics.Offset{X: s.TranslateX, Y: target}, s.Scale, t.CloseSettle, animation.EaseIn, nil)
	v.fadeOut(t.CloseSettle)
	v.after(t.CloseSettle, v.finishClose)
}

func (v *Viewer) beginClosing(path string) {
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()
	v.rec.Reset()
	v.sliding = false
	v.invalidateConstraints()
	v.log.V(1).Info("closing", "path", path, "index", v.state.CurrentIndex)
	v.setPhase(PhaseClosing)
}

func (v *Viewer) fadeOut(d time.Duration) {
	ctl := animation.NewAnimationController(d)
	ctl.Curve = animation.EaseIn
	ctl.AddListener(func() {
		v.opacity = 1 - ctl.Value
		v.notify()
	})
	v.fade = ctl
	ctl.Forward()
}

// finishClose ends the session and invokes OnClose exactly once.
func (v *Viewer) finishClose() {
	v.closeOnce.Do(func() {
		v.teardown()
		v.opacity = 0
		v.log.V(1).Info("closed")
		if v.opts.OnClose != nil {
			v.opts.OnClose()
		}
		v.notify()
	})
}

// Dispose ends the session without invoking OnClose. Hosts call it when the
// overlay is torn down externally.
func (v *Viewer) Dispose() {
	v.closeOnce.Do(v.teardown)
	v.listeners = make(map[int]func())
}

// teardown cancels every frame callback and timer.
func (v *Viewer) teardown() {
	v.closed = true
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()
	if v.fade != nil {
		v.fade.Dispose()
		v.fade = nil
	}
	for _, t := range v.timers {
		t.Stop()
	}
	v.timers = nil
	v.rec.Reset()
}
