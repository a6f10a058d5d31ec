package preview

import (
	"math"

	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
)

// HandlePointer feeds one raw pointer sample to the engine. Positions are in
// viewport coordinates with the origin at the top-left corner.
func (v *Viewer) HandlePointer(e gestures.PointerEvent) {
	defer errors.Recover("preview.HandlePointer")
	if v.inputBlocked() {
		return
	}
	v.rec.Handle(e)
	v.notify()
}

// HandleScroll zooms around the cursor. Positive Delta.Y zooms out.
func (v *Viewer) HandleScroll(e gestures.ScrollEvent) {
	defer errors.Recover("preview.HandleScroll")
	if v.inputBlocked() || v.state.Phase == PhaseDragging || v.state.Phase == PhasePinching {
		return
	}
	s := &v.state
	next := clampScale(s.Scale*math.Exp(-e.Delta.Y*v.tuning.WheelZoomSpeed), v.tuning)
	if next == s.Scale {
		return
	}
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()
	v.setPhase(PhaseIdle)

	focal := e.Position.Sub(v.viewportCenter())
	t := focalTranslate(focal, s.Translate(), s.Scale, next)
	s.Scale = next
	v.invalidateConstraints()
	s.setTranslate(v.Constraints().Clamp(t))
	v.notify()
}

func (v *Viewer) onDragStart(d gestures.DragStartDetails) {
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()

	s := &v.state
	s.Lock = gestures.LockNone
	s.Velocity = graphics.Offset{}
	v.dragOrigin = s.Translate()
	v.dragKind = d.Kind
	v.invalidateConstraints()
	if !s.atUnitScale() {
		v.cache = v.Constraints()
		v.cacheValid = true
	}
	v.setPhase(PhaseDragging)
}

func (v *Viewer) onDragUpdate(d gestures.DragUpdateDetails) {
	if v.state.Phase != PhaseDragging {
		return
	}
	s := &v.state
	if !s.atUnitScale() {
		target := v.dragOrigin.Add(d.Total)
		c := v.dragConstraints()
		if d.Kind == gestures.PointerKindMouse {
			target = c.Clamp(target)
		} else {
			target = c.RubberBand(target, v.tuning.RubberBand)
		}
		s.setTranslate(target)
		return
	}

	if s.Lock == gestures.LockNone {
		s.Lock = gestures.ResolveLock(d.Total, v.tuning.LockThreshold, v.tuning.LockRatio)
		if s.Lock != gestures.LockNone {
			v.log.V(1).Info("axis locked", "lock", s.Lock.String())
		}
	}
	switch s.Lock {
	case gestures.LockNone:
		s.setTranslate(graphics.Offset{})
	case gestures.LockVertical:
		s.TranslateX = 0
		s.TranslateY = d.Total.Y
	case gestures.LockHorizontal:
		x := d.Total.X
		if (x > 0 && !v.hasNeighbor(-1)) || (x < 0 && !v.hasNeighbor(1)) {
			x *= v.tuning.RubberBand
		}
		s.TranslateX = x
		s.TranslateY = 0
	}
}

func (v *Viewer) onDragEnd(d gestures.DragEndDetails) {
	if v.state.Phase != PhaseDragging {
		return
	}
	v.state.Velocity = d.Velocity
	v.invalidateConstraints()
	switch {
	case d.Canceled:
		v.state.Velocity = graphics.Offset{}
		v.settle()
	case v.state.atUnitScale():
		v.releaseUnit()
	default:
		v.releaseZoomed()
	}
}

// releaseUnit decides between dismiss, swipe navigation and snap-back.
func (v *Viewer) releaseUnit() {
	s := &v.state
	t := v.tuning
	if s.Lock != gestures.LockHorizontal &&
		(math.Abs(s.TranslateY) > t.DismissDistance || math.Abs(s.Velocity.Y) > t.DismissVelocity) {
		v.flyAway()
		return
	}
	width := v.surface.ViewportSize().Width
	if s.Lock == gestures.LockHorizontal && width > 0 && math.Abs(s.TranslateX) > t.SwipeFraction*width {
		dir := 1
		if s.TranslateX > 0 {
			dir = -1
		}
		if v.hasNeighbor(dir) {
			v.slide(dir)
			return
		}
	}
	s.Velocity = graphics.Offset{}
	v.settle()
}

func (v *Viewer) releaseZoomed() {
	c := v.Constraints()
	if !c.Contains(v.state.Translate()) {
		v.state.Velocity = graphics.Offset{}
		v.settle()
		return
	}
	v.startInertia()
}

// settle returns to Idle, animating the translation back into bounds. At
// unit scale the bounds are the centered position.
func (v *Viewer) settle() {
	s := &v.state
	s.Lock = gestures.LockNone
	v.setPhase(PhaseIdle)
	target := v.Constraints().Clamp(s.Translate())
	if s.atUnitScale() {
		target = graphics.Offset{}
	}
	if target == s.Translate() {
		return
	}
	v.animateTo(target, s.Scale, v.tuning.SnapDuration, animation.EaseOut, nil)
}

func (v *Viewer) onPinchStart(gestures.PinchDetails) {
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()

	s := &v.state
	if s.atUnitScale() && s.Lock != gestures.LockNone {
		// A pull or swipe offset is relative to that gesture, not a pan.
		s.setTranslate(graphics.Offset{})
	}
	v.pinchScale = s.Scale
	v.pinchTranslate = s.Translate()
	s.Lock = gestures.LockNone
	s.Velocity = graphics.Offset{}
	v.invalidateConstraints()
	v.setPhase(PhasePinching)
}

func (v *Viewer) onPinchUpdate(p gestures.PinchDetails) {
	if v.state.Phase != PhasePinching {
		return
	}
	s := &v.state
	next := clampScale(v.pinchScale*p.Scale, v.tuning)
	center := v.viewportCenter()
	t := focalTranslate(p.InitialFocal.Sub(center), v.pinchTranslate, v.pinchScale, next)
	t = t.Add(p.Focal.Sub(p.InitialFocal))
	s.Scale = next
	s.setTranslate(v.Constraints().RubberBand(t, v.tuning.RubberBand))
}

func (v *Viewer) onPinchEnd(p gestures.PinchEndDetails) {
	if p.Remaining > 0 {
		// The recognizer resumes a drag with the remaining finger.
		return
	}
	v.settle()
}

// onTap closes the overlay when the tap lands on the backdrop outside the
// displayed image.
func (v *Viewer) onTap(d gestures.TapDetails) {
	if v.state.Phase != PhaseIdle || v.state.Current().IsCustom() {
		return
	}
	img, ok := v.surface.ImageSize()
	if !ok {
		return
	}
	s := v.state
	w, h := img.Width*s.Scale, img.Height*s.Scale
	if quarterTurn(s.Rotate) {
		w, h = h, w
	}
	shown := graphics.RectFromCenter(v.viewportCenter().Add(s.Translate()), graphics.Size{Width: w, Height: h})
	if !shown.Contains(d.Position) {
		v.log.V(1).Info("backdrop tap")
		v.Close()
	}
}

// onDoubleTap toggles between the identity transform and a zoom centered on
// the tapped point.
func (v *Viewer) onDoubleTap(d gestures.TapDetails) {
	if v.state.Phase != PhaseIdle {
		return
	}
	s := &v.state
	v.invalidateConstraints()
	if s.Scale > 1 && !s.atUnitScale() {
		s.resetTransform()
		return
	}
	next := clampScale(v.tuning.DoubleTapScale, v.tuning)
	focal := d.Position.Sub(v.viewportCenter())
	t := focalTranslate(focal, s.Translate(), s.Scale, next)
	s.Scale = next
	s.setTranslate(v.Constraints().Clamp(t))
}
