package preview

import (
	"github.com/go-drift/preview/pkg/animation"
	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/gestures"
	"github.com/go-drift/preview/pkg/graphics"
)

// Next slides to the following item. It is a no-op on the last item, while a
// gesture is in progress or while another slide runs.
func (v *Viewer) Next() {
	defer errors.Recover("preview.Next")
	v.navigate(1)
}

// Prev slides to the preceding item. It is a no-op on the first item.
func (v *Viewer) Prev() {
	defer errors.Recover("preview.Prev")
	v.navigate(-1)
}

func (v *Viewer) navigate(dir int) {
	if v.inputBlocked() {
		return
	}
	if p := v.state.Phase; p == PhaseDragging || p == PhasePinching {
		v.log.V(1).Info("navigation ignored during gesture", "phase", p.String())
		return
	}
	if !v.hasNeighbor(dir) {
		return
	}
	v.slide(dir)
}

// JumpTo shows the item at index immediately, without a slide.
func (v *Viewer) JumpTo(index int) {
	defer errors.Recover("preview.JumpTo")
	if v.closed || v.state.Phase == PhaseClosing {
		return
	}
	if index < 0 || index >= len(v.state.Items) {
		errors.Errorf("preview.JumpTo", errors.KindInput, "index %d out of range [0, %d)", index, len(v.state.Items))
		return
	}
	v.stopInertia()
	v.stopMotion()
	v.finishEntry()
	v.sliding = false
	v.rec.Reset()
	v.setPhase(PhaseIdle)
	v.setIndex(index)
	v.notify()
}

func (v *Viewer) hasNeighbor(dir int) bool {
	i := v.state.CurrentIndex + dir
	return i >= 0 && i < len(v.state.Items)
}

// slide moves the current item one viewport (plus spacing) out of the way so
// the neighbor lands in the center, then swaps the index.
func (v *Viewer) slide(dir int) {
	v.stopInertia()
	v.finishEntry()
	v.rec.Reset()
	v.sliding = true
	v.state.Lock = gestures.LockNone
	v.state.Velocity = graphics.Offset{}
	v.setPhase(PhaseIdle)

	from := v.state.CurrentIndex
	stride := v.surface.ViewportSize().Width + v.tuning.SlideSpacing
	target := graphics.Offset{X: -float64(dir) * stride, Y: v.state.TranslateY}
	v.log.V(1).Info("slide", "from", from, "to", from+dir)
	v.animateTo(target, v.state.Scale, v.tuning.SlideDuration, animation.EaseOut, func() {
		v.sliding = false
		v.setIndex(from + dir)
	})
}

// setIndex changes the current item and resets everything tied to it.
func (v *Viewer) setIndex(index int) {
	s := &v.state
	s.CurrentIndex = index
	s.resetTransform()
	s.Lock = gestures.LockNone
	s.Velocity = graphics.Offset{}
	s.Error = false
	cur := s.Current()
	s.Loading = !cur.IsCustom() && !s.Loaded[cur.ID(index)]
	v.invalidateConstraints()
	v.entryDone = true
	v.preloadNeighbors()
}

// preloadNeighbors fetches index±1 ahead of navigation.
func (v *Viewer) preloadNeighbors() {
	for _, dir := range []int{-1, 1} {
		if !v.hasNeighbor(dir) {
			continue
		}
		i := v.state.CurrentIndex + dir
		item := v.state.Items[i]
		if item.IsCustom() || item.Src == "" || v.state.Loaded[item.ID(i)] {
			continue
		}
		v.preload(item)
	}
}

func (v *Viewer) preload(item Item) {
	defer errors.Recover("preview.Preload")
	v.preloader.Preload(item.Src, item.Srcset)
}
