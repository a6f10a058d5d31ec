package overlay

import (
	"sync"

	"github.com/go-drift/preview/pkg/errors"
	"github.com/go-drift/preview/pkg/preview"
)

// Ref is the handle to one open preview.
type Ref struct {
	// Viewer is the engine instance behind the overlay.
	Viewer *preview.Viewer

	entry     *Entry
	detach    func()
	once      sync.Once
	closed    bool
	listeners []func()
}

// Entry returns the mounted node of this preview.
func (r *Ref) Entry() *Entry {
	return r.entry
}

// Close removes the overlay immediately, skipping the close animation, and
// notifies OnClosed listeners. It is safe to call more than once.
func (r *Ref) Close() {
	r.once.Do(func() {
		r.closed = true
		if r.detach != nil {
			r.detach()
		}
		listeners := r.listeners
		r.listeners = nil
		for _, fn := range listeners {
			notifyClosed(fn)
		}
	})
}

func notifyClosed(fn func()) {
	defer errors.Recover("overlay.OnClosed")
	fn()
}

// Closed reports whether the preview has closed.
func (r *Ref) Closed() bool {
	return r.closed
}

// OnClosed registers fn to run once when the preview closes. If it already
// has, fn runs immediately.
func (r *Ref) OnClosed(fn func()) {
	if r.closed {
		notifyClosed(fn)
		return
	}
	r.listeners = append(r.listeners, fn)
}
