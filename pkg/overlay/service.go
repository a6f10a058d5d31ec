package overlay

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/preview"
)

var (
	// ErrEmptySource is returned when Open has neither a source nor items.
	ErrEmptySource = errors.New("overlay: empty source")
	// ErrAlreadyOpen is returned when a preview is already open.
	ErrAlreadyOpen = errors.New("overlay: preview already open")
)

// Service opens previews programmatically. At most one preview is open per
// service.
type Service struct {
	host   Host
	log    logr.Logger
	active *Ref
}

// NewService returns a service mounting into host. A nil host gets a
// Manager over an empty Document.
func NewService(host Host, log logr.Logger) *Service {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if host == nil {
		host = NewManager(nil, log)
	}
	return &Service{host: host, log: log}
}

// Host returns the host previews are mounted into.
func (s *Service) Host() Host {
	return s.host
}

// Active returns the open preview, or nil.
func (s *Service) Active() *Ref {
	return s.active
}

// Open mounts a preview of src configured by opts, locks page scrolling and
// traps focus inside it. opts.Src is replaced by src.
//
// When the user closes the preview the close animation plays, then the
// overlay is removed and the Ref's OnClosed listeners run. opts.OnClose
// runs after them, but only for user-initiated closes; Ref.Close removes the
// overlay without it.
func (s *Service) Open(src string, opts preview.Options) (*Ref, error) {
	if src == "" && len(opts.Items) == 0 {
		return nil, ErrEmptySource
	}
	if s.active != nil {
		return nil, ErrAlreadyOpen
	}

	opts.Src = src
	if opts.Logger.GetSink() == nil {
		opts.Logger = s.log
	}
	ref := &Ref{}
	onClose := opts.OnClose
	opts.OnClose = func() {
		ref.Close()
		if onClose != nil {
			onClose()
		}
	}

	v := preview.New(opts)
	entry := NewEntry(v)
	ref.Viewer = v
	ref.entry = entry
	ref.detach = func() {
		if !v.IsClosed() {
			v.Dispose()
		}
		s.host.Unmount(entry)
		s.host.UnlockScroll()
		if s.active == ref {
			s.active = nil
		}
		s.log.V(1).Info("preview detached", "entry", entry.ID())
	}

	s.host.Mount(entry)
	s.host.LockScroll()
	s.host.TrapFocusWithin(entry)
	s.active = ref
	s.log.V(1).Info("preview opened", "entry", entry.ID(), "src", src)
	return ref, nil
}
