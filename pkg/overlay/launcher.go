package overlay

import (
	"slices"

	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/graphics"
	"github.com/go-drift/preview/pkg/preview"
)

// Trigger describes the element the user activated to open a preview.
type Trigger struct {
	// HighResSrc is an explicit full-resolution source.
	HighResSrc string
	// Src is the element's own src attribute.
	Src string
	// ChildSrc is the src of the first image inside the element.
	ChildSrc string
	// Rect is the element's bounding box, used for the entry animation.
	Rect *graphics.Rect
}

// Source returns the first non-empty of HighResSrc, Src and ChildSrc.
func (t Trigger) Source() string {
	for _, s := range []string{t.HighResSrc, t.Src, t.ChildSrc} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Launcher opens previews from clicks on thumbnails. A click while its
// preview is open is ignored.
type Launcher struct {
	// Images, when set, turns the preview into a gallery over these
	// sources, starting at the clicked one.
	Images []string
	// Options is the base configuration of every preview.
	Options preview.Options

	service *Service
	log     logr.Logger
	ref     *Ref
}

// NewLauncher returns a launcher opening previews through s.
func NewLauncher(s *Service, log logr.Logger) *Launcher {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Launcher{service: s, log: log}
}

// Open opens a preview for the activated element. It returns nil when the
// element has no source or a preview is already open.
func (l *Launcher) Open(t Trigger) *Ref {
	if l.ref != nil {
		l.log.V(1).Info("launch ignored", "reason", ErrAlreadyOpen.Error())
		return nil
	}
	src := t.Source()
	opts := l.Options
	opts.OpenerRect = t.Rect
	if len(l.Images) > 0 {
		opts.Items = make([]preview.Item, len(l.Images))
		for i, img := range l.Images {
			opts.Items[i] = preview.Item{Src: img}
		}
		opts.InitialIndex = max(slices.Index(l.Images, src), 0)
	}
	if src == "" {
		// An empty trigger never opens, even over a gallery.
		opts.Items = nil
	}
	return l.open(src, opts)
}

// OpenIndex opens a gallery over items at index, as a click on the index-th
// thumbnail would. rect is that thumbnail's bounding box and may be nil.
func (l *Launcher) OpenIndex(items []preview.Item, index int, rect *graphics.Rect) *Ref {
	if index < 0 || index >= len(items) {
		l.log.V(1).Info("launch ignored", "reason", "index out of range", "index", index, "items", len(items))
		return nil
	}
	if l.ref != nil {
		l.log.V(1).Info("launch ignored", "reason", ErrAlreadyOpen.Error())
		return nil
	}
	opts := l.Options
	opts.Items = items
	opts.InitialIndex = index
	opts.OpenerRect = rect
	return l.open(items[index].Src, opts)
}

func (l *Launcher) open(src string, opts preview.Options) *Ref {
	ref, err := l.service.Open(src, opts)
	if err != nil {
		l.log.V(1).Info("launch ignored", "reason", err.Error())
		return nil
	}
	l.ref = ref
	ref.OnClosed(func() {
		if l.ref == ref {
			l.ref = nil
		}
	})
	return ref
}

// Active returns the preview this launcher opened, or nil once it closed.
func (l *Launcher) Active() *Ref {
	return l.ref
}

// Dispose closes the launcher's preview, if any.
func (l *Launcher) Dispose() {
	if l.ref != nil {
		l.ref.Close()
	}
}
