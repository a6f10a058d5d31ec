package preview

import (
	"strconv"

	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/graphics"
)

// Item is one displayable entry: either an image source or an opaque
// custom-content handle the host knows how to render.
type Item struct {
	Src    string
	Srcset string
	// Content, when non-nil, replaces the image. The engine never inspects it.
	Content any
}

// IsCustom reports whether the item carries custom content.
func (it Item) IsCustom() bool {
	return it.Content != nil
}

// ID returns the identifier used for load tracking.
func (it Item) ID(index int) string {
	if it.IsCustom() {
		return "custom:" + strconv.Itoa(index)
	}
	return it.Src
}

// ToolbarConfig hides individual toolbar groups. The zero value shows all.
type ToolbarConfig struct {
	HideZoom   bool
	HideRotate bool
	HideFlip   bool
}

// Display hides parts of the built-in chrome. The zero value shows all.
type Display struct {
	HideNavigation bool
	HideCounter    bool
	HideThumbnails bool
	HideToolbar    bool
}

// Surface is the mounted viewport the engine renders into.
type Surface interface {
	// ViewportSize returns the size of the full-screen viewport.
	ViewportSize() graphics.Size
	// ImageSize returns the rendered, untransformed size of the current
	// image. ok is false until the element has been laid out.
	ImageSize() (size graphics.Size, ok bool)
}

// FixedSurface is a Surface with constant dimensions. An empty Image means
// the image has not been laid out yet.
type FixedSurface struct {
	Viewport graphics.Size
	Image    graphics.Size
}

func (s *FixedSurface) ViewportSize() graphics.Size { return s.Viewport }

func (s *FixedSurface) ImageSize() (graphics.Size, bool) {
	return s.Image, !s.Image.IsEmpty()
}

// Preloader fetches neighbor images ahead of navigation. Preloads are
// fire-and-forget; failures are never reported back.
type Preloader interface {
	Preload(src, srcset string)
}

// PreloaderFunc adapts a function to Preloader.
type PreloaderFunc func(src, srcset string)

func (f PreloaderFunc) Preload(src, srcset string) { f(src, srcset) }

type noPreload struct{}

func (noPreload) Preload(string, string) {}

// Options configures one open session.
type Options struct {
	// Src is used as the only item when Items is empty.
	Src string
	// Srcset applies to Src when Items is empty.
	Srcset string
	Items  []Item
	// Srcsets supplies per-item srcsets for items that have none.
	Srcsets      []string
	InitialIndex int

	Toolbar ToolbarConfig
	Display Display
	// Content replaces the built-in UI entirely. Hosts render it with
	// Viewer.Snapshot and Viewer.Actions.
	Content any
	// ToolbarExtension is rendered next to the built-in toolbar buttons.
	ToolbarExtension any
	// OpenerRect is the thumbnail's bounding box in viewport coordinates.
	// When set, the first load of the initial item plays the entry animation.
	OpenerRect *graphics.Rect

	// Tuning overrides DefaultTuning when non-nil.
	Tuning    *Tuning
	Surface   Surface
	Preloader Preloader
	// OnClose is invoked exactly once when the session ends.
	OnClose func()
	Logger  logr.Logger
}

// normalizeItems resolves the item list and per-item srcsets.
func (o *Options) normalizeItems() []Item {
	var items []Item
	if len(o.Items) == 0 {
		items = []Item{{Src: o.Src, Srcset: o.Srcset}}
	} else {
		items = make([]Item, len(o.Items))
		copy(items, o.Items)
	}
	for i := range items {
		if items[i].Srcset == "" && i < len(o.Srcsets) {
			items[i].Srcset = o.Srcsets[i]
		}
	}
	return items
}
