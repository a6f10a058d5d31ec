package overlay

import (
	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/focus"
	"github.com/go-drift/preview/pkg/preview"
)

// Host attaches overlay entries to the page. It owns everything outside the
// engine: the node tree, page scrolling and keyboard focus.
type Host interface {
	// Mount appends e above the page content.
	Mount(e *Entry)
	// Unmount removes e. Unmounting an entry that is not mounted is a no-op.
	Unmount(e *Entry)
	// LockScroll stops the page behind the overlay from scrolling.
	LockScroll()
	// UnlockScroll restores page scrolling as it was before LockScroll.
	UnlockScroll()
	// TrapFocusWithin confines Tab and Shift+Tab to e's focusable nodes.
	TrapFocusWithin(e *Entry)
}

// Document is the page state a Manager mutates.
type Document struct {
	// Overflow is the body's overflow style ("" means the stylesheet value).
	Overflow string
	// PaddingRight is the body's right padding in pixels.
	PaddingRight float64
	// ScrollbarWidth is the width the page scrollbar occupies. It is added
	// to the padding while scrolling is locked so content does not shift.
	ScrollbarWidth float64
	// Focused is the node holding keyboard focus.
	Focused *focus.FocusNode
}

type savedScroll struct {
	overflow     string
	paddingRight float64
}

// Manager is the reference Host. Entries stack in mount order; the topmost
// one receives keyboard input.
type Manager struct {
	Doc *Document

	entries []*Entry
	traps   map[*Entry]*focus.Trap
	locked  bool
	saved   savedScroll
	log     logr.Logger
}

// NewManager returns a manager over doc. A nil doc gets an empty Document.
func NewManager(doc *Document, log logr.Logger) *Manager {
	if doc == nil {
		doc = &Document{}
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Manager{
		Doc:   doc,
		traps: make(map[*Entry]*focus.Trap),
		log:   log,
	}
}

// Mount appends e to the root. Mounting a mounted entry is a no-op.
func (m *Manager) Mount(e *Entry) {
	if e.mounted {
		m.log.V(1).Info("entry already mounted", "id", e.id)
		return
	}
	e.mounted = true
	m.entries = append(m.entries, e)
}

// Unmount removes e, releasing its focus trap.
func (m *Manager) Unmount(e *Entry) {
	if !e.mounted {
		return
	}
	wasTop := m.Top() == e
	e.mounted = false
	for i, existing := range m.entries {
		if existing == e {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	if trap, ok := m.traps[e]; ok {
		delete(m.traps, e)
		prev := trap.Release()
		if wasTop {
			m.Doc.Focused = prev
		}
	}
}

// LockScroll hides the page scrollbar, saving the page's overflow and
// padding. Locking an already locked page is a no-op.
func (m *Manager) LockScroll() {
	if m.locked {
		return
	}
	m.locked = true
	m.saved = savedScroll{overflow: m.Doc.Overflow, paddingRight: m.Doc.PaddingRight}
	m.Doc.Overflow = "hidden"
	if m.Doc.ScrollbarWidth > 0 {
		m.Doc.PaddingRight = m.saved.paddingRight + m.Doc.ScrollbarWidth
	}
}

// UnlockScroll restores the values saved by LockScroll.
func (m *Manager) UnlockScroll() {
	if !m.locked {
		return
	}
	m.locked = false
	m.Doc.Overflow = m.saved.overflow
	m.Doc.PaddingRight = m.saved.paddingRight
}

// ScrollLocked reports whether page scrolling is locked.
func (m *Manager) ScrollLocked() bool {
	return m.locked
}

// TrapFocusWithin moves focus into e and keeps it there until e unmounts.
func (m *Manager) TrapFocusWithin(e *Entry) {
	if !e.mounted {
		return
	}
	if _, ok := m.traps[e]; ok {
		return
	}
	trap := focus.NewTrap(e.Focusables...)
	trap.Activate(m.Doc.Focused)
	m.traps[e] = trap
	m.Doc.Focused = trap.PrimaryFocus()
}

// Entries returns the mounted entries, bottom first.
func (m *Manager) Entries() []*Entry {
	return m.entries
}

// Top returns the topmost entry, or nil.
func (m *Manager) Top() *Entry {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[len(m.entries)-1]
}

// HandleKey dispatches a document-level key press to the topmost overlay.
// Tab and Shift+Tab move focus within its trap; Enter and Space activate
// the focused control; everything else goes to the viewer. It reports
// whether the key was consumed.
func (m *Manager) HandleKey(key string, shift bool) bool {
	top := m.Top()
	if top == nil {
		return false
	}
	trap := m.traps[top]
	if trap != nil {
		if trap.HandleKey(focus.KeyEvent{Key: key, Shift: shift}) == focus.KeyEventHandled {
			m.Doc.Focused = trap.PrimaryFocus()
			return true
		}
	}

	var focused *focus.FocusNode
	if trap != nil {
		focused = trap.PrimaryFocus()
	}
	onBackdrop := focused != nil && focused == top.Backdrop()
	if (key == "Enter" || key == " ") && focused != nil && !onBackdrop {
		return top.Activate(focused)
	}
	return top.Viewer.HandleKey(preview.KeyEvent{Key: key, OnBackdrop: onBackdrop})
}
