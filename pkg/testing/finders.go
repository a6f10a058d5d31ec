package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/preview/pkg/preview"
)

// Finder locates layers in a rendered frame.
type Finder interface {
	// Evaluate returns all matching layers in buffer order.
	Evaluate(f preview.Frame) []preview.Layer
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	layers []preview.Layer
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() preview.Layer {
	if len(r.layers) == 0 {
		panic(fmt.Sprintf("Finder found no layers: %s", r.description()))
	}
	return r.layers[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) preview.Layer {
	if index < 0 || index >= len(r.layers) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.layers), r.description()))
	}
	return r.layers[index]
}

// All returns all matches in buffer order.
func (r FinderResult) All() []preview.Layer {
	return r.layers
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.layers)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.layers) > 0
}

// Transform returns the transform of the first match.
func (r FinderResult) Transform() string {
	return r.First().Transform
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// Find renders the viewer and evaluates finder against the frame.
func (t *ViewerTester) Find(finder Finder) FinderResult {
	return FindIn(t.Viewer.Render(), finder)
}

// FindIn evaluates finder against an already rendered frame.
func FindIn(f preview.Frame, finder Finder) FinderResult {
	return FinderResult{layers: finder.Evaluate(f), finder: finder}
}

type predicateFinder struct {
	match func(preview.Layer) bool
	desc  string
}

func (p *predicateFinder) Evaluate(f preview.Frame) []preview.Layer {
	var out []preview.Layer
	for _, l := range f.Layers {
		if p.match(l) {
			out = append(out, l)
		}
	}
	return out
}

func (p *predicateFinder) Description() string {
	return p.desc
}

// BySrc matches layers showing the given source.
func BySrc(src string) Finder {
	return &predicateFinder{
		match: func(l preview.Layer) bool { return l.Item.Src == src },
		desc:  fmt.Sprintf("BySrc(%q)", src),
	}
}

// ByOffset matches the layer at a buffer offset (-1, 0 or 1).
func ByOffset(offset int) Finder {
	return &predicateFinder{
		match: func(l preview.Layer) bool { return l.Offset == offset },
		desc:  fmt.Sprintf("ByOffset(%d)", offset),
	}
}

// ByIndex matches the layer showing item index.
func ByIndex(index int) Finder {
	return &predicateFinder{
		match: func(l preview.Layer) bool { return l.Index == index },
		desc:  fmt.Sprintf("ByIndex(%d)", index),
	}
}

// Current matches the centered layer.
func Current() Finder {
	return &predicateFinder{
		match: func(l preview.Layer) bool { return l.Current },
		desc:  "Current()",
	}
}

// ByTransformContaining matches layers whose CSS transform contains substr.
func ByTransformContaining(substr string) Finder {
	return &predicateFinder{
		match: func(l preview.Layer) bool { return strings.Contains(l.Transform, substr) },
		desc:  fmt.Sprintf("ByTransformContaining(%q)", substr),
	}
}

// ByPredicate matches layers for which fn returns true.
func ByPredicate(fn func(preview.Layer) bool, desc string) Finder {
	return &predicateFinder{match: fn, desc: desc}
}
