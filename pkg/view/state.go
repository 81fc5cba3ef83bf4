// Package view derives the render-ready flat sequence of an outline from an
// immutable state snapshot: a recursive flattener turns the lazily-expanded
// hierarchy into a pre-order list with depth and index bookkeeping, a focus
// classifier grades every visible thought by its distance from the cursor,
// and a layout pass assigns horizontal offsets and drop-target eligibility.
//
// Everything here is a pure function over a ViewState snapshot. Nothing
// mutates the store; repeated invocations for the same snapshot yield
// structurally identical results.
package view

import "github.com/Dicklesworthstone/outline_viewer/pkg/model"

// Store is the read-only slice of the thought store the view layer consumes.
// Implementations must return children in a deterministic order (rank, then
// creation time, then ID) with hidden/attribute children already filtered.
type Store interface {
	// Root returns the ID of the document root (the empty path).
	Root() model.ThoughtID
	// Resolve looks up a thought by ID. ok is false for dangling IDs.
	Resolve(id model.ThoughtID) (model.Thought, bool)
	// ChildrenSorted returns the visible children of a thought in display order.
	ChildrenSorted(id model.ThoughtID) []model.Thought
	// HasVisibleChildren reports whether at least one child survives the
	// display filter. Used only for the cursor window-sizing test.
	HasVisibleChildren(id model.ThoughtID) bool
}

// DefaultFontSize is used when the snapshot carries no explicit font size.
const DefaultFontSize = 18.0

// ViewState is the immutable snapshot one computation pass runs over.
// A new snapshot is taken on every state change; the view layer never
// writes back into it.
type ViewState struct {
	// Expanded holds the set of expanded paths, keyed by Path.Hash().
	// Only children of expanded paths appear in the flat sequence.
	Expanded map[string]bool

	// Cursor is the currently focused path, or nil when nothing is focused.
	Cursor model.Path

	// HoverWindow pins the first visible ancestor window explicitly
	// (hover-expand interaction), overriding the cursor-derived window.
	HoverWindow model.Path

	// DragInProgress forces every drop target visible while a drag is live.
	DragInProgress bool

	// SimulateDrag forces drop targets visible for testing, without a drag.
	SimulateDrag bool

	// FontSize drives the horizontal indent unit. Zero means DefaultFontSize.
	FontSize float64

	// MaxDistance overrides the ancestor window bound. Zero means
	// DefaultMaxDistance.
	MaxDistance int
}

// IsExpanded reports whether the thought at path currently shows its children.
func (s ViewState) IsExpanded(p model.Path) bool {
	return s.Expanded[p.Hash()]
}

// Expand returns a copy of the snapshot with the given path expanded or
// collapsed. The receiver is not modified; snapshots stay immutable.
func (s ViewState) Expand(p model.Path, expanded bool) ViewState {
	next := make(map[string]bool, len(s.Expanded)+1)
	for k, v := range s.Expanded {
		next[k] = v
	}
	next[p.Hash()] = expanded
	s.Expanded = next
	return s
}

// WithCursor returns a copy of the snapshot with the cursor moved.
func (s ViewState) WithCursor(p model.Path) ViewState {
	s.Cursor = p
	return s
}

func (s ViewState) fontSize() float64 {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

func (s ViewState) maxDistance() int {
	if s.MaxDistance <= 0 {
		return DefaultMaxDistance
	}
	return s.MaxDistance
}
