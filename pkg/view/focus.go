package view

import "github.com/Dicklesworthstone/outline_viewer/pkg/model"

// FocusLevel grades a visible thought by its distance from the user's
// attention. Levels are ordinal: higher means further from the cursor.
type FocusLevel int

const (
	// FocusShow renders at full opacity: the cursor, its subtree, and the
	// immediate editing neighborhood.
	FocusShow FocusLevel = iota
	// FocusDim keeps the thought legible but de-emphasized.
	FocusDim
	// FocusHide fades the thought out while keeping it mounted.
	FocusHide
	// FocusHideShift hides the thought and shifts it out of the visual flow:
	// its ancestor chain diverges from the cursor outside the visible window.
	FocusHideShift
)

func (f FocusLevel) String() string {
	switch f {
	case FocusShow:
		return "show"
	case FocusDim:
		return "dim"
	case FocusHide:
		return "hide"
	case FocusHideShift:
		return "hide-shift"
	default:
		return "unknown"
	}
}

// DefaultMaxDistance bounds how many ancestor levels above the cursor stay
// visible before the outline clips to the first-visible window.
const DefaultMaxDistance = 3

// Classifier grades visible thoughts relative to one snapshot's cursor.
// All cursor-derived values are computed once at construction; Classify
// itself is pure, order-independent across nodes, and O(len(path)).
type Classifier struct {
	cursor            model.Path
	bound             int // snapshot MaxDistance
	maxDistance       int // permitted ancestor levels above the window start
	cursorHasChildren bool
	firstVisible      model.Path
	hasWindow         bool
}

// NewClassifier prepares a classifier for one snapshot. A cursor that no
// longer resolves in the store degrades to no-cursor behavior (everything
// classifies FocusShow) rather than failing.
func NewClassifier(st Store, state ViewState) *Classifier {
	c := &Classifier{cursor: state.Cursor, bound: state.maxDistance()}

	if len(c.cursor) > 0 {
		if _, ok := st.Resolve(c.cursor.Leaf()); !ok {
			c.cursor = nil
		}
	}

	// The window is one level wider when the cursor thought has visible
	// children: editing a parent keeps more ancestor context on screen than
	// editing a leaf. (Historically this flag was named "isCursorLeaf" even
	// though it tests the opposite; the behavior is what matters.)
	c.cursorHasChildren = len(c.cursor) > 0 && st.HasVisibleChildren(c.cursor.Leaf())
	if c.cursorHasChildren {
		c.maxDistance = c.bound - 1
	} else {
		c.maxDistance = c.bound - 2
	}

	switch {
	case len(state.HoverWindow) > 0:
		// A pinned hover-expand window overrides the cursor-derived one.
		c.firstVisible = state.HoverWindow
		c.hasWindow = true
	case len(c.cursor)-c.maxDistance > 0:
		c.firstVisible = c.cursor[:len(c.cursor)-c.maxDistance]
		c.hasWindow = true
	}

	return c
}

// Cursor returns the effective cursor after resolvability degradation.
func (c *Classifier) Cursor() model.Path {
	return c.cursor
}

// Classify grades a single visible thought. It is evaluated independently
// per node, not as a sequence pass, and depends only on the snapshot's
// cursor, the window, and ancestry tests between the two paths.
func (c *Classifier) Classify(nodePath model.Path) FocusLevel {
	sharedDepth := model.SharedPrefixLen(c.cursor, nodePath)
	isAncestorOfCursor := len(nodePath) < len(c.cursor) && sharedDepth == len(nodePath)
	isCursorNode := len(nodePath) == len(c.cursor) && sharedDepth == len(nodePath)
	isDescendantOfCursor := len(nodePath) > len(c.cursor) && sharedDepth == len(c.cursor)

	// A node is inside the window when there is no window, the window is the
	// root, or the node sits at or below the first visible path.
	inWindow := !c.hasWindow ||
		len(c.firstVisible) == 0 ||
		nodePath.Equals(c.firstVisible) ||
		model.IsAncestorOf(c.firstVisible, nodePath)

	// Outside the window and not on the cursor's ancestor chain: hidden and
	// shifted out of the flow.
	if !isAncestorOfCursor && !inWindow {
		return FocusHideShift
	}

	// Inside the window but outside the cursor's own subtree: dimmed. The
	// cursor's direct parent escapes this branch only while the cursor
	// thought has children; it then falls through to the distance rule.
	isCursorParent := len(c.cursor) > 0 && nodePath.Equals(c.cursor.Parent())
	if len(c.cursor) > 0 && inWindow &&
		!(isCursorParent && c.cursorHasChildren) &&
		!isCursorNode && !isDescendantOfCursor {
		return FocusDim
	}

	// Raw geometric distance from the cursor's depth, clamped to the window
	// bound: 0 shows, 1 dims, anything further hides.
	distance := len(c.cursor) - len(nodePath)
	if distance < 0 {
		distance = 0
	}
	if distance > c.bound {
		distance = c.bound
	}
	switch distance {
	case 0:
		return FocusShow
	case 1:
		return FocusDim
	default:
		return FocusHide
	}
}
