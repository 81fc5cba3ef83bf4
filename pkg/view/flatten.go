package view

import "github.com/Dicklesworthstone/outline_viewer/pkg/model"

// VisibleThought is one entry of the flattened outline: a thought that is
// currently visible, annotated with enough positional metadata to render the
// tree as a flat list of siblings with computed indentation.
type VisibleThought struct {
	// Depth is the nesting level relative to the traversal root
	// (direct children of the root are depth 0). Always len(Path)-1.
	Depth int

	// IndexInSiblings is the position among the surviving siblings.
	IndexInSiblings int

	// IndexInSequence is the global position in the flat sequence: a running
	// counter across the whole subtree, strictly increasing in emission
	// order and contiguous within one computation.
	IndexInSequence int

	// IsLeaf is true iff the thought has zero visible children. A collapsed
	// thought with hidden children is still a leaf: leaf-ness is about
	// visibility, not existence.
	IsLeaf bool

	Path    model.SimplePath
	Thought model.Thought
}

// indexCounter threads the global sequence index through the traversal as an
// explicit value rather than a captured closure variable, keeping the
// flattener free of hidden shared state.
type indexCounter struct {
	next int
}

func (c *indexCounter) take() int {
	i := c.next
	c.next++
	return i
}

// Flatten walks the hierarchy starting at root and returns the ordered
// pre-order sequence of visible thoughts. Only children of expanded paths
// appear; the thought at root itself is never emitted. A collapsed root
// yields an empty sequence.
//
// Children that fail to resolve are skipped rather than propagated: one
// corrupt subtree must not blank the entire outline.
func Flatten(st Store, state ViewState, root model.Path) []VisibleThought {
	ctr := &indexCounter{}
	return flattenBelow(st, state, root, 0, ctr)
}

func flattenBelow(st Store, state ViewState, parent model.Path, depth int, ctr *indexCounter) []VisibleThought {
	if !state.IsExpanded(parent) {
		return nil
	}

	children := st.ChildrenSorted(parent.Leaf())
	if len(children) == 0 {
		return nil
	}

	out := make([]VisibleThought, 0, len(children))
	sib := 0
	for _, child := range children {
		if child.ID == "" {
			continue // store inconsistency, skip the subtree
		}
		childPath := model.AppendChild(parent, child.ID)

		// The child takes its sequence slot before its descendants so the
		// running counter yields pre-order, globally increasing indices.
		idx := ctr.take()
		sub := flattenBelow(st, state, childPath, depth+1, ctr)

		out = append(out, VisibleThought{
			Depth:           depth,
			IndexInSiblings: sib,
			IndexInSequence: idx,
			IsLeaf:          len(sub) == 0,
			Path:            childPath,
			Thought:         child,
		})
		out = append(out, sub...)
		sib++
	}
	return out
}
