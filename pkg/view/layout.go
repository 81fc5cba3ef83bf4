package view

import "github.com/Dicklesworthstone/outline_viewer/pkg/model"

// RenderMode tells the layout pass how drop targets should be surfaced.
// It is passed explicitly rather than read from ambient state so layout
// stays a deterministic function of its inputs.
type RenderMode int

const (
	// ModeNormal applies the standard drop-target eligibility rules.
	ModeNormal RenderMode = iota
	// ModeDrag forces every drop target visible while a drag is live.
	ModeDrag
	// ModeSimulateDrag forces targets visible without a drag, for testing.
	ModeSimulateDrag
)

// ModeFor derives the render mode from a snapshot's drag flags.
func ModeFor(state ViewState) RenderMode {
	switch {
	case state.DragInProgress:
		return ModeDrag
	case state.SimulateDrag:
		return ModeSimulateDrag
	default:
		return ModeNormal
	}
}

// indentFactor scales the font size into one depth level of horizontal
// offset. Purely cosmetic.
const indentFactor = 1.25

// IndentUnit returns the horizontal offset of one depth level for the given
// font size.
func IndentUnit(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return fontSize * indentFactor
}

// PositionedThought is a flattened entry annotated with everything the
// rendering layer needs: focus level, horizontal offset, flat-order
// neighbors, and drop-target eligibility.
type PositionedThought struct {
	VisibleThought

	Focus      FocusLevel
	LeftOffset float64

	// PrevID and NextID are the neighboring thoughts in flat order,
	// empty at the sequence edges. They exist only to decide trailing
	// drop-target eligibility.
	PrevID model.ThoughtID
	NextID model.ThoughtID

	// TrailingDrop marks an eligible insertion point after this thought.
	TrailingDrop bool
	// EmptyDrop marks an eligible insertion point inside this (leaf) thought.
	EmptyDrop bool
}

// Positioned is the final output of one computation pass.
type Positioned struct {
	Rows []PositionedThought

	// RootDrop is the insertion target for an empty outline: even with no
	// rows, the document root accepts a trailing drop.
	RootDrop bool
}

// Layout assigns each flattened thought a horizontal offset proportional to
// its depth, its flat-order neighbors, and its drop-target flags. classify
// is invoked once per row; Layout adds no focus logic of its own.
func Layout(rows []VisibleThought, state ViewState, mode RenderMode, classify func(model.Path) FocusLevel) Positioned {
	out := Positioned{RootDrop: len(rows) == 0}
	if len(rows) == 0 {
		return out
	}

	unit := IndentUnit(state.fontSize())
	force := mode == ModeDrag || mode == ModeSimulateDrag

	out.Rows = make([]PositionedThought, len(rows))
	for i, row := range rows {
		p := PositionedThought{
			VisibleThought: row,
			Focus:          classify(row.Path),
			LeftOffset:     float64(row.Depth) * unit,
		}
		if i > 0 {
			p.PrevID = rows[i-1].Thought.ID
		}
		if i < len(rows)-1 {
			p.NextID = rows[i+1].Thought.ID
		}

		if force {
			p.TrailingDrop = true
			p.EmptyDrop = true
		} else {
			p.TrailingDrop = p.NextID == "" && p.Focus != FocusHideShift
			p.EmptyDrop = row.IsLeaf && (p.Focus == FocusShow || p.Focus == FocusDim)
		}
		out.Rows[i] = p
	}
	return out
}

// Compute runs the full pipeline for one snapshot: flatten from the document
// root, classify each row against the cursor, and position the result.
func Compute(st Store, state ViewState) Positioned {
	rows := Flatten(st, state, nil)
	classifier := NewClassifier(st, state)
	return Layout(rows, state, ModeFor(state), classifier.Classify)
}
