package main

import (
	"testing"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/store"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

func computeSample() view.Positioned {
	st := store.NewMemoryStore([]model.Thought{
		{ID: "a", Value: "alpha", Rank: 0},
		{ID: "a1", ParentID: "a", Value: "alpha one", Rank: 0, Note: "n"},
		{ID: "b", Value: "beta", Rank: 1},
	}, nil)
	state := view.ViewState{}.Expand(nil, true).Expand(model.Path{"a"}, true)
	state = state.WithCursor(model.Path{"a"})
	return view.Compute(st, state)
}

func TestBuildOutlineRows(t *testing.T) {
	rows := buildOutlineRows(computeSample())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ID != "a" || first.Depth != 0 || first.Index != 0 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.Focus != "show" {
		t.Errorf("cursor row focus = %q, want show", first.Focus)
	}
	if first.IsLeaf {
		t.Error("expanded parent reported as leaf")
	}

	child := rows[1]
	if len(child.Path) != 2 || child.Path[0] != "a" || child.Path[1] != "a1" {
		t.Errorf("child path = %v, want [a a1]", child.Path)
	}
	if !child.HasNote {
		t.Error("child note not reported")
	}
	if child.LeftOffset != view.IndentUnit(view.DefaultFontSize) {
		t.Errorf("child left_offset = %v, want one indent unit", child.LeftOffset)
	}

	last := rows[2]
	if !last.TrailingDrop {
		t.Error("last row should carry the trailing drop target")
	}
}

func TestBuildOutlineRowsEmpty(t *testing.T) {
	pos := view.Compute(store.NewMemoryStore(nil, nil), view.ViewState{}.Expand(nil, true))
	if !pos.RootDrop {
		t.Fatal("empty outline should expose the root drop target")
	}
	if rows := buildOutlineRows(pos); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestTextWidth(t *testing.T) {
	if got := textWidth(72); got != 72 {
		t.Errorf("explicit width ignored: got %d", got)
	}
	// Under go test stdout is a pipe, so the probe fails and the fixed
	// fallback applies.
	if got := textWidth(0); got != 100 {
		t.Errorf("fallback width = %d, want 100", got)
	}
}
