package view

import (
	"reflect"
	"testing"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/store"
)

func th(id, parent model.ThoughtID, rank int) model.Thought {
	return model.Thought{ID: id, ParentID: parent, Value: string(id), Rank: rank}
}

// fixtureStore builds:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	│       └── a2x
//	├── b
//	│   └── b1
//	└── c
func fixtureStore() *store.MemoryStore {
	return store.NewMemoryStore([]model.Thought{
		th("a", "", 0),
		th("b", "", 1),
		th("c", "", 2),
		th("a1", "a", 0),
		th("a2", "a", 1),
		th("a2x", "a2", 0),
		th("b1", "b", 0),
	}, nil)
}

func expanded(paths ...model.Path) ViewState {
	st := ViewState{}
	for _, p := range paths {
		st = st.Expand(p, true)
	}
	return st
}

func p(ids ...model.ThoughtID) model.Path {
	return model.Path(ids)
}

func flatIDs(rows []VisibleThought) []model.ThoughtID {
	out := make([]model.ThoughtID, len(rows))
	for i, r := range rows {
		out[i] = r.Thought.ID
	}
	return out
}

func TestFlattenCollapsedSiblingStaysLeaf(t *testing.T) {
	st := fixtureStore()
	// Root and a expanded, b collapsed: b1 exists but stays hidden.
	state := expanded(p(), p("a"))

	rows := Flatten(st, state, nil)

	want := []model.ThoughtID{"a", "a1", "a2", "b", "c"}
	got := flatIDs(rows)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sequence %v, got %v", want, got)
	}

	byID := map[model.ThoughtID]VisibleThought{}
	for _, r := range rows {
		byID[r.Thought.ID] = r
	}
	if byID["a"].IsLeaf {
		t.Error("a has visible children, must not be leaf")
	}
	if !byID["a2"].IsLeaf {
		t.Error("a2 is collapsed, so its children are hidden: leaf must be true")
	}
	if !byID["b"].IsLeaf {
		t.Error("b is collapsed, so b1 is hidden: leaf must be true")
	}
	if byID["a1"].Depth != 1 || byID["b"].Depth != 0 {
		t.Errorf("unexpected depths: a1=%d b=%d", byID["a1"].Depth, byID["b"].Depth)
	}
}

func TestFlattenPreOrderAndIndices(t *testing.T) {
	st := fixtureStore()
	state := expanded(p(), p("a"), p("a", "a2"), p("b"))

	rows := Flatten(st, state, nil)

	want := []model.ThoughtID{"a", "a1", "a2", "a2x", "b", "b1", "c"}
	got := flatIDs(rows)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected pre-order %v, got %v", want, got)
	}

	for i, r := range rows {
		if r.IndexInSequence != i {
			t.Errorf("row %s: expected sequence index %d, got %d", r.Thought.ID, i, r.IndexInSequence)
		}
		if r.Depth != len(r.Path)-1 {
			t.Errorf("row %s: depth %d does not match path length %d", r.Thought.ID, r.Depth, len(r.Path))
		}
	}

	sibWant := map[model.ThoughtID]int{"a": 0, "a1": 0, "a2": 1, "a2x": 0, "b": 1, "b1": 0, "c": 2}
	for _, r := range rows {
		if r.IndexInSiblings != sibWant[r.Thought.ID] {
			t.Errorf("row %s: expected sibling index %d, got %d", r.Thought.ID, sibWant[r.Thought.ID], r.IndexInSiblings)
		}
	}
}

func TestFlattenCollapsedRootIsEmpty(t *testing.T) {
	st := fixtureStore()
	rows := Flatten(st, ViewState{}, nil)
	if len(rows) != 0 {
		t.Errorf("collapsed root must yield an empty sequence, got %v", flatIDs(rows))
	}
}

func TestFlattenEmptyOutline(t *testing.T) {
	st := store.NewMemoryStore(nil, nil)
	rows := Flatten(st, expanded(p()), nil)
	if len(rows) != 0 {
		t.Errorf("empty outline must flatten to nothing, got %v", flatIDs(rows))
	}
}

func TestFlattenSubtreeRoot(t *testing.T) {
	st := fixtureStore()
	state := expanded(p(), p("a"), p("a", "a2"))

	rows := Flatten(st, state, p("a"))

	want := []model.ThoughtID{"a1", "a2", "a2x"}
	got := flatIDs(rows)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected subtree %v, got %v", want, got)
	}
	// Depth and sequence index are relative to the traversal root.
	if rows[0].Depth != 0 || rows[0].IndexInSequence != 0 {
		t.Errorf("first subtree row: depth=%d seq=%d, expected 0/0", rows[0].Depth, rows[0].IndexInSequence)
	}
	if rows[2].Depth != 1 {
		t.Errorf("a2x: expected depth 1 below subtree root, got %d", rows[2].Depth)
	}
}

func TestFlattenIdempotent(t *testing.T) {
	st := fixtureStore()
	state := expanded(p(), p("a"), p("a", "a2"))

	first := Flatten(st, state, nil)
	second := Flatten(st, state, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("flatten is not idempotent for an unchanged snapshot")
	}
}

func TestFlattenEmittedPathsDoNotAlias(t *testing.T) {
	st := fixtureStore()
	state := expanded(p(), p("a"), p("a", "a2"))

	rows := Flatten(st, state, nil)
	var a1Path model.Path
	for _, r := range rows {
		if r.Thought.ID == "a1" {
			a1Path = r.Path
		}
	}
	if a1Path == nil {
		t.Fatal("a1 not emitted")
	}
	// Mutating one emitted path must not bleed into siblings' paths.
	a1Path[0] = "mutated"
	for _, r := range rows {
		if r.Thought.ID == "a2" && r.Path[0] != "a" {
			t.Error("sibling paths share a backing array")
		}
	}
}
