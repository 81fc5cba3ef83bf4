package store

import (
	"testing"
	"time"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

func th(id, parent model.ThoughtID, value string, rank int) model.Thought {
	return model.Thought{ID: id, ParentID: parent, Value: value, Rank: rank}
}

func sampleThoughts() []model.Thought {
	return []model.Thought{
		th("b", "", "beta", 1),
		th("a", "", "alpha", 0),
		th("c", "", "gamma", 2),
		th("a1", "a", "alpha one", 0),
		th("a2", "a", "alpha two", 1),
		th("a2x", "a2", "deep", 0),
		th("b-attr", "b", "=pin", 0),
	}
}

func childIDs(s *MemoryStore, id model.ThoughtID) []model.ThoughtID {
	kids := s.ChildrenSorted(id)
	out := make([]model.ThoughtID, len(kids))
	for i, k := range kids {
		out[i] = k.ID
	}
	return out
}

func TestMemoryStoreSiblingOrder(t *testing.T) {
	s := NewMemoryStore(sampleThoughts(), nil)

	got := childIDs(s, model.RootID)
	want := []model.ThoughtID{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d root children, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("root child %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestMemoryStoreRankTiesBreakOnCreatedThenID(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	thoughts := []model.Thought{
		{ID: "z", Value: "z", Rank: 0, CreatedAt: t0},
		{ID: "y", Value: "y", Rank: 0, CreatedAt: t0},
		{ID: "x", Value: "x", Rank: 0, CreatedAt: t0.Add(-time.Hour)},
	}
	s := NewMemoryStore(thoughts, nil)

	got := childIDs(s, model.RootID)
	want := []model.ThoughtID{"x", "y", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestMemoryStoreFiltersAttributes(t *testing.T) {
	s := NewMemoryStore(sampleThoughts(), nil)

	for _, k := range s.ChildrenSorted("b") {
		if k.IsAttribute() {
			t.Errorf("attribute thought %s leaked through the default filter", k.ID)
		}
	}
	if s.HasVisibleChildren("b") {
		t.Error("expected b to have no visible children (only an attribute)")
	}
	if !s.HasVisibleChildren("a") {
		t.Error("expected a to have visible children")
	}
}

func TestMemoryStoreDanglingParentReRoots(t *testing.T) {
	thoughts := []model.Thought{
		th("orphan", "no-such-parent", "lost", 0),
		th("a", "", "alpha", 0),
	}
	s := NewMemoryStore(thoughts, nil)

	got := childIDs(s, model.RootID)
	if len(got) != 2 {
		t.Fatalf("expected orphan re-rooted alongside a, got %v", got)
	}
	if _, ok := s.Resolve("orphan"); !ok {
		t.Error("orphan should still resolve")
	}
}

func TestMemoryStoreBreaksCycles(t *testing.T) {
	thoughts := []model.Thought{
		th("p", "q", "p", 0),
		th("q", "p", "q", 0),
		th("a", "", "alpha", 0),
	}
	s := NewMemoryStore(thoughts, nil)

	// Every thought must be reachable from the root in finite steps.
	seen := map[model.ThoughtID]bool{}
	var walk func(id model.ThoughtID)
	walk = func(id model.ThoughtID) {
		for _, k := range s.ChildrenSorted(id) {
			if seen[k.ID] {
				t.Fatalf("thought %s visited twice: cycle survived", k.ID)
			}
			seen[k.ID] = true
			walk(k.ID)
		}
	}
	walk(model.RootID)

	for _, id := range []model.ThoughtID{"p", "q", "a"} {
		if !seen[id] {
			t.Errorf("thought %s unreachable after cycle break", id)
		}
	}
}

func TestMemoryStoreResolveRoot(t *testing.T) {
	s := NewMemoryStore(nil, nil)

	if s.Root() != model.RootID {
		t.Errorf("expected root ID %s, got %s", model.RootID, s.Root())
	}
	r, ok := s.Resolve(model.RootID)
	if !ok || r.ID != model.RootID {
		t.Errorf("root must always resolve, got ok=%v id=%s", ok, r.ID)
	}
	if _, ok := s.Resolve("missing"); ok {
		t.Error("missing ID resolved unexpectedly")
	}
}

func TestMemoryStoreSelfParentReRoots(t *testing.T) {
	s := NewMemoryStore([]model.Thought{th("loop", "loop", "self", 0)}, nil)

	got := childIDs(s, model.RootID)
	if len(got) != 1 || got[0] != "loop" {
		t.Errorf("self-parented thought should become a root child, got %v", got)
	}
}
