package store

import (
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "outline.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreImportAndOrder(t *testing.T) {
	s := openTestDB(t)
	if err := s.Import(sampleThoughts()); err != nil {
		t.Fatalf("import: %v", err)
	}

	kids := s.ChildrenSorted(model.RootID)
	want := []model.ThoughtID{"a", "b", "c"}
	if len(kids) != len(want) {
		t.Fatalf("expected %d root children, got %d", len(want), len(kids))
	}
	for i := range want {
		if kids[i].ID != want[i] {
			t.Errorf("root child %d: expected %s, got %s", i, want[i], kids[i].ID)
		}
	}
}

func TestSQLiteStoreResolve(t *testing.T) {
	s := openTestDB(t)
	if err := s.Import(sampleThoughts()); err != nil {
		t.Fatalf("import: %v", err)
	}

	got, ok := s.Resolve("a2x")
	if !ok {
		t.Fatal("a2x should resolve")
	}
	if got.Value != "deep" || got.ParentID != "a2" {
		t.Errorf("unexpected thought: %+v", got)
	}
	if _, ok := s.Resolve("missing"); ok {
		t.Error("missing ID resolved unexpectedly")
	}
	if r, ok := s.Resolve(model.RootID); !ok || r.ID != model.RootID {
		t.Error("root must always resolve")
	}
}

func TestSQLiteStoreFiltersAttributes(t *testing.T) {
	s := openTestDB(t)
	if err := s.Import(sampleThoughts()); err != nil {
		t.Fatalf("import: %v", err)
	}

	if s.HasVisibleChildren("b") {
		t.Error("expected b to have no visible children (only an attribute)")
	}
	if !s.HasVisibleChildren("a") {
		t.Error("expected a to have visible children")
	}
}

func TestSQLiteStoreDanglingParentReRoots(t *testing.T) {
	s := openTestDB(t)
	err := s.Import([]model.Thought{
		th("orphan", "no-such-parent", "lost", 5),
		th("a", "", "alpha", 0),
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	kids := s.ChildrenSorted(model.RootID)
	if len(kids) != 2 {
		t.Fatalf("expected orphan adopted by root, got %d children", len(kids))
	}
	if kids[1].ID != "orphan" {
		t.Errorf("expected orphan last by rank, got %s", kids[1].ID)
	}
}

func TestSQLiteStoreReimportReplaces(t *testing.T) {
	s := openTestDB(t)
	if err := s.Import(sampleThoughts()); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := s.Import([]model.Thought{th("only", "", "one", 0)}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	kids := s.ChildrenSorted(model.RootID)
	if len(kids) != 1 || kids[0].ID != "only" {
		t.Errorf("reimport should replace contents, got %v", kids)
	}
	if _, ok := s.Resolve("a"); ok {
		t.Error("stale thought survived reimport")
	}
}
