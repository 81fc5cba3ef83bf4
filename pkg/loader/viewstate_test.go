package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

func TestViewStateRoundTrip(t *testing.T) {
	root := t.TempDir()
	st := view.ViewState{}.
		Expand(model.Path{"a"}, true).
		Expand(model.Path{"a", "a2"}, true).
		WithCursor(model.Path{"a", "a2", "a2x"})

	if err := SaveViewState(root, st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := LoadViewState(root)
	if !got.IsExpanded(model.Path{"a"}) || !got.IsExpanded(model.Path{"a", "a2"}) {
		t.Error("expansion set not restored")
	}
	if !got.Cursor.Equals(st.Cursor) {
		t.Errorf("expected cursor %v, got %v", st.Cursor, got.Cursor)
	}
}

func TestViewStateMissingFileDegrades(t *testing.T) {
	got := LoadViewState(t.TempDir())
	if got.Cursor != nil || len(got.Expanded) != 0 {
		t.Errorf("missing state file must yield the zero state, got %+v", got)
	}
}

func TestViewStateCorruptFileDegrades(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, DataDirName), 0755)
	os.WriteFile(viewStatePath(root), []byte("garbage"), 0644)

	got := LoadViewState(root)
	if got.Cursor != nil || len(got.Expanded) != 0 {
		t.Errorf("corrupt state file must yield the zero state, got %+v", got)
	}
}

func TestViewStateUnknownVersionDegrades(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, DataDirName), 0755)
	os.WriteFile(viewStatePath(root), []byte(`{"version": 99, "expanded": {"a": true}}`), 0644)

	got := LoadViewState(root)
	if len(got.Expanded) != 0 {
		t.Error("unknown version must be ignored, not misread")
	}
}

func TestViewStateDropsInteractionFlags(t *testing.T) {
	root := t.TempDir()
	st := view.ViewState{
		DragInProgress: true,
		SimulateDrag:   true,
		HoverWindow:    model.Path{"a"},
	}.Expand(model.Path{"a"}, true)

	if err := SaveViewState(root, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := LoadViewState(root)
	if got.DragInProgress || got.SimulateDrag || got.HoverWindow != nil {
		t.Error("interaction-scoped flags must not survive a restart")
	}
}
