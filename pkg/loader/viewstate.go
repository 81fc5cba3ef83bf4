package loader

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// ViewStateFileName persists expansion and cursor between sessions.
const ViewStateFileName = "view-state.json"

// viewStateVersion guards the on-disk format. Unknown versions are ignored
// rather than misread.
const viewStateVersion = 1

// persistedViewState is the on-disk shape of the session state. Only the
// durable parts of a ViewState are kept: drag flags and the hover window are
// interaction-scoped and never survive a restart.
type persistedViewState struct {
	Version  int               `json:"version"`
	Expanded map[string]bool   `json:"expanded,omitempty"`
	Cursor   []model.ThoughtID `json:"cursor,omitempty"`
}

func viewStatePath(root string) string {
	return filepath.Join(root, DataDirName, ViewStateFileName)
}

// LoadViewState restores the persisted expansion set and cursor for a
// document root. A missing, corrupt, or unrecognized file degrades to the
// zero state: losing session state must never block opening the outline.
func LoadViewState(root string) view.ViewState {
	data, err := os.ReadFile(viewStatePath(root))
	if err != nil {
		return view.ViewState{}
	}

	var p persistedViewState
	if err := json.Unmarshal(data, &p); err != nil || p.Version != viewStateVersion {
		return view.ViewState{}
	}

	st := view.ViewState{Expanded: p.Expanded}
	if len(p.Cursor) > 0 {
		st.Cursor = model.Path(p.Cursor)
	}
	return st
}

// SaveViewState persists the durable parts of a snapshot for a document root.
func SaveViewState(root string, st view.ViewState) error {
	path := viewStatePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	p := persistedViewState{
		Version:  viewStateVersion,
		Expanded: st.Expanded,
		Cursor:   st.Cursor,
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode view state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write view state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace view state: %w", err)
	}
	return nil
}
