package ui

import "github.com/Dicklesworthstone/outline_viewer/pkg/view"

// ReloadMsg swaps in a freshly loaded store, sent by the file watcher via
// Program.Send. Expansion and cursor are preserved; paths that no longer
// resolve degrade inside the view layer instead of failing here.
type ReloadMsg struct {
	Store view.Store
}
