package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// WriteText renders the positioned sequence as an indented plain-text dump.
// width truncates long rows; zero means no truncation. Dimmed and faded rows
// carry a marker so the focus structure survives the export.
func WriteText(w io.Writer, pos view.Positioned, width int) error {
	rows := flowRows(pos)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(empty outline)")
		return err
	}

	for _, row := range rows {
		bullet := "•"
		if !row.IsLeaf {
			bullet = "▸"
		}

		line := strings.Repeat("  ", row.Depth) + bullet + " " + row.Thought.Value
		switch row.Focus {
		case view.FocusDim:
			line += "  ~"
		case view.FocusHide:
			line += "  ~~"
		}
		if row.Thought.Note != "" {
			line += "  [note]"
		}

		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
