// Package export renders a positioned outline sequence to SVG, PNG, or
// plain text. Exports are snapshots of what the viewer shows: focus levels
// map to opacity, hidden-shifted rows are dropped from the flow entirely.
package export

import "github.com/Dicklesworthstone/outline_viewer/pkg/view"

// Options configures an export pass.
type Options struct {
	// Title is drawn above the outline. Empty means no title block.
	Title string

	// FontSize matches the view-state font size. Zero means the default.
	FontSize float64

	// Width is the canvas width in pixels. Zero picks a width from the
	// widest row.
	Width int
}

func (o Options) fontSize() float64 {
	if o.FontSize <= 0 {
		return view.DefaultFontSize
	}
	return o.FontSize
}

// opacity maps a focus level to export opacity. Hidden-shifted rows return
// 0 and are skipped by every renderer.
func opacity(f view.FocusLevel) float64 {
	switch f {
	case view.FocusShow:
		return 1.0
	case view.FocusDim:
		return 0.5
	case view.FocusHide:
		return 0.12
	default:
		return 0
	}
}

// flowRows drops hidden-shifted rows: they are out of the visual flow, so
// exporting them would leave unexplained gaps.
func flowRows(pos view.Positioned) []view.PositionedThought {
	out := make([]view.PositionedThought, 0, len(pos.Rows))
	for _, row := range pos.Rows {
		if row.Focus == view.FocusHideShift {
			continue
		}
		out = append(out, row)
	}
	return out
}
