package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// Theme bundles the renderer and the color tokens used across the TUI.
// Styles are created through Theme.Renderer so output degrades correctly on
// terminals without true color.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor // accents, title
	Secondary lipgloss.AdaptiveColor // bullets, indicators
	Highlight lipgloss.AdaptiveColor // IDs, matches
	Text      lipgloss.AdaptiveColor // row text
	Subtext   lipgloss.AdaptiveColor // dimmed rows
	Muted     lipgloss.AdaptiveColor // faded rows, chrome

	Selected lipgloss.Style // full-row cursor highlight
}

// DefaultTheme returns the standard dark theme (Dracula-leaning palette).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56C2", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#5A637E", Dark: "#6272A4"},
		Highlight: lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#8BE9FD"},
		Text:      lipgloss.AdaptiveColor{Light: "#1E1F29", Dark: "#F8F8F2"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#BFBFBF"},
		Muted:     lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#44475A"},
		Selected: r.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#E9D8FD", Dark: "#44475A"}).
			Bold(true),
	}
}

// FocusStyle maps a focus level onto a text style: full, dimmed, or faded.
// Hidden-shifted rows are not rendered at all, so they have no style.
func (t Theme) FocusStyle(f view.FocusLevel) lipgloss.Style {
	switch f {
	case view.FocusShow:
		return t.Renderer.NewStyle().Foreground(t.Text)
	case view.FocusDim:
		return t.Renderer.NewStyle().Foreground(t.Subtext)
	default:
		return t.Renderer.NewStyle().Foreground(t.Muted).Faint(true)
	}
}
