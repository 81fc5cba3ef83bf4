package ui

import "strings"

// helpView renders the full-screen key reference. Any key dismisses it.
func (m OutlineModel) helpView() string {
	r := m.theme.Renderer
	title := r.NewStyle().Foreground(m.theme.Primary).Bold(true)
	key := r.NewStyle().Foreground(m.theme.Highlight)
	desc := r.NewStyle().Foreground(m.theme.Subtext)

	rows := []struct{ k, d string }{
		{"j / k", "move down / up"},
		{"g / G", "jump to first / last"},
		{"space", "toggle expansion"},
		{"l / h", "expand into / collapse out"},
		{"E / C", "expand all / collapse all"},
		{"/", "fuzzy jump to any thought"},
		{"enter", "preview note"},
		{"y", "copy subtree to clipboard"},
		{"d", "toggle drop-target simulation"},
		{"?", "this help"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(title.Render("Keys"))
	sb.WriteString("\n\n")
	for _, row := range rows {
		sb.WriteString("  ")
		sb.WriteString(key.Render(padRight(row.k, 8)))
		sb.WriteString(desc.Render(row.d))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(desc.Render("press any key to close"))
	return sb.String()
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
