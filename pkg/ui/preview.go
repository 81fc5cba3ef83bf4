package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// previewModel is the rendered note overlay. The note body is treated as
// markdown and rendered once when the overlay opens.
type previewModel struct {
	title string
	body  string
}

func newPreview(title, note string, width int) (*previewModel, error) {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	body, err := renderer.Render(note)
	if err != nil {
		return nil, err
	}
	return &previewModel{title: title, body: body}, nil
}

func (p *previewModel) view(theme Theme) string {
	r := theme.Renderer
	var sb strings.Builder
	sb.WriteString(r.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.title))
	sb.WriteString("\n")
	sb.WriteString(p.body)
	if !strings.HasSuffix(p.body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(r.NewStyle().Foreground(theme.Secondary).Render("esc to close"))
	return sb.String()
}
