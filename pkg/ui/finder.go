package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// finderMaxResults bounds the rendered match list.
const finderMaxResults = 8

// finderEntry is one jump target: any thought reachable from the root,
// expanded or not.
type finderEntry struct {
	label string
	path  model.Path
}

type finderEntries []finderEntry

func (f finderEntries) String(i int) string { return f[i].label }
func (f finderEntries) Len() int            { return len(f) }

// finderModel is the fuzzy jump overlay. Matching runs over every thought
// in the store so collapsed subtrees are reachable too.
type finderModel struct {
	input   textinput.Model
	entries finderEntries
	matches []fuzzy.Match
	cursor  int
	theme   Theme
}

func newFinder(st view.Store, theme Theme) *finderModel {
	input := textinput.New()
	input.Placeholder = "jump to thought"
	input.Prompt = "/ "
	input.Focus()

	f := &finderModel{
		input:   input,
		entries: collectEntries(st),
		theme:   theme,
	}
	return f
}

// collectEntries walks the whole store depth-first, honoring the child
// filter but not the expansion state.
func collectEntries(st view.Store) finderEntries {
	var out finderEntries
	var walk func(p model.Path)
	walk = func(p model.Path) {
		for _, child := range st.ChildrenSorted(p.Leaf()) {
			childPath := model.AppendChild(p, child.ID)
			out = append(out, finderEntry{label: child.Value, path: childPath})
			walk(childPath)
		}
	}
	walk(nil)
	return out
}

func (f *finderModel) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	query := f.input.Value()
	if query == "" {
		f.matches = nil
	} else {
		f.matches = fuzzy.FindFrom(query, f.entries)
	}
	f.cursor = 0
	return cmd
}

func (f *finderModel) move(delta int) {
	n := len(f.visibleMatches())
	if n == 0 {
		return
	}
	f.cursor = (f.cursor + delta + n) % n
}

// selection returns the path of the highlighted match, or nil.
func (f *finderModel) selection() model.Path {
	matches := f.visibleMatches()
	if f.cursor < 0 || f.cursor >= len(matches) {
		return nil
	}
	return f.entries[matches[f.cursor].Index].path
}

func (f *finderModel) visibleMatches() []fuzzy.Match {
	if len(f.matches) > finderMaxResults {
		return f.matches[:finderMaxResults]
	}
	return f.matches
}

func (f *finderModel) view() string {
	r := f.theme.Renderer
	var sb strings.Builder
	sb.WriteString(f.input.View())

	matches := f.visibleMatches()
	for i, match := range matches {
		sb.WriteString("\n")
		line := "  " + f.entries[match.Index].label
		if i == f.cursor {
			sb.WriteString(f.theme.Selected.Render(line))
		} else {
			sb.WriteString(r.NewStyle().Foreground(f.theme.Subtext).Render(line))
		}
	}
	if f.input.Value() != "" && len(matches) == 0 {
		sb.WriteString("\n")
		sb.WriteString(r.NewStyle().Foreground(f.theme.Secondary).Render("  no matches"))
	}
	return sb.String()
}
