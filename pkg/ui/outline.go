// Package ui implements the interactive outline viewer: a bubbletea model
// over the view-layer pipeline. Every interaction produces a new state
// snapshot and a full recompute; the UI never mutates computed rows.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// OutlineModel is the root bubbletea model of the viewer.
type OutlineModel struct {
	store view.Store
	state view.ViewState
	pos   view.Positioned
	theme Theme

	docName string
	width   int
	height  int
	offset  int // first rendered row index

	showHelp bool
	finder   *finderModel
	preview  *previewModel

	status   string
	quitting bool
}

// NewOutlineModel builds the root model. The traversal root is always
// expanded; without that nothing would ever be visible.
func NewOutlineModel(st view.Store, state view.ViewState, theme Theme, docName string) OutlineModel {
	m := OutlineModel{
		store:   st,
		state:   state.Expand(nil, true),
		theme:   theme,
		docName: docName,
		width:   80,
		height:  24,
	}
	m.recompute()
	return m
}

// State returns the current snapshot, for persistence on exit.
func (m OutlineModel) State() view.ViewState { return m.state }

// Rows returns the current positioned sequence.
func (m OutlineModel) Rows() []view.PositionedThought { return m.pos.Rows }

// CursorPath returns the focused path, nil when nothing is focused.
func (m OutlineModel) CursorPath() model.Path { return m.state.Cursor }

// Init implements tea.Model.
func (m OutlineModel) Init() tea.Cmd { return nil }

func (m *OutlineModel) recompute() {
	m.pos = view.Compute(m.store, m.state)
	m.clampOffset()
}

// cursorIndex returns the flat index of the cursor row, or -1.
func (m OutlineModel) cursorIndex() int {
	if len(m.state.Cursor) == 0 {
		return -1
	}
	for i, row := range m.pos.Rows {
		if row.Path.Equals(m.state.Cursor) {
			return i
		}
	}
	return -1
}

// Update implements tea.Model.
func (m OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case ReloadMsg:
		return m.applyReload(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m OutlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture input first.
	if m.preview != nil {
		switch msg.String() {
		case "esc", "enter", "q":
			m.preview = nil
		}
		return m, nil
	}
	if m.finder != nil {
		return m.handleFinderKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.jumpTo(0)
	case "G", "end":
		m.jumpTo(len(m.pos.Rows) - 1)

	case " ":
		m.toggleExpand()
	case "l", "right":
		m.expandOrChild()
	case "h", "left":
		m.collapseOrParent()
	case "E":
		m.expandAll()
	case "C":
		m.collapseAll()

	case "d":
		m.state.SimulateDrag = !m.state.SimulateDrag
		m.recompute()

	case "y":
		m.copySubtree()

	case "enter":
		m.openPreview()

	case "/":
		m.finder = newFinder(m.store, m.theme)

	case "?":
		m.showHelp = true
	}
	return m, nil
}

// moveCursor walks the flat sequence. A nil cursor starts at the edge the
// motion enters from.
func (m *OutlineModel) moveCursor(delta int) {
	if len(m.pos.Rows) == 0 {
		return
	}
	idx := m.cursorIndex()
	if idx < 0 {
		if delta > 0 {
			idx = -1
		} else {
			idx = len(m.pos.Rows)
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.pos.Rows) {
		idx = len(m.pos.Rows) - 1
	}
	m.state = m.state.WithCursor(m.pos.Rows[idx].Path)
	m.recompute()
}

func (m *OutlineModel) jumpTo(idx int) {
	if idx < 0 || idx >= len(m.pos.Rows) {
		return
	}
	m.state = m.state.WithCursor(m.pos.Rows[idx].Path)
	m.recompute()
}

func (m *OutlineModel) toggleExpand() {
	cursor := m.state.Cursor
	if len(cursor) == 0 {
		return
	}
	m.state = m.state.Expand(cursor, !m.state.IsExpanded(cursor))
	m.recompute()
}

// expandOrChild handles l: expand a collapsed parent, or step into the
// first child of an expanded one.
func (m *OutlineModel) expandOrChild() {
	cursor := m.state.Cursor
	if len(cursor) == 0 || !m.store.HasVisibleChildren(cursor.Leaf()) {
		return
	}
	if !m.state.IsExpanded(cursor) {
		m.state = m.state.Expand(cursor, true)
		m.recompute()
		return
	}
	m.moveCursor(1)
}

// collapseOrParent handles h: collapse an expanded parent, or climb to the
// parent of anything else.
func (m *OutlineModel) collapseOrParent() {
	cursor := m.state.Cursor
	if len(cursor) == 0 {
		return
	}
	if m.state.IsExpanded(cursor) && m.store.HasVisibleChildren(cursor.Leaf()) {
		m.state = m.state.Expand(cursor, false)
		m.recompute()
		return
	}
	parent := cursor.Parent()
	if len(parent) == 0 {
		return
	}
	m.state = m.state.WithCursor(parent)
	m.recompute()
}

func (m *OutlineModel) expandAll() {
	st := m.state
	var walk func(p model.Path)
	walk = func(p model.Path) {
		for _, child := range m.store.ChildrenSorted(p.Leaf()) {
			childPath := model.AppendChild(p, child.ID)
			if m.store.HasVisibleChildren(child.ID) {
				st = st.Expand(childPath, true)
			}
			walk(childPath)
		}
	}
	walk(nil)
	m.state = st
	m.recompute()
}

func (m *OutlineModel) collapseAll() {
	m.state.Expanded = nil
	m.state = m.state.Expand(nil, true)
	// Deep cursors die with the collapse; keep focus on the top level.
	if len(m.state.Cursor) > 1 {
		m.state = m.state.WithCursor(m.state.Cursor[:1])
	}
	m.recompute()
}

// copySubtree puts the focused thought and its visible descendants on the
// system clipboard as indented text.
func (m *OutlineModel) copySubtree() {
	cursor := m.state.Cursor
	if len(cursor) == 0 {
		return
	}
	t, ok := m.store.Resolve(cursor.Leaf())
	if !ok {
		return
	}

	var sb strings.Builder
	sb.WriteString(t.Value + "\n")
	for _, row := range view.Flatten(m.store, m.state, cursor) {
		sb.WriteString(strings.Repeat("  ", row.Depth+1))
		sb.WriteString(row.Thought.Value)
		sb.WriteString("\n")
	}

	if err := clipboard.WriteAll(sb.String()); err != nil {
		m.status = "clipboard unavailable"
		return
	}
	m.status = fmt.Sprintf("copied %q subtree", t.Value)
}

func (m *OutlineModel) openPreview() {
	cursor := m.state.Cursor
	if len(cursor) == 0 {
		return
	}
	t, ok := m.store.Resolve(cursor.Leaf())
	if !ok || t.Note == "" {
		m.status = "no note on this thought"
		return
	}
	p, err := newPreview(t.Value, t.Note, m.width)
	if err != nil {
		m.status = "cannot render note"
		return
	}
	m.preview = p
}

func (m OutlineModel) handleFinderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.finder = nil
		return m, nil
	case "enter":
		if target := m.finder.selection(); target != nil {
			m.jumpToPath(target)
		}
		m.finder = nil
		return m, nil
	case "down", "ctrl+n":
		m.finder.move(1)
		return m, nil
	case "up", "ctrl+p":
		m.finder.move(-1)
		return m, nil
	}
	cmd := m.finder.update(msg)
	return m, cmd
}

// jumpToPath focuses a path found by the finder, expanding every ancestor
// so the target is actually visible.
func (m *OutlineModel) jumpToPath(target model.Path) {
	st := m.state
	for i := 0; i < len(target); i++ {
		st = st.Expand(target[:i], true)
	}
	m.state = st.WithCursor(target)
	m.recompute()
}

// applyReload swaps in a freshly loaded store. The cursor survives when its
// path still resolves; otherwise classification degrades on its own.
func (m OutlineModel) applyReload(msg ReloadMsg) OutlineModel {
	m.store = msg.Store
	m.state = m.state.Expand(nil, true)
	m.recompute()
	m.status = "outline reloaded"
	return m
}

// bodyHeight is the number of outline rows that fit between header and footer.
func (m OutlineModel) bodyHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// clampOffset keeps the cursor row inside the rendered window.
func (m *OutlineModel) clampOffset() {
	idx := m.cursorIndex()
	if idx < 0 {
		if m.offset > len(m.pos.Rows)-1 {
			m.offset = 0
		}
		return
	}
	h := m.bodyHeight()
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+h {
		m.offset = idx - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m OutlineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}
	if m.preview != nil {
		return m.preview.view(m.theme)
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(m.bodyView())
	sb.WriteString(m.footerView())
	return sb.String()
}

func (m OutlineModel) headerView() string {
	r := m.theme.Renderer
	title := r.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(m.docName)
	count := r.NewStyle().Foreground(m.theme.Secondary).
		Render(fmt.Sprintf("  %d visible", len(m.pos.Rows)))
	return title + count
}

func (m OutlineModel) bodyView() string {
	if len(m.pos.Rows) == 0 {
		return m.emptyView()
	}

	var sb strings.Builder
	end := m.offset + m.bodyHeight()
	if end > len(m.pos.Rows) {
		end = len(m.pos.Rows)
	}
	cursorIdx := m.cursorIndex()
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderRow(m.pos.Rows[i], i == cursorIdx))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m OutlineModel) emptyView() string {
	muted := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary)
	var sb strings.Builder
	sb.WriteString(muted.Render("Empty outline."))
	sb.WriteString("\n\n")
	sb.WriteString(muted.Render("Add thoughts to .ov/outline.json and they appear here."))
	sb.WriteString("\n")
	return sb.String()
}

// renderRow renders one positioned thought. Hidden-shifted rows keep their
// line (they stay mounted) but draw nothing.
func (m OutlineModel) renderRow(row view.PositionedThought, selected bool) string {
	if row.Focus == view.FocusHideShift && !selected {
		return ""
	}

	r := m.theme.Renderer
	indent := strings.Repeat("  ", row.Depth)

	indicator := "•"
	if !row.IsLeaf || m.store.HasVisibleChildren(row.Thought.ID) {
		if m.state.IsExpanded(row.Path) {
			indicator = "▾"
		} else {
			indicator = "▸"
		}
	}

	text := row.Thought.Value
	if row.Thought.Note != "" {
		text += " ≡"
	}
	maxText := m.width - len(indent) - 4
	if maxText < 8 {
		maxText = 8
	}
	text = runewidth.Truncate(text, maxText, "…")

	line := indent +
		r.NewStyle().Foreground(m.theme.Secondary).Render(indicator) +
		" " +
		m.theme.FocusStyle(row.Focus).Render(text)

	if row.TrailingDrop && (m.state.DragInProgress || m.state.SimulateDrag) {
		line += r.NewStyle().Foreground(m.theme.Highlight).Render(" ⊕")
	}
	if selected {
		line = m.theme.Selected.Render(line)
	}
	return line
}

func (m OutlineModel) footerView() string {
	r := m.theme.Renderer
	if m.finder != nil {
		return m.finder.view()
	}
	if m.status != "" {
		return r.NewStyle().Foreground(m.theme.Highlight).Render(m.status)
	}
	return r.NewStyle().Foreground(m.theme.Secondary).
		Render("j/k move · space toggle · / jump · y copy · enter note · ? help · q quit")
}
