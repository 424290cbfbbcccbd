package tui

import (
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"npybrowse/internal/catalog"
	"npybrowse/internal/log"
)

type fileItem struct {
	catalog.Entry
}

func (f fileItem) Title() string       { return f.Label }
func (f fileItem) Description() string { return f.Path }
func (f fileItem) FilterValue() string { return f.Label }

func newFileList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	l := list.New(nil, d, 0, 0)
	l.Title = "Files"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return l
}

// syncList copies the flat catalog into the list, keeping the highlighted
// entry on the catalog's selection.
func (m *Model) syncList() {
	entries := m.flat.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = fileItem{e}
	}
	m.list.SetItems(items)
	if sel, ok := m.flat.Selected(); ok {
		for i, e := range entries {
			if e.Path == sel.Path {
				m.list.Select(i)
				break
			}
		}
	}
}

// pickListItem forwards the list's highlighted item to the catalog.
func (m *Model) pickListItem() {
	it, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return
	}
	if sel, ok := m.flat.Selected(); ok && sel.Path == it.Path {
		return
	}
	m.flat.Select(it.Path)
}

// refreshCatalog rescans the catalog root.
func (m *Model) refreshCatalog() {
	if err := m.cat.Refresh(); err != nil {
		log.LogWithFields(log.F("root", m.cat.Root())).Warnf("Failed to refresh catalog: %v", err)
		return
	}
	if m.flat != nil {
		m.syncList()
	}
}

// renderTree draws the visible tree rows, scrolled so the cursor stays in
// view.
func (m Model) renderTree(w, h int) string {
	rows := m.tree.Rows()
	title := titleStyle.Render("Files")
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, dimStyle.Render("no matching files"))
	}
	h = max(1, h-1)
	cur := m.tree.Cursor()
	start := 0
	if cur >= h {
		start = cur - h + 1
	}
	sel, hasSel := m.tree.Selected()
	lines := []string{title}
	for i := start; i < len(rows) && i < start+h; i++ {
		r := rows[i]
		marker := "  "
		if r.IsDir {
			marker = "▸ "
			if r.Open {
				marker = "▾ "
			}
		}
		text := truncate(strings.Repeat("  ", r.Depth)+marker+r.Label, w)
		switch {
		case i == cur && m.focus == focusCatalog:
			text = cursorStyle.Render(padRight(text, w-lipgloss.Width(text)))
		case hasSel && r.Path == sel.Path:
			text = selectedStyle.Render(text)
		case r.IsDir:
			text = dimStyle.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}
