package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	minCatalogW  = 24
)

// panes is the screen layout; View and mouse handling both use it.
type panes struct {
	plotW    int
	toolbarY int
	canvasX  int
	canvasY  int
	canvasW  int
	canvasH  int
	catX     int
	catW     int
	contentH int
	footerY  int
}

func (m Model) helpView() string {
	m.help.Width = m.width
	return m.help.View(keys)
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.helpView())
}

func (m Model) layout() panes {
	var p panes
	contentH := max(4, m.height-headerHeight-m.footerHeight())
	catW := m.width - m.width*3/4
	if catW < minCatalogW {
		catW = min(minCatalogW, m.width)
	}
	p.plotW = max(0, m.width-catW-1)
	p.catX = p.plotW + 1
	p.catW = catW
	p.contentH = contentH
	p.toolbarY = headerHeight
	p.canvasX = 0
	p.canvasY = headerHeight + 1
	p.canvasW = p.plotW
	p.canvasH = contentH - 1
	p.footerY = headerHeight + contentH
	return p
}

// resize applies the layout to the canvas and the file list.
func (m *Model) resize() {
	p := m.layout()
	m.canvas.SetSize(p.canvasW, p.canvasH)
	m.canvas.Draw()
	// box border and padding
	m.list.SetSize(max(1, p.catW-4), max(1, p.contentH-2))
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	p := m.layout()

	header := fit(titleStyle.Render(truncate(" npybrowse ─ "+m.cat.Root()+" ["+m.cat.Filter().Pattern()+"] ", m.width)), m.width)

	plotCol := lipgloss.JoinVertical(lipgloss.Left,
		fit(m.toolbar.View(), p.plotW),
		m.canvas.Frame().String(),
	)
	plotCol = lipgloss.NewStyle().Width(p.plotW).Height(p.contentH).Render(plotCol)

	box := boxStyle
	if m.focus == focusCatalog {
		box = focusBoxStyle
	}
	innerW, innerH := max(1, p.catW-4), max(1, p.contentH-2)
	var files string
	if m.tree != nil {
		files = m.renderTree(innerW, innerH)
	} else {
		files = m.list.View()
	}
	catCol := box.Width(p.catW - 2).Height(innerH).MaxHeight(p.contentH).Render(files)

	body := lipgloss.JoinHorizontal(lipgloss.Top, plotCol, " ", catCol)
	footer := lipgloss.JoinVertical(lipgloss.Left, m.statusView(), dimStyle.Render(m.helpView()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).Render(ui)
}

// statusView renders the four status fields: tool help, x, y and shape.
func (m Model) statusView() string {
	fieldW := [4]int{0, 14, 14, 24}
	fieldW[0] = max(10, m.width-fieldW[1]-fieldW[2]-fieldW[3]-7)
	st := m.Status()
	cells := make([]string, len(st))
	for i, s := range st {
		s = truncate(s, fieldW[i]-1)
		cells[i] = padRight(s, fieldW[i]-lipgloss.Width(s))
	}
	return dimStyle.Render(" " + strings.Join(cells, "│ "))
}
