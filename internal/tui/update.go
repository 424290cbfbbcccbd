package tui

import (
	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"npybrowse/internal/watch"
)

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.toolbar.setPan(f == focusPlot)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case updateMsg:
		m.update()
		return m, nil
	case watchMsg:
		cmd := m.onChange(watch.Change(msg))
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd
	}
	if m.flat != nil {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the list owns every key while its filter is being typed
	if m.flat != nil && m.list.FilterState() == list.Filtering {
		return m.updateList(msg)
	}
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Focus):
		if m.focus == focusCatalog {
			m.setFocus(focusPlot)
		} else {
			m.setFocus(focusCatalog)
		}
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, keys.ZoomIn):
		return m.pressed(ToolZoomIn)
	case key.Matches(msg, keys.ZoomOut):
		return m.pressed(ToolZoomOut)
	case key.Matches(msg, keys.Home):
		return m.pressed(ToolHome)
	case key.Matches(msg, keys.Log):
		return m.pressed(ToolLog)
	case key.Matches(msg, keys.Colorbar):
		return m.pressed(ToolColorbar)
	case key.Matches(msg, keys.Save):
		return m.pressed(ToolSave)
	case key.Matches(msg, keys.Refresh):
		m.refreshCatalog()
		if m.cat.TakeChange() {
			return m, requestUpdate
		}
		return m, nil
	}
	if m.focus == focusPlot {
		m.panKey(msg)
		return m, nil
	}
	if m.tree != nil {
		cmd := m.treeKey(msg)
		return m, cmd
	}
	return m.updateList(msg)
}

func (m Model) pressed(tool Tool) (tea.Model, tea.Cmd) {
	cmd := m.press(tool)
	return m, cmd
}

func (m *Model) panKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left":
		m.canvas.Pan(-1, 0)
	case "right":
		m.canvas.Pan(1, 0)
	case "up":
		m.canvas.Pan(0, 1)
	case "down":
		m.canvas.Pan(0, -1)
	default:
		return
	}
	m.canvas.Draw()
}

func (m *Model) treeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		m.tree.Move(-1)
	case key.Matches(msg, keys.Down):
		m.tree.Move(1)
	case key.Matches(msg, keys.Right):
		m.tree.Expand()
	case key.Matches(msg, keys.Left):
		m.tree.Collapse()
	case key.Matches(msg, keys.Enter):
		m.tree.Toggle()
	}
	if m.tree.TakeChange() {
		return requestUpdate
	}
	return nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.pickListItem()
	if m.flat.TakeChange() {
		return m, tea.Batch(cmd, requestUpdate)
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := m.layout()
	overToolbar := msg.Y == p.toolbarY && msg.X < p.plotW
	overCanvas := msg.X >= p.canvasX && msg.X < p.canvasX+p.canvasW &&
		msg.Y >= p.canvasY && msg.Y < p.canvasY+p.canvasH

	if overToolbar {
		tool, ok := m.toolbar.Hover(msg.X)
		if ok {
			m.toolHelp = m.toolbar.Help(tool)
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				return m.press(tool)
			}
		} else {
			m.toolHelp = ""
		}
	} else if m.toolbar.Hovered() {
		m.toolbar.Leave()
		m.toolHelp = ""
	}

	if !overCanvas {
		m.cursorX, m.cursorY = "", ""
		return nil
	}
	cx, cy := msg.X-p.canvasX, msg.Y-p.canvasY
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.canvas.ZoomIn()
		m.canvas.Draw()
	case tea.MouseButtonWheelDown:
		m.canvas.ZoomOut()
		m.canvas.Draw()
	}
	m.hoverPlot(cx, cy)
	return nil
}
