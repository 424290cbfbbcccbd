package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"npybrowse/internal/array"
	"npybrowse/internal/log"
	"npybrowse/internal/plot"
	"npybrowse/internal/watch"
)

// updateMsg asks for the current selection to be rendered. Selection
// changes and both toggles send it.
type updateMsg struct{}

func requestUpdate() tea.Msg { return updateMsg{} }

type watchMsg watch.Change

// waitForChange blocks on the watcher channel; nil when not watching.
func waitForChange(ch <-chan watch.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return watchMsg(c)
	}
}

const (
	saveWidth  = 1024
	saveHeight = 768
)

// update loads the selected array and renders it. Failures keep the
// current frame and status.
func (m *Model) update() {
	if m.flat != nil {
		m.refreshCatalog()
	}
	e, ok := m.cat.Selected()
	if !ok {
		return
	}
	a, err := array.Load(e.Path)
	if err != nil {
		log.LogWithFields(log.F("path", e.Path), log.F("kind", array.KindOf(err).String())).Warnf("Failed to load array: %v", err)
		return
	}
	opt := plot.Options{
		Rules:    m.rules,
		Title:    plot.TitleFor(e.Path),
		LogScale: m.toolbar.LogScale(),
		Colorbar: m.toolbar.Colorbar(),
	}
	kind := plot.Render(m.canvas, a, opt)
	if kind == plot.KindUnsupported {
		log.LogWithFields(log.F("path", e.Path), log.F("shape", a.ShapeString())).Debug("Unsupported array shape")
		return
	}
	log.LogWithFields(log.F("path", e.Path), log.F("kind", kind.String()), log.F("log", opt.LogScale)).Debug("Rendered array")
	m.current = e.Path
	m.shape = a.ShapeString()
	m.cursorX, m.cursorY = "", ""
}

// press runs a toolbar button.
func (m *Model) press(tool Tool) tea.Cmd {
	switch tool {
	case ToolHome:
		m.canvas.Home()
		m.canvas.Draw()
	case ToolZoomIn:
		m.canvas.ZoomIn()
		m.canvas.Draw()
	case ToolZoomOut:
		m.canvas.ZoomOut()
		m.canvas.Draw()
	case ToolPan:
		m.setFocus(focusPlot)
	case ToolSave:
		m.save()
	case ToolLog, ToolColorbar:
		m.toolbar.Toggle(tool)
		return requestUpdate
	}
	return nil
}

func (m *Model) save() {
	path, err := m.canvas.SaveFile(m.saveDir, saveWidth, saveHeight)
	if err != nil {
		log.LogWithFields(log.F("dir", m.saveDir)).Warnf("Failed to save figure: %v", err)
		m.toolHelp = "save failed: " + err.Error()
		return
	}
	log.LogWithFields(log.F("path", path)).Info("Saved figure")
	m.toolHelp = "saved " + path
}

// onChange refreshes the catalog after a filesystem change and re-renders
// when the change touched the array on screen.
func (m *Model) onChange(c watch.Change) tea.Cmd {
	log.LogWithFields(log.F("path", c.Path), log.F("op", c.Op.String())).Debug("Catalog change")
	m.refreshCatalog()
	var cmd tea.Cmd
	if m.cat.TakeChange() || (m.current != "" && c.Path == m.current) {
		cmd = requestUpdate
	}
	return tea.Batch(cmd, waitForChange(m.changes))
}

// hoverPlot updates the cursor fields for canvas cell (cx, cy).
func (m *Model) hoverPlot(cx, cy int) {
	x, y, ok := m.canvas.CellToData(cx, cy)
	if !ok {
		m.cursorX, m.cursorY = "", ""
		return
	}
	if m.canvas.HasImage() {
		m.cursorX = fmt.Sprintf("x=%d", int(x))
		m.cursorY = fmt.Sprintf("y=%d", int(y))
		return
	}
	m.cursorX = fmt.Sprintf("x=%.4g", x)
	m.cursorY = fmt.Sprintf("y=%.4g", y)
}
