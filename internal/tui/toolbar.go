package tui

import "strings"

// Tool is a toolbar button.
type Tool int

const (
	ToolHome Tool = iota
	ToolZoomIn
	ToolZoomOut
	ToolPan
	ToolSave
	ToolLog
	ToolColorbar
	numTools
)

type button struct {
	label string
	help  string
}

var buttons = [numTools]button{
	ToolHome:     {"Home", "Reset original view (0)"},
	ToolZoomIn:   {"Zoom+", "Zoom in (+)"},
	ToolZoomOut:  {"Zoom-", "Zoom out (-)"},
	ToolPan:      {"Pan", "Pan with the arrow keys (tab)"},
	ToolSave:     {"Save", "Save the figure as PNG (s)"},
	ToolLog:      {"Log", "Toggle logarithmic scale (L)"},
	ToolColorbar: {"Cbar", "Toggle colorbar (c)"},
}

// Toolbar holds the button row and the two render toggles.
type Toolbar struct {
	logScale bool
	colorbar bool
	pan      bool
	hover    Tool // -1 when no button is hovered
}

func NewToolbar() Toolbar { return Toolbar{hover: -1} }

func (t Toolbar) LogScale() bool { return t.logScale }
func (t Toolbar) Colorbar() bool { return t.colorbar }
func (t Toolbar) Panning() bool  { return t.pan }

// Toggle flips a toggle button and reports whether the tool is one.
func (t *Toolbar) Toggle(tool Tool) bool {
	switch tool {
	case ToolLog:
		t.logScale = !t.logScale
	case ToolColorbar:
		t.colorbar = !t.colorbar
	default:
		return false
	}
	return true
}

func (t *Toolbar) setPan(on bool) { t.pan = on }

// Help returns the hover text of a tool.
func (t Toolbar) Help(tool Tool) string {
	if tool < 0 || tool >= numTools {
		return ""
	}
	return buttons[tool].help
}

// Hover marks the button under column x and returns it.
func (t *Toolbar) Hover(x int) (Tool, bool) {
	tool, ok := t.At(x)
	if !ok {
		t.hover = -1
		return 0, false
	}
	t.hover = tool
	return tool, true
}

func (t *Toolbar) Leave() { t.hover = -1 }

func (t Toolbar) Hovered() bool { return t.hover >= 0 }

// At returns the button covering column x of the toolbar row.
func (t Toolbar) At(x int) (Tool, bool) {
	pos := 0
	for i, b := range buttons {
		w := len(b.label) + 2
		if x >= pos && x < pos+w {
			return Tool(i), true
		}
		pos += w + 1
	}
	return 0, false
}

func (t Toolbar) on(tool Tool) bool {
	switch tool {
	case ToolLog:
		return t.logScale
	case ToolColorbar:
		return t.colorbar
	case ToolPan:
		return t.pan
	}
	return false
}

// View renders the buttons as " label " separated by a single space.
func (t Toolbar) View() string {
	parts := make([]string, 0, numTools)
	for i, b := range buttons {
		tool := Tool(i)
		s := buttonStyle
		switch {
		case t.on(tool):
			s = buttonOnStyle
		case t.hover == tool:
			s = buttonHoverStyle
		}
		parts = append(parts, s.Render(" "+b.label+" "))
	}
	return strings.Join(parts, " ")
}
