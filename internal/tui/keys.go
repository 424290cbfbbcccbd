package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Home     key.Binding
	Log      key.Binding
	Colorbar key.Binding
	Save     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files/plot")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "collapse")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "expand")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	Home:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "home")),
	Log:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log")),
	Colorbar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "colorbar")),
	Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.ZoomIn, k.ZoomOut, k.Log, k.Colorbar, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.Focus, k.ZoomIn, k.ZoomOut, k.Home},
		{k.Log, k.Colorbar, k.Save, k.Refresh},
		{k.Help, k.Quit},
	}
}
