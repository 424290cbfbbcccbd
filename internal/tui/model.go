package tui

import (
	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"npybrowse/internal/catalog"
	"npybrowse/internal/plot"
	"npybrowse/internal/watch"
)

type focus int

const (
	focusCatalog focus = iota
	focusPlot
)

// Config wires a model to its catalog.
type Config struct {
	// Catalog is a *catalog.Flat or a *catalog.Tree.
	Catalog catalog.Catalog
	Rules   plot.Rules
	SaveDir string
	// Changes, when set, triggers a catalog refresh per change.
	Changes <-chan watch.Change
}

type Model struct {
	width  int
	height int

	cat  catalog.Catalog
	flat *catalog.Flat
	tree *catalog.Tree
	list list.Model

	rules   plot.Rules
	canvas  *plot.Canvas
	toolbar Toolbar
	changes <-chan watch.Change
	saveDir string

	focus focus
	help  help.Model

	// status fields
	toolHelp string
	cursorX  string
	cursorY  string
	shape    string

	// path of the array on the canvas
	current string
}

func New(cfg Config) Model {
	m := Model{
		cat:     cfg.Catalog,
		rules:   cfg.Rules,
		canvas:  plot.NewCanvas(),
		toolbar: NewToolbar(),
		changes: cfg.Changes,
		saveDir: cfg.SaveDir,
		help:    help.New(),
		list:    newFileList(),
	}
	if m.saveDir == "" {
		m.saveDir = "."
	}
	switch c := cfg.Catalog.(type) {
	case *catalog.Flat:
		m.flat = c
		m.syncList()
	case *catalog.Tree:
		m.tree = c
	}
	return m
}

// Init renders the initial selection and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(requestUpdate, waitForChange(m.changes))
}

// Canvas exposes the plot surface.
func (m Model) Canvas() *plot.Canvas { return m.canvas }

func (m Model) Toolbar() Toolbar { return m.toolbar }

// Status returns the four status bar fields.
func (m Model) Status() [4]string {
	return [4]string{m.toolHelp, m.cursorX, m.cursorY, m.shape}
}

// Current is the path of the array shown on the canvas.
func (m Model) Current() string { return m.current }
