package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/sbinet/npyio/npy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"npybrowse/internal/catalog"
	"npybrowse/internal/plot"
	"npybrowse/internal/watch"
)

func writeNPY(t *testing.T, dir, name string, val interface{}) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npy.Write(f, val))
	return p
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run sends msg and follows the update requests it causes.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case updateMsg:
		m = run(t, m, msg)
	}
	return m
}

func treeModel(t *testing.T, dir string) Model {
	t.Helper()
	filter, err := catalog.NewFilter(".npy")
	require.NoError(t, err)
	tree, err := catalog.NewTree(dir, filter)
	require.NoError(t, err)
	m := New(Config{Catalog: tree, Rules: plot.TreeRules, SaveDir: t.TempDir()})
	return run(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func flatModel(t *testing.T, dir string) Model {
	t.Helper()
	filter, err := catalog.NewFilter("npy")
	require.NoError(t, err)
	flat, err := catalog.NewFlat(dir, filter, nil)
	require.NoError(t, err)
	m := New(Config{Catalog: flat, Rules: plot.FlatRules})
	m = run(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return drain(t, m, m.Init())
}

func TestTreeStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4})
	m := treeModel(t, dir)
	m = drain(t, m, m.Init())

	assert.Empty(t, m.Current())
	assert.Equal(t, [4]string{}, m.Status())
	assert.True(t, m.Canvas().Empty())
}

func TestTreeSelectRenders(t *testing.T) {
	dir := t.TempDir()
	a := writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4})
	b := writeNPY(t, dir, "b.npy", mat.NewDense(3, 4, make([]float64, 12)))
	m := treeModel(t, dir)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, a, m.Current())
	assert.Equal(t, "(4,) float64", m.Status()[3])
	assert.Equal(t, "a", m.Canvas().Title())

	m = run(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, b, m.Current())
	assert.Equal(t, "(3, 4) float64", m.Status()[3])
	assert.True(t, m.Canvas().HasImage())
}

func TestLoadFailureKeepsFrameAndStatus(t *testing.T) {
	dir := t.TempDir()
	a := writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, a, m.Current())

	frame := m.Canvas().Frame()
	status := m.Status()
	require.NoError(t, os.Remove(a))

	m = run(t, m, updateMsg{})
	assert.Same(t, frame, m.Canvas().Frame())
	assert.Equal(t, status, m.Status())
	assert.Equal(t, a, m.Current())
}

func TestToggleRerendersSelection(t *testing.T) {
	dir := t.TempDir()
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i + 1)
	}
	writeNPY(t, dir, "m.npy", mat.NewDense(3, 4, data))
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.Canvas().Frame()

	m = run(t, m, keyRunes("L"))
	assert.True(t, m.Toolbar().LogScale())
	assert.False(t, before.Equal(m.Canvas().Frame()))

	m = run(t, m, keyRunes("c"))
	assert.True(t, m.Canvas().Colorbar())

	m = run(t, m, keyRunes("L"))
	m = run(t, m, keyRunes("c"))
	assert.False(t, m.Toolbar().Colorbar())
	assert.True(t, before.Equal(m.Canvas().Frame()))
}

func toolX(t *testing.T, tb Toolbar, tool Tool) int {
	t.Helper()
	for x := 0; x < 80; x++ {
		if got, ok := tb.At(x); ok && got == tool {
			return x
		}
	}
	t.Fatalf("tool %d not on the toolbar", tool)
	return -1
}

func TestToolbarMouse(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 10, 100})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	y := m.layout().toolbarY
	x := toolX(t, m.Toolbar(), ToolLog)

	m = run(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, m.Toolbar().Help(ToolLog), m.Status()[0])
	assert.False(t, m.Toolbar().LogScale())

	m = run(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Toolbar().LogScale())
	assert.True(t, m.Canvas().LogY())

	m = run(t, m, tea.MouseMsg{X: x, Y: y + 5, Action: tea.MouseActionMotion})
	assert.Empty(t, m.Status()[0])
}

func TestPlotHoverAndWheel(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4, 5, 6})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	p := m.layout()
	cx, cy := p.canvasX+p.canvasW/2, p.canvasY+p.canvasH/2

	m = run(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionMotion})
	assert.True(t, strings.HasPrefix(m.Status()[1], "x="))
	assert.True(t, strings.HasPrefix(m.Status()[2], "y="))

	m = run(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Greater(t, m.Canvas().View().Zoom, 1.0)

	m = run(t, m, keyRunes("0"))
	assert.Equal(t, plot.HomeView(), m.Canvas().View())
}

func TestFocusAndPan(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Toolbar().Panning())
	m = run(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Greater(t, m.Canvas().View().PanX, 0.0)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Greater(t, m.Canvas().View().PanY, 0.0)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.Toolbar().Panning())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "wave.npy", []float64{0, 1, 0, -1, 0})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = run(t, m, keyRunes("s"))
	assert.True(t, strings.HasPrefix(m.Status()[0], "saved "))
	_, err := os.Stat(filepath.Join(m.saveDir, "wave.png"))
	assert.NoError(t, err)

	m.saveDir = filepath.Join(dir, "missing")
	m = run(t, m, keyRunes("s"))
	assert.True(t, strings.HasPrefix(m.Status()[0], "save failed: "))
}

func TestWatchChangeRefreshes(t *testing.T) {
	dir := t.TempDir()
	a := writeNPY(t, dir, "a.npy", []float64{1, 2})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.tree.Rows(), 1)

	c := writeNPY(t, dir, "c.npy", []float64{5})
	m = run(t, m, watchMsg(watch.Change{Path: c, Op: fsnotify.Create}))
	assert.Len(t, m.tree.Rows(), 2)
	assert.Equal(t, a, m.Current())

	writeNPY(t, dir, "a.npy", []float64{1, 2, 3, 4, 5, 6})
	m = run(t, m, watchMsg(watch.Change{Path: a, Op: fsnotify.Write}))
	assert.Equal(t, "(6,) float64", m.Status()[3])
}

func TestWatchMsgRearmsWait(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2})
	filter, err := catalog.NewFilter(".npy")
	require.NoError(t, err)
	tree, err := catalog.NewTree(dir, filter)
	require.NoError(t, err)

	ch := make(chan watch.Change, 1)
	next := watch.Change{Path: filepath.Join(dir, "b.npy"), Op: fsnotify.Create}
	ch <- next
	m := New(Config{Catalog: tree, Rules: plot.TreeRules, Changes: ch})
	m = run(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := m.Update(watchMsg(watch.Change{Path: filepath.Join(dir, "x.txt"), Op: fsnotify.Write}))
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var cmds []tea.Cmd
		for _, c := range batch {
			if c != nil {
				cmds = append(cmds, c)
			}
		}
		require.Len(t, cmds, 1)
		msg = cmds[0]()
	}
	assert.Equal(t, watchMsg(next), msg)
}

func TestToolKeysReturnUpdatedModel(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2, 3})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	next, cmd := m.Update(keyRunes("L"))
	got := next.(Model)
	assert.True(t, got.Toolbar().LogScale())
	assert.False(t, m.Toolbar().LogScale())
	require.NotNil(t, cmd)
	assert.Equal(t, updateMsg{}, cmd())

	next, cmd = got.Update(keyRunes("c"))
	got = next.(Model)
	assert.True(t, got.Toolbar().Colorbar())
	assert.NotNil(t, cmd)

	next, cmd = got.Update(tea.MouseMsg{
		X: toolX(t, got.Toolbar(), ToolPan), Y: got.layout().toolbarY,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	got = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, focusPlot, got.focus)
	assert.True(t, got.Toolbar().Panning())
}

func TestFlatDefaultSelection(t *testing.T) {
	dir := t.TempDir()
	x := writeNPY(t, dir, "x.npy", []float64{1, 2, 3})
	y := writeNPY(t, dir, "y.npy", mat.NewDense(2, 3, []float64{0, 1, 2, 3, 4, 5}))
	m := flatModel(t, dir)

	assert.Equal(t, x, m.Current())
	assert.Empty(t, m.Canvas().Title())

	m = run(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, y, m.Current())
	assert.Equal(t, "(2, 3) float64", m.Status()[3])
}

func TestFlatUpdatePicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "x.npy", []float64{1, 2, 3})
	m := flatModel(t, dir)
	require.Len(t, m.list.Items(), 1)

	writeNPY(t, dir, "z.npy", []float64{3, 2, 1})
	m = run(t, m, updateMsg{})
	assert.Len(t, m.list.Items(), 2)
}

func TestView(t *testing.T) {
	dir := t.TempDir()
	writeNPY(t, dir, "a.npy", []float64{1, 2, 3})
	m := treeModel(t, dir)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	v := m.View()
	assert.Contains(t, v, "Files")
	assert.Contains(t, v, "Zoom+")
	assert.Contains(t, v, "(3,) float64")
	assert.Contains(t, v, "[*.npy]")

	m = run(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.NotEmpty(t, m.View())
}

func TestQuit(t *testing.T) {
	m := treeModel(t, t.TempDir())
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
