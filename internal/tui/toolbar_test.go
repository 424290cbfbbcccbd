package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolbarLayout(t *testing.T) {
	tb := NewToolbar()

	tool, ok := tb.At(0)
	assert.True(t, ok)
	assert.Equal(t, ToolHome, tool)

	// a separator column belongs to no button
	_, ok = tb.At(len(buttons[ToolHome].label) + 2)
	assert.False(t, ok)

	tool, ok = tb.At(len(buttons[ToolHome].label) + 3)
	assert.True(t, ok)
	assert.Equal(t, ToolZoomIn, tool)

	_, ok = tb.At(500)
	assert.False(t, ok)
}

func TestToolbarToggles(t *testing.T) {
	tb := NewToolbar()
	assert.False(t, tb.LogScale())
	assert.False(t, tb.Colorbar())

	assert.True(t, tb.Toggle(ToolLog))
	assert.True(t, tb.Toggle(ToolColorbar))
	assert.True(t, tb.LogScale())
	assert.True(t, tb.Colorbar())

	assert.False(t, tb.Toggle(ToolHome))
	assert.True(t, tb.Toggle(ToolLog))
	assert.False(t, tb.LogScale())
}

func TestToolbarHover(t *testing.T) {
	tb := NewToolbar()
	assert.False(t, tb.Hovered())

	tool, ok := tb.Hover(0)
	assert.True(t, ok)
	assert.Equal(t, ToolHome, tool)
	assert.True(t, tb.Hovered())
	assert.NotEmpty(t, tb.Help(tool))

	tb.Leave()
	assert.False(t, tb.Hovered())
	assert.Empty(t, tb.Help(Tool(-1)))
	assert.Contains(t, tb.View(), "Cbar")
}
