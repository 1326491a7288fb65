package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsetsTrackDockedPanels(t *testing.T) {
	c := New(DefaultStyle())
	c.Begin(800, 600, Input{})

	c.BeginTopPanel(30)
	c.EndPanel()
	c.BeginBottomPanel(40)
	c.EndPanel()
	c.BeginLeftPanel(200)
	c.EndPanel()
	c.BeginRightPanel(250)
	c.EndPanel()
	c.End()

	assert.Equal(t, Insets{Left: 200, Top: 30, Right: 250, Bottom: 40}, c.Insets())
}

func TestInsetsEmptyFrame(t *testing.T) {
	c := New(DefaultStyle())
	c.Begin(800, 600, Input{})
	c.End()
	assert.Equal(t, Insets{}, c.Insets())
}

func TestSidePanelsFitUnderTopPanel(t *testing.T) {
	c := New(DefaultStyle())
	c.Begin(800, 600, Input{})

	c.BeginTopPanel(50)
	c.EndPanel()
	c.BeginLeftPanel(200)
	left := c.panel
	c.EndPanel()
	c.End()

	assert.Equal(t, 50, left.y)
	assert.Equal(t, 550, left.h)
}

func TestButtonClick(t *testing.T) {
	style := DefaultStyle()

	frame := func(in Input) (*Context, bool) {
		c := New(style)
		c.Begin(800, 600, in)
		c.BeginLeftPanel(200)
		clicked := c.Button("Open")
		c.EndPanel()
		c.End()
		return c, clicked
	}

	// The first button row starts at (Padding, Padding) inside the
	// panel, so its interior is well within (padding+1, padding+1).
	inside := Input{MouseX: style.Padding + 1, MouseY: style.Padding + 1, Clicked: true}
	_, clicked := frame(inside)
	assert.True(t, clicked)

	hoverOnly := inside
	hoverOnly.Clicked = false
	_, clicked = frame(hoverOnly)
	assert.False(t, clicked)

	outside := Input{MouseX: 500, MouseY: 300, Clicked: true}
	_, clicked = frame(outside)
	assert.False(t, clicked)
}

func TestButtonsStack(t *testing.T) {
	style := DefaultStyle()
	c := New(style)
	c.Begin(800, 600, Input{})
	c.BeginLeftPanel(200)
	c.Button("a")
	c.Button("b")
	c.EndPanel()
	c.End()

	// Panel background plus two button rows.
	assert.Len(t, c.rects, 3)
	assert.Greater(t, c.rects[2].r.y, c.rects[1].r.y)
}

func TestSelectableButtonUsesActiveColor(t *testing.T) {
	style := DefaultStyle()
	c := New(style)
	c.Begin(800, 600, Input{})
	c.BeginLeftPanel(200)
	c.SelectableButton("sel", true)
	c.SelectableButton("plain", false)
	c.EndPanel()
	c.End()

	assert.Equal(t, style.ButtonActive, c.rects[1].col)
	assert.Equal(t, style.Button, c.rects[2].col)
}

func TestWidgetsOutsidePanelAreIgnored(t *testing.T) {
	c := New(DefaultStyle())
	c.Begin(800, 600, Input{MouseX: 10, MouseY: 10, Clicked: true})
	assert.False(t, c.Button("nope"))
	c.Label("nope")
	c.End()

	assert.Empty(t, c.rects)
	assert.Empty(t, c.texts)
}

func TestMouseOverPanel(t *testing.T) {
	c := New(DefaultStyle())
	c.Begin(800, 600, Input{MouseX: 100, MouseY: 300})
	c.BeginLeftPanel(200)
	c.EndPanel()
	c.End()
	assert.True(t, c.MouseOverPanel())

	c.Begin(800, 600, Input{MouseX: 500, MouseY: 300})
	c.BeginLeftPanel(200)
	c.EndPanel()
	c.End()
	assert.False(t, c.MouseOverPanel())
}
