// Package ui is a small immediate-mode interface layer. Widgets are
// declared every frame between Begin and End; the context records draw
// commands and replays them onto the screen in Draw. Panels dock
// against the window edges and the context reports how many pixels
// they occupy on each side, so the viewport underneath can react.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Input is the per-frame input snapshot the application hands to
// Begin. Keeping input out of the context makes widget logic
// deterministic under test.
type Input struct {
	MouseX  int
	MouseY  int
	Clicked bool
}

// Insets is the number of pixels consumed by docked panels on each
// window edge.
type Insets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Style holds the shared widget colors and metrics.
type Style struct {
	Panel        color.RGBA
	Button       color.RGBA
	ButtonHover  color.RGBA
	ButtonActive color.RGBA
	Padding      int
	RowHeight    int
}

// DefaultStyle is a dark theme that leaves the viewport readable.
func DefaultStyle() Style {
	return Style{
		Panel:        color.RGBA{R: 32, G: 34, B: 38, A: 235},
		Button:       color.RGBA{R: 58, G: 62, B: 70, A: 255},
		ButtonHover:  color.RGBA{R: 78, G: 84, B: 96, A: 255},
		ButtonActive: color.RGBA{R: 66, G: 120, B: 200, A: 255},
		Padding:      8,
		RowHeight:    22,
	}
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

type rectCmd struct {
	r   rect
	col color.RGBA
}

type textCmd struct {
	x, y int
	s    string
}

// Context accumulates one frame of widgets.
type Context struct {
	style Style
	input Input

	screen   rect // full window
	interior rect // window minus docked panels

	panel   rect // current panel, zero when outside BeginPanel/EndPanel
	inPanel bool
	cursorY int

	rects []rectCmd
	texts []textCmd
}

func New(style Style) *Context {
	return &Context{style: style}
}

// Begin starts a frame. All widget calls must happen between Begin and
// End.
func (c *Context) Begin(screenW, screenH int, in Input) {
	c.input = in
	c.screen = rect{0, 0, screenW, screenH}
	c.interior = c.screen
	c.inPanel = false
	c.rects = c.rects[:0]
	c.texts = c.texts[:0]
}

// End finishes the frame. The recorded commands stay available for
// Draw until the next Begin.
func (c *Context) End() {
	c.inPanel = false
}

// Insets reports the pixels docked panels have taken from each edge
// this frame.
func (c *Context) Insets() Insets {
	return Insets{
		Left:   c.interior.x - c.screen.x,
		Top:    c.interior.y - c.screen.y,
		Right:  (c.screen.x + c.screen.w) - (c.interior.x + c.interior.w),
		Bottom: (c.screen.y + c.screen.h) - (c.interior.y + c.interior.h),
	}
}

// BeginLeftPanel docks a panel of the given width against the left
// edge of the remaining interior.
func (c *Context) BeginLeftPanel(width int) {
	r := rect{c.interior.x, c.interior.y, width, c.interior.h}
	c.interior.x += width
	c.interior.w -= width
	c.beginPanel(r)
}

// BeginRightPanel docks a panel against the right edge.
func (c *Context) BeginRightPanel(width int) {
	r := rect{c.interior.x + c.interior.w - width, c.interior.y, width, c.interior.h}
	c.interior.w -= width
	c.beginPanel(r)
}

// BeginTopPanel docks a panel against the top edge.
func (c *Context) BeginTopPanel(height int) {
	r := rect{c.interior.x, c.interior.y, c.interior.w, height}
	c.interior.y += height
	c.interior.h -= height
	c.beginPanel(r)
}

// BeginBottomPanel docks a panel against the bottom edge.
func (c *Context) BeginBottomPanel(height int) {
	r := rect{c.interior.x, c.interior.y + c.interior.h - height, c.interior.w, height}
	c.interior.h -= height
	c.beginPanel(r)
}

func (c *Context) beginPanel(r rect) {
	c.panel = r
	c.inPanel = true
	c.cursorY = r.y + c.style.Padding
	c.rects = append(c.rects, rectCmd{r: r, col: c.style.Panel})
}

// EndPanel closes the current panel.
func (c *Context) EndPanel() {
	c.inPanel = false
}

// Label draws a line of text and advances the cursor.
func (c *Context) Label(s string) {
	if !c.inPanel {
		return
	}
	c.texts = append(c.texts, textCmd{x: c.panel.x + c.style.Padding, y: c.cursorY + 3, s: s})
	c.cursorY += c.style.RowHeight
}

// Spacer advances the cursor without drawing.
func (c *Context) Spacer() {
	c.cursorY += c.style.RowHeight / 2
}

// Button draws a full-width button row and reports whether it was
// clicked this frame.
func (c *Context) Button(label string) bool {
	return c.button(label, false)
}

// SelectableButton is a Button that renders in the active color while
// selected.
func (c *Context) SelectableButton(label string, selected bool) bool {
	return c.button(label, selected)
}

func (c *Context) button(label string, selected bool) bool {
	if !c.inPanel {
		return false
	}
	r := rect{
		x: c.panel.x + c.style.Padding,
		y: c.cursorY,
		w: c.panel.w - 2*c.style.Padding,
		h: c.style.RowHeight,
	}
	c.cursorY += c.style.RowHeight + c.style.Padding/2

	hovered := r.contains(c.input.MouseX, c.input.MouseY)
	col := c.style.Button
	switch {
	case selected:
		col = c.style.ButtonActive
	case hovered:
		col = c.style.ButtonHover
	}
	c.rects = append(c.rects, rectCmd{r: r, col: col})
	c.texts = append(c.texts, textCmd{x: r.x + 6, y: r.y + 3, s: label})

	return hovered && c.input.Clicked
}

// MouseOverPanel reports whether the cursor is over any panel drawn
// this frame, so the application can ignore viewport clicks under the
// interface.
func (c *Context) MouseOverPanel() bool {
	return !c.interior.contains(c.input.MouseX, c.input.MouseY)
}

// Draw replays the frame's commands onto the screen.
func (c *Context) Draw(screen *ebiten.Image) {
	for _, rc := range c.rects {
		vector.DrawFilledRect(screen,
			float32(rc.r.x), float32(rc.r.y),
			float32(rc.r.w), float32(rc.r.h),
			rc.col, false)
	}
	for _, tc := range c.texts {
		ebitenutil.DebugPrintAt(screen, tc.s, tc.x, tc.y)
	}
}
