package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the canvas to half-block terminal cells and draws them on
// the screen. The canvas height should be twice the area height. The
// canvas origin is bottom-left, so the first terminal row shows the two
// highest canvas rows.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	h := c.Height()
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := h - 1 - 2*(row-area.Min.Y)
		botY := topY - 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= c.Width() {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(c.GetPixel(x, topY)),
					Bg: cellColor(c.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents canvases on a terminal.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int // in cells
}

// NewTerminalRenderer creates a renderer for a terminal of width x height
// cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// Resize updates the cell dimensions.
func (t *TerminalRenderer) Resize(width, height int) {
	t.width, t.height = width, height
}

// CanvasSize returns the canvas size in pixels that fills the terminal.
func (t *TerminalRenderer) CanvasSize() (width, height int) {
	return FramebufferSize(t.width, t.height)
}

// FramebufferSize returns the pixel dimensions for a terminal of the
// given cell size: one pixel per column and two per row.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Render draws c onto the terminal's screen buffer.
func (t *TerminalRenderer) Render(c *Canvas) {
	c.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
