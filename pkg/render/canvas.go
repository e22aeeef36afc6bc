// Package render is a CPU scanline rasterizer: attribute interpolation,
// triangle and polygon scan-fill, depth testing, textured and normal-mapped
// shading with multiple lights and shadow maps, and a screen-space ambient
// occlusion pass.
package render

import (
	"image"
	"math"

	"github.com/taigrr/scanline/pkg/planebuf"
)

// EmptyDepth marks a depth cell nothing has been drawn to. Larger depth
// values win the depth test, so every real sample beats it.
const EmptyDepth = -math.MaxFloat64

// Canvas is the color buffer and depth buffer a frame is rasterized into.
// Both use a bottom-left origin.
type Canvas struct {
	color *planebuf.Buffer[Color]
	depth *planebuf.Buffer[float64]
}

// NewCanvas creates a transparent black canvas with an empty depth buffer.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		color: planebuf.New[Color](width, height),
		depth: planebuf.New[float64](width, height),
	}
	c.ClearDepth()
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.color.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.color.Height() }

// Colors exposes the color buffer.
func (c *Canvas) Colors() *planebuf.Buffer[Color] { return c.color }

// Depth exposes the depth buffer.
func (c *Canvas) Depth() *planebuf.Buffer[float64] { return c.depth }

// Contains reports whether (x, y) is on the canvas.
func (c *Canvas) Contains(x, y int) bool { return c.color.Contains(x, y) }

// Clear fills the color buffer with bg.
func (c *Canvas) Clear(bg Color) {
	c.color.CleanWith(bg)
}

// ClearDepth resets every depth cell to EmptyDepth.
func (c *Canvas) ClearDepth() {
	c.depth.CleanWith(EmptyDepth)
}

// Resize changes both buffers' dimensions. New depth cells are empty.
func (c *Canvas) Resize(width, height int) {
	c.color.Resize(width, height)
	c.depth.ResizeWith(width, height, EmptyDepth)
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (c *Canvas) SetPixel(x, y int, col Color) {
	c.color.Put(x, y, col)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (c *Canvas) GetPixel(x, y int) Color {
	col, _ := c.color.Get(x, y)
	return col
}

// DepthAt returns the depth at (x, y), or EmptyDepth off the canvas.
func (c *Canvas) DepthAt(x, y int) float64 {
	d, ok := c.depth.Get(x, y)
	if !ok {
		return EmptyDepth
	}
	return d
}

// DrawLine draws a line from p0 to p1 with the incremental line stepper.
// The end point itself is not drawn.
func (c *Canvas) DrawLine(p0, p1 image.Point, col Color) {
	for p := range NewLine(p0, p1).All() {
		c.SetPixel(p.X, p.Y, col)
	}
}

// Packed returns the color buffer as 0xAARRGGBB words, top row first.
func (c *Canvas) Packed() []uint32 {
	data := c.color.Data()
	out := make([]uint32, len(data))
	for i, col := range data {
		out[i] = col.Packed()
	}
	return out
}

// ToImage converts the canvas to a standard Go image. Canvas row y=0 ends
// up as the bottom row of the image.
func (c *Canvas) ToImage() *image.NRGBA {
	w, h := c.Width(), c.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	// Storage order is already top row first.
	for i, col := range c.color.Data() {
		o := i * 4
		img.Pix[o] = col.R
		img.Pix[o+1] = col.G
		img.Pix[o+2] = col.B
		img.Pix[o+3] = col.A
	}
	return img
}
