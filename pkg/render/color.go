package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Color is an 8-bit RGBA color. Add and Sub wrap around per channel like
// unsigned byte arithmetic; the scaling operations saturate instead.
type Color struct {
	R, G, B, A uint8
}

// Colors for convenience
var (
	ColorBlack   = Color{0, 0, 0, 255}
	ColorWhite   = Color{255, 255, 255, 255}
	ColorRed     = Color{255, 0, 0, 255}
	ColorGreen   = Color{0, 255, 0, 255}
	ColorBlue    = Color{0, 0, 255, 255}
	ColorGray    = Color{128, 128, 128, 255}
	ColorMagenta = Color{255, 0, 255, 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// FromColor converts any color.Color, dropping alpha premultiplication.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Add returns the channel-wise sum, wrapping on overflow.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Sub returns the channel-wise difference, wrapping on underflow.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// AddSaturated adds the RGB channels of o, clamping at 255. Alpha is kept.
func (c Color) AddSaturated(o Color) Color {
	return Color{
		R: uint8(min(int(c.R)+int(o.R), 255)),
		G: uint8(min(int(c.G)+int(o.G), 255)),
		B: uint8(min(int(c.B)+int(o.B), 255)),
		A: c.A,
	}
}

// Scale multiplies the RGB channels by s. Alpha is kept.
func (c Color) Scale(s float64) Color {
	return c.ApplyIntensity(math3d.V3(s, s, s))
}

// ApplyIntensity multiplies R, G and B by the X, Y and Z components of v.
// Results are truncated and clamped to [0, 255]. Alpha is kept.
func (c Color) ApplyIntensity(v math3d.Vec3) Color {
	return Color{
		R: scaleChannel(c.R, v.X),
		G: scaleChannel(c.G, v.Y),
		B: scaleChannel(c.B, v.Z),
		A: c.A,
	}
}

func scaleChannel(ch uint8, f float64) uint8 {
	v := float64(ch) * f
	switch {
	case v >= 255:
		return 255
	case v > 0:
		return uint8(v)
	default:
		// NaN lands here too.
		return 0
	}
}

// Interpolate blends the RGB channels toward rhs by t/tmax using integer
// arithmetic: channel = self + (rhs-self)*t/tmax, truncated toward zero and
// wrapped into a byte. Alpha is taken from c. A zero tmax returns c.
func (c Color) Interpolate(rhs Color, t, tmax int) Color {
	if tmax == 0 {
		return c
	}
	blend := func(a, b uint8) uint8 {
		return uint8((int(b)-int(a))*t/tmax) + a
	}
	return Color{
		R: blend(c.R, rhs.R),
		G: blend(c.G, rhs.G),
		B: blend(c.B, rhs.B),
		A: c.A,
	}
}

// Inverted returns the RGB complement.
func (c Color) Inverted() Color {
	return Color{255 - c.R, 255 - c.G, 255 - c.B, c.A}
}

// Packed returns the color as 0xAARRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// HSV builds an opaque color from hue in degrees and saturation/value in [0,1].
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	chroma := v * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - chroma

	var r, g, b float64
	switch {
	case h < 60:
		r, g = chroma, x
	case h < 120:
		r, g = x, chroma
	case h < 180:
		g, b = chroma, x
	case h < 240:
		g, b = x, chroma
	case h < 300:
		r, b = x, chroma
	default:
		r, b = chroma, x
	}
	return Color{
		R: scaleChannel(255, r+m),
		G: scaleChannel(255, g+m),
		B: scaleChannel(255, b+m),
		A: 255,
	}
}
