package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/planebuf"
)

// OcclusionConfig tunes the screen-space ambient occlusion pass.
type OcclusionConfig struct {
	Radius     float64 // pixels walked in each direction
	Intensity  float64 // weight of the steepest elevation
	DepthScale float64 // converts depth units to pixels
	Sharpness  float64 // exponent applied to the averaged result
}

// DefaultOcclusion returns the settings used by the rasterizer.
func DefaultOcclusion() OcclusionConfig {
	return OcclusionConfig{
		Radius:     10,
		Intensity:  0.5,
		DepthScale: DefaultDepthRange,
		Sharpness:  200,
	}
}

var occlusionDirs = [8]math3d.Vec2{
	{X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: -1},
	{X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// ApplyOcclusion darkens every drawn pixel of c by how much of its
// surrounding depth rises above it. Pixels at EmptyDepth are untouched.
func ApplyOcclusion(c *Canvas, cfg OcclusionConfig) {
	depth := c.Depth()
	colors := c.Colors()
	for y := range c.Height() {
		for x := range c.Width() {
			if depth.At(x, y) == EmptyDepth {
				continue
			}
			f := occlusionFactor(depth, x, y, cfg)
			colors.Set(x, y, colors.At(x, y).Scale(f))
		}
	}
}

// occlusionFactor returns the brightness multiplier in [0, 1] for the
// pixel at (x, y).
func occlusionFactor(depth *planebuf.Buffer[float64], x, y int, cfg OcclusionConfig) float64 {
	var total float64
	for _, dir := range occlusionDirs {
		total += math.Pi/2 - maxElevation(depth, x, y, dir, cfg)*cfg.Intensity
	}
	total /= math.Pi / 2 * float64(len(occlusionDirs))
	return math.Pow(max(0, min(1, total)), cfg.Sharpness)
}

// maxElevation walks from (x, y) along dir and returns the steepest
// depth rise seen, attenuated by the squared distance.
func maxElevation(depth *planebuf.Buffer[float64], x, y int, dir math3d.Vec2, cfg OcclusionConfig) float64 {
	from := math3d.V2(float64(x), float64(y))
	here := depth.At(x, y)
	var best float64
	for t := 0.0; t < cfg.Radius; t++ {
		cur := from.Add(dir.Scale(t))
		d, ok := depth.Get(int(cur.X), int(cur.Y))
		if !ok || d == EmptyDepth {
			break
		}
		dist := from.Distance(cur)
		if dist < 1 {
			continue
		}
		best = max(best, (d-here)/cfg.DepthScale/(dist*dist))
	}
	return best
}
