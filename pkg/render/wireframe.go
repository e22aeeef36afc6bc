package render

import (
	"image"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Wireframe draws line overlays on a rasterizer's canvas. Lines ignore
// the depth buffer.
type Wireframe struct {
	r *Rasterizer
}

// NewWireframe creates a wireframe renderer sharing r's camera and canvas.
func NewWireframe(r *Rasterizer) *Wireframe {
	return &Wireframe{r: r}
}

// DrawLine3D draws a line between two orbit-space points.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, col Color) {
	m := w.r.sceneMatrix().Mul(w.r.camera.RotationMatrix())
	w.drawProjected(m, p1, p2, col)
}

// drawProjected draws p1-p2 through the screen matrix m, skipping lines
// with an endpoint behind the projection point.
func (w *Wireframe) drawProjected(m math3d.Mat4, p1, p2 math3d.Vec3, col Color) {
	a := m.MulVec4(math3d.V4FromV3(p1, 1))
	b := m.MulVec4(math3d.V4FromV3(p2, 1))
	if a.W <= 0 || b.W <= 0 {
		return
	}
	w.r.canvas.DrawLine(toPoint(a.PerspectiveDivide()), toPoint(b.PerspectiveDivide()), col)
}

func toPoint(p math3d.Vec3) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// DrawModel outlines every face of m. A fully transparent col gives
// each face its own hue.
func (w *Wireframe) DrawModel(m *Model, col Color) {
	screen := w.r.sceneMatrix().Mul(w.r.worldMatrix(m))
	mesh := m.Mesh
	n := mesh.FaceCount()
	for f := range n {
		c := col
		if c.A == 0 {
			c = HSV(360*float64(f)/float64(n), 0.8, 1)
		}
		idx := mesh.GetFace(f)
		for i := range idx {
			p1, _, _ := mesh.GetVertex(idx[i])
			p2, _, _ := mesh.GetVertex(idx[(i+1)%len(idx)])
			w.drawProjected(screen, p1, p2, c)
		}
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawLight draws a ray from the origin toward each directional light
// and a cross at each point light.
func (w *Wireframe) DrawLight(l Light, length float64, col Color) {
	switch l.Kind {
	case LightDirectional:
		w.DrawLine3D(math3d.Zero3(), l.Direction.Normalize().Scale(length), col)
	case LightPoint:
		w.DrawPoint(l.Position, length/4, col)
	}
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step float64, col Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), col)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), col)
	}
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, col Color) {
	h := size / 2
	w.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), col)
	w.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), col)
	w.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), col)
}

// DrawMeshWireframe outlines every face of m on the canvas.
func (r *Rasterizer) DrawMeshWireframe(m *Model, col Color) {
	NewWireframe(r).DrawModel(m, col)
}
