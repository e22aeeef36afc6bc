package render

import (
	"image/color"
	"log/slog"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DefaultDepthRange is the depth span the viewport maps [-1, 1] onto.
const DefaultDepthRange = 255

// MeshRenderer is the geometry the rasterizer consumes. The models
// package implements it; the interface keeps render free of that import.
type MeshRenderer interface {
	VertexCount() int
	FaceCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) []int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for
// whole-model culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// ColoredMeshRenderer is implemented by meshes that carry per-vertex colors.
type ColoredMeshRenderer interface {
	MeshRenderer
	GetVertexColor(i int) (color.NRGBA, bool)
}

// Model is a mesh placed in the scene with the material it is shaded with.
type Model struct {
	Name      string
	Mesh      MeshRenderer
	Material  *Material
	Transform math3d.Mat4
}

// NewModel returns a model with an identity transform. A nil material is
// replaced by NewMaterial.
func NewModel(name string, mesh MeshRenderer, mat *Material) *Model {
	if mat == nil {
		mat = NewMaterial()
	}
	return &Model{Name: name, Mesh: mesh, Material: mat, Transform: math3d.Identity()}
}

// FrameStats counts the work done since BeginFrame.
type FrameStats struct {
	ModelsDrawn  int
	ModelsCulled int
	FacesDrawn   int
	FacesSkipped int // faces with fewer than three vertices
	FacesBehind  int // faces touching or behind the projection plane
	Fragments    int // fragments that passed the depth test and were shaded
	ShadowPasses int
}

// Rasterizer draws models into a Canvas: per frame it clears the canvas,
// renders shadow maps for shadow casting lights, fills every face through
// the shader and finishes with the occlusion pass.
type Rasterizer struct {
	camera *Camera
	canvas *Canvas
	lights []Light

	DepthRange   float64
	Options      Options
	Occlusion    OcclusionConfig
	ShadowBias   float64
	ShadowFactor float64
	SpecularBias float64

	shadows []*ShadowMap
	stats   FrameStats
	scratch []ScreenVertex
}

// NewRasterizer creates a rasterizer drawing into canvas.
func NewRasterizer(camera *Camera, canvas *Canvas) *Rasterizer {
	return &Rasterizer{
		camera:       camera,
		canvas:       canvas,
		DepthRange:   DefaultDepthRange,
		Options:      DefaultOptions(),
		Occlusion:    DefaultOcclusion(),
		ShadowBias:   DefaultShadowBias,
		ShadowFactor: DefaultShadowFactor,
	}
}

// Camera returns the camera.
func (r *Rasterizer) Camera() *Camera { return r.camera }

// Canvas returns the render target.
func (r *Rasterizer) Canvas() *Canvas { return r.canvas }

// SetCanvas replaces the render target.
func (r *Rasterizer) SetCanvas(c *Canvas) { r.canvas = c }

// Lights returns the scene lights.
func (r *Rasterizer) Lights() []Light { return r.lights }

// SetLights replaces the scene lights. Directional lights are normalized.
func (r *Rasterizer) SetLights(lights ...Light) {
	r.lights = r.lights[:0]
	for _, l := range lights {
		if l.Kind == LightDirectional {
			l.Direction = l.Direction.Normalize()
		}
		r.lights = append(r.lights, l)
	}
}

// Stats returns the counters of the current frame.
func (r *Rasterizer) Stats() FrameStats { return r.stats }

// BeginFrame clears color to bg and resets the depth buffer.
func (r *Rasterizer) BeginFrame(bg Color) {
	r.canvas.Clear(bg)
	r.canvas.ClearDepth()
	r.stats = FrameStats{}
}

// EndFrame runs the post passes.
func (r *Rasterizer) EndFrame() {
	if r.Options.Occlusion {
		ApplyOcclusion(r.canvas, r.Occlusion)
	}
	Logger().Debug("frame done",
		slog.Int("width", r.canvas.Width()),
		slog.Int("height", r.canvas.Height()),
		slog.Int("models", r.stats.ModelsDrawn),
		slog.Int("culled", r.stats.ModelsCulled),
		slog.Int("faces", r.stats.FacesDrawn),
		slog.Int("behind", r.stats.FacesBehind),
		slog.Int("fragments", r.stats.Fragments),
		slog.Int("shadow_passes", r.stats.ShadowPasses),
	)
}

// DrawModel draws a single model. See DrawModels.
func (r *Rasterizer) DrawModel(m *Model) {
	r.DrawModels(m)
}

// DrawModels draws models with full shading. Shadow maps are rendered
// from the models of this call only, so models that shadow each other
// must be drawn together.
func (r *Rasterizer) DrawModels(models ...*Model) {
	visible := models[:0:0]
	for _, m := range models {
		if r.culled(m) {
			r.stats.ModelsCulled++
			continue
		}
		visible = append(visible, m)
	}
	if len(visible) == 0 {
		return
	}

	lights := r.frameLights(visible)
	for _, m := range visible {
		r.drawShaded(m, lights)
		r.stats.ModelsDrawn++
	}
}

func (r *Rasterizer) viewport() math3d.Mat4 {
	return math3d.Viewport(0, 0, float64(r.canvas.Width()), float64(r.canvas.Height()), r.DepthRange)
}

// sceneMatrix carries orbit-space points onto the canvas.
func (r *Rasterizer) sceneMatrix() math3d.Mat4 {
	return r.viewport().Mul(r.camera.ViewProjectionMatrix())
}

// worldMatrix applies the model transform and the camera orbit.
func (r *Rasterizer) worldMatrix(m *Model) math3d.Mat4 {
	return r.camera.RotationMatrix().Mul(m.Transform)
}

func (r *Rasterizer) culled(m *Model) bool {
	bounded, ok := m.Mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	lo, hi := bounded.GetBounds()
	screen := r.sceneMatrix().Mul(r.worldMatrix(m))
	return !NewAABB(lo, hi).Visible(screen, r.canvas.Width(), r.canvas.Height())
}

// frameLights copies the scene lights for this call, moving point lights
// onto the canvas and attaching freshly rendered shadow maps.
func (r *Rasterizer) frameLights(models []*Model) []Light {
	scene := r.sceneMatrix()
	out := make([]Light, len(r.lights))
	for i, l := range r.lights {
		switch l.Kind {
		case LightPoint:
			l.Position = scene.MulVec3(l.Position)
		case LightDirectional:
			l.Shadow = nil
			if l.CastShadows && r.Options.Shadows {
				l.Shadow = r.renderShadow(i, l.Direction, models)
			}
		}
		out[i] = l
	}
	return out
}

// renderShadow fills the shadow map of light i by drawing the models as
// seen looking down the light direction.
func (r *Rasterizer) renderShadow(i int, dir math3d.Vec3, models []*Model) *ShadowMap {
	for len(r.shadows) <= i {
		r.shadows = append(r.shadows, NewShadowMap(r.canvas.Width(), r.canvas.Height()))
	}
	sm := r.shadows[i]
	sm.Reset(r.canvas.Width(), r.canvas.Height())
	sm.Bias = r.ShadowBias

	light := r.sceneMatrix().Mul(math3d.RotationArc(dir, math3d.UnitZ()))
	for _, m := range models {
		screen := light.Mul(r.worldMatrix(m))
		mesh := m.Mesh
		for f := range mesh.FaceCount() {
			vs, ok := r.projectFace(mesh, mesh.GetFace(f), screen, math3d.Identity(), false)
			if !ok || len(vs) < 3 {
				continue
			}
			Fill(NewShape(vs), sm.Depth, sm.fragment)
		}
	}
	sm.Transform = light.Mul(r.sceneMatrix().Inverse())
	r.stats.ShadowPasses++
	return sm
}

func (r *Rasterizer) drawShaded(m *Model, lights []Light) {
	world := r.worldMatrix(m)
	screen := r.sceneMatrix().Mul(world)
	normals := world.NormalMatrix()

	shader := NewShader(m.Material, lights, r.Options)
	shader.LookDir = r.camera.LookDir()
	shader.ShadowFactor = r.ShadowFactor
	shader.SpecularBias = r.SpecularBias
	r.logMissingMaps(m, shader.Options)

	depth := r.canvas.Depth()
	colors := r.canvas.Colors()
	frag := func(x, y int, v Varying) {
		d := depth.Ptr(x, y)
		if *d > v.Depth {
			return
		}
		col, ok := shader.Shade(x, y, v)
		if !ok {
			return
		}
		*d = v.Depth
		colors.Set(x, y, col)
		r.stats.Fragments++
	}

	_, colored := m.Mesh.(ColoredMeshRenderer)
	mesh := m.Mesh
	for f := range mesh.FaceCount() {
		vs, ok := r.projectFace(mesh, mesh.GetFace(f), screen, normals, colored)
		if !ok {
			r.stats.FacesBehind++
			continue
		}
		if len(vs) < 3 {
			r.stats.FacesSkipped++
			continue
		}
		shader.Bind(vs)
		Fill(NewShape(vs), r.canvas, frag)
		r.stats.FacesDrawn++
	}
}

// nearW is the smallest homogeneous w a projected vertex may have. Faces
// are not clipped, so one vertex at or behind the projection plane
// rejects the whole face.
const nearW = 1e-3

// projectFace transforms the vertices of one face. The returned slice is
// reused by the next call. ok is false when a vertex has w below nearW.
func (r *Rasterizer) projectFace(mesh MeshRenderer, idx []int, screen, normals math3d.Mat4, colored bool) (vs []ScreenVertex, ok bool) {
	r.scratch = r.scratch[:0]
	for _, i := range idx {
		pos, n, uv := mesh.GetVertex(i)
		clip := screen.MulVec4(math3d.V4FromV3(pos, 1))
		if clip.W < nearW {
			return nil, false
		}
		sv := ScreenVertex{
			Pos:    clip.PerspectiveDivide(),
			UV:     uv,
			Normal: normals.MulVec3Dir(n).Normalize(),
		}
		if colored {
			if c, ok := mesh.(ColoredMeshRenderer).GetVertexColor(i); ok {
				sv.Color = Color{c.R, c.G, c.B, c.A}
				sv.HasColor = true
			}
		}
		r.scratch = append(r.scratch, sv)
	}
	return r.scratch, true
}

func (r *Rasterizer) logMissingMaps(m *Model, effective Options) {
	log := Logger()
	if r.Options.NormalMap && !effective.NormalMap {
		log.Debug("normal map requested but missing", slog.String("model", m.Name))
	}
	if r.Options.SpecularMap && !effective.SpecularMap {
		log.Debug("specular map requested but missing", slog.String("model", m.Name))
	}
	if r.Options.GlowMap && !effective.GlowMap {
		log.Debug("glow map requested but missing", slog.String("model", m.Name))
	}
}
