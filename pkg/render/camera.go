package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// MinCameraDistance is the smallest projection distance SetDistance
// accepts. Closer than this the projection flips geometry inside out.
const MinCameraDistance = 0.85

// Camera looks from From toward To. Yaw and Pitch orbit the scene around
// the origin and Distance controls the strength of the perspective.
type Camera struct {
	From math3d.Vec3
	To   math3d.Vec3
	Up   math3d.Vec3

	Yaw   float64 // rotation around Y, radians
	Pitch float64 // rotation around X, radians

	distance float64

	// Cached matrices (computed on demand)
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	rotMatrix  math3d.Mat4
	viewDirty  bool
	projDirty  bool
	rotDirty   bool
}

// NewCamera creates a camera five units in front of the origin.
func NewCamera() *Camera {
	return &Camera{
		From:      math3d.V3(0, 0, 5),
		To:        math3d.Zero3(),
		Up:        math3d.Up(),
		distance:  5,
		viewDirty: true,
		projDirty: true,
		rotDirty:  true,
	}
}

// SetLook sets the eye, target and up vectors.
func (c *Camera) SetLook(from, to, up math3d.Vec3) {
	c.From = from
	c.To = to
	c.Up = up
	c.viewDirty = true
}

// Distance returns the projection distance.
func (c *Camera) Distance() float64 {
	return c.distance
}

// SetDistance sets the projection distance, clamped to MinCameraDistance.
func (c *Camera) SetDistance(d float64) {
	c.distance = max(d, MinCameraDistance)
	c.projDirty = true
}

// Zoom moves the projection distance by delta.
func (c *Camera) Zoom(delta float64) {
	c.SetDistance(c.distance + delta)
}

// SetRotation sets the orbit angles in radians.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.clampPitch()
	c.rotDirty = true
}

// Rotate adds to the orbit angles.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.SetRotation(c.Yaw+deltaYaw, c.Pitch+deltaPitch)
}

func (c *Camera) clampPitch() {
	// Clamp pitch to avoid gimbal lock issues
	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = max(-maxPitch, min(maxPitch, c.Pitch))
}

// LookDir returns the unit vector pointing from the target to the eye.
func (c *Camera) LookDir() math3d.Vec3 {
	return c.From.Sub(c.To).Normalize()
}

// ViewMatrix returns the look-at matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.From, c.To, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective matrix for the current distance.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.ProjectionDistance(c.distance)
		c.projDirty = false
	}
	return c.projMatrix
}

// RotationMatrix returns the orbit rotation applied to the scene.
func (c *Camera) RotationMatrix() math3d.Mat4 {
	if c.rotDirty {
		c.rotMatrix = math3d.RotateY(c.Yaw).Mul(math3d.RotateX(c.Pitch))
		c.rotDirty = false
	}
	return c.rotMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
