package cli

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Axis is one spring-damped angle: impulses add velocity and a critically
// damped spring pulls the velocity back to zero.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewAxis creates an axis stepped fps times per second.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances one frame.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit drives the camera yaw and pitch.
type Orbit struct {
	Yaw, Pitch Axis
	fps        int
}

// NewOrbit creates a resting orbit.
func NewOrbit(fps int) *Orbit {
	return &Orbit{Yaw: NewAxis(fps), Pitch: NewAxis(fps), fps: fps}
}

// Update advances both axes and keeps pitch short of the poles.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	const limit = math.Pi/2 - 0.01
	if o.Pitch.Position > limit || o.Pitch.Position < -limit {
		o.Pitch.Position = max(-limit, min(limit, o.Pitch.Position))
		o.Pitch.Velocity = 0
	}
}

// ApplyImpulse adds angular velocity in radians per frame.
func (o *Orbit) ApplyImpulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Reset stops the orbit and returns it to the start.
func (o *Orbit) Reset() {
	o.Yaw = NewAxis(o.fps)
	o.Pitch = NewAxis(o.fps)
}

// LightSpin turns the key light around the Y axis. While spinning the
// speed eases toward Speed; when stopped it eases back to zero.
type LightSpin struct {
	Angle    float64
	Speed    float64 // radians per frame at full spin
	Spinning bool

	rate      float64
	rateVel   float64
	rateEaser harmonica.Spring
}

// NewLightSpin creates a stopped spin.
func NewLightSpin(fps int) *LightSpin {
	return &LightSpin{
		Speed:     0.03,
		rateEaser: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
	}
}

// Toggle starts or stops the spin.
func (s *LightSpin) Toggle() { s.Spinning = !s.Spinning }

// Update advances one frame.
func (s *LightSpin) Update() {
	target := 0.0
	if s.Spinning {
		target = s.Speed
	}
	s.rate, s.rateVel = s.rateEaser.Update(s.rate, s.rateVel, target)
	s.Angle += s.rate
}

// Apply rotates dir by the current angle.
func (s *LightSpin) Apply(dir math3d.Vec3) math3d.Vec3 {
	return math3d.RotateY(s.Angle).MulVec3Dir(dir)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
