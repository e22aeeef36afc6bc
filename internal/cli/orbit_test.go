package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestAxisDecays(t *testing.T) {
	a := NewAxis(60)
	a.Velocity = 0.1
	for range 600 {
		a.Update()
	}
	if math.Abs(a.Velocity) > 1e-4 {
		t.Errorf("velocity = %v, want it damped to zero", a.Velocity)
	}
	if a.Position <= 0.1 {
		t.Errorf("position = %v, want it to have moved", a.Position)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	o := NewOrbit(60)
	o.ApplyImpulse(0, 10)
	for range 10 {
		o.Update()
	}
	if o.Pitch.Position >= math.Pi/2 {
		t.Errorf("pitch = %v, want below pi/2", o.Pitch.Position)
	}
	o.Reset()
	if o.Pitch.Position != 0 || o.Yaw.Velocity != 0 {
		t.Error("reset should stop the orbit")
	}
}

func TestLightSpin(t *testing.T) {
	s := NewLightSpin(60)
	s.Update()
	if s.Angle != 0 {
		t.Errorf("stopped spin moved to %v", s.Angle)
	}

	s.Toggle()
	for range 120 {
		s.Update()
	}
	if s.Angle <= 0 {
		t.Fatal("spin did not advance")
	}
	dir := s.Apply(math3d.V3(0, 0, 1))
	if math.Abs(dir.Len()-1) > 1e-9 || math.Abs(dir.Y) > 1e-12 {
		t.Errorf("spun direction %v should stay a unit vector in the XZ plane", dir)
	}
}

func TestHUD(t *testing.T) {
	var buf bytes.Buffer
	h := NewHUD(&buf, "head.obj", 2492)

	h.Render(80, 24, hudState{})
	if strings.Contains(buf.String(), "head.obj") {
		t.Error("hidden HUD should only clear its rows")
	}

	buf.Reset()
	h.Render(80, 24, hudState{Show: true, Options: render.Options{Shadows: true}})
	out := buf.String()
	for _, want := range []string{"head.obj", "2492 faces", "4[✓] shadows", "1[ ] normal"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD output missing %q", want)
		}
	}

	buf.Reset()
	h.Render(80, 24, hudState{Show: true, Status: "saved x.png"})
	if !strings.Contains(buf.String(), "saved x.png") || strings.Contains(buf.String(), "faces") {
		t.Error("status message should replace the HUD")
	}
}
