package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const viewHelp = `Controls:
  Mouse drag  - Orbit the camera
  Scroll, +/- - Zoom in/out
  [ ]         - Weaker/stronger perspective
  W/S/A/D     - Nudge pitch and yaw
  1-5         - Toggle normal map, specular, glow, shadows, ambient occlusion
  X           - Toggle x-ray wireframe
  Space       - Start/stop the light spin
  S           - Save a snapshot at scene resolution
  R           - Reset view
  ?           - Toggle HUD overlay
  Esc         - Quit`

func newViewCommand() *cobra.Command {
	var (
		cfgPath string
		flags   config.Flags
		fps     int
		snapDir string
	)
	cmd := &cobra.Command{
		Use:   "view [model...]",
		Short: "Show models in the terminal",
		Long:  "View renders the scene live in the terminal with half-block pixels.\n\n" + viewHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			flags.Models = args
			scene, err := loadScene(cfgPath, flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runViewer(ctx, scene, fps, snapDir)
		},
	}
	sceneFlags(cmd, &cfgPath, &flags)
	cmd.Flags().IntVar(&fps, "fps", 60, "target frames per second")
	cmd.Flags().StringVar(&snapDir, "snapshots", ".", "directory for snapshots")
	return cmd
}

// viewer is the interactive session state. It is only touched from the
// render loop goroutine.
type viewer struct {
	scene      *config.Scene
	models     []*render.Model
	placements []math3d.Mat4
	lights     []render.Light

	r      *render.Rasterizer
	canvas *render.Canvas
	out    *render.TerminalRenderer
	hud    *HUD

	orbit *Orbit
	spin  *LightSpin
	zoom  float64

	width, height int
	showHUD       bool
	wireframe     bool
	mouseDown     bool
	lastX, lastY  int
	quit          bool

	snapDir     string
	status      string
	statusUntil time.Time
}

func newViewer(scene *config.Scene, models []*render.Model, fps int) (*viewer, error) {
	lights, err := scene.RenderLights()
	if err != nil {
		return nil, err
	}
	v := &viewer{
		scene:   scene,
		models:  models,
		lights:  lights,
		canvas:  render.NewCanvas(1, 1),
		orbit:   NewOrbit(fps),
		spin:    NewLightSpin(fps),
		zoom:    1,
		snapDir: ".",
	}
	for _, m := range models {
		v.placements = append(v.placements, m.Transform)
	}
	v.r = render.NewRasterizer(scene.NewCamera(), v.canvas)
	if err := scene.Configure(v.r); err != nil {
		return nil, err
	}
	return v, nil
}

func runViewer(ctx context.Context, scene *config.Scene, fps int, snapDir string) error {
	models, err := loadModels(scene)
	if err != nil {
		return err
	}
	v, err := newViewer(scene, models, fps)
	if err != nil {
		return err
	}
	v.snapDir = snapDir

	faces := 0
	for _, m := range models {
		faces += m.Mesh.FaceCount()
	}
	name := filepath.Base(scene.Models[0].Path)
	if len(scene.Models) > 1 {
		name = fmt.Sprintf("%s +%d", name, len(scene.Models)-1)
	}
	v.hud = NewHUD(os.Stdout, name, faces)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	// Log lines would tear the alternate screen.
	prev := slog.Default()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(quiet)
	render.SetLogger(quiet)

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		slog.SetDefault(prev)
		render.SetLogger(prev)
	}()

	v.out = render.NewTerminalRenderer(term, width, height)
	v.resize(width, height)

	events := make(chan any, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ws, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				term.Resize(ws.Width, ws.Height)
			}
			v.handle(ev)
			if v.quit {
				return nil
			}
		case <-ticker.C:
			v.step()
			v.draw()
			v.out.Render(v.canvas)
			if err := v.out.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			v.hud.UpdateFPS()
			v.hud.Render(v.width, v.height, v.hudState())
		}
	}
}

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	if v.out != nil {
		v.out.Resize(width, height)
	}
	v.canvas.Resize(render.FramebufferSize(width, height))
}

// handle applies one terminal event.
func (v *viewer) handle(ev any) {
	const (
		nudge     = 0.05
		dragScale = 0.02
	)
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		opts := &v.r.Options
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
			v.quit = true
		case ev.MatchString("1"):
			opts.NormalMap = !opts.NormalMap
		case ev.MatchString("2"):
			opts.SpecularMap = !opts.SpecularMap
		case ev.MatchString("3"):
			opts.GlowMap = !opts.GlowMap
		case ev.MatchString("4"):
			opts.Shadows = !opts.Shadows
		case ev.MatchString("5"):
			opts.Occlusion = !opts.Occlusion
		case ev.MatchString("x"):
			v.wireframe = !v.wireframe
		case ev.MatchString("space"):
			v.spin.Toggle()
		case ev.MatchString("r"):
			v.reset()
		case ev.MatchString("s"):
			v.snapshot()
		case ev.MatchString("w", "up"):
			v.orbit.ApplyImpulse(0, -nudge)
		case ev.MatchString("down"):
			v.orbit.ApplyImpulse(0, nudge)
		case ev.MatchString("a", "left"):
			v.orbit.ApplyImpulse(-nudge, 0)
		case ev.MatchString("d", "right"):
			v.orbit.ApplyImpulse(nudge, 0)
		case ev.MatchString("+", "="):
			v.setZoom(v.zoom * 1.1)
		case ev.MatchString("-", "_"):
			v.setZoom(v.zoom / 1.1)
		case ev.MatchString("["):
			v.r.Camera().Zoom(0.5)
		case ev.MatchString("]"):
			v.r.Camera().Zoom(-0.5)
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx, dy := ev.X-v.lastX, ev.Y-v.lastY
			v.orbit.ApplyImpulse(float64(dx)*dragScale, float64(dy)*dragScale)
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.setZoom(v.zoom * 1.1)
		case uv.MouseWheelDown:
			v.setZoom(v.zoom / 1.1)
		}
	}
}

func (v *viewer) setZoom(z float64) {
	v.zoom = max(0.2, min(5, z))
}

func (v *viewer) reset() {
	v.orbit.Reset()
	v.spin.Angle = 0
	v.zoom = 1
	v.r.Camera().SetDistance(v.scene.Camera.Distance)
}

// step advances the animation by one frame and pushes the result into
// the camera, the model transforms and the lights.
func (v *viewer) step() {
	v.orbit.Update()
	v.spin.Update()

	v.r.Camera().SetRotation(
		radians(v.scene.Camera.Yaw)+v.orbit.Yaw.Position,
		radians(v.scene.Camera.Pitch)+v.orbit.Pitch.Position,
	)
	scale := math3d.ScaleUniform(v.zoom)
	for i, m := range v.models {
		m.Transform = scale.Mul(v.placements[i])
	}

	lights := make([]render.Light, len(v.lights))
	for i, l := range v.lights {
		if l.Kind == render.LightDirectional {
			l.Direction = v.spin.Apply(l.Direction)
		}
		lights[i] = l
	}
	v.r.SetLights(lights...)
}

// draw renders one frame into the current canvas.
func (v *viewer) draw() {
	v.r.BeginFrame(v.scene.Background.Color())
	if v.wireframe {
		wf := render.NewWireframe(v.r)
		wf.DrawGrid(4, 0.5, render.ColorGray)
		wf.DrawAxes(1)
		for _, m := range v.models {
			v.r.DrawMeshWireframe(m, render.RGB(0, 255, 128))
		}
		for _, l := range v.r.Lights() {
			wf.DrawLight(l, 1.5, render.RGB(255, 220, 0))
		}
		return
	}
	v.r.DrawModels(v.models...)
	v.r.EndFrame()
}

// snapshot renders the current view at the scene resolution and saves it.
func (v *viewer) snapshot() {
	full := render.NewCanvas(v.scene.Width, v.scene.Height)
	v.r.SetCanvas(full)
	v.draw()
	v.r.SetCanvas(v.canvas)

	path := filepath.Join(v.snapDir, fmt.Sprintf("scanline-%s.png", time.Now().Format("20060102-150405")))
	if err := render.SaveImage(full, path, render.ExportOptions{Scale: v.scene.Scale}); err != nil {
		v.setStatus(fmt.Sprintf("snapshot failed: %v", err))
		return
	}
	v.setStatus("saved " + path)
}

func (v *viewer) setStatus(msg string) {
	v.status = msg
	v.statusUntil = time.Now().Add(2 * time.Second)
}

func (v *viewer) hudState() hudState {
	st := hudState{
		Show:      v.showHUD,
		Options:   v.r.Options,
		Wireframe: v.wireframe,
		Spinning:  v.spin.Spinning,
	}
	if time.Now().Before(v.statusUntil) {
		st.Status = v.status
	}
	return st
}
