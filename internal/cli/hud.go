package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taigrr/scanline/pkg/render"
)

// HUD renders an overlay with model info and the feature toggles.
type HUD struct {
	out       io.Writer
	filename  string
	faceCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD writing ANSI sequences to out.
func NewHUD(out io.Writer, filename string, faceCount int) *HUD {
	return &HUD{
		out:       out,
		filename:  filename,
		faceCount: faceCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiBgBlack   = "\x1b[40m"
	ansiFgWhite   = "\x1b[97m"
	ansiFgGreen   = "\x1b[92m"
	ansiFgYellow  = "\x1b[93m"
	ansiFgCyan    = "\x1b[96m"
	ansiClearLine = "\x1b[2K"
)

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// toggleLine is the bottom row listing the numbered toggles.
func toggleLine(opts render.Options, wireframe bool) string {
	items := []struct {
		key  string
		name string
		on   bool
	}{
		{"1", "normal", opts.NormalMap},
		{"2", "specular", opts.SpecularMap},
		{"3", "glow", opts.GlowMap},
		{"4", "shadows", opts.Shadows},
		{"5", "AO", opts.Occlusion},
		{"x", "x-ray", wireframe},
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, " %s%s %s", it.key, check(it.on), it.name)
	}
	return b.String()
}

// hudState is what the HUD reports about the viewer.
type hudState struct {
	Show      bool
	Options   render.Options
	Wireframe bool
	Spinning  bool
	Status    string // transient message, e.g. a saved snapshot
}

// Render draws the HUD rows. The rows are always cleared first so that
// hiding the HUD takes effect.
func (h *HUD) Render(width, height int, st hudState) {
	fmt.Fprint(h.out, moveTo(1, 1)+ansiClearLine)
	fmt.Fprint(h.out, moveTo(height, 1)+ansiClearLine)

	if st.Status != "" {
		col := max((width-len(st.Status)-2)/2, 1)
		fmt.Fprintf(h.out, "%s%s%s%s %s %s", moveTo(height, col), ansiBgBlack, ansiBold, ansiFgYellow, st.Status, ansiReset)
		return
	}
	if !st.Show {
		return
	}

	fmt.Fprintf(h.out, "%s%s%s %.0f FPS %s", moveTo(1, 1), ansiBgBlack, ansiFgGreen, h.fps, ansiReset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Fprintf(h.out, "%s%s%s%s %s %s", moveTo(1, titleCol), ansiBold, ansiBgBlack, ansiFgWhite, h.filename, ansiReset)

	faces := fmt.Sprintf("%d faces", h.faceCount)
	fmt.Fprintf(h.out, "%s%s%s%s %s %s", moveTo(1, max(width-len(faces)-1, 1)), ansiBgBlack, ansiFgCyan, ansiBold, faces, ansiReset)

	fmt.Fprintf(h.out, "%s%s%s%s %s", moveTo(height, 1), ansiBgBlack, ansiFgWhite, toggleLine(st.Options, st.Wireframe), ansiReset)

	hint := "space: spin light"
	if st.Spinning {
		hint = "space: stop light"
	}
	fmt.Fprintf(h.out, "%s%s%s%s %s %s", moveTo(height, max(width-len(hint)-1, 1)), ansiBgBlack, ansiDim, ansiFgYellow, hint, ansiReset)
}
