package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
)

func newRenderCommand() *cobra.Command {
	var (
		cfgPath string
		flags   config.Flags
	)
	cmd := &cobra.Command{
		Use:   "render [model...]",
		Short: "Render one frame to an image file",
		Long: `Render draws the scene once and writes it to --out. The image format
follows the file extension: .png, .bmp or .webp.

Models given as arguments replace the models of the scene file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Models = args
			scene, err := loadScene(cfgPath, flags)
			if err != nil {
				return err
			}
			return renderScene(scene)
		},
	}
	sceneFlags(cmd, &cfgPath, &flags)
	cmd.Flags().StringVarP(&flags.Output, "out", "o", "", "output image (default frame.png)")
	cmd.Flags().IntVar(&flags.Scale, "scale", 0, "integer upscaling of the saved image")
	return cmd
}

// renderScene draws one frame of scene and saves it.
func renderScene(scene *config.Scene) error {
	models, err := loadModels(scene)
	if err != nil {
		return err
	}

	canvas := render.NewCanvas(scene.Width, scene.Height)
	r := render.NewRasterizer(scene.NewCamera(), canvas)
	if err := scene.Configure(r); err != nil {
		return err
	}

	r.BeginFrame(scene.Background.Color())
	r.DrawModels(models...)
	r.EndFrame()

	if err := render.SaveImage(canvas, scene.Output, render.ExportOptions{Scale: scene.Scale}); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	st := r.Stats()
	slog.Info("image saved",
		slog.String("path", scene.Output),
		slog.Int("width", scene.Width*scene.Scale),
		slog.Int("height", scene.Height*scene.Scale),
		slog.Int("faces", st.FacesDrawn),
	)
	return nil
}
