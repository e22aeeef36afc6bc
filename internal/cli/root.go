// Package cli implements the scanline command line: headless rendering to
// image files and an interactive terminal viewer.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/version"
	"github.com/taigrr/scanline/pkg/render"
)

// NewRootCommand builds the scanline command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "scanline",
		Short: "CPU scanline rasterizer for OBJ and glTF models",
		Long: `scanline renders textured, normal-mapped and shadowed models on the CPU.
It writes frames to PNG, BMP or WebP files, or shows them live in the terminal.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output (frame stats, missing maps)")

	root.AddCommand(newRenderCommand(), newViewCommand(), newVersionCommand())
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
}

// sceneFlags registers the flags shared by render and view.
func sceneFlags(cmd *cobra.Command, cfgPath *string, flags *config.Flags) {
	f := cmd.Flags()
	f.StringVarP(cfgPath, "config", "c", "", "scene file (YAML)")
	f.IntVar(&flags.Width, "width", 0, "canvas width in pixels (default 800)")
	f.IntVar(&flags.Height, "height", 0, "canvas height in pixels (default 800)")
	f.Float64Var(&flags.Distance, "distance", 0, "camera projection distance")
	f.BoolVar(&flags.NoAO, "no-ao", false, "disable ambient occlusion")
	f.BoolVar(&flags.NoShadows, "no-shadows", false, "disable shadow maps")
	f.BoolVar(&flags.NoNormalMap, "no-normal-map", false, "ignore normal maps")
	f.BoolVar(&flags.NoSpecular, "no-specular", false, "ignore specular maps")
	f.BoolVar(&flags.NoGlow, "no-glow", false, "ignore glow maps")
	f.StringVar(&flags.Filter, "texture-filter", "", "texture sampling: nearest or bilinear (default nearest)")
}

// loadScene reads the scene file if one is given, applies flags and
// validates the result.
func loadScene(cfgPath string, flags config.Flags) (*config.Scene, error) {
	scene := config.Default()
	if cfgPath != "" {
		var err error
		if scene, err = config.Load(cfgPath); err != nil {
			return nil, err
		}
	}
	scene.Resolve(flags)
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scanline %s\n", version.GetFullVersion())
		},
	}
}
