package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/config"
	"github.com/iburimskiy/wobble-rings/internal/export"
	"github.com/iburimskiy/wobble-rings/internal/scene"
)

// renderEpoch fixes the simulated clock so renders are reproducible.
var renderEpoch = time.Unix(0, 0)

func newRenderCmd(a *app) *cobra.Command {
	defaults := config.NewDefaultConfig().Render
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to numbered SVG or PNG files without a window",
		Example: `  wobble-rings render --frames 90 --fps 30 --format png --out frames/
  wobble-rings render --pointer 600,300`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderFrames(cmd.Context(), a.cfg, a.logger, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Int("frames", defaults.Frames, "number of frames")
	f.Int("fps", defaults.FPS, "simulated frames per second")
	f.Int("width", defaults.Width, "viewport width")
	f.Int("height", defaults.Height, "viewport height")
	f.StringP("out", "o", defaults.Out, "output directory")
	f.StringP("format", "f", defaults.Format, "svg or png")
	f.String("pointer", defaults.Pointer, `pointer position "x,y" held for the whole render`)
	bindFlags(a.v, f.Lookup, map[string]string{
		"render.frames":  "frames",
		"render.fps":     "fps",
		"render.width":   "width",
		"render.height":  "height",
		"render.out":     "out",
		"render.format":  "format",
		"render.pointer": "pointer",
	})
	return cmd
}

func renderFrames(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rc := cfg.Render
	format, err := export.ParseFormat(rc.Format)
	if err != nil {
		return err
	}
	px, py, hasPointer, err := config.ParsePoint(rc.Pointer)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(rc.Out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	colors := cfg.Scene.ColorTriple()
	c := clock.NewMock(renderEpoch)
	host := scene.NewManualHost(c, float64(rc.Width), float64(rc.Height))
	s := scene.New(scene.Configuration{
		Points:     func() int { return cfg.Scene.Points },
		Colors:     func() [3]string { return colors },
		BlendMode:  func() string { return cfg.Scene.BlendMode },
		Background: func() string { return cfg.Scene.Background },
	},
		scene.WithClock(c),
		scene.WithLogger(logger),
		scene.WithIdleAfter(cfg.Scene.IdleTimeout),
		scene.WithResizeDebounce(cfg.Scene.ResizeDebounce),
	)
	s.Start(host)
	defer s.Stop()

	logger.Info("Rendering",
		zap.Int("frames", rc.Frames),
		zap.Int("fps", rc.FPS),
		zap.String("format", string(format)),
		zap.String("out", rc.Out),
	)
	interval := rc.FrameInterval()
	for i := 0; i < rc.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if hasPointer {
			host.Pointer(px, py)
		}
		host.Advance(interval)

		name := filepath.Join(rc.Out, fmt.Sprintf("frame_%03d%s", i, format.Ext()))
		if err := export.SaveFile(name, s); err != nil {
			return err
		}
		fmt.Fprintf(out, "  frame %d/%d → %s\n", i+1, rc.Frames, name)
	}
	logger.Info("Render complete", zap.Uint64("scene_frames", s.Frames()))
	return nil
}
