// Command cascade-render renders a scene file headlessly. It runs a fixed
// number of frames, optionally driven by an input script, and writes PNG
// snapshots plus the final frame to an output directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cascade"
	"github.com/phanxgames/cascade/ggcanvas"
)

const (
	defaultWidth  = 320
	defaultHeight = 240
)

type renderOptions struct {
	scene   string
	script  string
	out     string
	root    string
	frames  int
	strict  bool
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "cascade-render <scene.json>",
		Short: "cascade-render draws a scene file to PNG images.",
		Long: `Render loads a scene file, preloads its resources, and runs its frames
on an offscreen canvas. Snapshots requested by the input script are written
as <step>_<label>.png; the last frame is written as final.png.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.scene = args[0]
			if opts.verbose {
				cascade.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			return render(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 1, "number of frames to run; with a script, at least until it finishes")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "input script (JSON) to replay")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.root, "resources", "", "resource root (default: the scene's directory)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on drawing errors")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log frame details to stderr")
	return cmd
}

func render(ctx context.Context, opts renderOptions) error {
	cfg, err := cascade.LoadSceneConfig(opts.scene)
	if err != nil {
		return err
	}
	width, height := int(cfg.Screen.W), int(cfg.Screen.H)
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	canvas := ggcanvas.New(width, height)
	defer canvas.Close()

	w := cascade.NewWorld(canvas)
	root := opts.root
	if root == "" {
		root = filepath.Dir(opts.scene)
	}
	w.SetLoader(cascade.FileLoader{Root: root})
	if err := w.Preload(ctx, cfg.Resources); err != nil {
		if ctx.Err() != nil {
			return err
		}
		cascade.Logger().Warn("some resources failed to load", "err", err)
	}
	cfg.Build(w)

	var script *cascade.ScriptRunner
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if script, err = cascade.LoadInputScript(data); err != nil {
			return err
		}
		w.SetScript(script)
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	var saveErrs []error
	w.SetSnapshotHandler(func(label string, step int) {
		path := filepath.Join(opts.out, fmt.Sprintf("%04d_%s.png", step, cascade.SanitizeLabel(label)))
		if err := canvas.SavePNG(path); err != nil {
			saveErrs = append(saveErrs, fmt.Errorf("snapshot %q: %w", label, err))
		}
	})

	var drawErrs []error
	loop := cascade.NewLoop(w, cascade.LoopConfig{
		Scheduler: cascade.SchedulerFunc(func(ctx context.Context, frame func()) error {
			for i := 0; i < opts.frames || (script != nil && !script.Done()); i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				frame()
			}
			return nil
		}),
		OnError: func(err error) {
			cascade.Logger().Warn("frame drawing failed", "step", w.Step(), "err", err)
			drawErrs = append(drawErrs, err)
		},
	})
	if err := loop.Run(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := canvas.SavePNG(filepath.Join(opts.out, "final.png")); err != nil {
		saveErrs = append(saveErrs, fmt.Errorf("final frame: %w", err))
	}
	if opts.strict {
		saveErrs = append(saveErrs, drawErrs...)
	}
	return errors.Join(saveErrs...)
}
