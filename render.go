package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jdginn/go-raytracer/config"
	"github.com/jdginn/go-raytracer/experiment"
	"github.com/jdginn/go-raytracer/interact"
	"github.com/jdginn/go-raytracer/scene"
	"github.com/jdginn/go-raytracer/tracer"
)

type RenderCmd struct {
	Scene       string  `arg:"" optional:"" name:"scene" help:"scene description file"`
	Config      string  `short:"c" help:"YAML render config" type:"existingfile"`
	Output      string  `short:"o" help:"output file (default derived from the scene name)"`
	Format      string  `help:"output format: bmp, png, raw or raster"`
	Channels    int     `help:"bytes per pixel for raw and raster output (3 or 4)"`
	Supersample string  `help:"supersampling: none, 2x2 or 3x3"`
	Workers     int     `short:"j" help:"rows rendered at once (default GOMAXPROCS)"`
	Cutoff      float64 `help:"weight below which secondary rays are dropped"`
	Clamp       bool    `name:"clamp-negative-light" help:"ignore light arriving from behind a surface"`
	Display     bool    `short:"d" help:"show an interactive progress display"`
	Quiet       bool    `short:"q" help:"suppress progress output"`
	NewRun      bool    `name:"run" help:"write the render into a new run directory under renders/"`
}

var extensions = map[string]string{
	"bmp":    ".bmp",
	"png":    ".png",
	"raw":    ".rif",
	"raster": ".ras",
}

// config merges the flags over the config file, if any.
func (c RenderCmd) config() (*config.RenderConfig, error) {
	cfg := &config.RenderConfig{}
	if c.Config != "" {
		var err error
		cfg, err = config.LoadFromFile(c.Config, config.LoadOptions{ResolvePaths: true})
		if err != nil {
			return nil, err
		}
	}
	cfg.Merge(config.RenderConfig{
		Scene: config.Scene{Path: c.Scene},
		Render: config.Render{
			Supersample:        c.Supersample,
			Workers:            c.Workers,
			Cutoff:             c.Cutoff,
			ClampNegativeLight: c.Clamp,
		},
		Output:  config.Output{Format: c.Format, Path: c.Output, Channels: c.Channels},
		Display: config.Display{Interactive: c.Display, Quiet: c.Quiet},
	})
	if cfg.Output.Format == "" {
		cfg.Output.Format = "bmp"
	}
	if cfg.Output.Path == "" && cfg.Scene.Path != "" && cfg.Output.Format != "raw" {
		base := strings.TrimSuffix(filepath.Base(cfg.Scene.Path), filepath.Ext(cfg.Scene.Path))
		cfg.Output.Path = base + extensions[cfg.Output.Format]
	}
	if cfg.Output.Format == "raw" && cfg.Output.Path == "" {
		// Pixels go to stdout.
		cfg.Display.Quiet = true
	}
	errs := cfg.Validate()
	errs = append(errs, cfg.CheckInputs()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", config.FormatValidationErrors(errs))
	}
	return cfg, nil
}

func (c RenderCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	logf := func(format string, args ...any) {
		if !cfg.Display.Quiet {
			fmt.Printf(format, args...)
		}
	}

	if c.NewRun {
		run, err := experiment.CreateRunDirectory("")
		if err != nil {
			return err
		}
		if cfg.Output.Path != "" {
			cfg.Output.Path = run.GetFilePath(filepath.Base(cfg.Output.Path))
		}
		if err := run.CopyFile(cfg.Scene.Path); err != nil {
			return err
		}
		if err := config.SaveToFile(cfg, run.GetFilePath("render.yaml")); err != nil {
			return err
		}
		logf("Writing to %s\n", run.Path)
	}

	start := time.Now()
	s, err := cfg.LoadScene()
	if err != nil {
		return err
	}
	logf("Read in %d objects\n", len(s.Primitives))

	tr := tracer.New(s, cfg.TracerOptions())
	if tree := tr.Tree(); tree != nil && !cfg.Display.Quiet {
		reportTree(tree, tree.Stats())
	}

	first, last := tr.Rows()
	sink, finish, err := openSink(cfg.Output, s.Params, last-first)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	render := func(ctx context.Context, progress tracer.ProgressFunc) error {
		return tr.Render(ctx, sink, progress)
	}
	if cfg.Display.Interactive {
		err = interact.Render(ctx, filepath.Base(cfg.Scene.Path), last-first, render)
	} else {
		err = render(ctx, func(done, total int) {
			if done == total || done%max(1, total/10) == 0 {
				logf("Row %d of %d\n", done, total)
			}
		})
	}
	if ferr := finish(err == nil); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	logf("Elapsed time: %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// openSink returns the row sink for out and a function that completes the
// output once rendering has stopped. finish(false) releases the output
// without writing the image.
func openSink(out config.Output, p scene.Params, rows int) (tracer.RowSink, func(ok bool) error, error) {
	switch out.Format {
	case "bmp", "png":
		frame := tracer.NewFrame(p.HRes, p.VRes)
		return frame, func(ok bool) error {
			if !ok {
				return nil
			}
			return frame.WriteFile(out.Path, out.Format)
		}, nil
	}

	var (
		w       io.Writer = os.Stdout
		closeFn           = func() error { return nil }
	)
	if out.Path != "" {
		f, err := os.Create(out.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", out.Path, err)
		}
		w, closeFn = f, f.Close
	}
	bw := bufio.NewWriter(w)
	finish := func(ok bool) error {
		if !ok {
			return closeFn()
		}
		err := bw.Flush()
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		return err
	}
	if out.Format == "raster" {
		return tracer.NewRasterWriter(bw, p.HRes, rows, p.BytesPerPixel()), finish, nil
	}
	return tracer.NewRawWriter(bw), finish, nil
}
