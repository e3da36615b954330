// Command dimdemo renders a mask box preview sweep to PNG frames.
//
// Usage:
//
//	dimdemo -config box.yaml -background photo.jpg -overlay sketch.png -out frames
//	dimdemo -config box.toml -uturn -end 40 -every 10 -watch
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/dim"
	"github.com/gogpu/dim/internal/composite"
	"github.com/gogpu/dim/internal/config"
	"github.com/gogpu/dim/internal/frames"
)

// Box size used when neither the config nor a background image sets one.
const (
	defaultWidth  = 400
	defaultHeight = 300
)

type options struct {
	configPath string
	background string
	overlay    string
	out        string
	every      int
	workers    int
	start      float64
	end        float64
	duration   time.Duration
	uturn      bool
	realtime   bool
	watch      bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "box configuration (.yaml, .yml or .toml)")
	flag.StringVar(&o.background, "background", "", "background image")
	flag.StringVar(&o.overlay, "overlay", "", "overlay image revealed by the mask")
	flag.StringVar(&o.out, "out", "frames", "output directory")
	flag.IntVar(&o.every, "every", 20, "write every n-th frame")
	flag.IntVar(&o.workers, "workers", 0, "PNG encoders (0 = GOMAXPROCS)")
	flag.Float64Var(&o.start, "start", -1, "preview start percent (overrides config)")
	flag.Float64Var(&o.end, "end", -1, "preview end percent (overrides config)")
	flag.DurationVar(&o.duration, "duration", 0, "preview duration (overrides config)")
	flag.BoolVar(&o.uturn, "uturn", false, "run out to the far edge before returning")
	flag.BoolVar(&o.realtime, "realtime", false, "drive the preview with a wall-clock ticker")
	flag.BoolVar(&o.watch, "watch", false, "replay whenever the config file changes")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		dim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Fatalf("dimdemo: %v", err)
	}
}

func run(ctx context.Context, o options) error {
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return err
	}

	bg, err := loadOptional(o.background)
	if err != nil {
		return err
	}
	ov, err := loadOptional(o.overlay)
	if err != nil {
		return err
	}

	file, err := loadFile(o.configPath)
	if err != nil {
		return err
	}

	fw := frames.NewWriter(o.out, o.every, o.workers)
	defer fw.Close()
	cfg, req := o.resolve(file, bg)

	engineOpts := []dim.Option{dim.WithRenderer(fw)}
	if !o.realtime {
		engineOpts = append(engineOpts, dim.WithManualTicks())
	}
	e, err := dim.NewEngine(cfg, engineOpts...)
	if err != nil {
		return err
	}
	// The writer has no compositor yet, so the initial frame is not saved.
	if err := fw.Reset(composite.New(cfg, bg, ov)); err != nil {
		return err
	}

	// Images are decoded up front; queue first so the ready signal starts it.
	e.Preview(req)
	e.MarkReady()
	if err := play(ctx, e, o.realtime); err != nil {
		return err
	}
	if err := flush(fw, o.out); err != nil {
		return err
	}

	if !o.watch || o.configPath == "" {
		return nil
	}
	log.Printf("watching %s", o.configPath)
	return config.Watch(ctx, o.configPath, func(f *config.File, err error) {
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		cfg, req := o.resolve(f, bg)
		if err := cfg.Validate(); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		if err := reconfigure(e, fw, cfg, composite.New(cfg, bg, ov)); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		e.Preview(req)
		if err := play(ctx, e, o.realtime); err != nil {
			log.Printf("replay: %v", err)
			return
		}
		if err := flush(fw, o.out); err != nil {
			log.Printf("frames: %v", err)
		}
	})
}

// reconfigure applies cfg and points the writer at c. Configure renders the
// new starting frame, which is kept out of the sweep the same way the first
// run keeps out the initial frame.
func reconfigure(e *dim.Engine, fw *frames.Writer, cfg dim.Config, c *composite.Compositor) error {
	if err := fw.Reset(nil); err != nil {
		log.Printf("frames: %v", err)
	}
	if err := e.Configure(cfg); err != nil {
		return err
	}
	if err := fw.Reset(c); err != nil {
		log.Printf("frames: %v", err)
	}
	return nil
}

// play drives the active preview to its end.
func play(ctx context.Context, e *dim.Engine, realtime bool) error {
	if !realtime {
		for e.Advance() {
			if ctx.Err() != nil {
				e.Stop()
				return ctx.Err()
			}
		}
		return nil
	}
	select {
	case <-e.Done():
		return nil
	case <-ctx.Done():
		e.Stop()
		return ctx.Err()
	}
}

// resolve merges the config file, the image size and the flag overrides.
func (o options) resolve(f *config.File, bg image.Image) (dim.Config, dim.PreviewRequest) {
	cfg := f.Config()
	if bg != nil {
		b := bg.Bounds()
		cfg = cfg.FitImage(float64(b.Dx()), float64(b.Dy()))
	}
	if cfg.Width == 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultHeight
	}

	req, ok := f.PreviewRequest()
	if !ok {
		req = dim.DefaultPreview()
	}
	if o.start >= 0 {
		req.Start = o.start
	}
	if o.end >= 0 {
		req.End = o.end
	}
	if o.duration != 0 {
		req.Duration = o.duration
	}
	if o.uturn {
		req.UTurn = true
	}
	return cfg, req
}

func loadFile(path string) (*config.File, error) {
	if path == "" {
		return &config.File{Angle: 20}, nil
	}
	return config.Load(path)
}

func loadOptional(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	return composite.LoadImage(path)
}

// flush finishes the sweep's frames and reports them.
func flush(fw *frames.Writer, dir string) error {
	n, err := fw.Flush()
	log.Printf("%d frames written to %s", n, dir)
	return err
}
