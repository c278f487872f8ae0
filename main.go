package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/game"
	"github.com/pthm-cable/dotfield/host/raylibhost"
	"github.com/pthm-cable/dotfield/renderer"
	"github.com/pthm-cable/dotfield/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	viewportWidth := flag.Float64("width", 0, "Viewport width for breakpoint selection (0 = window width)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		LogStats:      *logStats,
		OutputManager: output,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxTicks, *viewportWidth); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	win := raylibhost.Open(cfg, *viewportWidth)
	defer win.Close()

	opts.Frames = win.Frames()
	opts.Viewport = win
	engine := game.NewEngine(cfg, opts)
	if err := engine.Start(win, win.Surface()); err != nil {
		slog.Error("failed to start engine", "error", err)
		return
	}
	defer engine.Stop()

	desktop := newDesktopUI(cfg.Screen.Title)
	for !win.ShouldClose() {
		win.PollEvents()
		desktop.handleKeys(engine)
		win.RunFrame()
		engine.RecordFrame()
		win.Present(func() { desktop.draw(engine, win) })

		if *maxTicks > 0 && engine.Tick() >= *maxTicks {
			break
		}
	}
}

// runHeadless drives the engine from a synthetic 60 Hz-style clock against
// a recording surface. The demo path supplies the target.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64, viewportWidth float64) error {
	frames := game.NewFrameQueue()
	container := &game.StaticContainer{
		Box: game.Rect{Width: cfg.Derived.ScreenW, Height: cfg.Derived.ScreenH},
	}
	if viewportWidth <= 0 {
		viewportWidth = cfg.Derived.ScreenW
	}

	opts.Frames = frames
	opts.Viewport = game.ViewportFunc(func() float64 { return viewportWidth })
	engine := game.NewEngine(cfg, opts)

	surface := &renderer.Recorder{}
	if err := engine.Start(container, surface); err != nil {
		return err
	}
	defer engine.Stop()

	fps := cfg.Screen.TargetFPS
	if fps < 1 {
		fps = 60
	}
	step := time.Second / time.Duration(fps)

	slog.Info("starting headless run",
		"max_ticks", maxTicks,
		"particles", engine.Grid().Len(),
		"profile", engine.Profile().Class,
	)

	started := time.Now()
	var now time.Duration
	for maxTicks <= 0 || engine.Tick() < maxTicks {
		now += step
		frames.Run(now)
	}

	slog.Info("max ticks reached",
		"tick", engine.Tick(),
		"draws", surface.Clears,
		"fills", surface.Fills,
		"wall_ms", time.Since(started).Milliseconds(),
	)
	return nil
}
