// Dotfield in the terminal. Move the mouse over the window to push the dots,
// Space pauses, Esc or q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/game"
	"github.com/pthm-cable/dotfield/host/termhost"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	viewportWidth := flag.Float64("width", 0, "Viewport width for breakpoint selection (0 = terminal width)")
	cellW := flag.Float64("cell-w", termhost.DefaultCellW, "Surface pixels per terminal column")
	cellH := flag.Float64("cell-h", termhost.DefaultCellH, "Surface pixels per terminal row")
	flag.Parse()

	if err := run(*configPath, *logPath, *logStats, *viewportWidth, *cellW, *cellH); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, logStats bool, viewportWidth, cellW, cellH float64) error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	// stdout belongs to the screen
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if cellW <= 0 || cellH <= 0 {
		return fmt.Errorf("cell size must be positive, got %vx%v", cellW, cellH)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	bg := cfg.Render.Background
	term := termhost.New(screen, cellW, cellH, viewportWidth,
		color.RGBA{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})

	engine := game.NewEngine(cfg, game.Options{
		Frames:   term.Frames(),
		Viewport: term,
		LogStats: logStats,
	})
	term.OnPause = engine.TogglePause

	if err := engine.Start(term, term.Surface()); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer engine.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term.Run(ctx, cfg.Screen.TargetFPS)
	return nil
}
