// Dotfield in an ebiten game loop. Builds for desktop and for the browser:
//
//	GOOS=js GOARCH=wasm go build -o dotfield.wasm ./cmd/dotfield-web
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/game"
	"github.com/pthm-cable/dotfield/host/ebitenhost"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	viewportWidth := flag.Float64("width", 0, "Viewport width for breakpoint selection (0 = layout width)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	bg := cfg.Render.Background
	host := ebitenhost.New(cfg.Screen.Width, cfg.Screen.Height, *viewportWidth,
		color.RGBA{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})

	engine := game.NewEngine(cfg, game.Options{
		Frames:   host.Frames(),
		Viewport: host,
		LogStats: *logStats,
	})
	host.OnPause = engine.TogglePause
	host.OnFrame = engine.RecordFrame

	if err := engine.Start(host, host.Surface()); err != nil {
		slog.Error("failed to start engine", "error", err)
		os.Exit(1)
	}
	defer engine.Stop()

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	if err := ebiten.RunGame(host); err != nil {
		slog.Error("game loop failed", "error", err)
	}
}
