package termhost

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/game"
)

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return New(screen, DefaultCellW, DefaultCellH, 0, color.RGBA{A: 255}), screen
}

func TestTerminalBounds(t *testing.T) {
	term, _ := newTestTerminal(t, 80, 24)

	b := term.Bounds()
	if b.Width != 400 || b.Height != 240 {
		t.Errorf("bounds = %vx%v, want 400x240", b.Width, b.Height)
	}
	if term.ViewportWidth() != 400 {
		t.Errorf("viewport = %v, want 400", term.ViewportWidth())
	}
}

func TestTerminalEvents(t *testing.T) {
	term, _ := newTestTerminal(t, 80, 24)

	var moves [][2]float64
	leaves, resizes, pauses := 0, 0, 0
	term.OnPointerMove(func(x, y float64) { moves = append(moves, [2]float64{x, y}) })
	term.OnPointerLeave(func() { leaves++ })
	term.OnResize(func() { resizes++ })
	term.OnPause = func() { pauses++ }

	tests := []struct {
		name     string
		ev       tcell.Event
		wantQuit bool
	}{
		{"mouse", tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), false},
		{"focus lost", tcell.NewEventFocus(false), false},
		{"focus gained", tcell.NewEventFocus(true), false},
		{"resize", tcell.NewEventResize(100, 30), false},
		{"same size", tcell.NewEventResize(100, 30), false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if quit := !term.HandleEvent(tt.ev); quit != tt.wantQuit {
				t.Errorf("quit = %v, want %v", quit, tt.wantQuit)
			}
		})
	}

	if len(moves) != 1 || moves[0] != [2]float64{17.5, 25} {
		t.Errorf("moves = %v, want [[17.5 25]]", moves)
	}
	if leaves != 1 || resizes != 1 || pauses != 1 {
		t.Errorf("leaves/resizes/pauses = %d/%d/%d, want 1/1/1", leaves, resizes, pauses)
	}
	if b := term.Bounds(); b.Width != 500 || b.Height != 300 {
		t.Errorf("bounds after resize = %vx%v", b.Width, b.Height)
	}
}

func TestTerminalRunsEngine(t *testing.T) {
	term, screen := newTestTerminal(t, 20, 4)

	engine := game.NewEngine(config.Defaults(), game.Options{
		Frames:   term.Frames(),
		Viewport: term,
	})
	if err := engine.Start(term, term.Surface()); err != nil {
		t.Fatal(err)
	}
	defer engine.Stop()

	// 100x40 px, halved to 100x20: 10x2 dots at spacing 10
	if engine.Grid().Len() != 20 {
		t.Fatalf("particles = %d, want 20", engine.Grid().Len())
	}

	term.Step(16 * time.Millisecond) // physics
	term.Step(32 * time.Millisecond) // draw

	// The particle at origin (0,0) lands in cell (0,0), (10,0) in cell (2,0)
	for _, cell := range [][2]int{{0, 0}, {2, 0}, {0, 1}} {
		r, _, _, _ := screen.GetContent(cell[0], cell[1])
		if r != Dot {
			t.Errorf("cell %v = %q, want a dot", cell, r)
		}
	}
	if r, _, _, _ := screen.GetContent(1, 0); r == Dot {
		t.Error("cell (1,0) between dots was painted")
	}
}
