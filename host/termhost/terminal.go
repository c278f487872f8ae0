// Package termhost runs the field in a terminal. Mouse motion drives the
// target; each cell stands for a block of surface pixels.
package termhost

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dotfield/game"
)

// Default pixel size of one terminal cell. Cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellW = 5.0
	DefaultCellH = 10.0
)

// Terminal adapts a tcell screen into the engine's host interfaces.
type Terminal struct {
	game.PointerEvents

	screen  tcell.Screen
	frames  *game.FrameQueue
	surface *CellSurface
	started time.Time

	cols, rows   int
	cellW, cellH float64
	viewport     float64 // 0 = container width

	// OnPause is called when Space is pressed.
	OnPause func()
}

// New wraps an initialised screen with mouse reporting enabled.
func New(screen tcell.Screen, cellW, cellH, viewportWidth float64, background color.RGBA) *Terminal {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	cols, rows := screen.Size()
	return &Terminal{
		screen:   screen,
		frames:   game.NewFrameQueue(),
		surface:  NewCellSurface(screen, cellW, cellH, background),
		started:  time.Now(),
		cols:     cols,
		rows:     rows,
		cellW:    cellW,
		cellH:    cellH,
		viewport: viewportWidth,
	}
}

// Frames returns the frame queue the engine schedules on.
func (t *Terminal) Frames() *game.FrameQueue { return t.frames }

// Surface returns the cell surface.
func (t *Terminal) Surface() *CellSurface { return t.surface }

// Bounds returns the terminal size in surface pixels.
func (t *Terminal) Bounds() game.Rect {
	return game.Rect{
		Width:  float64(t.cols) * t.cellW,
		Height: float64(t.rows) * t.cellH,
	}
}

// OnPointerMove subscribes to mouse motion.
func (t *Terminal) OnPointerMove(fn func(clientX, clientY float64)) func() { return t.Move.Add(fn) }

// OnPointerLeave subscribes to the terminal losing focus.
func (t *Terminal) OnPointerLeave(fn func()) func() { return t.Leave.Add(fn) }

// OnResize subscribes to terminal resizes.
func (t *Terminal) OnResize(fn func()) func() { return t.Resize.Add(fn) }

// ViewportWidth implements game.ViewportQuery.
func (t *Terminal) ViewportWidth() float64 {
	if t.viewport > 0 {
		return t.viewport
	}
	return t.Bounds().Width
}

// HandleEvent translates one tcell event. It returns false when the user
// asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' && t.OnPause != nil {
			t.OnPause()
		}

	case *tcell.EventMouse:
		// Aim at the centre of the cell under the cursor
		x, y := ev.Position()
		t.EmitMove((float64(x)+0.5)*t.cellW, (float64(y)+0.5)*t.cellH)

	case *tcell.EventFocus:
		if !ev.Focused {
			t.EmitLeave()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols != t.cols || rows != t.rows {
			t.cols, t.rows = cols, rows
			t.screen.Sync()
			t.EmitResize()
		}
	}
	return true
}

// Step runs the due frame callbacks and flushes the screen.
func (t *Terminal) Step(now time.Duration) {
	t.frames.Run(now)
	t.screen.Show()
}

// Run pumps events and frames until ctx is done or the user quits. Events
// are read on a separate goroutine and handled on the caller's goroutine,
// so the engine never runs concurrently with itself.
func (t *Terminal) Run(ctx context.Context, fps int) {
	if fps < 1 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !t.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.Step(time.Since(t.started))
		}
	}
}
