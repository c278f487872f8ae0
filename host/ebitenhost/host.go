// Package ebitenhost runs the field inside an ebiten game loop, which also
// targets the browser through WebAssembly.
package ebitenhost

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/dotfield/game"
)

// Host implements ebiten.Game and the engine's Container. Layout reports
// the outside size, which in a browser is the canvas size.
type Host struct {
	game.PointerEvents

	frames  *game.FrameQueue
	surface *ImageSurface
	started time.Time

	width, height int
	resized       bool
	viewport      float64 // 0 = layout width

	mouseInside bool
	touching    bool
	lastX       int
	lastY       int
	touchIDs    []ebiten.TouchID

	// OnPause is called when Space is pressed.
	OnPause func()
	// OnFrame is called once per drawn display frame.
	OnFrame func()
}

// New creates a host with an initial size. viewportWidth overrides the
// width used for breakpoint selection when positive.
func New(width, height int, viewportWidth float64, background color.RGBA) *Host {
	return &Host{
		frames:   game.NewFrameQueue(),
		surface:  NewImageSurface(width, height, background),
		started:  time.Now(),
		width:    width,
		height:   height,
		viewport: viewportWidth,
	}
}

// Frames returns the frame queue the engine schedules on.
func (h *Host) Frames() *game.FrameQueue { return h.frames }

// Surface returns the off-screen image surface.
func (h *Host) Surface() *ImageSurface { return h.surface }

// Bounds returns the layout area.
func (h *Host) Bounds() game.Rect {
	return game.Rect{Width: float64(h.width), Height: float64(h.height)}
}

// OnPointerMove subscribes to cursor and touch movement.
func (h *Host) OnPointerMove(fn func(clientX, clientY float64)) func() { return h.Move.Add(fn) }

// OnPointerLeave subscribes to the cursor leaving the layout and touches ending.
func (h *Host) OnPointerLeave(fn func()) func() { return h.Leave.Add(fn) }

// OnResize subscribes to layout size changes.
func (h *Host) OnResize(fn func()) func() { return h.Resize.Add(fn) }

// ViewportWidth implements game.ViewportQuery.
func (h *Host) ViewportWidth() float64 {
	if h.viewport > 0 {
		return h.viewport
	}
	return float64(h.width)
}

// Update polls input and runs the due frame callbacks.
func (h *Host) Update() error {
	if h.resized {
		h.resized = false
		h.surface.Resize(h.width, h.height)
		h.EmitResize()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && h.OnPause != nil {
		h.OnPause()
	}
	h.pollPointer()

	h.frames.Run(time.Since(h.started))
	return nil
}

func (h *Host) pollPointer() {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	if len(h.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(h.touchIDs[0])
		h.moveTo(x, y, h.touching)
		h.touching = true
		return
	}
	if h.touching {
		h.touching = false
		h.EmitLeave()
		return
	}

	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || x >= h.width || y >= h.height {
		if h.mouseInside {
			h.mouseInside = false
			h.EmitLeave()
		}
		return
	}
	h.moveTo(x, y, h.mouseInside)
	h.mouseInside = true
}

// moveTo emits a move unless an already active pointer stayed put.
func (h *Host) moveTo(x, y int, active bool) {
	if active && x == h.lastX && y == h.lastY {
		return
	}
	h.lastX, h.lastY = x, y
	h.EmitMove(float64(x), float64(y))
}

// Draw copies the last drawn field to the screen.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.DrawImage(h.surface.Image(), nil)
	if h.OnFrame != nil {
		h.OnFrame()
	}
}

// Layout tracks the outside size; a change is delivered as a resize event
// on the next Update.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.resized = true
	}
	return outsideWidth, outsideHeight
}
