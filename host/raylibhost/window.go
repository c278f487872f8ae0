// Package raylibhost runs the field in a desktop window.
package raylibhost

import (
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/game"
)

// Window adapts a raylib window into the engine's host interfaces. The
// whole window is the container; its width is the viewport width unless
// overridden.
type Window struct {
	game.PointerEvents

	frames  *game.FrameQueue
	surface *TextureSurface
	started time.Time

	width, height int32
	viewport      float64 // 0 = window width

	mouseInside bool
	touching    bool
	lastPointer rl.Vector2
}

// Open creates the window. viewportWidth overrides the width used for
// breakpoint selection when positive.
func Open(cfg *config.Config, viewportWidth float64) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := &Window{
		frames:   game.NewFrameQueue(),
		started:  time.Now(),
		width:    int32(rl.GetScreenWidth()),
		height:   int32(rl.GetScreenHeight()),
		viewport: viewportWidth,
	}
	bg := cfg.Render.Background
	w.surface = NewTextureSurface(w.width, w.height, color.RGBA{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})
	return w
}

// Frames returns the frame queue the engine schedules on.
func (w *Window) Frames() *game.FrameQueue { return w.frames }

// Surface returns the render texture surface.
func (w *Window) Surface() *TextureSurface { return w.surface }

// Size returns the window size in pixels.
func (w *Window) Size() (int32, int32) { return w.width, w.height }

// Bounds returns the window's client area.
func (w *Window) Bounds() game.Rect {
	return game.Rect{Width: float64(w.width), Height: float64(w.height)}
}

// OnPointerMove subscribes to mouse and touch movement.
func (w *Window) OnPointerMove(fn func(clientX, clientY float64)) func() { return w.Move.Add(fn) }

// OnPointerLeave subscribes to the cursor leaving the window and touches ending.
func (w *Window) OnPointerLeave(fn func()) func() { return w.Leave.Add(fn) }

// OnResize subscribes to window resizes.
func (w *Window) OnResize(fn func()) func() { return w.Resize.Add(fn) }

// ViewportWidth implements game.ViewportQuery.
func (w *Window) ViewportWidth() float64 {
	if w.viewport > 0 {
		return w.viewport
	}
	return float64(w.width)
}

// ShouldClose reports whether the user closed the window.
func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

// PollEvents turns raylib's polled input state into container events.
func (w *Window) PollEvents() {
	w.handleResize()
	w.handlePointer()
}

func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := int32(rl.GetScreenWidth())
	height := int32(rl.GetScreenHeight())
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	w.surface.Resize(width, height)
	w.EmitResize()
}

func (w *Window) handlePointer() {
	if rl.GetTouchPointCount() > 0 {
		p := rl.GetTouchPosition(0)
		if !w.touching || p != w.lastPointer {
			w.touching = true
			w.lastPointer = p
			w.EmitMove(float64(p.X), float64(p.Y))
		}
		return
	}
	if w.touching {
		w.touching = false
		w.EmitLeave()
		return
	}

	if !rl.IsCursorOnScreen() {
		if w.mouseInside {
			w.mouseInside = false
			w.EmitLeave()
		}
		return
	}
	p := rl.GetMousePosition()
	if !w.mouseInside || p != w.lastPointer {
		w.mouseInside = true
		w.lastPointer = p
		w.EmitMove(float64(p.X), float64(p.Y))
	}
}

// RunFrame runs the due frame callbacks with drawing routed to the texture.
func (w *Window) RunFrame() {
	w.surface.Begin()
	w.frames.Run(time.Since(w.started))
	w.surface.End()
}

// Present shows the field and then calls overlay to draw on top of it.
func (w *Window) Present(overlay func()) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	w.surface.Present()
	if overlay != nil {
		overlay()
	}
	rl.EndDrawing()
}

// Close releases GPU resources and the window.
func (w *Window) Close() {
	w.surface.Unload()
	rl.CloseWindow()
}
