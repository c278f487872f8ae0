package game

import (
	"errors"
	"time"
)

// Lifecycle errors.
var (
	ErrAlreadyStarted = errors.New("engine already started")
	ErrNilContainer   = errors.New("nil container")
	ErrNilSurface     = errors.New("nil surface")
	ErrStopped        = errors.New("engine stopped")
)

// Rect is the container's bounding box in client space.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Container is the host element the field lives in. Subscriptions return a
// function that removes the listener.
type Container interface {
	Bounds() Rect
	OnPointerMove(fn func(clientX, clientY float64)) (unsubscribe func())
	OnPointerLeave(fn func()) (unsubscribe func())
	OnResize(fn func()) (unsubscribe func())
}

// ViewportQuery reports the viewport width used for breakpoint selection.
type ViewportQuery interface {
	ViewportWidth() float64
}

// ViewportFunc adapts a function to ViewportQuery.
type ViewportFunc func() float64

// ViewportWidth calls f.
func (f ViewportFunc) ViewportWidth() float64 { return f() }

// FrameHandle identifies a pending frame callback. The zero handle is never issued.
type FrameHandle uint64

// FrameRequester schedules one callback for the next display frame.
// now is the time elapsed since the host started.
type FrameRequester interface {
	RequestFrame(fn func(now time.Duration)) FrameHandle
	CancelFrame(h FrameHandle)
}

// StaticContainer is a Container with fixed bounds whose events are raised
// by the caller. Headless runs and tests use it.
type StaticContainer struct {
	PointerEvents
	Box Rect
}

// Bounds returns Box.
func (c *StaticContainer) Bounds() Rect { return c.Box }

// OnPointerMove subscribes to EmitMove.
func (c *StaticContainer) OnPointerMove(fn func(clientX, clientY float64)) func() {
	return c.Move.Add(fn)
}

// OnPointerLeave subscribes to EmitLeave.
func (c *StaticContainer) OnPointerLeave(fn func()) func() { return c.Leave.Add(fn) }

// OnResize subscribes to EmitResize.
func (c *StaticContainer) OnResize(fn func()) func() { return c.Resize.Add(fn) }
