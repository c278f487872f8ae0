package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointerState is the latest pointer/touch target and whether it is in control.
type PointerState struct {
	Target r2.Vec
	Manual bool
}

// PointerTracker records pointer input in container-local coordinates.
// It is only touched from the tick loop's execution context.
type PointerTracker struct {
	state PointerState
}

// OnMove records a pointer position given in client space together with the
// container's top-left corner in the same space.
func (t *PointerTracker) OnMove(clientX, clientY, containerX, containerY float64) {
	t.state.Target = r2.Vec{X: clientX - containerX, Y: clientY - containerY}
	t.state.Manual = true
}

// OnLeaveOrEnd hands control back to demo motion. The target is retained.
func (t *PointerTracker) OnLeaveOrEnd() {
	t.state.Manual = false
}

// State returns the current pointer state.
func (t *PointerTracker) State() PointerState {
	return t.state
}

// Source returns the target source active for the current state.
func (t *PointerTracker) Source(elapsedMS float64) TargetSource {
	if t.state.Manual {
		return ManualTarget(t.state.Target)
	}
	return DemoTarget(elapsedMS)
}

// SourceKind tags a TargetSource.
type SourceKind uint8

const (
	SourceDemo SourceKind = iota
	SourceManual
)

func (k SourceKind) String() string {
	switch k {
	case SourceManual:
		return "manual"
	case SourceDemo:
		return "demo"
	default:
		return "unknown"
	}
}

// TargetSource is either a manual pointer position or a demo time.
// Resolve it once per tick and hand the result to physics and rendering.
type TargetSource struct {
	Kind      SourceKind
	Point     r2.Vec  // valid for SourceManual
	ElapsedMS float64 // valid for SourceDemo
}

// ManualTarget wraps a pointer position.
func ManualTarget(p r2.Vec) TargetSource {
	return TargetSource{Kind: SourceManual, Point: p}
}

// DemoTarget wraps an elapsed time in milliseconds.
func DemoTarget(elapsedMS float64) TargetSource {
	return TargetSource{Kind: SourceDemo, ElapsedMS: elapsedMS}
}

// Resolve turns the source into a concrete point on a surface of size w x h.
func (s TargetSource) Resolve(demo DemoMotion, w, h float64) r2.Vec {
	if s.Kind == SourceManual {
		return s.Point
	}
	return demo.Target(s.ElapsedMS, w, h)
}

// DemoMotion synthesizes the idle wandering target.
type DemoMotion struct {
	TimeScale float64 // multiplies milliseconds
	Amplitude float64 // fraction of the surface size
}

// DefaultDemoMotion returns the standard idle path parameters.
func DefaultDemoMotion() DemoMotion {
	return DemoMotion{TimeScale: 0.01, Amplitude: 0.45}
}

// Target evaluates the wandering path at elapsedMS on a w x h surface.
// tan(sin(.)) stays finite since |sin| <= 1 < pi/2.
func (d DemoMotion) Target(elapsedMS, w, h float64) r2.Vec {
	t := elapsedMS * d.TimeScale
	return r2.Vec{
		X: w*0.5 + math.Cos(t*2.1)*math.Cos(t*0.9)*w*d.Amplitude,
		Y: h*0.5 + math.Sin(t*3.2)*math.Tan(math.Sin(t*0.8))*h*d.Amplitude,
	}
}
