package game

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/renderer"
	"github.com/pthm-cable/dotfield/systems"
	"github.com/pthm-cable/dotfield/telemetry"
)

// Phase selects what the next tick does.
type Phase uint8

const (
	PhasePhysics Phase = iota
	PhaseDraw
)

func (p Phase) String() string {
	switch p {
	case PhasePhysics:
		return "physics"
	case PhaseDraw:
		return "draw"
	default:
		return "unknown"
	}
}

type runState uint8

const (
	stateIdle runState = iota
	stateRunning
	statePaused
	stateStopped
)

// Engine drives the particle field: it owns the grid, alternates physics and
// draw ticks on the host's frame clock and rebuilds on resize.
// All methods must be called from the host's frame goroutine.
type Engine struct {
	frames   FrameRequester
	viewport ViewportQuery

	profiles    systems.ProfileTable
	heightScale float64
	physics     *systems.PhysicsSystem
	dots        *renderer.DotRenderer
	demo        systems.DemoMotion

	container Container
	surface   renderer.Surface
	pointer   systems.PointerTracker

	grid     *systems.Grid
	profile  systems.DeviceProfile
	surfaceW float64
	surfaceH float64

	state    runState
	phase    Phase
	pending  FrameHandle
	releases []func()

	lastSource systems.TargetSource
	lastTarget r2.Vec

	// Telemetry
	tick          int64
	lastNow       time.Duration
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewEngine creates an idle engine. Frames and Viewport must be set in opts.
func NewEngine(cfg *config.Config, opts Options) *Engine {
	if cfg == nil {
		cfg = config.Cfg()
	}
	windowTicks := int64(cfg.Telemetry.LogInterval * float64(cfg.Screen.TargetFPS))

	return &Engine{
		frames:        opts.Frames,
		viewport:      opts.Viewport,
		profiles:      systems.ProfilesFromConfig(cfg),
		heightScale:   cfg.Surface.HeightScale,
		physics:       systems.NewPhysicsSystem(cfg.Physics.Drag, cfg.Physics.Ease),
		dots:          renderer.NewDotRenderer(cfg.Render.BaseGrey, cfg.Render.SizeFalloff),
		demo:          systems.DemoMotion{TimeScale: cfg.Demo.TimeScale, Amplitude: cfg.Demo.Amplitude},
		grid:          systems.EmptyGrid(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(windowTicks),
		outputManager: opts.OutputManager,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
}

// Start attaches the engine to a container and surface, builds the first
// grid and schedules the first physics tick.
func (e *Engine) Start(container Container, surface renderer.Surface) error {
	switch {
	case container == nil:
		return ErrNilContainer
	case surface == nil:
		return ErrNilSurface
	case e.state == stateStopped:
		return ErrStopped
	case e.state != stateIdle:
		return ErrAlreadyStarted
	}

	e.container = container
	e.surface = surface

	e.acquire(container.OnPointerMove(e.handleMove))
	e.acquire(container.OnPointerLeave(e.pointer.OnLeaveOrEnd))
	e.acquire(container.OnResize(e.OnResize))

	e.state = stateRunning
	e.rebuild()
	e.schedule()
	// Released first on Stop.
	e.acquire(e.cancelPending)

	slog.Info("engine started",
		"profile", e.profile.Class,
		"cols", e.grid.Cols(),
		"rows", e.grid.Rows(),
		"particles", e.grid.Len(),
	)
	return nil
}

// Stop cancels the pending tick and removes every listener Start installed,
// in reverse order. Further calls do nothing.
func (e *Engine) Stop() {
	if e.state == stateIdle || e.state == stateStopped {
		return
	}
	e.state = stateStopped
	for i := len(e.releases) - 1; i >= 0; i-- {
		e.releases[i]()
	}
	e.releases = nil
	slog.Info("engine stopped", "tick", e.tick)
}

// Pause cancels the pending tick. The phase is kept so Resume continues
// where the engine left off.
func (e *Engine) Pause() {
	if e.state != stateRunning {
		return
	}
	e.cancelPending()
	e.state = statePaused
	slog.Debug("engine paused", "tick", e.tick, "phase", e.phase)
}

// Resume schedules the next tick after Pause.
func (e *Engine) Resume() {
	if e.state != statePaused {
		return
	}
	e.state = stateRunning
	e.schedule()
	slog.Debug("engine resumed", "tick", e.tick, "phase", e.phase)
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause() {
	if e.state == statePaused {
		e.Resume()
	} else {
		e.Pause()
	}
}

// OnResize re-measures the container and replaces the grid. It does nothing
// unless the engine is running or paused.
func (e *Engine) OnResize() {
	if e.state != stateRunning && e.state != statePaused {
		return
	}
	e.rebuild()
}

func (e *Engine) acquire(release func()) {
	e.releases = append(e.releases, release)
}

func (e *Engine) schedule() {
	e.pending = e.frames.RequestFrame(e.tickFrame)
}

func (e *Engine) cancelPending() {
	if e.pending != 0 {
		e.frames.CancelFrame(e.pending)
		e.pending = 0
	}
}

// handleMove reads the container origin at event time so that scrolling or
// moving the container never leaves a stale offset behind.
func (e *Engine) handleMove(clientX, clientY float64) {
	b := e.container.Bounds()
	e.pointer.OnMove(clientX, clientY, b.X, b.Y)
}

func (e *Engine) rebuild() {
	start := time.Now()

	b := e.container.Bounds()
	e.surfaceW = b.Width
	e.surfaceH = b.Height * e.heightScale

	width := b.Width
	if e.viewport != nil {
		width = e.viewport.ViewportWidth()
	}
	e.profile = e.profiles.Resolve(width)

	// Swapped wholesale: the previous grid is never observed half-built.
	e.grid = systems.BuildGrid(systems.GridSpec{
		Width:   e.surfaceW,
		Height:  e.surfaceH,
		Spacing: e.profile.Spacing,
		Margin:  e.profile.Margin,
	})
	e.collector.RecordRebuild()

	slog.Debug("grid rebuilt",
		"viewport_width", width,
		"surface_w", e.surfaceW,
		"surface_h", e.surfaceH,
		"profile", e.profile.Class,
		"particles", e.grid.Len(),
		"took_us", time.Since(start).Microseconds(),
	)
}

// tickFrame is the frame callback: one phase of work, then reschedule.
func (e *Engine) tickFrame(now time.Duration) {
	e.pending = 0
	if e.state != stateRunning {
		return
	}
	e.lastNow = now

	e.perfCollector.StartTick()

	source := e.pointer.Source(float64(now) / float64(time.Millisecond))
	target := source.Resolve(e.demo, e.surfaceW, e.surfaceH)
	e.lastSource = source
	e.lastTarget = target

	switch e.phase {
	case PhasePhysics:
		e.perfCollector.StartPhase(telemetry.PhasePhysics)
		e.physics.Update(e.grid, target, e.profile.UpdateThickness)
		e.collector.RecordPhysics(source.Kind == systems.SourceManual)
		e.phase = PhaseDraw
	case PhaseDraw:
		e.perfCollector.StartPhase(telemetry.PhaseDraw)
		e.dots.Draw(e.surface, e.grid, target, e.profile.DrawThickness)
		e.collector.RecordDraw()
		e.phase = PhasePhysics
	}

	e.perfCollector.EndTick()
	e.tick++
	e.flushTelemetry()

	// A subscriber notified during the tick may have stopped the engine.
	if e.state == stateRunning {
		e.schedule()
	}
}

// Grid returns the current grid.
func (e *Engine) Grid() *systems.Grid { return e.grid }

// Profile returns the active device profile.
func (e *Engine) Profile() systems.DeviceProfile { return e.profile }

// Phase returns the phase the next tick will run.
func (e *Engine) Phase() Phase { return e.phase }

// Tick returns the number of ticks executed.
func (e *Engine) Tick() int64 { return e.tick }

// Source returns the target source used by the last tick.
func (e *Engine) Source() systems.TargetSource { return e.lastSource }

// Target returns the target point used by the last tick.
func (e *Engine) Target() r2.Vec { return e.lastTarget }

// SurfaceSize returns the working surface size.
func (e *Engine) SurfaceSize() (w, h float64) { return e.surfaceW, e.surfaceH }

// Physics exposes the integrator constants for live tuning.
func (e *Engine) Physics() *systems.PhysicsSystem { return e.physics }

// Running reports whether ticks are being scheduled.
func (e *Engine) Running() bool { return e.state == stateRunning }

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool { return e.state == statePaused }

// Perf returns the performance collector.
func (e *Engine) Perf() *telemetry.PerfCollector { return e.perfCollector }
