package game

import (
	"errors"
	"testing"
	"time"

	"github.com/pthm-cable/dotfield/config"
	"github.com/pthm-cable/dotfield/renderer"
	"github.com/pthm-cable/dotfield/systems"
	"github.com/pthm-cable/dotfield/telemetry"
)

type harness struct {
	engine    *Engine
	frames    *FrameQueue
	container *StaticContainer
	surface   *renderer.Recorder
	viewport  float64
	now       time.Duration
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		frames:    NewFrameQueue(),
		container: &StaticContainer{Box: Rect{Width: 100, Height: 100}},
		surface:   &renderer.Recorder{Keep: true},
		viewport:  1024,
	}
	opts.Frames = h.frames
	opts.Viewport = ViewportFunc(func() float64 { return h.viewport })
	h.engine = NewEngine(config.Defaults(), opts)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	if err := h.engine.Start(h.container, h.surface); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

// frame advances the host clock by one 60 Hz frame and runs due callbacks.
func (h *harness) frame() {
	h.now += time.Second / 60
	h.frames.Run(h.now)
}

func TestEngineStartErrors(t *testing.T) {
	h := newHarness(t, Options{})

	if err := h.engine.Start(nil, h.surface); !errors.Is(err, ErrNilContainer) {
		t.Errorf("nil container: err = %v", err)
	}
	if err := h.engine.Start(h.container, nil); !errors.Is(err, ErrNilSurface) {
		t.Errorf("nil surface: err = %v", err)
	}

	h.start(t)
	if err := h.engine.Start(h.container, h.surface); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second start: err = %v", err)
	}

	h.engine.Stop()
	if err := h.engine.Start(h.container, h.surface); !errors.Is(err, ErrStopped) {
		t.Errorf("start after stop: err = %v", err)
	}
}

func TestEngineBuildsGridOnStart(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)

	// 100 wide, 100*0.5 high at spacing 10
	g := h.engine.Grid()
	if g.Cols() != 10 || g.Rows() != 5 {
		t.Errorf("grid = %dx%d, want 10x5", g.Cols(), g.Rows())
	}
	if h.engine.Profile().Class != systems.ClassDesktop {
		t.Errorf("profile = %q, want desktop", h.engine.Profile().Class)
	}
	if w, hh := h.engine.SurfaceSize(); w != 100 || hh != 50 {
		t.Errorf("surface = %vx%v, want 100x50", w, hh)
	}
	if h.frames.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", h.frames.Pending())
	}
	if h.container.Subscriptions() != 3 {
		t.Errorf("subscriptions = %d, want 3", h.container.Subscriptions())
	}
}

func TestEngineAlternatesPhases(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)

	if h.engine.Phase() != PhasePhysics {
		t.Fatalf("first phase = %v, want physics", h.engine.Phase())
	}

	for i := 1; i <= 6; i++ {
		h.frame()

		if h.engine.Tick() != int64(i) {
			t.Fatalf("tick = %d, want %d", h.engine.Tick(), i)
		}
		// Odd ticks run physics, even ticks draw
		wantClears := i / 2
		if h.surface.Clears != wantClears {
			t.Errorf("after tick %d: clears = %d, want %d", i, h.surface.Clears, wantClears)
		}
		wantNext := PhaseDraw
		if i%2 == 0 {
			wantNext = PhasePhysics
		}
		if h.engine.Phase() != wantNext {
			t.Errorf("after tick %d: next phase = %v, want %v", i, h.engine.Phase(), wantNext)
		}
		if h.frames.Pending() != 1 {
			t.Errorf("after tick %d: pending = %d, want 1", i, h.frames.Pending())
		}
	}

	if len(h.surface.Frame) != h.engine.Grid().Len() {
		t.Errorf("last frame painted %d dots, want %d", len(h.surface.Frame), h.engine.Grid().Len())
	}
}

func TestEngineStopReleasesEverything(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)
	h.frame()

	h.engine.Stop()

	if h.frames.Pending() != 0 {
		t.Errorf("pending frames after stop = %d", h.frames.Pending())
	}
	if h.container.Subscriptions() != 0 {
		t.Errorf("subscriptions after stop = %d", h.container.Subscriptions())
	}

	tick := h.engine.Tick()
	for i := 0; i < 3; i++ {
		h.frame()
	}
	h.container.EmitResize()
	h.container.EmitMove(10, 10)
	if h.engine.Tick() != tick {
		t.Errorf("ticks ran after stop: %d -> %d", tick, h.engine.Tick())
	}

	// Idempotent
	h.engine.Stop()
}

func TestEngineStopFromSameFrame(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)

	// Queued behind the engine tick in the same frame.
	h.frames.RequestFrame(func(time.Duration) { h.engine.Stop() })
	h.frame()

	if h.engine.Tick() != 1 {
		t.Errorf("tick = %d, want 1", h.engine.Tick())
	}
	if h.frames.Pending() != 0 {
		t.Errorf("stop left %d frames pending", h.frames.Pending())
	}
}

func TestEngineLifecycleBeforeStart(t *testing.T) {
	h := newHarness(t, Options{})

	h.engine.OnResize()
	h.engine.Pause()
	h.engine.Resume()
	h.engine.Stop()

	if h.frames.Pending() != 0 {
		t.Errorf("idle engine scheduled %d frames", h.frames.Pending())
	}
	if h.engine.Grid().Len() != 0 {
		t.Errorf("idle engine built %d particles", h.engine.Grid().Len())
	}

	// Stop before Start does not poison a later Start
	h.start(t)
	if !h.engine.Running() {
		t.Error("engine not running after start")
	}
}

func TestEngineResize(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)

	h.container.Box = Rect{Width: 200, Height: 100}
	h.container.EmitResize()
	if got := h.engine.Grid().Len(); got != 100 {
		t.Errorf("after resize: %d particles, want 100", got)
	}

	// Perturb, then a resize with unchanged bounds rebuilds an identical rest grid
	for i := 0; i < 4; i++ {
		h.frame()
	}
	before := h.engine.Grid()
	h.container.EmitResize()
	after := h.engine.Grid()

	if before == after {
		t.Error("resize did not replace the grid")
	}
	if after.Len() != 100 {
		t.Errorf("second resize: %d particles, want 100", after.Len())
	}
	for i, p := range after.Particles() {
		if p.X != p.OX || p.Y != p.OY || p.VX != 0 || p.VY != 0 {
			t.Fatalf("particle %d not at rest after rebuild: %+v", i, p)
		}
	}

	// Breakpoint follows the viewport, not the container
	h.viewport = 400
	h.engine.OnResize()
	if h.engine.Profile().Class != systems.ClassSmall {
		t.Errorf("profile = %q, want small", h.engine.Profile().Class)
	}
}

func TestEngineResizeEmptyContainer(t *testing.T) {
	h := newHarness(t, Options{})
	h.container.Box = Rect{}
	h.start(t)

	for i := 0; i < 4; i++ {
		h.frame()
	}
	if h.engine.Grid().Len() != 0 {
		t.Errorf("empty container produced %d particles", h.engine.Grid().Len())
	}
	if h.surface.Clears != 2 || h.surface.Fills != 0 {
		t.Errorf("clears/fills = %d/%d, want 2/0", h.surface.Clears, h.surface.Fills)
	}
}

func TestEnginePointerSource(t *testing.T) {
	h := newHarness(t, Options{})
	h.container.Box = Rect{X: 10, Y: 5, Width: 100, Height: 100}
	h.start(t)

	h.frame()
	if h.engine.Source().Kind != systems.SourceDemo {
		t.Errorf("initial source = %v, want demo", h.engine.Source().Kind)
	}

	h.container.EmitMove(60, 30)
	h.frame()
	if h.engine.Source().Kind != systems.SourceManual {
		t.Fatalf("source after move = %v, want manual", h.engine.Source().Kind)
	}
	if tgt := h.engine.Target(); tgt.X != 50 || tgt.Y != 25 {
		t.Errorf("target = %+v, want (50,25)", tgt)
	}

	// Container moved: the offset is read at event time
	h.container.Box.X = 30
	h.container.EmitMove(60, 30)
	h.frame()
	if tgt := h.engine.Target(); tgt.X != 30 {
		t.Errorf("target x = %v, want 30", tgt.X)
	}

	h.container.EmitLeave()
	h.frame()
	src := h.engine.Source()
	if src.Kind != systems.SourceDemo {
		t.Errorf("source after leave = %v, want demo", src.Kind)
	}
	wantMS := float64(h.now) / float64(time.Millisecond)
	if src.ElapsedMS != wantMS {
		t.Errorf("demo elapsed = %v ms, want %v", src.ElapsedMS, wantMS)
	}
}

func TestEnginePauseResume(t *testing.T) {
	h := newHarness(t, Options{})
	h.start(t)
	h.frame() // physics

	h.engine.Pause()
	if !h.engine.Paused() || h.frames.Pending() != 0 {
		t.Fatalf("pause: paused=%v pending=%d", h.engine.Paused(), h.frames.Pending())
	}
	h.frame()
	h.frame()
	if h.engine.Tick() != 1 {
		t.Errorf("ticks while paused: %d", h.engine.Tick())
	}

	// Resize while paused still rebuilds
	h.container.Box = Rect{Width: 50, Height: 100}
	h.container.EmitResize()
	if h.engine.Grid().Len() != 25 {
		t.Errorf("paused resize: %d particles, want 25", h.engine.Grid().Len())
	}

	h.engine.TogglePause()
	if !h.engine.Running() {
		t.Fatal("toggle did not resume")
	}
	h.frame()
	if h.surface.Clears != 1 {
		t.Errorf("resumed tick did not draw: clears = %d", h.surface.Clears)
	}
	if h.engine.Phase() != PhasePhysics {
		t.Errorf("phase after resume = %v, want physics", h.engine.Phase())
	}
}

func TestEngineStatsWindow(t *testing.T) {
	cfg := config.Defaults()
	cfg.Screen.TargetFPS = 1
	cfg.Telemetry.LogInterval = 4

	var got []telemetry.WindowStats
	frames := NewFrameQueue()
	container := &StaticContainer{Box: Rect{Width: 100, Height: 100}}
	engine := NewEngine(cfg, Options{
		Frames:        frames,
		StatsCallback: func(s telemetry.WindowStats) { got = append(got, s) },
	})
	if err := engine.Start(container, &renderer.Recorder{}); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 8; i++ {
		frames.Run(time.Duration(i) * time.Second)
	}

	if len(got) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(got))
	}
	first := got[0]
	if first.PhysicsTicks != 2 || first.DrawTicks != 2 || first.Rebuilds != 1 {
		t.Errorf("first window counters = %+v", first)
	}
	// No viewport query: the container width (100) picks the breakpoint
	if first.Particles != 50 || first.ProfileClass != systems.ClassSmall {
		t.Errorf("first window grid = %d/%q", first.Particles, first.ProfileClass)
	}
	if got[1].Rebuilds != 0 || got[1].WindowEndTick != 8 {
		t.Errorf("second window = %+v", got[1])
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePhysics.String() != "physics" || PhaseDraw.String() != "draw" || Phase(9).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
