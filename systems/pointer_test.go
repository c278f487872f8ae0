package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPointerTrackerManualCycle(t *testing.T) {
	var tr PointerTracker

	if tr.State().Manual {
		t.Fatal("tracker starts in manual mode")
	}

	tr.OnMove(150, 90, 100, 40)
	st := tr.State()
	if !st.Manual {
		t.Error("expected manual after move")
	}
	if st.Target != (r2.Vec{X: 50, Y: 50}) {
		t.Errorf("target = %v, want container-local (50,50)", st.Target)
	}

	tr.OnLeaveOrEnd()
	st = tr.State()
	if st.Manual {
		t.Error("expected demo after leave")
	}
	if st.Target != (r2.Vec{X: 50, Y: 50}) {
		t.Errorf("target not retained after leave: %v", st.Target)
	}
}

func TestPointerTrackerAcceptsOffSurface(t *testing.T) {
	var tr PointerTracker
	tr.OnMove(-500, 1e6, 0, 0)
	if got := tr.State().Target; got.X != -500 || got.Y != 1e6 {
		t.Errorf("target = %v", got)
	}
}

func TestTargetSourceSelection(t *testing.T) {
	var tr PointerTracker
	demo := DefaultDemoMotion()

	src := tr.Source(1234)
	if src.Kind != SourceDemo {
		t.Fatalf("kind = %v, want demo", src.Kind)
	}
	if got, want := src.Resolve(demo, 800, 300), demo.Target(1234, 800, 300); got != want {
		t.Errorf("demo resolve = %v, want %v", got, want)
	}

	tr.OnMove(7, 8, 0, 0)
	src = tr.Source(1234)
	if src.Kind != SourceManual {
		t.Fatalf("kind = %v, want manual", src.Kind)
	}
	if got := src.Resolve(demo, 800, 300); got != (r2.Vec{X: 7, Y: 8}) {
		t.Errorf("manual resolve = %v", got)
	}
}

func TestDemoMotionFormula(t *testing.T) {
	demo := DefaultDemoMotion()
	w, h := 1000.0, 500.0

	// At t=0: x = w/2 + w*0.45, y = h/2
	got := demo.Target(0, w, h)
	if math.Abs(got.X-950) > 1e-9 || math.Abs(got.Y-250) > 1e-9 {
		t.Errorf("Target(0) = %v, want (950,250)", got)
	}

	ms := 1234.0
	tt := ms * 0.01
	wantX := w*0.5 + math.Cos(tt*2.1)*math.Cos(tt*0.9)*w*0.45
	wantY := h*0.5 + math.Sin(tt*3.2)*math.Tan(math.Sin(tt*0.8))*h*0.45
	got = demo.Target(ms, w, h)
	if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y-wantY) > 1e-9 {
		t.Errorf("Target(%v) = %v, want (%v,%v)", ms, got, wantX, wantY)
	}
}

func TestDemoMotionStaysFinite(t *testing.T) {
	demo := DefaultDemoMotion()
	for ms := 0.0; ms < 120000; ms += 16.7 {
		p := demo.Target(ms, 1280, 360)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("non-finite target at %vms: %v", ms, p)
		}
	}
}

func TestSourceKindString(t *testing.T) {
	if SourceManual.String() != "manual" || SourceDemo.String() != "demo" {
		t.Error("unexpected source kind names")
	}
}
