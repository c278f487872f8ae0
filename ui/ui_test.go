package ui

import (
	"math"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dotfield/telemetry"
)

func TestOverlayRegistryDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayHUD) {
		t.Error("HUD should start enabled")
	}
	if reg.IsEnabled(OverlayControls) || reg.IsEnabled(OverlayStats) {
		t.Error("controls and stats should start hidden")
	}
	if got := reg.Categories(); len(got) != 2 || got[0] != "info" || got[1] != "debug" {
		t.Errorf("categories = %v", got)
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyD)
	if !ok || id != OverlayControls || !on {
		t.Fatalf("D: id=%q on=%v ok=%v", id, on, ok)
	}
	_, on, _ = reg.HandleKeyPress(rl.KeyD)
	if on || reg.IsEnabled(OverlayControls) {
		t.Error("second D press should hide controls")
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key reported a toggle")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "solo", Name: "Solo", Category: "debug", Exclusive: []OverlayID{OverlayHUD}})

	reg.SetEnabled("solo", true)
	if reg.IsEnabled(OverlayHUD) {
		t.Error("exclusive overlay did not disable HUD")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		value float32
		rng   FieldRange
		want  float32
	}{
		{50, PercentRange(), 0.5},
		{-5, PercentRange(), 0},
		{150, PercentRange(), 1},
		{0.25, DefaultRange(), 0.25},
		{1, FieldRange{Min: 1, Max: 1}, 0},
	}
	for _, tt := range tests {
		if got := barRatio(tt.value, tt.rng); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("barRatio(%v, %+v) = %v, want %v", tt.value, tt.rng, got, tt.want)
		}
	}
}

func TestStatsPanelFields(t *testing.T) {
	data := HUDData{
		Phase:  "draw",
		Source: "manual",
		Drag:   0.95,
		Perf: telemetry.PerfStats{
			AvgTickDuration: 800 * time.Microsecond,
			PhasePct:        map[string]float64{telemetry.PhasePhysics: 70},
		},
	}

	fields := map[string]FieldDescriptor{}
	for _, sd := range StatsPanel().Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			t.Errorf("section %q hidden with perf data present", sd.ID)
		}
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	if got := fieldText(fields["phase"], data); got != "draw" {
		t.Errorf("phase = %q", got)
	}
	if got := fieldText(fields["drag"], data); got != "0.950" {
		t.Errorf("drag = %q", got)
	}
	if got := fieldText(fields["avg_tick"], data); got != "800 us" {
		t.Errorf("avg tick = %q", got)
	}
	if got := fields["physics_pct"].Getter(data); got != 70 {
		t.Errorf("physics pct = %v", got)
	}

	// Perf section hides before the first sample
	for _, sd := range StatsPanel().Sections {
		if sd.ID == "perf" && sd.Visible(HUDData{}) {
			t.Error("perf section visible without samples")
		}
	}
}
