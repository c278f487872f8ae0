package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dotfield/telemetry"
)

// HUDData holds all the data needed to render the HUD and stats panel.
type HUDData struct {
	Title     string
	Tick      int64
	Phase     string
	Source    string
	TargetX   float64
	TargetY   float64
	Profile   string
	Cols      int
	Rows      int
	Particles int
	Drag      float64
	Ease      float64
	FPS       int32
	Paused    bool
	Perf      telemetry.PerfStats
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	stats    PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		stats:    StatsPanel(),
	}
}

// Draw renders the status lines in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d (%dx%d) | Profile: %s", data.Particles, data.Cols, data.Rows, data.Profile),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Source: %s", data.Tick, data.FPS, data.Source),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawStats renders the descriptor-driven stats panel.
func (h *HUD) DrawStats(data HUDData, screenW, screenH int32) {
	h.renderer.DrawPanelDescriptor(h.stats, data, screenW, screenH)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func hud(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// StatsPanel describes the engine readouts shown in the stats overlay.
func StatsPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "stats",
		Title:  "Field",
		Width:  260,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "engine",
				Title: "Engine",
				Fields: []FieldDescriptor{
					{ID: "phase", Label: "Next phase", Widget: WidgetText,
						TextGetter: func(d any) string { return hud(d).Phase }},
					{ID: "source", Label: "Source", Widget: WidgetText,
						TextGetter: func(d any) string { return hud(d).Source }},
					{ID: "target", Label: "Target", Widget: WidgetText,
						TextGetter: func(d any) string {
							h := hud(d)
							return fmt.Sprintf("%.0f, %.0f", h.TargetX, h.TargetY)
						}},
					{ID: "drag", Label: "Drag", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return float32(hud(d).Drag) }},
					{ID: "ease", Label: "Ease", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return float32(hud(d).Ease) }},
				},
			},
			{
				ID:    "perf",
				Title: "Timing",
				Visible: func(d any) bool {
					return hud(d).Perf.AvgTickDuration > 0
				},
				Fields: []FieldDescriptor{
					{ID: "avg_tick", Label: "Avg tick", Widget: WidgetText, Format: "%.0f us",
						Getter: func(d any) float32 { return float32(hud(d).Perf.AvgTickDuration.Microseconds()) }},
					{ID: "p90_tick", Label: "P90 tick", Widget: WidgetText, Format: "%.0f us",
						Getter: func(d any) float32 { return float32(hud(d).Perf.TickP90US) }},
					{ID: "physics_pct", Label: "Physics %", Widget: WidgetBar, Range: PercentRange(),
						Getter: func(d any) float32 { return float32(hud(d).Perf.PhasePct[telemetry.PhasePhysics]) }},
					{ID: "draw_pct", Label: "Draw %", Widget: WidgetBar, Range: PercentRange(),
						Getter: func(d any) float32 { return float32(hud(d).Perf.PhasePct[telemetry.PhaseDraw]) }},
				},
			},
		},
	}
}
