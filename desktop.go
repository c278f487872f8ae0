package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dotfield/game"
	"github.com/pthm-cable/dotfield/host/raylibhost"
	"github.com/pthm-cable/dotfield/ui"
)

const controlsLegend = "[Space] pause  [D] controls  [T] stats  [H] status"

// desktopUI owns the debug overlays of the window host.
type desktopUI struct {
	title    string
	hud      *ui.HUD
	overlays *ui.OverlayRegistry
	controls *ui.ControlsPanel
}

func newDesktopUI(title string) *desktopUI {
	return &desktopUI{
		title:    title,
		hud:      ui.NewHUD(),
		overlays: ui.NewOverlayRegistry(),
		controls: ui.NewControlsPanel(10, 100, 240),
	}
}

func (d *desktopUI) handleKeys(engine *game.Engine) {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if key == rl.KeySpace {
			engine.TogglePause()
			continue
		}
		d.overlays.HandleKeyPress(key)
	}
}

func (d *desktopUI) draw(engine *game.Engine, win *raylibhost.Window) {
	data := d.snapshot(engine)
	screenW, screenH := win.Size()

	if d.overlays.IsEnabled(ui.OverlayHUD) {
		d.hud.Draw(data)
		d.hud.DrawControls(screenH, controlsLegend)
	}
	if d.overlays.IsEnabled(ui.OverlayStats) {
		d.hud.DrawStats(data, screenW, screenH)
	}
	if d.overlays.IsEnabled(ui.OverlayControls) {
		phys := engine.Physics()
		tuning := ui.Tuning{Drag: phys.Drag, Ease: phys.Ease}
		actions := d.controls.Draw(d.overlays, &tuning, engine.Paused())
		if actions.TuningChanged {
			phys.Drag, phys.Ease = tuning.Drag, tuning.Ease
		}
		if actions.TogglePause {
			engine.TogglePause()
		}
		if actions.Rebuild {
			engine.OnResize()
		}
	}
}

func (d *desktopUI) snapshot(engine *game.Engine) ui.HUDData {
	grid := engine.Grid()
	target := engine.Target()
	phys := engine.Physics()
	return ui.HUDData{
		Title:     d.title,
		Tick:      engine.Tick(),
		Phase:     engine.Phase().String(),
		Source:    engine.Source().Kind.String(),
		TargetX:   target.X,
		TargetY:   target.Y,
		Profile:   engine.Profile().Class,
		Cols:      grid.Cols(),
		Rows:      grid.Rows(),
		Particles: grid.Len(),
		Drag:      phys.Drag,
		Ease:      phys.Ease,
		FPS:       rl.GetFPS(),
		Paused:    engine.Paused(),
		Perf:      engine.Perf().Stats(),
	}
}
