package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider bounds for the tunable integrator constants.
const (
	DragMin float32 = 0.80
	DragMax float32 = 1.00
	EaseMin float32 = 0.01
	EaseMax float32 = 1.00
)

// Tuning holds the live-editable integrator constants.
type Tuning struct {
	Drag float64
	Ease float64
}

// ControlActions reports what the user did in the panel this frame.
type ControlActions struct {
	TuningChanged bool
	TogglePause   bool
	Rebuild       bool
}

// ControlsPanel renders the raygui tuning panel with the overlay legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the panel height for the given overlay registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	lineHeight := r.Theme.LineHeight
	rows := int32(len(overlays.All()) + len(overlays.Categories()))
	// title, two labelled sliders, button row, overlay list
	return r.Theme.Padding*3 + lineHeight + 4 + 2*(lineHeight+28) + 34 + rows*lineHeight
}

// Draw renders the panel and applies slider edits to t.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, t *Tuning, paused bool) ControlActions {
	var actions ControlActions

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := float32(c.x + padding)
	y := c.y + padding
	sliderWidth := float32(c.width - padding*2 - 70)

	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += lineHeight + 4

	rl.DrawText(fmt.Sprintf("Drag %.3f", t.Drag), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	drag := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(y), Width: sliderWidth, Height: 16},
		fmt.Sprintf("%.2f", DragMin), fmt.Sprintf("%.2f", DragMax),
		float32(t.Drag), DragMin, DragMax,
	)
	y += 28

	rl.DrawText(fmt.Sprintf("Ease %.3f", t.Ease), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	ease := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(y), Width: sliderWidth, Height: 16},
		fmt.Sprintf("%.2f", EaseMin), fmt.Sprintf("%.2f", EaseMax),
		float32(t.Ease), EaseMin, EaseMax,
	)
	y += 28

	if drag != float32(t.Drag) || ease != float32(t.Ease) {
		t.Drag = float64(drag)
		t.Ease = float64(ease)
		actions.TuningChanged = true
	}

	buttonWidth := float32(c.width-padding*3) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: 24}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonWidth + float32(padding), Y: float32(y), Width: buttonWidth, Height: 24}, "Rebuild") {
		actions.Rebuild = true
	}
	y += 34

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(int32(x), y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
