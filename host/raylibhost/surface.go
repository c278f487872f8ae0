package raylibhost

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureSurface paints draw ticks into an off-screen render texture. The
// window shows the texture every display frame, so frames that run a physics
// tick still present the last drawn field.
type TextureSurface struct {
	target        rl.RenderTexture2D
	width, height int32
	background    rl.Color
}

// NewTextureSurface allocates a render target. Requires an open window.
func NewTextureSurface(width, height int32, background color.RGBA) *TextureSurface {
	s := &TextureSurface{
		background: rl.NewColor(background.R, background.G, background.B, background.A),
	}
	s.Resize(width, height)
	return s
}

// Resize reallocates the render target when the size changed.
func (s *TextureSurface) Resize(width, height int32) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == s.width && height == s.height {
		return
	}
	if s.width > 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(width, height)
	s.width, s.height = width, height

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(s.background)
	rl.EndTextureMode()
}

// Begin routes subsequent draw calls into the texture.
func (s *TextureSurface) Begin() { rl.BeginTextureMode(s.target) }

// End restores drawing to the window.
func (s *TextureSurface) End() { rl.EndTextureMode() }

// Clear fills the texture with the background colour.
func (s *TextureSurface) Clear() {
	rl.ClearBackground(s.background)
}

// FillRect paints one dot. Coordinates are fractional.
func (s *TextureSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	rl.DrawRectangleRec(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)},
		rl.NewColor(c.R, c.G, c.B, c.A),
	)
}

// Present draws the texture at the window origin.
func (s *TextureSurface) Present() {
	// Render textures are stored bottom-up, so flip vertically
	src := rl.Rectangle{
		X:      0,
		Y:      float32(s.height),
		Width:  float32(s.width),
		Height: -float32(s.height),
	}
	dst := rl.Rectangle{Width: float32(s.width), Height: float32(s.height)}
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload releases the render target.
func (s *TextureSurface) Unload() {
	if s.width > 0 {
		rl.UnloadRenderTexture(s.target)
		s.width, s.height = 0, 0
	}
}
