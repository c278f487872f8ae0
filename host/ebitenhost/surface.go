package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface paints draw ticks into an off-screen image that the host
// copies to the screen every frame.
type ImageSurface struct {
	img        *ebiten.Image
	background color.RGBA
}

// NewImageSurface allocates a width x height image.
func NewImageSurface(width, height int, background color.RGBA) *ImageSurface {
	s := &ImageSurface{background: background}
	s.Resize(width, height)
	return s
}

// Resize reallocates the image when the size changed.
func (s *ImageSurface) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if s.img != nil {
		if b := s.img.Bounds(); b.Dx() == width && b.Dy() == height {
			return
		}
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(width, height)
	s.img.Fill(s.background)
}

// Image returns the backing image.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Clear fills the image with the background colour.
func (s *ImageSurface) Clear() {
	s.img.Fill(s.background)
}

// FillRect paints one dot.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}
