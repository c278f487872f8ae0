// Package renderer paints the particle grid onto a host drawing surface.
package renderer

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dotfield/components"
	"github.com/pthm-cable/dotfield/systems"
)

// Surface is an addressable 2D raster target.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float64, c color.RGBA)
}

// Shading defaults.
const (
	DefaultBaseGrey    = 220.0
	DefaultSizeFalloff = 0.2
)

// Shade maps a squared distance to a proximity ratio a in [0,1], a grey
// level in [0.5*base, 2.5*base] (unclamped) and a dot size in
// [1-falloff, 1]. A non-positive k treats every particle as far.
func Shade(d, k, base, falloff float64) (a, grey, size float64) {
	if k > 0 {
		a = math.Min(d, k) / k
	}
	if !(k > 0) || math.IsNaN(a) {
		a = 1
	}
	grey = a*(2*base) + 0.5*base
	size = 1 - a*falloff
	return a, grey, size
}

// Grey converts an unclamped grey level to an opaque output colour.
func Grey(level float64) color.RGBA {
	v := uint8(math.Round(math.Max(0, math.Min(255, level))))
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// DotRenderer draws one filled square per particle.
type DotRenderer struct {
	BaseGrey    float64
	SizeFalloff float64
}

// NewDotRenderer creates a renderer with the given shading constants.
func NewDotRenderer(baseGrey, sizeFalloff float64) *DotRenderer {
	return &DotRenderer{BaseGrey: baseGrey, SizeFalloff: sizeFalloff}
}

// Draw clears the surface and paints the grid. It never mutates particles.
func (r *DotRenderer) Draw(s Surface, g *systems.Grid, target r2.Vec, k float64) {
	s.Clear()
	g.ForEach(func(pos *components.Position, _ *components.Velocity, _ *components.Origin) {
		dx := target.X - pos.X
		dy := target.Y - pos.Y
		_, grey, size := Shade(dx*dx+dy*dy, k, r.BaseGrey, r.SizeFalloff)
		s.FillRect(pos.X, pos.Y, size, size, Grey(grey))
	})
}
