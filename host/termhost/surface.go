package termhost

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Dot is the rune painted for a particle.
const Dot = '•'

// CellSurface maps surface pixels onto terminal cells. Every cell covers
// CellW x CellH pixels; the last dot painted into a cell wins.
type CellSurface struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	background tcell.Color
}

// NewCellSurface wraps an initialised screen.
func NewCellSurface(screen tcell.Screen, cellW, cellH float64, background color.RGBA) *CellSurface {
	return &CellSurface{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		background: rgb(background),
	}
}

// Clear blanks the screen.
func (s *CellSurface) Clear() {
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.background))
}

// FillRect paints a dot into the cell containing (x, y).
func (s *CellSurface) FillRect(x, y, _, _ float64, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx := int(x / s.cellW)
	cy := int(y / s.cellH)
	style := tcell.StyleDefault.Foreground(rgb(c)).Background(s.background)
	s.screen.SetContent(cx, cy, Dot, nil, style)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
