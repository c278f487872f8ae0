package renderer

import "image/color"

// Rect is one recorded fill command.
type Rect struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// Recorder is a Surface that keeps the commands of the last frame.
// Headless runs use it in place of a window.
type Recorder struct {
	Clears int // total Clear calls
	Fills  int // total FillRect calls

	// Frame holds the fills issued since the last Clear when Keep is set.
	Keep  bool
	Frame []Rect
}

// Clear starts a new frame.
func (r *Recorder) Clear() {
	r.Clears++
	r.Frame = r.Frame[:0]
}

// FillRect records a fill.
func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Fills++
	if r.Keep {
		r.Frame = append(r.Frame, Rect{X: x, Y: y, W: w, H: h, Color: c})
	}
}
