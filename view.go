package mandel

import "math"

// Default view of a fresh session: the whole set, slightly left of origin.
const (
	DefaultCenterReal = -0.5
	DefaultCenterImag = 0.0
	DefaultZoom       = 4.0
)

// ViewState is the visible window into the complex plane.
//
// Zoom is the height of the window in complex units and must stay > 0.
type ViewState struct {
	CenterReal float64
	CenterImag float64
	Zoom       float64
}

// DefaultView returns the view a session starts with.
func DefaultView() ViewState {
	return ViewState{CenterReal: DefaultCenterReal, CenterImag: DefaultCenterImag, Zoom: DefaultZoom}
}

// IsValid reports whether the view has finite coordinates and a finite,
// positive zoom.
func (v ViewState) IsValid() bool {
	return finite(v.CenterReal) && finite(v.CenterImag) && finite(v.Zoom) && v.Zoom > 0
}

// Geometry is the size of the output surface in device pixels.
type Geometry struct {
	Width  int
	Height int
}

// NewGeometry returns a geometry with both dimensions clamped to at least 1.
func NewGeometry(width, height int) Geometry {
	return Geometry{Width: max(width, 1), Height: max(height, 1)}
}

// AspectRatio returns width / height.
func (g Geometry) AspectRatio() float64 {
	return float64(g.Width) / float64(g.Height)
}

// Pixels returns the number of pixels covered by the geometry.
func (g Geometry) Pixels() int {
	return g.Width * g.Height
}

// Normalize maps a device coordinate to [-0.5, 0.5] on both axes, with the
// y axis flipped so that it grows upward.
func (g Geometry) Normalize(px, py float64) (nx, ny float64) {
	return px/float64(g.Width) - 0.5, 0.5 - py/float64(g.Height)
}

// ComplexAt maps a device coordinate (origin top-left, y down) to a point
// of the complex plane. The aspect ratio scales the normalized x term.
func (v ViewState) ComplexAt(g Geometry, px, py float64) complex128 {
	nx, ny := g.Normalize(px, py)
	re := nx*g.AspectRatio()*v.Zoom + v.CenterReal
	im := ny*v.Zoom + v.CenterImag
	return complex(re, im)
}

// PixelCenter returns the complex coordinate sampled for pixel (x, y).
func (v ViewState) PixelCenter(g Geometry, x, y int) complex128 {
	return v.ComplexAt(g, float64(x)+0.5, float64(y)+0.5)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
