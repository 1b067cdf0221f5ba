package mandel

import "fmt"

// Bounds of the user-configurable iteration depth.
const (
	MinIterations      = 1
	MaxIterationsLimit = 10000

	// DefaultMaxIterations is the depth a session starts with.
	DefaultMaxIterations = 500
)

// ClampIterations restricts n to [MinIterations, MaxIterationsLimit].
func ClampIterations(n int) int {
	return min(max(n, MinIterations), MaxIterationsLimit)
}

// RenderParameters is the complete input to one render pass.
// Devices receive it by value; there is no other hidden state.
type RenderParameters struct {
	View          ViewState
	Geometry      Geometry
	MaxIterations int
	Stops         [3]Color
}

// Validate reports ErrInvalidParameters when p breaks an invariant.
func (p RenderParameters) Validate() error {
	switch {
	case !p.View.IsValid():
		return fmt.Errorf("%w: view %+v", ErrInvalidParameters, p.View)
	case p.Geometry.Width < 1 || p.Geometry.Height < 1:
		return fmt.Errorf("%w: geometry %dx%d", ErrInvalidParameters, p.Geometry.Width, p.Geometry.Height)
	case p.MaxIterations < MinIterations || p.MaxIterations > MaxIterationsLimit:
		return fmt.Errorf("%w: max iterations %d outside [%d, %d]",
			ErrInvalidParameters, p.MaxIterations, MinIterations, MaxIterationsLimit)
	}
	for i, s := range p.Stops {
		if !s.IsValid() {
			return fmt.Errorf("%w: color stop %d %+v", ErrInvalidParameters, i+1, s)
		}
	}
	return nil
}

// PixelColor evaluates pixel (x, y) of the frame described by p.
func (p RenderParameters) PixelColor(x, y int) Color {
	return Evaluate(p.View.PixelCenter(p.Geometry, x, y), p.MaxIterations, p.Stops)
}
