package mandel

import (
	"fmt"
	"math"
	"sync"
)

// Wheel zoom constants: factor = WheelBase ^ (-deltaY * WheelScale).
const (
	WheelBase  = 1.1
	WheelScale = 0.01
)

// Controller owns the session state: view, geometry, iteration depth,
// color stops, gesture state and settings panel visibility.
//
// Every mutating call issues a render request: the request counter is
// incremented and the render hook, if any, receives the new parameters.
//
// Thread safety: Controller is safe for concurrent use. One mutex guards
// all state so that view reads and writes have a single writer.
type Controller struct {
	mu sync.Mutex

	view          ViewState
	geometry      Geometry
	maxIterations int
	stops         [3]Color

	gesture gestureMachine

	hideOnInteract bool
	controlsShown  bool

	onRender func(RenderParameters)
	requests uint64
}

// NewController creates a controller with the default view
// (center -0.5+0i, zoom 4) unless options say otherwise.
func NewController(opts ...ControllerOption) *Controller {
	o := defaultControllerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		view:           o.view,
		geometry:       o.geometry,
		maxIterations:  o.maxIterations,
		stops:          o.stops,
		hideOnInteract: o.hideOnInteract,
		controlsShown:  o.controlsShown,
		onRender:       o.onRender,
	}
}

// Params returns an immutable snapshot of the current frame parameters.
func (c *Controller) Params() RenderParameters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramsLocked()
}

func (c *Controller) paramsLocked() RenderParameters {
	return RenderParameters{
		View:          c.view,
		Geometry:      c.geometry,
		MaxIterations: c.maxIterations,
		Stops:         c.stops,
	}
}

// View returns the current view.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Geometry returns the current surface size.
func (c *Controller) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry
}

// MaxIterations returns the current iteration depth.
func (c *Controller) MaxIterations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxIterations
}

// ColorStops returns the current color stops.
func (c *Controller) ColorStops() [3]Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stops
}

// Gesture returns the current gesture state.
func (c *Controller) Gesture() GestureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture.state
}

// RenderRequests returns how many render requests have been issued.
func (c *Controller) RenderRequests() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests
}

// ControlsVisible reports whether the settings panel is shown.
func (c *Controller) ControlsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlsShown
}

// ShowControls shows the settings panel.
func (c *Controller) ShowControls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controlsShown = true
}

// ToggleControls flips the settings panel visibility.
func (c *Controller) ToggleControls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controlsShown = !c.controlsShown
}

// Resize updates the surface size. Dimensions below 1 are clamped to 1.
func (c *Controller) Resize(width, height int) {
	c.mutate(func() bool {
		c.geometry = NewGeometry(width, height)
		return true
	})
}

// Pan moves the view by a device-pixel delta. Dragging right moves the
// view left; dragging down moves it up, because device y grows downward.
func (c *Controller) Pan(dx, dy float64) {
	c.mutate(func() bool {
		return c.panLocked(dx, dy)
	})
}

func (c *Controller) panLocked(dx, dy float64) bool {
	v := c.view
	v.CenterReal -= dx / float64(c.geometry.Width) * v.Zoom
	v.CenterImag += dy / float64(c.geometry.Height) * v.Zoom
	if !v.IsValid() {
		return false
	}
	c.view = v
	return true
}

// ZoomBy multiplies the zoom by factor. Factors that are not finite and
// positive, or that would make the zoom leave (0, +Inf), are rejected and
// ZoomBy returns false without issuing a render request.
func (c *Controller) ZoomBy(factor float64) bool {
	return c.mutate(func() bool {
		if !finite(factor) || factor <= 0 {
			return false
		}
		return c.setZoomLocked(c.view.Zoom * factor)
	})
}

// Wheel zooms by a wheel delta in browser units (about 100 per notch,
// positive when scrolling down). Scrolling down zooms in.
// It hides the settings panel when that policy is enabled.
func (c *Controller) Wheel(deltaY float64) bool {
	return c.mutate(func() bool {
		c.interactLocked()
		factor := WheelFactor(deltaY)
		if !finite(factor) || factor <= 0 {
			return false
		}
		return c.setZoomLocked(c.view.Zoom * factor)
	})
}

// WheelFactor returns the zoom factor for a wheel delta.
func WheelFactor(deltaY float64) float64 {
	return math.Pow(WheelBase, -deltaY*WheelScale)
}

func (c *Controller) setZoomLocked(zoom float64) bool {
	if !finite(zoom) || zoom <= 0 {
		return false
	}
	c.view.Zoom = zoom
	return true
}

// SetMaxIterations sets the iteration depth, clamped to
// [MinIterations, MaxIterationsLimit]. It returns the value applied.
func (c *Controller) SetMaxIterations(n int) int {
	applied := ClampIterations(n)
	c.mutate(func() bool {
		c.interactLocked()
		c.maxIterations = applied
		return true
	})
	return applied
}

// SetColorStop replaces stop i (0, 1 or 2). Components are clamped to [0, 1].
func (c *Controller) SetColorStop(i int, col Color) error {
	if i < 0 || i > 2 {
		return fmt.Errorf("mandel: color stop index %d out of range [0, 2]", i)
	}
	col = clampColor(col)
	c.mutate(func() bool {
		c.stops[i] = col
		return true
	})
	return nil
}

// SetColorStopRGB8 replaces stop i with an 8-bit color from a UI picker.
func (c *Controller) SetColorStopRGB8(i int, r, g, b uint8) error {
	return c.SetColorStop(i, RGB8(r, g, b))
}

// SetColorStops replaces all three stops at once.
func (c *Controller) SetColorStops(stops [3]Color) {
	for i := range stops {
		stops[i] = clampColor(stops[i])
	}
	c.mutate(func() bool {
		c.stops = stops
		return true
	})
}

// ApplyPreset resolves a named preset and installs its stops.
func (c *Controller) ApplyPreset(name string) error {
	p, err := PresetByName(name)
	if err != nil {
		return err
	}
	c.SetColorStops(p.Stops)
	return nil
}

// Reset restores the default view. Geometry, depth and colors are kept.
func (c *Controller) Reset() {
	c.mutate(func() bool {
		c.view = DefaultView()
		return true
	})
}

// PointerDown registers a new contact. The mouse or a single touch starts a
// drag, a second touch cancels the drag and starts a pinch. It hides the settings panel when
// that policy is enabled.
func (c *Controller) PointerDown(id int, x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interactLocked()
	c.gesture.down(id, x, y, c.view.Zoom)
}

// PointerMove updates a contact position and pans or zooms according to
// the gesture state.
func (c *Controller) PointerMove(id int, x, y float64) {
	c.mutate(func() bool {
		a := c.gesture.move(id, x, y)
		switch a.kind {
		case actionPan:
			return c.panLocked(a.dx, a.dy)
		case actionPinch:
			// ratio 2 halves the zoom: spreading contacts zooms in.
			return c.setZoomLocked(a.baseline / a.ratio)
		}
		return false
	})
}

// PointerUp removes a contact. Dropping below two contacts ends a pinch;
// a remaining contact does not resume dragging until pressed again.
func (c *Controller) PointerUp(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gesture.up(id, c.view.Zoom)
}

// PointerCancel is PointerUp for interrupted contacts (touch cancel,
// pointer leaving the surface).
func (c *Controller) PointerCancel(id int) {
	c.PointerUp(id)
}

// CancelGestures drops every tracked contact and returns to idle.
func (c *Controller) CancelGestures() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gesture.reset()
}

func (c *Controller) interactLocked() {
	if c.hideOnInteract {
		c.controlsShown = false
	}
}

// mutate runs fn under the lock and, if fn reports a change, issues a
// render request. The hook runs after the lock is released.
func (c *Controller) mutate(fn func() bool) bool {
	c.mu.Lock()
	changed := fn()
	var (
		hook   func(RenderParameters)
		params RenderParameters
	)
	if changed {
		c.requests++
		hook = c.onRender
		params = c.paramsLocked()
	}
	c.mu.Unlock()

	if hook != nil {
		hook(params)
	}
	return changed
}

func clampColor(c Color) Color {
	return Color{R: clampUnit(c.R), G: clampUnit(c.G), B: clampUnit(c.B)}
}

func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
