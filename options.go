package mandel

// ControllerOption configures a Controller during creation.
//
// Example:
//
//	ctrl := mandel.NewController(
//	    mandel.WithGeometry(1280, 720),
//	    mandel.WithMaxIterations(1000),
//	    mandel.WithRenderHook(func(p mandel.RenderParameters) { dirty = true }),
//	)
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	view           ViewState
	geometry       Geometry
	maxIterations  int
	stops          [3]Color
	hideOnInteract bool
	controlsShown  bool
	onRender       func(RenderParameters)
}

func defaultControllerOptions() controllerOptions {
	return controllerOptions{
		view:           DefaultView(),
		geometry:       NewGeometry(1, 1),
		maxIterations:  DefaultMaxIterations,
		stops:          DefaultPalette().Stops,
		hideOnInteract: true,
		controlsShown:  true,
	}
}

// WithView sets the initial view. An invalid view is ignored.
func WithView(v ViewState) ControllerOption {
	return func(o *controllerOptions) {
		if v.IsValid() {
			o.view = v
		}
	}
}

// WithGeometry sets the initial surface size (clamped to at least 1x1).
func WithGeometry(width, height int) ControllerOption {
	return func(o *controllerOptions) {
		o.geometry = NewGeometry(width, height)
	}
}

// WithMaxIterations sets the initial iteration depth (clamped).
func WithMaxIterations(n int) ControllerOption {
	return func(o *controllerOptions) {
		o.maxIterations = ClampIterations(n)
	}
}

// WithColorStops sets the initial color stops. Components are clamped to [0, 1].
func WithColorStops(stops [3]Color) ControllerOption {
	return func(o *controllerOptions) {
		for i := range stops {
			o.stops[i] = clampColor(stops[i])
		}
	}
}

// WithHideControlsOnInteract selects whether wheel, iteration change,
// pointer down and touch start hide the settings panel. Default: true.
func WithHideControlsOnInteract(hide bool) ControllerOption {
	return func(o *controllerOptions) {
		o.hideOnInteract = hide
	}
}

// WithControlsVisible sets the initial settings panel visibility. Default: true.
func WithControlsVisible(visible bool) ControllerOption {
	return func(o *controllerOptions) {
		o.controlsShown = visible
	}
}

// WithRenderHook registers fn to receive every render request together
// with the parameters of the frame to draw. fn is called without the
// controller lock held, so it may call back into the controller.
func WithRenderHook(fn func(RenderParameters)) ControllerOption {
	return func(o *controllerOptions) {
		o.onRender = fn
	}
}
