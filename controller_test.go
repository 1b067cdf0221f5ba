package mandel

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController()
	p := c.Params()
	if p.View != DefaultView() {
		t.Errorf("View = %+v, want default", p.View)
	}
	if p.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", p.MaxIterations, DefaultMaxIterations)
	}
	if p.Stops != DefaultPalette().Stops {
		t.Errorf("Stops = %+v, want default palette", p.Stops)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
	if !c.ControlsVisible() {
		t.Error("controls hidden at start")
	}
	if c.RenderRequests() != 0 {
		t.Errorf("RenderRequests = %d, want 0", c.RenderRequests())
	}
}

func TestPan(t *testing.T) {
	c := NewController(WithGeometry(200, 100))
	c.Pan(20, 10)
	v := c.View()
	if !near(v.CenterReal, -0.5-20.0/200*4) || !near(v.CenterImag, 10.0/100*4) {
		t.Errorf("after Pan(20, 10) view = %+v, want center (-0.9, 0.4)", v)
	}
}

func TestPanInverse(t *testing.T) {
	deltas := [][2]float64{{13, -7}, {-250, 400}, {0.5, 0.25}}
	for _, d := range deltas {
		c := NewController(WithGeometry(640, 480), WithView(ViewState{CenterReal: 0.2, CenterImag: -0.3, Zoom: 0.05}))
		before := c.View()
		c.Pan(d[0], d[1])
		c.Pan(-d[0], -d[1])
		after := c.View()
		if !near(after.CenterReal, before.CenterReal) || !near(after.CenterImag, before.CenterImag) || after.Zoom != before.Zoom {
			t.Errorf("Pan(%v) then inverse: %+v, want %+v", d, after, before)
		}
	}
}

func TestWheelFactor(t *testing.T) {
	tests := []struct {
		deltaY float64
		want   float64
	}{
		{0, 1},
		{100, 1 / 1.1},
		{-100, 1.1},
		{200, 1 / 1.21},
	}
	for _, tt := range tests {
		if got := WheelFactor(tt.deltaY); !near(got, tt.want) {
			t.Errorf("WheelFactor(%v) = %v, want %v", tt.deltaY, got, tt.want)
		}
	}
}

func TestWheelZoomsAndKeepsCenter(t *testing.T) {
	c := NewController(WithGeometry(300, 300))
	if !c.Wheel(100) {
		t.Fatal("Wheel(100) reported no change")
	}
	v := c.View()
	if !near(v.Zoom, 4/1.1) {
		t.Errorf("zoom = %v, want %v", v.Zoom, 4/1.1)
	}
	if v.CenterReal != DefaultCenterReal || v.CenterImag != DefaultCenterImag {
		t.Errorf("wheel moved the center: %+v", v)
	}
}

func TestZoomByRejectsInvalidFactors(t *testing.T) {
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c := NewController()
		if c.ZoomBy(f) {
			t.Errorf("ZoomBy(%v) = true, want false", f)
		}
		if c.View().Zoom != DefaultZoom {
			t.Errorf("ZoomBy(%v) changed zoom to %v", f, c.View().Zoom)
		}
		if c.RenderRequests() != 0 {
			t.Errorf("ZoomBy(%v) issued a render request", f)
		}
	}
}

func TestZoomUnderflowRejected(t *testing.T) {
	c := NewController(WithView(ViewState{Zoom: math.SmallestNonzeroFloat64}))
	if c.ZoomBy(0.5) {
		t.Error("ZoomBy to zero zoom accepted")
	}
	if c.View().Zoom <= 0 {
		t.Errorf("zoom = %v, want > 0", c.View().Zoom)
	}
}

func TestSetMaxIterationsClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-50, 1},
		{1, 1},
		{750, 750},
		{10000, 10000},
		{20000, 10000},
	}
	for _, tt := range tests {
		c := NewController()
		if got := c.SetMaxIterations(tt.in); got != tt.want {
			t.Errorf("SetMaxIterations(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := c.MaxIterations(); got != tt.want {
			t.Errorf("MaxIterations() after %d = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetColorStop(t *testing.T) {
	c := NewController()
	if err := c.SetColorStopRGB8(1, 255, 0, 128); err != nil {
		t.Fatalf("SetColorStopRGB8 = %v", err)
	}
	if got := c.ColorStops()[1]; got != RGB8(255, 0, 128) {
		t.Errorf("stop 2 = %+v, want %+v", got, RGB8(255, 0, 128))
	}
	if err := c.SetColorStop(3, RGB(0, 0, 0)); err == nil {
		t.Error("SetColorStop(3) = nil error, want range error")
	}
	_ = c.SetColorStop(0, RGB(2, -1, 0.5))
	if got := c.ColorStops()[0]; got != RGB(1, 0, 0.5) {
		t.Errorf("stop 1 = %+v, want components clamped to (1, 0, 0.5)", got)
	}
}

func TestApplyPreset(t *testing.T) {
	c := NewController()
	if err := c.ApplyPreset("Ocean"); err != nil {
		t.Fatalf("ApplyPreset(Ocean) = %v", err)
	}
	ocean, _ := PresetByName("ocean")
	if c.ColorStops() != ocean.Stops {
		t.Errorf("stops = %+v, want ocean %+v", c.ColorStops(), ocean.Stops)
	}
	before := c.RenderRequests()
	if err := c.ApplyPreset("nope"); err == nil {
		t.Error("ApplyPreset(nope) = nil error")
	}
	if c.RenderRequests() != before {
		t.Error("failed ApplyPreset issued a render request")
	}
}

func TestReset(t *testing.T) {
	c := NewController(WithGeometry(100, 100))
	c.Pan(30, 30)
	c.Wheel(500)
	c.SetMaxIterations(42)
	c.Reset()
	if c.View() != DefaultView() {
		t.Errorf("View after Reset = %+v, want default", c.View())
	}
	if c.MaxIterations() != 42 {
		t.Errorf("Reset changed MaxIterations to %d", c.MaxIterations())
	}
}

func TestResizeClampsGeometry(t *testing.T) {
	c := NewController()
	c.Resize(0, 0)
	if g := c.Geometry(); g != (Geometry{1, 1}) {
		t.Errorf("Geometry after Resize(0, 0) = %+v, want 1x1", g)
	}
	c.Resize(1920, 1080)
	if g := c.Geometry(); g != (Geometry{1920, 1080}) {
		t.Errorf("Geometry = %+v, want 1920x1080", g)
	}
}

func TestHideControlsOnInteract(t *testing.T) {
	interactions := map[string]func(c *Controller){
		"wheel":          func(c *Controller) { c.Wheel(100) },
		"set iterations": func(c *Controller) { c.SetMaxIterations(10) },
		"pointer down":   func(c *Controller) { c.PointerDown(MousePointer, 1, 1) },
	}
	for name, fn := range interactions {
		c := NewController()
		fn(c)
		if c.ControlsVisible() {
			t.Errorf("%s: controls visible, want hidden", name)
		}

		keep := NewController(WithHideControlsOnInteract(false))
		fn(keep)
		if !keep.ControlsVisible() {
			t.Errorf("%s with hiding disabled: controls hidden", name)
		}
	}
}

func TestColorChangeKeepsControls(t *testing.T) {
	c := NewController()
	_ = c.SetColorStop(0, RGB(1, 1, 1))
	c.Pan(5, 5)
	if !c.ControlsVisible() {
		t.Error("color change or pan hid the controls")
	}
}

func TestToggleControls(t *testing.T) {
	c := NewController(WithControlsVisible(false))
	c.ToggleControls()
	if !c.ControlsVisible() {
		t.Error("ToggleControls did not show the panel")
	}
	c.Wheel(1)
	c.ShowControls()
	if !c.ControlsVisible() {
		t.Error("ShowControls did not show the panel")
	}
}

func TestRenderHook(t *testing.T) {
	var got []RenderParameters
	c := NewController(
		WithGeometry(64, 64),
		WithRenderHook(func(p RenderParameters) {
			got = append(got, p)
		}),
	)

	c.Pan(1, 0)
	c.Wheel(100)
	c.SetMaxIterations(123)
	c.ZoomBy(-1) // rejected

	if len(got) != 3 {
		t.Fatalf("hook called %d times, want 3", len(got))
	}
	if c.RenderRequests() != 3 {
		t.Errorf("RenderRequests = %d, want 3", c.RenderRequests())
	}
	if got[2].MaxIterations != 123 {
		t.Errorf("last hook params MaxIterations = %d, want 123", got[2].MaxIterations)
	}
	if got[2] != c.Params() {
		t.Error("hook parameters differ from the controller snapshot")
	}
}

func TestRenderHookMayReenter(t *testing.T) {
	var c *Controller
	calls := 0
	c = NewController(WithRenderHook(func(RenderParameters) {
		calls++
		_ = c.Params()
	}))
	c.Pan(1, 1)
	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
}

func TestParamsAlwaysValid(t *testing.T) {
	c := NewController(WithGeometry(320, 240))
	ops := []func(){
		func() { c.Wheel(1e6) },
		func() { c.Wheel(-1e6) },
		func() { c.Pan(1e300, -1e300) },
		func() { c.SetMaxIterations(-1) },
		func() { _ = c.SetColorStop(2, RGB(math.NaN(), 5, -5)) },
		func() { c.Resize(-3, 0) },
	}
	for i, op := range ops {
		op()
		if err := c.Params().Validate(); err != nil {
			t.Errorf("after op %d: %v", i, err)
		}
	}
}
