// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewer

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/mandel"
)

// Option configures a Viewer.
type Option func(*Viewer)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(v *Viewer) {
		v.title = title
	}
}

// WithWindowSize sets the initial window size in logical pixels.
func WithWindowSize(width, height int) Option {
	return func(v *Viewer) {
		if width > 0 && height > 0 {
			v.winW, v.winH = width, height
		}
	}
}

// WithIterationStep sets how much Up/Down change the iteration depth.
func WithIterationStep(step int) Option {
	return func(v *Viewer) {
		if step > 0 {
			v.iterStep = step
		}
	}
}

// Viewer is an ebiten game that displays a Controller's view.
type Viewer struct {
	ctrl   *mandel.Controller
	shader *ebiten.Shader
	in     *input

	title      string
	winW, winH int
	iterStep   int
	presetIdx  int

	canvas      *ebiten.Image
	lastRequest uint64
	drawn       bool
}

// New compiles the shader and prepares a viewer for ctrl.
func New(ctrl *mandel.Controller, opts ...Option) (*Viewer, error) {
	shader, err := compileShader()
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		ctrl:     ctrl,
		shader:   shader,
		in:       newInput(ctrl),
		title:    "Mandelbrot",
		winW:     1024,
		winH:     768,
		iterStep: 100,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	ebiten.SetWindowTitle(v.title)
	ebiten.SetWindowSize(v.winW, v.winH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	mandel.Logger().Info("viewer starting", "width", v.winW, "height", v.winH)

	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("%w: viewer: %w", mandel.ErrCapabilityUnavailable, err)
	}
	return nil
}

// Update polls input. It implements ebiten.Game.
func (v *Viewer) Update() error {
	if !ebiten.IsFocused() {
		v.in.release()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.handleKeys()
	v.in.poll()
	return nil
}

func (v *Viewer) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.ctrl.SetMaxIterations(v.ctrl.MaxIterations() + v.iterStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.ctrl.SetMaxIterations(v.ctrl.MaxIterations() - v.iterStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.nextPreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		v.ctrl.SetColorStops(mandel.RandomStops(nil))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.ctrl.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		v.ctrl.ToggleControls()
	}
}

func (v *Viewer) nextPreset() {
	presets := mandel.Presets()
	v.presetIdx = (v.presetIdx + 1) % len(presets)
	if err := v.ctrl.ApplyPreset(presets[v.presetIdx].Name); err != nil {
		mandel.Logger().Warn("preset", "err", err)
	}
}

// Draw renders the current view. It implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	p := v.ctrl.Params()
	w, h := p.Geometry.Width, p.Geometry.Height

	if v.canvas == nil || v.canvas.Bounds().Dx() != w || v.canvas.Bounds().Dy() != h {
		if v.canvas != nil {
			v.canvas.Deallocate()
		}
		v.canvas = ebiten.NewImage(w, h)
		v.drawn = false
	}

	if req := v.ctrl.RenderRequests(); !v.drawn || req != v.lastRequest {
		v.canvas.DrawRectShader(w, h, v.shader, &ebiten.DrawRectShaderOptions{
			Uniforms: shaderUniforms(p),
		})
		v.lastRequest = req
		v.drawn = true
	}

	screen.DrawImage(v.canvas, nil)
	if v.ctrl.ControlsVisible() {
		ebitenutil.DebugPrint(screen, overlayText(p, v.ctrl.Gesture(), ebiten.ActualFPS()))
	}
}

// Layout sizes the screen in device pixels and keeps the controller
// geometry in sync. It implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w := max(int(float64(outsideWidth)*scale), 1)
	h := max(int(float64(outsideHeight)*scale), 1)
	if g := v.ctrl.Geometry(); g.Width != w || g.Height != h {
		v.ctrl.Resize(w, h)
	}
	return w, h
}

// overlayText is the settings panel content.
func overlayText(p mandel.RenderParameters, gesture mandel.GestureState, fps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "iterations: %d  [Up/Down]\n", p.MaxIterations)
	fmt.Fprintf(&b, "colors: %s %s %s  [P preset, N random]\n",
		p.Stops[0].Hex(), p.Stops[1].Hex(), p.Stops[2].Hex())
	fmt.Fprintf(&b, "center: %.6g %+.6gi  zoom: %.4g\n",
		p.View.CenterReal, p.View.CenterImag, p.View.Zoom)
	fmt.Fprintf(&b, "%dx%d  %s  %.0f fps\n", p.Geometry.Width, p.Geometry.Height, gesture, fps)
	b.WriteString("R reset  H hide panel  Esc quit")
	return b.String()
}
