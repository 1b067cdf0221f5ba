package mandel

import (
	"fmt"
	"time"

	"golang.org/x/image/draw"
)

// MaxSupersample bounds the per-axis supersampling factor.
const MaxSupersample = 4

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSupersample renders at n times the requested size per axis and
// filters the result down. Values are clamped to [1, MaxSupersample].
func WithSupersample(n int) RendererOption {
	return func(r *Renderer) {
		r.supersample = min(max(n, 1), MaxSupersample)
	}
}

// WithScaler selects the filter used to downscale supersampled frames.
// The default is draw.CatmullRom.
func WithScaler(s draw.Scaler) RendererOption {
	return func(r *Renderer) {
		if s != nil {
			r.scaler = s
		}
	}
}

// Renderer turns RenderParameters into frames on one device.
//
// Renderer is not safe for concurrent use. The returned frame is owned by
// the Renderer and is overwritten by the next Render call.
type Renderer struct {
	dev         Device
	supersample int
	scaler      draw.Scaler

	work *Frame // device output, supersampled size
	out  *Frame // downscaled output, nil when supersample is 1
}

// NewRenderer creates a renderer drawing with dev.
func NewRenderer(dev Device, opts ...RendererOption) *Renderer {
	r := &Renderer{
		dev:         dev,
		supersample: 1,
		scaler:      draw.CatmullRom,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() Device { return r.dev }

// Supersample returns the per-axis supersampling factor.
func (r *Renderer) Supersample() int { return r.supersample }

// Render evaluates p and returns the frame. Invalid parameters are
// rejected with ErrInvalidParameters before reaching the device.
func (r *Renderer) Render(p RenderParameters) (*Frame, error) {
	if r.dev == nil {
		return nil, fmt.Errorf("%w: renderer has no device", ErrCapabilityUnavailable)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	dp := p
	dp.Geometry = Geometry{
		Width:  p.Geometry.Width * r.supersample,
		Height: p.Geometry.Height * r.supersample,
	}
	if r.work == nil {
		r.work = NewFrame(dp.Geometry)
	} else {
		r.work.Resize(dp.Geometry)
	}

	if err := r.dev.Render(dp, r.work); err != nil {
		return nil, fmt.Errorf("mandel: render on %s: %w", r.dev.Name(), err)
	}

	result := r.work
	if r.supersample > 1 {
		if r.out == nil {
			r.out = NewFrame(p.Geometry)
		} else {
			r.out.Resize(p.Geometry)
		}
		dst := r.out.rgba()
		r.scaler.Scale(dst, dst.Rect, r.work.rgba(), r.work.Bounds(), draw.Src, nil)
		result = r.out
	}

	Logger().Debug("frame rendered",
		"device", r.dev.Name(),
		"width", p.Geometry.Width, "height", p.Geometry.Height,
		"supersample", r.supersample,
		"elapsed", time.Since(start))
	return result, nil
}
