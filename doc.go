// Package mandel renders the Mandelbrot set interactively.
//
// # Overview
//
// mandel is split into two cooperating parts that share one parameter set:
//
//   - [Controller] owns the view (center, zoom), the surface geometry, the
//     iteration depth and the three color stops. It turns wheel, drag and
//     pinch input into view updates and issues a render request after
//     every change.
//   - The escape-time evaluator ([Iterate], [Shade], [Evaluate]) maps one
//     complex-plane coordinate to a final color. It is pure and runs
//     independently for every pixel of the output.
//
// A frame is described completely by [RenderParameters]. Devices receive it
// by value and never keep state between frames.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/mandel"
//	    _ "github.com/gogpu/mandel/gpu" // registers the "gpu" device
//	)
//
//	ctrl := mandel.NewController(mandel.WithGeometry(800, 600))
//	ctrl.Wheel(300) // zoom in three notches
//
//	dev, err := mandel.OpenDevice("gpu")
//	if err != nil {
//	    // errors.Is(err, mandel.ErrCapabilityUnavailable)
//	}
//	r := mandel.NewRenderer(dev)
//	frame, err := r.Render(ctrl.Params())
//	_ = frame.SavePNG("mandel.png")
//
// # Coordinate System
//
// Device coordinates have their origin at the top-left corner with y growing
// downward. Pixel (i, j) is sampled at its center (i+0.5, j+0.5). The
// complex plane has the imaginary axis growing upward, so the y term is
// inverted during mapping:
//
//	nx = px/width - 0.5
//	ny = 0.5 - py/height
//	re = nx * (width/height) * zoom + centerReal
//	im = ny * zoom + centerImag
//
// The aspect ratio scales the normalized x term. Zoom is therefore the
// height of the visible window in complex units, and widening the surface
// reveals more of the plane horizontally without changing vertical framing.
// Pre-scaling the y pixel coordinate instead is a known variant that frames
// non-square surfaces differently and is not implemented.
//
// # Devices
//
// Devices are looked up by name. The root package registers "cpu", which runs
// the evaluator over host threads. Importing [github.com/gogpu/mandel/gpu]
// registers "gpu", a wgpu/hal compute kernel. Opening a device that is not
// registered or cannot find an adapter fails with [ErrCapabilityUnavailable];
// there is no automatic fallback from one device to another.
package mandel
