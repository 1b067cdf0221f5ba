// Package gpu registers the "gpu" device, which evaluates frames with a
// wgpu/hal compute shader.
//
// Import it for its side effect:
//
//	import _ "github.com/gogpu/mandel/gpu" // registers "gpu"
//
//	dev, err := mandel.OpenDevice("gpu")
//	if errors.Is(err, mandel.ErrCapabilityUnavailable) {
//	    // no adapter: report to the user
//	}
//
// Opening the device fails with mandel.ErrCapabilityUnavailable when no
// adapter is present. The "cpu" device is never used in its place.
//
// Build with -tags nogpu to leave the device out entirely.
package gpu
