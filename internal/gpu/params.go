//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"unsafe"

	"github.com/gogpu/mandel"
)

// escapeParams mirrors the Params uniform in escape.wgsl (80 bytes).
// Field order and padding must match the WGSL uniform layout rules:
// the color vectors start on a 16-byte boundary.
type escapeParams struct {
	ResolutionX   float32
	ResolutionY   float32
	CenterX       float32
	CenterY       float32
	Zoom          float32
	MaxIterations uint32
	_             uint32
	_             uint32
	Color1        [4]float32
	Color2        [4]float32
	Color3        [4]float32
}

// makeEscapeParams converts render parameters for a w x h target.
// The view is narrowed to f32 here, which limits usable zoom depth.
func makeEscapeParams(p mandel.RenderParameters, w, h int) escapeParams {
	return escapeParams{
		ResolutionX:   float32(w),
		ResolutionY:   float32(h),
		CenterX:       float32(p.View.CenterReal),
		CenterY:       float32(p.View.CenterImag),
		Zoom:          float32(p.View.Zoom),
		MaxIterations: uint32(p.MaxIterations), //nolint:gosec // validated to [1, 10000]
		Color1:        colorVec(p.Stops[0]),
		Color2:        colorVec(p.Stops[1]),
		Color3:        colorVec(p.Stops[2]),
	}
}

func colorVec(c mandel.Color) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

func (e *escapeParams) bytes() []byte {
	return structToBytes(unsafe.Pointer(e), unsafe.Sizeof(*e)) //nolint:gosec // safe struct access
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

// unpackPixelsFromGPU expands packed RGBA8 words (R in the low byte) into dst.
func unpackPixelsFromGPU(packed []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		val := binary.LittleEndian.Uint32(packed[i*4:])
		dstIdx := i * 4
		dst[dstIdx+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
		dst[dstIdx+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
		dst[dstIdx+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
		dst[dstIdx+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
	}
}
