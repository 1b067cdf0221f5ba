package mandel

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Frame is the pixel buffer a device renders into.
// Pixels are stored as RGBA8, 4 bytes per pixel, top row first.
type Frame struct {
	width  int
	height int
	data   []uint8
}

// NewFrame creates a frame for the given geometry.
func NewFrame(g Geometry) *Frame {
	g = NewGeometry(g.Width, g.Height)
	return &Frame{
		width:  g.Width,
		height: g.Height,
		data:   make([]uint8, g.Pixels()*4),
	}
}

// Width returns the width of the frame.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the height of the frame.
func (f *Frame) Height() int {
	return f.height
}

// Geometry returns the frame size.
func (f *Frame) Geometry() Geometry {
	return Geometry{Width: f.width, Height: f.height}
}

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int {
	return f.width * 4
}

// Data returns the raw pixel data.
func (f *Frame) Data() []uint8 {
	return f.data
}

// Resize reallocates the buffer if g differs from the current size.
// Pixel contents are undefined afterwards.
func (f *Frame) Resize(g Geometry) {
	g = NewGeometry(g.Width, g.Height)
	if g.Width == f.width && g.Height == f.height {
		return
	}
	n := g.Pixels() * 4
	if cap(f.data) >= n {
		f.data = f.data[:n]
	} else {
		f.data = make([]uint8, n)
	}
	f.width, f.height = g.Width, g.Height
}

// SetPixel stores an opaque color at (x, y). Out-of-bounds writes are ignored.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i], f.data[i+1], f.data[i+2] = c.RGB8()
	f.data[i+3] = 255
}

// RGBAAt returns the stored pixel at (x, y).
func (f *Frame) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	i := (y*f.width + x) * 4
	return color.RGBA{R: f.data[i], G: f.data[i+1], B: f.data[i+2], A: f.data[i+3]}
}

// ToImage copies the frame into an image.RGBA.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// SavePNG writes the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	return png.Encode(out, f.ToImage())
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return f.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

// rgba returns an image.RGBA sharing the frame's pixel buffer.
func (f *Frame) rgba() *image.RGBA {
	return &image.RGBA{
		Pix:    f.data,
		Stride: f.Stride(),
		Rect:   image.Rect(0, 0, f.width, f.height),
	}
}
