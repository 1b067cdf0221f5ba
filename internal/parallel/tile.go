// Package parallel runs per-pixel work over host threads.
//
// A frame is divided into 64x64 pixel tiles that are evaluated
// independently. Tiles never overlap, so workers write straight into the
// shared frame buffer without synchronization.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a full tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a full tile in pixels.
	TileHeight = 64
)

// Tile is the half-open pixel rectangle [X0, X1) x [Y0, Y1).
// Edge tiles are smaller when the frame is not evenly divisible.
type Tile struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the tile width in pixels.
func (t Tile) Width() int {
	return t.X1 - t.X0
}

// Height returns the tile height in pixels.
func (t Tile) Height() int {
	return t.Y1 - t.Y0
}

// Pixels returns the number of pixels in the tile.
func (t Tile) Pixels() int {
	return t.Width() * t.Height()
}

// Contains reports whether pixel (x, y) lies inside the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.X0 && x < t.X1 && y >= t.Y0 && y < t.Y1
}

// SplitTiles covers a width x height frame with tiles of tileW x tileH,
// row by row. Tiles at the right and bottom edges are clipped to the frame.
// Empty frames yield no tiles.
func SplitTiles(width, height, tileW, tileH int) []Tile {
	if tileW <= 0 || tileH <= 0 {
		panic("parallel: tile dimensions must be positive")
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	cols := (width + tileW - 1) / tileW
	rows := (height + tileH - 1) / tileH
	tiles := make([]Tile, 0, cols*rows)

	for y := 0; y < height; y += tileH {
		y1 := min(y+tileH, height)
		for x := 0; x < width; x += tileW {
			tiles = append(tiles, Tile{X0: x, Y0: y, X1: min(x+tileW, width), Y1: y1})
		}
	}
	return tiles
}
