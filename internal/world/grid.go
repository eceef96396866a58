package world

import (
	"fmt"

	"wolfcast/internal/mathutil"
)

// Grid is the immutable tile grid for one run. Cells are stored row-major and
// always addressed as (x, y), with y the row index.
type Grid struct {
	width, height int
	maskX, maskY  int
	cells         []Cell
}

// NewGrid validates rows and builds a Grid. rows[y][x] is the cell at (x, y).
// Both dimensions must be powers of two and every border cell must be a wall.
func NewGrid(rows [][]Cell) (*Grid, error) {
	height := len(rows)
	if height == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRagged, y, len(row), width)
		}
	}
	if !mathutil.IsPowerOfTwo(width) || !mathutil.IsPowerOfTwo(height) {
		return nil, fmt.Errorf("%w: got %dx%d", ErrNotPowerOfTwo, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		maskX:  width - 1,
		maskY:  height - 1,
		cells:  make([]Cell, 0, width*height),
	}
	for _, row := range rows {
		g.cells = append(g.cells, row...)
	}

	for x := 0; x < width; x++ {
		if !g.At(x, 0).Solid() || !g.At(x, height-1).Solid() {
			return nil, fmt.Errorf("%w: column %d", ErrOpenBoundary, x)
		}
	}
	for y := 0; y < height; y++ {
		if !g.At(0, y).Solid() || !g.At(width-1, y).Solid() {
			return nil, fmt.Errorf("%w: row %d", ErrOpenBoundary, y)
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// MaskX and MaskY are the bitmasks used to wrap coordinates into the grid.
func (g *Grid) MaskX() int { return g.maskX }
func (g *Grid) MaskY() int { return g.maskY }

// At returns the cell at (x, y). Out of range coordinates panic; callers
// inside the boundary never leave the grid because the border is solid.
func (g *Grid) At(x, y int) Cell {
	return g.cells[y*g.width+x]
}

// Wrapped returns the cell at (x, y) after masking both coordinates into
// range. Negative coordinates wrap the same way as two's complement.
func (g *Grid) Wrapped(x, y int) Cell {
	return g.cells[(y&g.maskY)*g.width+(x&g.maskX)]
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// IsTileBlocking reports whether the cell blocks movement. Cells outside the
// grid block.
func (g *Grid) IsTileBlocking(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.At(x, y).Solid()
}

// GetWorldBounds returns the grid size in cells.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.width, g.height
}

// MaxTextureIDs returns the largest wall and floor/ceiling ids referenced, so
// loaders can check them against the texture store.
func (g *Grid) MaxTextureIDs() (wall, surface TextureID) {
	for _, c := range g.cells {
		wall = max(wall, c.Wall)
		surface = max(surface, c.Floor, c.Ceiling)
	}
	return wall, surface
}
