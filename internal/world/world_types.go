package world

import "errors"

// TextureID is a 1-indexed texture reference. Zero (or negative for floors
// and ceilings) means nothing is drawn for that cell.
type TextureID int

// Empty marks a walkable cell with no wall.
const Empty TextureID = 0

// Cell holds the three texture ids of one grid square.
type Cell struct {
	Wall    TextureID // Solid when non-zero; blocks rays and movement
	Floor   TextureID // Sampled by the floor pass; <= 0 leaves the background
	Ceiling TextureID // Sampled by the ceiling pass; <= 0 leaves the background
}

// Solid reports whether the cell stops rays and the player.
func (c Cell) Solid() bool {
	return c.Wall != Empty
}

// Map validation errors. The render core relies on these invariants and does
// not re-check them per frame.
var (
	ErrEmptyMap      = errors.New("map has no cells")
	ErrRagged        = errors.New("map rows have inconsistent width")
	ErrNotPowerOfTwo = errors.New("map dimensions must be powers of two")
	ErrOpenBoundary  = errors.New("map boundary is not closed by walls")
	ErrBadTextureID  = errors.New("map references an unknown texture id")
	ErrBadSpawn      = errors.New("spawn point is outside the map or inside a wall")
)
