package camera

import (
	"math"

	"wolfcast/internal/mathutil"
)

// Camera is the player's pose. Dir is a unit vector; Plane is perpendicular
// to it and its length sets the horizontal field of view (tan(FOV/2)).
type Camera struct {
	Pos   mathutil.Vec3
	Dir   mathutil.Vec2
	Plane mathutil.Vec2
	Vel   mathutil.Vec2
}

// New creates a camera facing dir with a plane of the given length. The
// plane points to the right-hand edge of the screen.
func New(pos mathutil.Vec3, dir mathutil.Vec2, planeLength float64) *Camera {
	dir = dir.Normalize()
	if dir == (mathutil.Vec2{}) {
		dir = mathutil.Vec2{X: -1}
	}
	return &Camera{
		Pos:   pos,
		Dir:   dir,
		Plane: mathutil.Vec2{X: dir.Y, Y: -dir.X}.Scale(planeLength),
	}
}

// Rotate turns the direction and the camera plane by the same exact rotation.
// Positive angles turn left.
func (c *Camera) Rotate(angle float64) {
	c.Dir = c.Dir.Rotate(angle)
	c.Plane = c.Plane.Rotate(angle)
}

// RayDir returns the ray direction through screen column x of width columns.
func (c *Camera) RayDir(x, width int) mathutil.Vec2 {
	cameraX := 2*float64(x)/float64(width) - 1
	return c.Dir.Add(c.Plane.Scale(cameraX))
}

// Position returns the planar position.
func (c *Camera) Position() mathutil.Vec2 {
	return c.Pos.XY()
}

// FOV returns the horizontal field of view in radians.
func (c *Camera) FOV() float64 {
	return 2 * math.Atan2(c.Plane.Length(), c.Dir.Length())
}
