package mathutil

import "math"

// Vec2 is a planar vector in grid units.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world position. Z is reserved for height and currently unused
// by the projection.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }
func (v Vec3) WithXY(p Vec2) Vec3 { return Vec3{p.X, p.Y, v.Z} }

// Normalize returns the unit vector along v, or the zero vector when v has
// no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate applies an exact rotation matrix. Repeated calls accumulate only
// floating point rounding, never length drift from small-angle shortcuts.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// SignedAngle returns the angle in (-pi, pi] that rotates v onto o.
func (v Vec2) SignedAngle(o Vec2) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}
