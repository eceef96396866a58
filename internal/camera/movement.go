package camera

import (
	"math"

	"wolfcast/internal/collision"
	"wolfcast/internal/mathutil"
)

// Input is the per-frame snapshot of held movement keys.
type Input struct {
	Forward, Backward       bool
	TurnLeft, TurnRight     bool
	StrafeLeft, StrafeRight bool
}

// Any reports whether any movement key is held.
func (in Input) Any() bool {
	return in.Forward || in.Backward || in.TurnLeft || in.TurnRight || in.StrafeLeft || in.StrafeRight
}

// Physics holds the movement tuning values.
type Physics struct {
	Acceleration  float64 // units/s^2 while a move key is held
	MaxSpeed      float64 // units/s
	Drag          float64 // exponential decay rate, 1/s
	RotationSpeed float64 // rad/s
	Radius        float64 // wall probe distance
}

// Update advances the camera by dt seconds: rotation, acceleration with a
// speed cap, drag, collision response and finally integration. cs may be nil
// for free flight.
func (c *Camera) Update(dt float64, in Input, p Physics, cs *collision.CollisionSystem) {
	turn := 0.0
	if in.TurnLeft {
		turn++
	}
	if in.TurnRight {
		turn--
	}
	if turn != 0 {
		c.Rotate(turn * p.RotationSpeed * dt)
	}

	var accel mathutil.Vec2
	if in.Forward {
		accel = accel.Add(c.Dir)
	}
	if in.Backward {
		accel = accel.Sub(c.Dir)
	}
	right := c.Plane.Normalize()
	if in.StrafeRight {
		accel = accel.Add(right)
	}
	if in.StrafeLeft {
		accel = accel.Sub(right)
	}
	if accel != (mathutil.Vec2{}) {
		c.Vel = c.Vel.Add(accel.Normalize().Scale(p.Acceleration * dt))
		if speed := c.Vel.Length(); speed > p.MaxSpeed {
			c.Vel = c.Vel.Scale(p.MaxSpeed / speed)
		}
	}

	c.Vel = c.Vel.Scale(math.Exp(-p.Drag * dt))

	pos := c.Position()
	if cs != nil {
		c.Vel, _ = cs.Bounce(pos, c.Vel)
		c.Vel = cs.Slide(pos, c.Vel, dt, p.Radius)
	}
	c.Pos = c.Pos.WithXY(pos.Add(c.Vel.Scale(dt)))
}
