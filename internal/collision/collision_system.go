package collision

import (
	"math"

	"wolfcast/internal/mathutil"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Body is a round obstacle such as an entity.
type Body interface {
	Position() mathutil.Vec2
	Radius() float64
	Blocks() bool
}

// CollisionSystem resolves player movement against the grid and bodies.
// Positions are in grid units, so one tile is 1.0.
type CollisionSystem struct {
	tileChecker TileChecker
	bodies      map[string]Body
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		bodies:      make(map[string]Body),
	}
}

// RegisterBody adds a body to the collision system
func (cs *CollisionSystem) RegisterBody(id string, body Body) {
	cs.bodies[id] = body
}

// UnregisterBody removes a body from the collision system
func (cs *CollisionSystem) UnregisterBody(id string) {
	delete(cs.bodies, id)
}

// BodyCount returns the number of registered bodies
func (cs *CollisionSystem) BodyCount() int {
	return len(cs.bodies)
}

// Bounce reflects vel when pos lies inside the radius of any blocking body.
// The second result reports whether a reflection happened.
func (cs *CollisionSystem) Bounce(pos, vel mathutil.Vec2) (mathutil.Vec2, bool) {
	for _, body := range cs.bodies {
		if !body.Blocks() {
			continue
		}
		r := body.Radius()
		if pos.Sub(body.Position()).LengthSquared() < r*r {
			return vel.Neg(), true
		}
	}
	return vel, false
}

// Slide probes one radius ahead of the next position along the direction of
// travel. If the probe lands in a blocking tile, the velocity component of
// each axis whose tile index changed is zeroed, so the mover slides along
// walls instead of stopping dead.
func (cs *CollisionSystem) Slide(pos, vel mathutil.Vec2, dt, radius float64) mathutil.Vec2 {
	if vel == (mathutil.Vec2{}) {
		return vel
	}
	probe := pos.Add(vel.Scale(dt)).Add(vel.Normalize().Scale(radius))

	cx, cy := tileOf(pos)
	px, py := tileOf(probe)
	if !cs.tileChecker.IsTileBlocking(px, py) {
		return vel
	}

	changedX, changedY := px != cx, py != cy
	if changedX && changedY {
		// Corner: only cancel the axes that actually run into a wall
		blockX := cs.tileChecker.IsTileBlocking(px, cy)
		blockY := cs.tileChecker.IsTileBlocking(cx, py)
		if blockX || blockY {
			changedX, changedY = blockX, blockY
		}
	}
	if changedX {
		vel.X = 0
	}
	if changedY {
		vel.Y = 0
	}
	return vel
}

// CanOccupy reports whether p is inside the world and not in a blocking tile.
func (cs *CollisionSystem) CanOccupy(p mathutil.Vec2) bool {
	w, h := cs.tileChecker.GetWorldBounds()
	x, y := tileOf(p)
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return !cs.tileChecker.IsTileBlocking(x, y)
}

func tileOf(p mathutil.Vec2) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}
