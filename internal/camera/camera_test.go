package camera

import (
	"math"
	"testing"

	"wolfcast/internal/collision"
	"wolfcast/internal/mathutil"
)

const eps = 1e-9

func TestNewCameraMatchesClassicPose(t *testing.T) {
	c := New(mathutil.Vec3{X: 6.5, Y: 3.5}, mathutil.Vec2{X: -1}, 0.66)
	if c.Plane.X != 0 || math.Abs(c.Plane.Y-0.66) > eps {
		t.Errorf("plane = %+v, want (0, 0.66)", c.Plane)
	}
	wantFOV := 2 * math.Atan(0.66)
	if math.Abs(c.FOV()-wantFOV) > eps {
		t.Errorf("FOV = %v, want %v", c.FOV(), wantFOV)
	}
	left, right := c.RayDir(0, 800), c.RayDir(800, 800)
	if left != c.Dir.Sub(c.Plane) || right != c.Dir.Add(c.Plane) {
		t.Errorf("edge rays = %+v %+v", left, right)
	}
}

func TestRotationPreservesOrthogonality(t *testing.T) {
	c := New(mathutil.Vec3{X: 2, Y: 2}, mathutil.Vec2{X: 0.6, Y: 0.8}, 0.66)
	planeLen := c.Plane.Length()

	angles := []float64{0.016, -0.033, 0.5, 1.7, -2.9, 0.001}
	for i := 0; i < 5000; i++ {
		c.Rotate(angles[i%len(angles)])
	}
	if d := c.Dir.Dot(c.Plane); math.Abs(d) > 1e-9 {
		t.Errorf("dir.plane = %v, want ~0", d)
	}
	if math.Abs(c.Plane.Length()-planeLen) > 1e-9 {
		t.Errorf("plane length drifted from %v to %v", planeLen, c.Plane.Length())
	}
	if math.Abs(c.Dir.Length()-1) > 1e-9 {
		t.Errorf("dir length = %v", c.Dir.Length())
	}
}

var testPhysics = Physics{Acceleration: 12, MaxSpeed: 4, Drag: 6, RotationSpeed: 2, Radius: 0.25}

func TestUpdateCapsSpeedAndAppliesDrag(t *testing.T) {
	c := New(mathutil.Vec3{X: 8, Y: 8}, mathutil.Vec2{X: 1}, 0.66)
	for i := 0; i < 200; i++ {
		c.Update(1.0/60, Input{Forward: true}, testPhysics, nil)
		if c.Vel.Length() > testPhysics.MaxSpeed+eps {
			t.Fatalf("frame %d: speed %v exceeds cap", i, c.Vel.Length())
		}
	}
	if c.Pos.X <= 8 {
		t.Fatal("camera did not move forward")
	}

	speed := c.Vel.Length()
	c.Update(0.1, Input{}, testPhysics, nil)
	want := speed * math.Exp(-testPhysics.Drag*0.1)
	if math.Abs(c.Vel.Length()-want) > 1e-9 {
		t.Errorf("drag: speed = %v, want %v", c.Vel.Length(), want)
	}
}

func TestUpdateRotationScalesWithTime(t *testing.T) {
	a := New(mathutil.Vec3{}, mathutil.Vec2{X: 1}, 0.66)
	b := New(mathutil.Vec3{}, mathutil.Vec2{X: 1}, 0.66)
	a.Update(0.1, Input{TurnLeft: true}, testPhysics, nil)
	for i := 0; i < 10; i++ {
		b.Update(0.01, Input{TurnLeft: true}, testPhysics, nil)
	}
	if math.Abs(a.Dir.X-b.Dir.X) > 1e-9 || math.Abs(a.Dir.Y-b.Dir.Y) > 1e-9 {
		t.Errorf("rotation is frame-rate dependent: %+v vs %+v", a.Dir, b.Dir)
	}
	if got := math.Atan2(a.Dir.Y, a.Dir.X); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("turned %v rad, want 0.2", got)
	}
}

type wallGrid struct{}

func (wallGrid) IsTileBlocking(x, y int) bool {
	return x <= 0 || y <= 0 || x >= 3 || y >= 3
}
func (wallGrid) GetWorldBounds() (int, int) { return 4, 4 }

func TestUpdateStopsAtWalls(t *testing.T) {
	cs := collision.NewCollisionSystem(wallGrid{})
	c := New(mathutil.Vec3{X: 2, Y: 2}, mathutil.Vec2{X: 1}, 0.66)
	for i := 0; i < 600; i++ {
		c.Update(1.0/60, Input{Forward: true}, testPhysics, cs)
	}
	if c.Pos.X >= 3-testPhysics.Radius+1e-6 {
		t.Errorf("camera entered the wall: x = %v", c.Pos.X)
	}
	if c.Pos.X < 2.5 {
		t.Errorf("camera stopped too early: x = %v", c.Pos.X)
	}
}

type roundBody struct{ pos mathutil.Vec2 }

func (b roundBody) Position() mathutil.Vec2 { return b.pos }
func (b roundBody) Radius() float64 { return 0.5 }
func (b roundBody) Blocks() bool { return true }

func TestUpdateBouncesOffBodies(t *testing.T) {
	cs := collision.NewCollisionSystem(wallGrid{})
	cs.RegisterBody("pillar", roundBody{pos: mathutil.Vec2{X: 2.2, Y: 2}})
	c := New(mathutil.Vec3{X: 2, Y: 2}, mathutil.Vec2{X: 1}, 0.66)
	c.Vel = mathutil.Vec2{X: 1}
	c.Update(0.01, Input{}, testPhysics, cs)
	if c.Vel.X >= 0 {
		t.Errorf("velocity should be reflected, got %+v", c.Vel)
	}
	if c.Pos.X >= 2 {
		t.Errorf("camera should move away, x = %v", c.Pos.X)
	}
}
