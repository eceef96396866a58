package scene

import (
	"math"
	"testing"

	"wolfcast/internal/camera"
	"wolfcast/internal/config"
	"wolfcast/internal/entity"
	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/threading"
	"wolfcast/internal/world"
)

const sceneMap = `
layout:
  - "11111111"
  - "1......1"
  - "1......1"
  - "1......1"
  - "1......1"
  - "1......1"
  - "1......1"
  - "11111111"
player: {x: 2.5, y: 3.5, dir: [1, 0]}
`

func newScene(t *testing.T, ents ...*entity.Entity) *Scene {
	t.Helper()
	md, err := world.ParseMap([]byte(sceneMap))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	return New(cfg, md, ents, threading.NewThreadingComponents(cfg), nil)
}

func TestNewPlacesCamera(t *testing.T) {
	s := newScene(t)
	if s.Camera.Pos.X != 2.5 || s.Camera.Pos.Y != 3.5 {
		t.Errorf("camera at %v, want (2.5, 3.5)", s.Camera.Pos)
	}
	if s.Camera.Dir != (mathutil.Vec2{X: 1}) {
		t.Errorf("camera dir %v, want (1, 0)", s.Camera.Dir)
	}
	if got := s.Camera.Plane.Length(); math.Abs(got-0.66) > 1e-12 {
		t.Errorf("plane length %v, want 0.66", got)
	}
}

func TestStepMovesCameraAndTicksEntities(t *testing.T) {
	e := entity.New("torch", &graphics.Sprite{}, mathutil.Vec3{X: 5.5, Y: 5.5}, mathutil.Vec2{X: 1})
	e.Animation = &graphics.Animation{Name: "flicker", Loop: true, Frames: []graphics.Frame{
		{Duration: 0.1, Remaining: 0.1},
		{Duration: 0.1, Remaining: 0.1},
	}}
	s := newScene(t, e)

	for i := 0; i < 10; i++ {
		s.Step(1.0/60, camera.Input{Forward: true})
	}

	if s.Camera.Pos.X <= 2.5 {
		t.Errorf("camera did not move forward: %v", s.Camera.Pos)
	}
	if e.Animation.Index != 1 {
		t.Errorf("animation index %d after 1/6 s, want 1", e.Animation.Index)
	}
}

func TestStepClampsLongFrames(t *testing.T) {
	s := newScene(t)
	s.Step(10, camera.Input{TurnLeft: true})
	want := s.Physics.RotationSpeed * MaxStep

	got := math.Atan2(s.Camera.Dir.Y, s.Camera.Dir.X)
	if math.Abs(math.Abs(got)-want) > 1e-9 {
		t.Errorf("turned %v rad, want %v", got, want)
	}
}

func TestRemove(t *testing.T) {
	a := entity.New("a", &graphics.Sprite{}, mathutil.Vec3{X: 3.5, Y: 3.5}, mathutil.Vec2{X: 1})
	b := entity.New("b", &graphics.Sprite{}, mathutil.Vec3{X: 4.5, Y: 3.5}, mathutil.Vec2{X: 1})
	s := newScene(t, a, b)

	if s.Collision.BodyCount() != 2 {
		t.Fatalf("bodies = %d, want 2", s.Collision.BodyCount())
	}
	if !s.Remove(a.ID) {
		t.Fatal("Remove returned false")
	}
	if len(s.Entities) != 1 || s.Entities[0] != b || s.Collision.BodyCount() != 1 {
		t.Errorf("after Remove: %d entities, %d bodies", len(s.Entities), s.Collision.BodyCount())
	}
	if s.Remove("missing") {
		t.Error("Remove of an unknown id returned true")
	}
}
