package entity

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/world"
)

func testAssets(t *testing.T) (*graphics.SpriteStore, *graphics.AnimationLibrary) {
	t.Helper()
	sprites := graphics.NewSpriteStore()
	if _, err := sprites.Add(graphics.SpriteMeta{Name: "guard", Rotating: true}, image.NewRGBA(image.Rect(0, 0, 64, 56))); err != nil {
		t.Fatal(err)
	}
	if _, err := sprites.Add(graphics.SpriteMeta{Name: "barrel"}, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}
	anims := graphics.NewAnimationLibrary()
	for _, a := range []*graphics.Animation{
		{Name: "walk", Loop: true, Frames: []graphics.Frame{{Y: 1, Duration: 0.2}, {Y: 2, Duration: 0.2}}},
		{Name: "die", Permanent: true, Frames: []graphics.Frame{{Y: 5, Duration: 0.3}, {Y: 6, Duration: 0.3}}},
		{Name: "poof", Frames: []graphics.Frame{{Duration: 0.1}}},
	} {
		if err := anims.Add(a); err != nil {
			t.Fatal(err)
		}
	}
	return sprites, anims
}

var testTemplates = Templates{
	"guard":  {Sprite: "guard", Animation: "walk", DeathAnimation: "die", Collidable: true, CollisionRadius: 0.4},
	"barrel": {Sprite: "barrel", Collidable: true, CollisionRadius: 0.3},
	"ghost":  {Sprite: "ghost"},
	"zombie": {Sprite: "guard", Animation: "shamble"},
}

func TestSpawnSharesSpriteAndClonesAnimation(t *testing.T) {
	sprites, anims := testAssets(t)
	s := NewSpawner(testTemplates, sprites, anims, nil)

	a, err := s.Spawn(world.Spawn{Template: "guard", Pos: mathutil.Vec3{X: 2.5, Y: 3.5}, Dir: mathutil.Vec2{X: 1}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	b, err := s.Spawn(world.Spawn{Template: "guard", Pos: mathutil.Vec3{X: 4.5, Y: 3.5}, Dir: mathutil.Vec2{X: 1}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if a.Sprite != b.Sprite {
		t.Error("entities of one template must share the sprite descriptor")
	}
	if a.Animation == b.Animation {
		t.Error("entities must own separate animation state")
	}
	if a.ID == b.ID || a.ID == "" {
		t.Errorf("ids not unique: %q %q", a.ID, b.ID)
	}
	if !a.Alive || !a.Collidable || a.CollisionRadius != 0.4 {
		t.Errorf("template fields not applied: %+v", a)
	}

	a.Tick(0.25)
	if a.Animation.Index != 1 || b.Animation.Index != 0 {
		t.Errorf("animation state leaked between entities: %d %d", a.Animation.Index, b.Animation.Index)
	}
}

func TestSpawnOverrides(t *testing.T) {
	sprites, anims := testAssets(t)
	s := NewSpawner(testTemplates, sprites, anims, nil)

	off := false
	radius := 0.1
	e, err := s.Spawn(world.Spawn{Template: "barrel", Animation: "poof", Collidable: &off, CollisionRadius: &radius})
	if err != nil {
		t.Fatal(err)
	}
	if e.Collidable || e.CollisionRadius != 0.1 || e.Animation == nil || e.Animation.Name != "poof" {
		t.Errorf("overrides not applied: %+v", e)
	}
}

func TestSpawnLookupFailures(t *testing.T) {
	sprites, anims := testAssets(t)
	s := NewSpawner(testTemplates, sprites, anims, nil)

	tests := []struct {
		name  string
		spawn world.Spawn
		want  error
	}{
		{"unknown template", world.Spawn{Template: "dragon"}, ErrUnknownTemplate},
		{"unknown sprite", world.Spawn{Template: "ghost"}, graphics.ErrUnknownSprite},
		{"unknown template animation", world.Spawn{Template: "zombie"}, graphics.ErrUnknownAnimation},
		{"unknown spawn animation", world.Spawn{Template: "barrel", Animation: "spin"}, graphics.ErrUnknownAnimation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := s.Spawn(tt.spawn)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if e != nil {
				t.Error("failed spawn must not return an entity")
			}
		})
	}

	got := s.SpawnAll([]world.Spawn{{Template: "barrel"}, {Template: "ghost"}, {Template: "guard"}})
	if len(got) != 2 {
		t.Errorf("SpawnAll kept %d entities, want 2", len(got))
	}
}

func TestKillAndRevive(t *testing.T) {
	sprites, anims := testAssets(t)
	s := NewSpawner(testTemplates, sprites, anims, nil)

	guard, _ := s.Spawn(world.Spawn{Template: "guard"})
	s.Kill(guard)
	if guard.Alive || guard.Blocks() {
		t.Error("dead guard must not be alive or block")
	}
	if guard.Animation == nil || guard.Animation.Name != "die" {
		t.Fatalf("death animation not swapped in: %+v", guard.Animation)
	}
	TickAll([]*Entity{guard}, 10)
	TickAll([]*Entity{guard}, 10)
	TickAll([]*Entity{guard}, 10)
	if guard.Animation == nil || guard.Animation.Index != 1 {
		t.Error("permanent death animation should hold its last frame")
	}

	guard.Revive()
	if !guard.Alive || guard.Animation != nil || !guard.Blocks() {
		t.Errorf("revive should restore and clear animation: %+v", guard)
	}

	barrel, _ := s.Spawn(world.Spawn{Template: "barrel"})
	s.Kill(barrel)
	if barrel.Animation != nil {
		t.Error("entity without a death clip should have no animation")
	}
}

func TestOneShotAnimationIsCleared(t *testing.T) {
	sprites, anims := testAssets(t)
	s := NewSpawner(testTemplates, sprites, anims, nil)
	e, _ := s.Spawn(world.Spawn{Template: "barrel", Animation: "poof"})
	e.Tick(0.2)
	if e.Animation != nil {
		t.Error("finished one-shot clip should be cleared")
	}
}

func TestLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.yaml")
	content := "templates:\n  guard:\n    sprite: guard\n    collidable: true\n    collision_radius: 0.4\n  lamp:\n    sprite: lamp\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ts, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if names := ts.Names(); len(names) != 2 || names[0] != "guard" {
		t.Errorf("names = %v", names)
	}
	g, err := ts.Get("guard")
	if err != nil || !g.Collidable || g.CollisionRadius != 0.4 {
		t.Errorf("guard = %+v, %v", g, err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("templates:\n  x: {collidable: true}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplates(bad); err == nil {
		t.Error("template without sprite should fail")
	}
}
