package render

import (
	"image/color"
	"math"
	"testing"

	"wolfcast/internal/entity"
	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
)

func addSprite(t *testing.T, store *graphics.SpriteStore, name string, c color.RGBA) *graphics.Sprite {
	t.Helper()
	sp, err := store.Add(graphics.SpriteMeta{Name: name}, solid(8, 8, c))
	if err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	return sp
}

func at(sp *graphics.Sprite, x, y float64) *entity.Entity {
	return entity.New("test", sp, mathutil.Vec3{X: x, Y: y}, mathutil.Vec2{X: 1})
}

func TestProjectSprite(t *testing.T) {
	cam := newCam(1.5, 3.5, 1, 0, 0.66)
	sp := &graphics.Sprite{UScale: 1, VScale: 1, FrameWidth: 8, FrameHeight: 8}

	t.Run("straight ahead", func(t *testing.T) {
		p := ProjectSprite(cam, sp, mathutil.Vec2{X: 3.5, Y: 3.5}, 64, 64)
		if math.Abs(p.TransformY-2) > 1e-9 || math.Abs(p.TransformX) > 1e-9 {
			t.Fatalf("transform = (%v, %v), want (0, 2)", p.TransformX, p.TransformY)
		}
		if p.ScreenX != 32 || p.Width != 32 || p.Height != 32 {
			t.Errorf("screenX %d size %dx%d, want 32 and 32x32", p.ScreenX, p.Width, p.Height)
		}
		if p.DrawStartY != 16 || p.DrawEndY != 48 || p.DrawStartX != 16 || p.DrawEndX != 48 {
			t.Errorf("span x[%d,%d) y[%d,%d)", p.DrawStartX, p.DrawEndX, p.DrawStartY, p.DrawEndY)
		}
		if !p.OnScreen() {
			t.Error("expected sprite on screen")
		}
	})

	t.Run("behind camera", func(t *testing.T) {
		p := ProjectSprite(cam, sp, mathutil.Vec2{X: 0.5, Y: 3.5}, 64, 64)
		if p.TransformY >= 0 || p.OnScreen() {
			t.Errorf("sprite behind the camera projected with depth %v", p.TransformY)
		}
	})

	t.Run("on the camera plane", func(t *testing.T) {
		p := ProjectSprite(cam, sp, mathutil.Vec2{X: 1.5, Y: 3.5}, 64, 64)
		if p.TransformY != minSpriteDepth {
			t.Errorf("depth = %v, want clamp %v", p.TransformY, minSpriteDepth)
		}
		if p.DrawStartY != 0 || p.DrawEndY != 64 {
			t.Errorf("vertical span not clipped: [%d,%d)", p.DrawStartY, p.DrawEndY)
		}
	})

	t.Run("plane side is screen right", func(t *testing.T) {
		right := cam.Position().Add(cam.Dir.Scale(2)).Add(cam.Plane.Normalize())
		p := ProjectSprite(cam, sp, right, 64, 64)
		if p.ScreenX <= 32 {
			t.Errorf("screenX = %d, want right of centre", p.ScreenX)
		}
	})

	t.Run("offsets and scale", func(t *testing.T) {
		moved := *sp
		moved.VMove, moved.UMove = 20, -10
		moved.VScale = 0.5
		p := ProjectSprite(cam, &moved, mathutil.Vec2{X: 3.5, Y: 3.5}, 64, 64)
		if p.Height != 16 || p.Width != 32 {
			t.Errorf("size %dx%d, want 32x16", p.Width, p.Height)
		}
		if p.Top != 32-8+10 || p.Left != 32-16-5 {
			t.Errorf("top-left (%d,%d), want (11,34)", p.Left, p.Top)
		}
	})
}

func TestViewSector(t *testing.T) {
	facing := mathutil.Vec2{X: 1}
	tests := []struct {
		name     string
		toCamera mathutil.Vec2
		want     int
	}{
		{"in front", mathutil.Vec2{X: 1, Y: 0.1}, 4},
		{"left side", mathutil.Vec2{X: 0.1, Y: 1}, 5},
		{"right side", mathutil.Vec2{X: 0.1, Y: -1}, 2},
		{"behind, left", mathutil.Vec2{X: -1, Y: 0.01}, 7},
		{"behind, right", mathutil.Vec2{X: -1, Y: -0.01}, 0},
		{"exactly behind", mathutil.Vec2{X: -1}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ViewSector(facing, tt.toCamera); got != tt.want {
				t.Errorf("ViewSector = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSheetCell(t *testing.T) {
	anim := &graphics.Animation{Name: "walk", Loop: true, Frames: []graphics.Frame{{X: 2, Y: 3, Duration: 1}}}

	t.Run("static", func(t *testing.T) {
		e := at(&graphics.Sprite{}, 3, 3)
		if x, y := SheetCell(e, mathutil.Vec2{}); x != 0 || y != 0 {
			t.Errorf("cell (%d,%d), want (0,0)", x, y)
		}
	})
	t.Run("animated", func(t *testing.T) {
		e := at(&graphics.Sprite{}, 3, 3)
		e.Animation = anim.Clone()
		if x, y := SheetCell(e, mathutil.Vec2{}); x != 2 || y != 3 {
			t.Errorf("cell (%d,%d), want (2,3)", x, y)
		}
	})
	t.Run("rotating uses the view column", func(t *testing.T) {
		e := at(&graphics.Sprite{Rotating: true}, 3, 3)
		e.Animation = anim.Clone()
		// Camera in front of the entity, slightly to its left.
		x, y := SheetCell(e, mathutil.Vec2{X: 5, Y: 3.2})
		if x != 4 || y != 3 {
			t.Errorf("cell (%d,%d), want (4,3)", x, y)
		}
	})
}

func TestSpriteOcclusion(t *testing.T) {
	g := boxGrid(t, 8, 0, 0, [2]int{5, 1}, [2]int{5, 2}, [2]int{5, 3}, [2]int{5, 4}, [2]int{5, 5}, [2]int{5, 6})
	sprites := graphics.NewSpriteStore()
	sp := addSprite(t, sprites, "blob", green)
	cam := newCam(1.5, 3.5, 1, 0, 0.66)

	tests := []struct {
		name string
		x    float64
		want [4]byte
	}{
		{"in front of the wall", 3.5, rgba(green)},
		{"behind the wall", 6.5, rgba(red)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(g, testTextures(t), sprites, Options{Width: 64, Height: 64, Background: bg})
			fb := NewFramebuffer(64, 64)
			r.Render(cam, []*entity.Entity{at(sp, tt.x, 3.5)}, fb)
			if got := fb.PixelAt(32, 32); got != tt.want {
				t.Errorf("centre pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpritesPaintedBackToFront(t *testing.T) {
	g := boxGrid(t, 8, 0, 0)
	sprites := graphics.NewSpriteStore()
	near := addSprite(t, sprites, "near", green)
	far := addSprite(t, sprites, "far", blue)
	cam := newCam(1.5, 3.5, 1, 0, 0.66)

	r := NewRenderer(g, testTextures(t), sprites, Options{Width: 64, Height: 64, Background: bg})
	fb := NewFramebuffer(64, 64)
	orders := [][]*entity.Entity{
		{at(near, 2.5, 3.5), at(far, 3.5, 3.5)},
		{at(far, 3.5, 3.5), at(near, 2.5, 3.5)},
	}
	for i, entities := range orders {
		r.Render(cam, entities, fb)
		if got := fb.PixelAt(32, 32); got != rgba(green) {
			t.Errorf("order %d: centre pixel = %v, want the nearer sprite", i, got)
		}
	}
}

func TestTransparentTexelsShowWall(t *testing.T) {
	g := boxGrid(t, 8, 0, 0)
	sprites := graphics.NewSpriteStore()
	ghost, err := sprites.Add(graphics.SpriteMeta{Name: "ghost"}, solid(8, 8, color.RGBA{}))
	if err != nil {
		t.Fatal(err)
	}
	cam := newCam(1.5, 3.5, 1, 0, 0.66)

	r := NewRenderer(g, testTextures(t), sprites, Options{Width: 64, Height: 64, Background: bg})
	fb := NewFramebuffer(64, 64)
	r.Render(cam, []*entity.Entity{at(ghost, 3.5, 3.5)}, fb)

	if got := fb.PixelAt(32, 32); got != rgba(red) {
		t.Errorf("centre pixel = %v, want the wall behind a transparent sprite", got)
	}
}
