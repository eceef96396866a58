package render

import (
	"image"
	"image/color"
	"testing"

	"wolfcast/internal/camera"
	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/world"
)

const testTex = 8

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	gray  = color.RGBA{90, 90, 90, 255}
	white = color.RGBA{255, 255, 255, 255}
	bg    = [4]byte{1, 2, 3, 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func rgba(c color.RGBA) [4]byte { return [4]byte{c.R, c.G, c.B, c.A} }

// boxGrid builds an n x n room walled with texture 1. Interior cells get the
// given floor and ceiling ids; walls lists extra wall cells as {x, y}.
func boxGrid(t *testing.T, n int, floor, ceiling world.TextureID, walls ...[2]int) *world.Grid {
	t.Helper()
	rows := make([][]world.Cell, n)
	for y := range rows {
		rows[y] = make([]world.Cell, n)
		for x := range rows[y] {
			c := world.Cell{Floor: floor, Ceiling: ceiling}
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				c.Wall = 1
			}
			rows[y][x] = c
		}
	}
	for _, w := range walls {
		rows[w[1]][w[0]].Wall = 1
	}
	g, err := world.NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

// testTextures returns a store where 1 is red, 2 is gray and 3 is white.
func testTextures(t *testing.T) *graphics.TextureStore {
	t.Helper()
	ts, err := graphics.NewTextureStore(testTex)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []color.RGBA{red, gray, white} {
		ts.Add(solid(testTex, testTex, c))
	}
	return ts
}

func newCam(x, y, dx, dy, plane float64) *camera.Camera {
	return camera.New(mathutil.Vec3{X: x, Y: y}, mathutil.Vec2{X: dx, Y: dy}, plane)
}
