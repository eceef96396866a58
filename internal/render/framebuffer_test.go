package render

import (
	"image"
	"testing"

	"wolfcast/internal/graphics"
)

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {16, 9}} {
		fb := NewFramebuffer(size[0], size[1])
		fb.Clear(bg)
		for y := 0; y < fb.Height; y++ {
			for x := 0; x < fb.Width; x++ {
				if got := fb.PixelAt(x, y); got != bg {
					t.Fatalf("%dx%d: pixel (%d,%d) = %v, want %v", size[0], size[1], x, y, got, bg)
				}
			}
		}
	}
}

// stripes returns a 1x4 image with rows red, green, blue and a transparent
// texel.
func stripes() *graphics.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 4))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, green)
	img.SetRGBA(0, 2, blue)
	return graphics.FromImage(img)
}

func TestBlitColumn(t *testing.T) {
	src := stripes()

	tests := []struct {
		name       string
		srcY, srcH int
		dstY, dstH int
		mode       BlitMode
		want       map[int][4]byte // row -> colour in column 1
	}{
		{
			name: "stretch",
			srcY: 0, srcH: 2, dstY: 0, dstH: 4, mode: Opaque,
			want: map[int][4]byte{0: rgba(red), 1: rgba(red), 2: rgba(green), 3: rgba(green), 4: bg},
		},
		{
			name: "clipped above",
			srcY: 0, srcH: 3, dstY: -3, dstH: 6, mode: Opaque,
			want: map[int][4]byte{0: rgba(green), 1: rgba(blue), 2: rgba(blue), 3: bg},
		},
		{
			name: "clipped below",
			srcY: 0, srcH: 2, dstY: 6, dstH: 4, mode: Opaque,
			want: map[int][4]byte{5: bg, 6: rgba(red), 7: rgba(red)},
		},
		{
			name: "alpha test skips transparent texels",
			srcY: 2, srcH: 2, dstY: 0, dstH: 2, mode: AlphaTest,
			want: map[int][4]byte{0: rgba(blue), 1: bg},
		},
		{
			name: "opaque copies transparent texels",
			srcY: 3, srcH: 1, dstY: 0, dstH: 1, mode: Opaque,
			want: map[int][4]byte{0: {0, 0, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(3, 8)
			fb.Clear(bg)
			fb.BlitColumn(src, 0, tt.srcY, tt.srcH, 1, tt.dstY, tt.dstH, tt.mode)
			for row, want := range tt.want {
				if got := fb.PixelAt(1, row); got != want {
					t.Errorf("row %d = %v, want %v", row, got, want)
				}
			}
			for y := 0; y < fb.Height; y++ {
				if fb.PixelAt(0, y) != bg || fb.PixelAt(2, y) != bg {
					t.Fatalf("blit leaked outside column 1 at row %d", y)
				}
			}
		})
	}
}

func TestBlitColumnOutOfRangeIsNoop(t *testing.T) {
	src := stripes()
	fb := NewFramebuffer(2, 2)
	fb.Clear(bg)

	fb.BlitColumn(src, 0, 0, 4, -1, 0, 2, Opaque)
	fb.BlitColumn(src, 0, 0, 4, 2, 0, 2, Opaque)
	fb.BlitColumn(src, 5, 0, 4, 0, 0, 2, Opaque)
	fb.BlitColumn(src, 0, 0, 4, 0, 0, 0, Opaque)
	fb.BlitColumn(src, 0, 0, 4, 0, 10, 4, Opaque)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if fb.PixelAt(x, y) != bg {
				t.Fatalf("pixel (%d,%d) was written", x, y)
			}
		}
	}
}

func TestDepthBufferVisible(t *testing.T) {
	d := NewDepthBuffer(3)
	d[1] = 2

	tests := []struct {
		col   int
		depth float64
		want  bool
	}{
		{1, 1.5, true},
		{1, 2, false},
		{1, 3, false},
		{1, -1, false},
		{1, 0, false},
		{0, 1000, true},
	}
	for _, tt := range tests {
		if got := d.Visible(tt.col, tt.depth); got != tt.want {
			t.Errorf("Visible(%d, %v) = %v, want %v", tt.col, tt.depth, got, tt.want)
		}
	}
}
