package graphics

import (
	"image"

	"golang.org/x/image/draw"
)

// Image is a decoded RGBA pixel buffer. Pix is row-major with a stride of
// Width*4 bytes and no padding, so offsets can be computed without bounds.
type Image struct {
	Width, Height int
	Pix           []byte
}

// NewImage allocates a transparent w x h buffer.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// FromImage copies any image.Image into a tightly packed RGBA buffer.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}
}

// Scaled returns src resampled to w x h with nearest-neighbour filtering.
func Scaled(src image.Image, w, h int) *Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &Image{Width: w, Height: h, Pix: dst.Pix}
}

// Offset returns the byte index of pixel (x, y).
func (img *Image) Offset(x, y int) int {
	return (y*img.Width + x) * 4
}

// Darkened returns a copy with every colour channel halved. Alpha is kept.
func (img *Image) Darkened() *Image {
	dark := &Image{Width: img.Width, Height: img.Height, Pix: make([]byte, len(img.Pix))}
	for i := 0; i < len(img.Pix); i += 4 {
		dark.Pix[i] = img.Pix[i] / 2
		dark.Pix[i+1] = img.Pix[i+1] / 2
		dark.Pix[i+2] = img.Pix[i+2] / 2
		dark.Pix[i+3] = img.Pix[i+3]
	}
	return dark
}

// RGBA wraps the buffer as an *image.RGBA without copying.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{Pix: img.Pix, Stride: img.Width * 4, Rect: image.Rect(0, 0, img.Width, img.Height)}
}
