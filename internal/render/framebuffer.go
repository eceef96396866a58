package render

import (
	"image"

	"wolfcast/internal/graphics"
)

// BlitMode selects how source texels are written.
type BlitMode int

const (
	Opaque    BlitMode = iota // Every texel is copied (walls)
	AlphaTest                 // Texels with zero alpha are skipped (sprites)
)

// Surface is where a frame is composited. The floor/ceiling buffer is laid
// down first, then walls and sprites arrive as one-pixel-wide column blits.
type Surface interface {
	// DrawBackground uploads the finished floor/ceiling buffer. It is called
	// exactly once per frame, before any column blit.
	DrawBackground(fb *Framebuffer)

	// BlitColumn stretches the source strip (srcX, srcY..srcY+srcH) over the
	// destination strip (dstX, dstY..dstY+dstH) with nearest sampling.
	// Destination rows outside the surface are clipped.
	BlitColumn(src *graphics.Image, srcX, srcY, srcH, dstX, dstY, dstH int, mode BlitMode)
}

// Framebuffer is a CPU-side RGBA buffer with no row padding. It is both the
// floor/ceiling target and the software Surface.
type Framebuffer struct {
	Width, Height int
	Pix           []byte
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// Clear fills the whole buffer with one colour.
func (fb *Framebuffer) Clear(c [4]byte) {
	if len(fb.Pix) == 0 {
		return
	}
	copy(fb.Pix, c[:])
	for filled := 4; filled < len(fb.Pix); filled *= 2 {
		copy(fb.Pix[filled:], fb.Pix[:filled])
	}
}

// copyPixel moves one RGBA texel from src[si:] to the buffer at byte offset
// di. This and BlitColumn are the only raw pixel writers.
func (fb *Framebuffer) copyPixel(di int, src []byte, si int) {
	copy(fb.Pix[di:di+4], src[si:si+4])
}

// PixelAt returns the RGBA value at (x, y).
func (fb *Framebuffer) PixelAt(x, y int) [4]byte {
	i := (y*fb.Width + x) * 4
	return [4]byte{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// RGBA wraps the buffer as an *image.RGBA without copying.
func (fb *Framebuffer) RGBA() *image.RGBA {
	return &image.RGBA{Pix: fb.Pix, Stride: fb.Width * 4, Rect: image.Rect(0, 0, fb.Width, fb.Height)}
}

// DrawBackground copies the floor/ceiling buffer into fb.
func (fb *Framebuffer) DrawBackground(src *Framebuffer) {
	if src != fb {
		copy(fb.Pix, src.Pix)
	}
}

// BlitColumn implements Surface.
func (fb *Framebuffer) BlitColumn(src *graphics.Image, srcX, srcY, srcH, dstX, dstY, dstH int, mode BlitMode) {
	if dstH <= 0 || srcH <= 0 || dstX < 0 || dstX >= fb.Width || srcX < 0 || srcX >= src.Width {
		return
	}
	y0 := max(dstY, 0)
	y1 := min(dstY+dstH, fb.Height)
	stride := fb.Width * 4
	di := y0*stride + dstX*4
	for y := y0; y < y1; y, di = y+1, di+stride {
		sy := srcY + (y-dstY)*srcH/dstH
		if sy < 0 || sy >= src.Height {
			continue
		}
		si := src.Offset(srcX, sy)
		if mode == AlphaTest && src.Pix[si+3] == 0 {
			continue
		}
		fb.copyPixel(di, src.Pix, si)
	}
}
