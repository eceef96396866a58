package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/graphics"
	"wolfcast/internal/render"
	"wolfcast/internal/threading/rendering"
)

// gpuSurface draws columns directly onto the ebiten screen. Every texture
// and sprite sheet is uploaded once; column views are cached per sheet.
type gpuSurface struct {
	screen *ebiten.Image
	width  int
	height int

	floor   *ebiten.Image
	sheets  []*ebiten.Image
	ids     map[*graphics.Image]int
	columns *rendering.ColumnCache[*ebiten.Image]
}

func newGPUSurface(w, h int, textures *graphics.TextureStore, sprites *graphics.SpriteStore) *gpuSurface {
	gs := &gpuSurface{
		width:   w,
		height:  h,
		floor:   ebiten.NewImage(w, h),
		ids:     make(map[*graphics.Image]int),
		columns: rendering.NewColumnCache[*ebiten.Image](),
	}
	textures.Each(func(_ int, normal, dark *graphics.Image) {
		gs.upload(normal)
		gs.upload(dark)
	})
	sprites.EachSheet(func(_ *graphics.Sprite, sheet *graphics.Image) {
		gs.upload(sheet)
	})
	return gs
}

func (gs *gpuSurface) upload(img *graphics.Image) {
	if img == nil {
		return
	}
	if _, ok := gs.ids[img]; ok {
		return
	}
	eimg := ebiten.NewImage(img.Width, img.Height)
	eimg.WritePixels(img.Pix)
	gs.ids[img] = len(gs.sheets)
	gs.sheets = append(gs.sheets, eimg)
}

func (gs *gpuSurface) DrawBackground(fb *render.Framebuffer) {
	gs.floor.WritePixels(fb.Pix)
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendCopy
	gs.screen.DrawImage(gs.floor, op)
}

func (gs *gpuSurface) BlitColumn(src *graphics.Image, srcX, srcY, srcH, dstX, dstY, dstH int, mode render.BlitMode) {
	if dstX < 0 || dstX >= gs.width || srcX < 0 || srcX >= src.Width {
		return
	}
	id, ok := gs.ids[src]
	if !ok {
		return
	}
	s0, s1, top, ok := columnSpan(srcY, srcH, dstY, dstH, gs.height)
	if !ok {
		return
	}

	sheet := gs.sheets[id]
	column := gs.columns.GetOrCreate(rendering.ColumnKey{Sheet: id, X: srcX}, func() *ebiten.Image {
		return sheet.SubImage(image.Rect(srcX, 0, srcX+1, src.Height)).(*ebiten.Image)
	})
	strip := column.SubImage(image.Rect(srcX, s0, srcX+1, s1)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, float64(dstH)/float64(srcH))
	op.GeoM.Translate(float64(dstX), top)
	if mode == render.Opaque {
		op.Blend = ebiten.BlendCopy
	}
	gs.screen.DrawImage(strip, op)
}

// columnSpan clips a destination strip to the screen and returns the source
// rows [s0, s1) still visible plus the screen row where s0 lands. Drawing
// only those rows keeps vertex coordinates small when a wall fills the view.
func columnSpan(srcY, srcH, dstY, dstH, screenH int) (s0, s1 int, top float64, ok bool) {
	if srcH <= 0 || dstH <= 0 {
		return 0, 0, 0, false
	}
	y0 := max(dstY, 0)
	y1 := min(dstY+dstH, screenH)
	if y0 >= y1 {
		return 0, 0, 0, false
	}

	s0 = srcY + (y0-dstY)*srcH/dstH
	s1 = srcY + ((y1-dstY)*srcH+dstH-1)/dstH
	if s1 > srcY+srcH {
		s1 = srcY + srcH
	}
	if s1 <= s0 {
		s1 = s0 + 1
	}
	top = float64(dstY) + float64(s0-srcY)*float64(dstH)/float64(srcH)
	return s0, s1, top, true
}
