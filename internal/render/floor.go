package render

import (
	"math"

	"wolfcast/internal/camera"
)

// floorSample maps a world position to its grid cell and texel. Cells wrap
// with the grid masks and texels wrap with texSize-1, so any finite position
// is safe to sample.
func floorSample(wx, wy float64, maskX, maskY, texSize int) (cellX, cellY, texX, texY int) {
	fx, fy := math.Floor(wx), math.Floor(wy)
	cellX = int(fx) & maskX
	cellY = int(fy) & maskY
	texX = int(float64(texSize)*(wx-fx)) & (texSize - 1)
	texY = int(float64(texSize)*(wy-fy)) & (texSize - 1)
	return
}

// drawFloorCeiling fills r.floor scanline by scanline. Each row below the
// horizon is one distance from the camera; the ceiling mirrors it above the
// horizon. Pixels whose cell has no floor or ceiling texture keep the
// background colour.
func (r *Renderer) drawFloorCeiling(cam *camera.Camera) {
	fb := r.floor
	fb.Clear(r.background)

	w, h := fb.Width, fb.Height
	half := h / 2
	texSize := r.textures.Size()
	maskX, maskY := r.grid.MaskX(), r.grid.MaskY()
	pos := cam.Position()

	// Rays through the left and right screen edges.
	left := cam.Dir.Sub(cam.Plane)
	right := cam.Dir.Add(cam.Plane)

	stride := w * 4
	for y := half + 1; y < h; y++ {
		rowDist := 0.5 * float64(h) / float64(y-half)
		stepX := rowDist * (right.X - left.X) / float64(w)
		stepY := rowDist * (right.Y - left.Y) / float64(w)
		wx := pos.X + rowDist*left.X
		wy := pos.Y + rowDist*left.Y

		floorRow := y * stride
		ceilRow := (h - y) * stride
		for x := 0; x < w; x++ {
			cx, cy, tx, ty := floorSample(wx, wy, maskX, maskY, texSize)
			wx += stepX
			wy += stepY

			cell := r.grid.At(cx, cy)
			si := (ty*texSize + tx) * 4
			if cell.Floor > 0 {
				fb.copyPixel(floorRow+x*4, r.textures.Surface(int(cell.Floor)).Pix, si)
			}
			if cell.Ceiling > 0 {
				fb.copyPixel(ceilRow+x*4, r.textures.Surface(int(cell.Ceiling)).Pix, si)
			}
		}
	}
}
