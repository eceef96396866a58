package render

import (
	"math"

	"wolfcast/internal/camera"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/world"
)

const (
	// Stand-in for an infinite delta when a ray component is zero.
	infDelta = 1e30
	// Perpendicular distances are clamped to this so line heights stay finite.
	minPerpDist = 1e-6
)

// Side is the grid boundary a ray crossed last.
type Side int

const (
	SideX Side = iota // crossed a vertical grid line
	SideY             // crossed a horizontal grid line
)

// RayHit describes where one column's ray stopped.
type RayHit struct {
	Distance   float64 // perpendicular distance to the camera plane
	Side       Side
	MapX, MapY int
	WallID     world.TextureID
	WallX      float64 // fractional hit position along the wall face, [0,1)
	Steps      int     // cells stepped before the hit
}

// CastRay walks the grid from pos along ray with DDA until it enters a solid
// cell. The map border is closed so the walk always terminates; the step
// limit only guards a grid that skipped validation.
func CastRay(g *world.Grid, pos, ray mathutil.Vec2) RayHit {
	mapX, mapY := int(math.Floor(pos.X)), int(math.Floor(pos.Y))

	deltaX, deltaY := infDelta, infDelta
	if ray.X != 0 {
		deltaX = math.Abs(1 / ray.X)
	}
	if ray.Y != 0 {
		deltaY = math.Abs(1 / ray.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if ray.X < 0 {
		stepX = -1
		sideX = (pos.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - pos.X) * deltaX
	}
	if ray.Y < 0 {
		stepY = -1
		sideY = (pos.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - pos.Y) * deltaY
	}

	hit := RayHit{}
	limit := g.Width() + g.Height()
	for hit.Steps < limit {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			hit.Side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			hit.Side = SideY
		}
		hit.Steps++
		if !g.InBounds(mapX, mapY) {
			break
		}
		if g.At(mapX, mapY).Solid() {
			hit.WallID = g.At(mapX, mapY).Wall
			break
		}
	}
	hit.MapX, hit.MapY = mapX, mapY

	var dist float64
	if hit.Side == SideX {
		dist = (float64(mapX) - pos.X + float64(1-stepX)/2) / ray.X
	} else {
		dist = (float64(mapY) - pos.Y + float64(1-stepY)/2) / ray.Y
	}
	hit.Distance = math.Max(dist, minPerpDist)

	var along float64
	if hit.Side == SideX {
		along = pos.Y + hit.Distance*ray.Y
	} else {
		along = pos.X + hit.Distance*ray.X
	}
	hit.WallX = along - math.Floor(along)
	return hit
}

// TexColumn picks the texture column for a hit, mirrored so textures read the
// same way on opposite faces.
func TexColumn(hit RayHit, ray mathutil.Vec2, texSize int) int {
	texX := int(hit.WallX * float64(texSize))
	if (hit.Side == SideX && ray.X > 0) || (hit.Side == SideY && ray.Y < 0) {
		texX = texSize - texX - 1
	}
	return mathutil.IntClamp(texX, 0, texSize-1)
}

// WallSlice is the on-screen span of one wall column and the texture rows
// that feed it.
type WallSlice struct {
	LineHeight         int
	DrawStart, DrawEnd int // clipped screen rows, end exclusive
	SrcY, SrcH         int
}

// ProjectWall sizes a wall column. When the wall is taller than the screen
// only the visible middle of the texture is sampled.
func ProjectWall(dist, scale float64, screenH, texSize int) WallSlice {
	lh := int(scale * float64(screenH) / dist)
	s := WallSlice{
		LineHeight: lh,
		DrawStart:  mathutil.IntMax(screenH/2-lh/2, 0),
		DrawEnd:    mathutil.IntMin(screenH/2-lh/2+lh, screenH),
		SrcH:       texSize,
	}
	if lh > screenH {
		texDrawn := int(float64(screenH) / float64(lh) * float64(texSize))
		offset := texSize - texDrawn
		s.SrcY += offset / 2
		s.SrcH -= offset
		if s.SrcH < 1 {
			s.SrcH = 1
			s.SrcY = texSize / 2
		}
	}
	return s
}

// castColumns fills hits and the depth buffer for columns [from, to).
func (r *Renderer) castColumns(cam *camera.Camera, from, to int) {
	pos := cam.Position()
	for x := from; x < to; x++ {
		ray := cam.RayDir(x, r.width)
		hit := CastRay(r.grid, pos, ray)
		r.rays[x] = ray
		r.hits[x] = hit
		r.depth[x] = hit.Distance
	}
}

// drawWalls blits one textured column per screen column.
func (r *Renderer) drawWalls(s Surface) {
	texSize := r.textures.Size()
	for x, hit := range r.hits {
		if hit.WallID <= 0 {
			continue
		}
		slice := ProjectWall(hit.Distance, r.wallScale, r.height, texSize)
		if slice.DrawEnd <= slice.DrawStart {
			continue
		}
		tex := r.textures.Wall(int(hit.WallID), hit.Side == SideY)
		texX := TexColumn(hit, r.rays[x], texSize)
		s.BlitColumn(tex, texX, slice.SrcY, slice.SrcH, x, slice.DrawStart, slice.DrawEnd-slice.DrawStart, Opaque)
	}
}
