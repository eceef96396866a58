package render

import (
	"math"
	"sort"

	"wolfcast/internal/camera"
	"wolfcast/internal/entity"
	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
)

// Depth closer to zero than this is pushed out to it, keeping the sign.
const minSpriteDepth = 1e-6

// SpriteProjection is a billboard mapped into screen space.
type SpriteProjection struct {
	TransformX, TransformY float64 // camera-space offset; TransformY is depth

	ScreenX       int
	Width, Height int
	Left, Top     int // unclipped top-left corner

	DrawStartX, DrawEndX int // clipped, end exclusive
	DrawStartY, DrawEndY int
}

// OnScreen reports whether any part of the billboard lies in front of the
// camera and inside the screen.
func (p SpriteProjection) OnScreen() bool {
	return p.TransformY > 0 && p.DrawEndX > p.DrawStartX && p.DrawEndY > p.DrawStartY
}

// ProjectSprite transforms pos into camera space with the inverse of the
// [plane dir] matrix and sizes the billboard for a screenW x screenH view.
func ProjectSprite(cam *camera.Camera, sp *graphics.Sprite, pos mathutil.Vec2, screenW, screenH int) SpriteProjection {
	rel := pos.Sub(cam.Position())
	dir, plane := cam.Dir, cam.Plane

	invDet := 1 / (plane.X*dir.Y - dir.X*plane.Y)
	tX := invDet * (dir.Y*rel.X - dir.X*rel.Y)
	tY := invDet * (-plane.Y*rel.X + plane.X*rel.Y)
	if math.Abs(tY) < minSpriteDepth {
		tY = math.Copysign(minSpriteDepth, tY)
	}

	w, h := float64(screenW), float64(screenH)
	p := SpriteProjection{TransformX: tX, TransformY: tY}
	p.ScreenX = int(w / 2 * (1 + tX/tY))

	vMove := int(sp.VMove / tY)
	uMove := int(sp.UMove / tY)
	size := math.Abs(h / tY)
	p.Height = int(size * sp.VScale)
	p.Width = int(size * sp.UScale)

	p.Top = screenH/2 - p.Height/2 + vMove
	p.Left = p.ScreenX - p.Width/2 + uMove
	p.DrawStartY = mathutil.IntMax(p.Top, 0)
	p.DrawEndY = mathutil.IntMin(p.Top+p.Height, screenH)
	p.DrawStartX = mathutil.IntMax(p.Left, 0)
	p.DrawEndX = mathutil.IntMin(p.Left+p.Width, screenW)
	return p
}

// ViewSector returns which of the RotationViews angular views of a rotating
// sprite faces the camera. toCamera points from the entity to the camera.
// Sector 0 starts at -pi, directly behind the entity's facing.
func ViewSector(facing, toCamera mathutil.Vec2) int {
	angle := facing.SignedAngle(toCamera)
	sector := int((angle + math.Pi) / (2 * math.Pi / graphics.RotationViews))
	return mathutil.IntClamp(sector, 0, graphics.RotationViews-1)
}

// SheetCell returns the sprite sheet cell to draw for e as seen from the
// camera at camPos.
func SheetCell(e *entity.Entity, camPos mathutil.Vec2) (cellX, cellY int) {
	var frame graphics.Frame
	if e.Animation != nil {
		frame = e.Animation.Current()
	}
	if e.Sprite.Rotating {
		return ViewSector(e.Dir, camPos.Sub(e.Position())), frame.Y
	}
	return frame.X, frame.Y
}

type spriteOrder struct {
	e    *entity.Entity
	dist float64
}

// drawSprites paints entities back to front so nearer billboards overwrite
// farther ones. Each column is tested against the wall depth.
func (r *Renderer) drawSprites(cam *camera.Camera, entities []*entity.Entity, s Surface) {
	camPos := cam.Position()
	order := r.order[:0]
	for _, e := range entities {
		if e == nil || e.Sprite == nil {
			continue
		}
		order = append(order, spriteOrder{e: e, dist: e.Position().Sub(camPos).LengthSquared()})
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].dist > order[j].dist })

	for _, o := range order {
		r.drawSprite(cam, o.e, s)
	}
	for i := range order {
		order[i].e = nil
	}
	r.order = order
}

func (r *Renderer) drawSprite(cam *camera.Camera, e *entity.Entity, s Surface) {
	sp := e.Sprite
	p := ProjectSprite(cam, sp, e.Position(), r.width, r.height)
	if !p.OnScreen() || p.Width <= 0 || p.Height <= 0 {
		return
	}
	sheet := r.sprites.Sheet(sp)
	cellX, cellY := SheetCell(e, cam.Position())
	srcX0 := cellX * sp.FrameWidth
	srcY := cellY * sp.FrameHeight

	for col := p.DrawStartX; col < p.DrawEndX; col++ {
		if !r.depth.Visible(col, p.TransformY) {
			continue
		}
		texX := (col - p.Left) * sp.FrameWidth / p.Width
		if texX < 0 || texX >= sp.FrameWidth {
			continue
		}
		s.BlitColumn(sheet, srcX0+texX, srcY, sp.FrameHeight, col, p.Top, p.Height, AlphaTest)
	}
}
