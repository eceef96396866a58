package render

import (
	"context"

	"wolfcast/internal/camera"
	"wolfcast/internal/entity"
	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/threading/core"
	"wolfcast/internal/threading/monitoring"
	"wolfcast/internal/world"
)

// Options configures a Renderer.
type Options struct {
	Width, Height   int
	WallHeightScale float64
	Background      [4]byte
	// Workers above one casts wall columns in parallel batches. Drawing
	// always happens on the caller's goroutine.
	Workers int
	Monitor *monitoring.PerformanceMonitor
}

// Renderer produces frames from a camera, the world grid and the entity
// list. It owns the per-frame scratch buffers and is not safe for concurrent
// use.
type Renderer struct {
	width, height int
	wallScale     float64
	background    [4]byte

	grid     *world.Grid
	textures *graphics.TextureStore
	sprites  *graphics.SpriteStore

	depth DepthBuffer
	floor *Framebuffer
	hits  []RayHit
	rays  []mathutil.Vec2
	order []spriteOrder

	pool    *core.WorkerPool
	monitor *monitoring.PerformanceMonitor
}

func NewRenderer(grid *world.Grid, textures *graphics.TextureStore, sprites *graphics.SpriteStore, opts Options) *Renderer {
	if opts.WallHeightScale <= 0 {
		opts.WallHeightScale = 1
	}
	r := &Renderer{
		width:      opts.Width,
		height:     opts.Height,
		wallScale:  opts.WallHeightScale,
		background: opts.Background,
		grid:       grid,
		textures:   textures,
		sprites:    sprites,
		depth:      NewDepthBuffer(opts.Width),
		floor:      NewFramebuffer(opts.Width, opts.Height),
		hits:       make([]RayHit, opts.Width),
		rays:       make([]mathutil.Vec2, opts.Width),
		monitor:    opts.Monitor,
	}
	if opts.Workers > 1 {
		r.pool = core.NewWorkerPool(opts.Workers)
	}
	return r
}

// Size returns the frame dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Depth exposes the wall distance per column of the last frame.
func (r *Renderer) Depth() DepthBuffer {
	return r.depth
}

// Hits exposes the ray results of the last frame.
func (r *Renderer) Hits() []RayHit {
	return r.hits
}

// Render draws one frame onto s: walls are cast first so the depth buffer is
// complete, then the floor/ceiling buffer goes down, wall columns over it,
// and sprites last.
func (r *Renderer) Render(cam *camera.Camera, entities []*entity.Entity, s Surface) {
	rt := r.monitor.StartRaycast()
	r.castWalls(cam)
	rt.EndRaycast()
	r.monitor.ProfiledFunction(monitoring.StageFloor, func() {
		r.drawFloorCeiling(cam)
	})
	s.DrawBackground(r.floor)
	r.drawWalls(s)
	r.monitor.ProfiledFunction(monitoring.StageSpriteRender, func() {
		r.drawSprites(cam, entities, s)
	})
	r.monitor.RecordColumns(r.width)
	r.monitor.UpdateSceneMetrics(len(entities), len(r.order))
}

// Batch sizes for parallel casting; small batches cost more in scheduling
// than the rays they cover.
const (
	minCastBatch = 4
	maxCastBatch = 32
)

func (r *Renderer) castWalls(cam *camera.Camera) {
	if r.pool == nil {
		r.castColumns(cam, 0, r.width)
		return
	}
	batch := mathutil.IntClamp(r.width/r.pool.GetNumWorkers(), minCastBatch, maxCastBatch)
	r.pool.Batches(context.Background(), 0, r.width, batch, func(from, to int) {
		r.castColumns(cam, from, to)
	})
}
