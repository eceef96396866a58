package game

import (
	"go.uber.org/zap"

	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/assets"
	"wolfcast/internal/config"
	"wolfcast/internal/logging"
	"wolfcast/internal/render"
	"wolfcast/internal/scene"
	"wolfcast/internal/threading"
)

// Game is the ebiten frontend: it feeds key state into the scene on Update
// and renders the scene on Draw.
type Game struct {
	config    *config.Config
	logger    *zap.Logger
	scene     *scene.Scene
	renderer  *render.Renderer
	threading *threading.ThreadingComponents

	// Software backend: the frame is built on the CPU and uploaded once.
	framebuffer *render.Framebuffer
	frameImg    *ebiten.Image

	// GPU backend: columns are drawn straight onto the screen.
	gpu *gpuSurface

	showFPS  bool
	gameLoop *GameLoop
}

// New builds the scene, the renderer and the selected surface from loaded
// assets. It must run after ebiten can create images, i.e. in main before
// RunGame or inside the game loop.
func New(cfg *config.Config, b *assets.Bundle, logger *zap.Logger) *Game {
	logger = logging.OrNop(logger)
	tc := threading.NewThreadingComponents(cfg)
	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()

	g := &Game{
		config:    cfg,
		logger:    logger.Named("game"),
		scene:     scene.New(cfg, b.Map, b.Entities, tc, logger),
		threading: tc,
		showFPS:   cfg.Render.ShowFPS,
	}
	g.renderer = render.NewRenderer(b.Map.Grid, b.Textures, b.Sprites, render.Options{
		Width:           w,
		Height:          h,
		WallHeightScale: cfg.Render.WallHeightScale,
		Background:      cfg.Render.Background,
		Workers:         cfg.Render.Workers,
		Monitor:         tc.PerformanceMonitor,
	})

	if cfg.UseGPU() {
		g.gpu = newGPUSurface(w, h, b.Textures, b.Sprites)
	} else {
		g.framebuffer = render.NewFramebuffer(w, h)
		g.frameImg = ebiten.NewImage(w, h)
	}
	g.gameLoop = NewGameLoop(g)

	g.logger.Info("renderer ready",
		zap.String("backend", cfg.Render.Backend),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("workers", cfg.Render.Workers))
	return g
}

func (g *Game) Update() error {
	return g.gameLoop.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// Shutdown flushes the final performance snapshot.
func (g *Game) Shutdown() {
	g.gameLoop.perf.logSnapshot(ebiten.ActualFPS(), ebiten.ActualTPS())
	g.threading.Shutdown()
}
