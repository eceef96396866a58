package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"wolfcast/internal/threading/monitoring"
)

// GameLoop manages the main update and render cycle
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	fps          *monitoring.FPSCounter
	perf         *perfLogger

	lastUpdate time.Time
	lastDraw   time.Time
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) *GameLoop {
	cfg := game.config
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(),
		fps:          monitoring.NewFPSCounter(cfg.Render.FPSUpdateFrames),
		perf:         newPerfLogger(game.logger.Named("perf"), game.threading.PerformanceMonitor, cfg.Performance.LogInterval.Duration),
	}
}

// Update advances the simulation by the wall-clock time since the last tick.
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.perf.lastUpdate = time.Since(start) }()

	if gl.inputHandler.QuitRequested() {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	if !gl.lastUpdate.IsZero() {
		dt = start.Sub(gl.lastUpdate).Seconds()
	}
	gl.lastUpdate = start

	if gl.inputHandler.ToggleFPS() {
		gl.game.showFPS = !gl.game.showFPS
	}
	if gl.inputHandler.DumpPerf() {
		gl.perf.logSnapshot(gl.fps.FPS(), ebiten.ActualTPS())
	}

	gl.game.scene.Step(dt, gl.inputHandler.Movement())
	gl.perf.maybeLog(start, gl.fps.FPS(), ebiten.ActualTPS())
	return nil
}

// Draw renders the scene through the configured surface.
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	frameTimer := gl.game.threading.PerformanceMonitor.StartFrame()
	defer func() {
		frameTimer.EndFrame()
		gl.perf.lastDraw = time.Since(start)
	}()

	if !gl.lastDraw.IsZero() {
		gl.fps.Tick(start.Sub(gl.lastDraw).Seconds())
	}
	gl.lastDraw = start

	g := gl.game
	cam := g.scene.Camera
	if g.gpu != nil {
		g.gpu.screen = screen
		g.renderer.Render(cam, g.scene.Entities, g.gpu)
	} else {
		g.renderer.Render(cam, g.scene.Entities, g.framebuffer)
		g.frameImg.WritePixels(g.framebuffer.Pix)
		screen.DrawImage(g.frameImg, nil)
	}

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", gl.fps.FPS(), ebiten.ActualTPS()))
	}
}

// Layout keeps the logical screen at the configured resolution; ebiten
// scales it to the window.
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
