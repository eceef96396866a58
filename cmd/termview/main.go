// Command termview renders the scene into a terminal with half-block cells,
// two framebuffer rows per character.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"wolfcast/internal/assets"
	"wolfcast/internal/config"
	"wolfcast/internal/render"
	"wolfcast/internal/scene"
	"wolfcast/internal/threading"
	"wolfcast/internal/threading/monitoring"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml or toml config file")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(*logPath, cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := assets.Load(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}

	tc := threading.NewThreadingComponents(cfg)
	v := &termView{
		cfg:    cfg,
		bundle: bundle,
		screen: screen,
		scene:  scene.New(cfg, bundle.Map, bundle.Entities, tc, logger),
		tc:     tc,
		fps:    monitoring.NewFPSCounter(cfg.Render.FPSUpdateFrames),
		logger: logger.Named("termview"),
	}
	v.run()
	screen.Fini()

	for _, a := range tc.CheckPerformanceAlerts() {
		v.logger.Warn(a.Message, zap.String("alert", a.Type), zap.Float64("value", a.Value))
	}
	v.logger.Info("session stats", zap.Any("stats", tc.GetDetailedPerformanceStats()))
	tc.Shutdown()
}

func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

type termView struct {
	cfg    *config.Config
	bundle *assets.Bundle
	screen tcell.Screen
	scene  *scene.Scene
	tc     *threading.ThreadingComponents
	fps    *monitoring.FPSCounter
	logger *zap.Logger

	renderer *render.Renderer
	fb       *render.Framebuffer
	keys     heldKeys
}

// resize rebuilds the renderer for a terminal of cols x rows cells.
func (v *termView) resize(cols, rows int) {
	w, h := cols, rows*2
	if w < 1 || h < 2 {
		return
	}
	v.renderer = render.NewRenderer(v.bundle.Map.Grid, v.bundle.Textures, v.bundle.Sprites, render.Options{
		Width:           w,
		Height:          h,
		WallHeightScale: v.cfg.Render.WallHeightScale,
		Background:      v.cfg.Render.Background,
		Workers:         v.cfg.Render.Workers,
		Monitor:         v.tc.PerformanceMonitor,
	})
	v.fb = render.NewFramebuffer(w, h)
	v.logger.Debug("resized", zap.Int("width", w), zap.Int("height", h))
}

func (v *termView) run() {
	v.resize(v.screen.Size())

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.Display.TPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			v.frame(dt)
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (v *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'x' {
			return false
		}
		if a, ok := actionForKey(ev.Key(), ev.Rune()); ok {
			v.keys.press(a)
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize(v.screen.Size())
	}
	return true
}

func (v *termView) frame(dt float64) {
	if v.renderer == nil {
		return
	}
	in := v.keys.input()
	v.keys.decay(dt)
	v.scene.Step(dt, in)

	frameTimer := v.tc.PerformanceMonitor.StartFrame()
	v.renderer.Render(v.scene.Camera, v.scene.Entities, v.fb)
	frameTimer.EndFrame()
	v.fps.Tick(dt)

	v.blit()
	v.drawText(0, 0, fmt.Sprintf("%.0f fps  wasd/arrows move  z/c strafe  x quit", v.fps.FPS()))
	v.screen.Show()
}

// blit draws the framebuffer with one '▀' per cell: foreground is the upper
// pixel, background the lower one.
func (v *termView) blit() {
	cols, rows := v.fb.Width, v.fb.Height/2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top, bottom := halfBlock(v.fb, x, y)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}
}

func (v *termView) drawText(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// halfBlock returns the two framebuffer pixels behind terminal cell (x, y).
func halfBlock(fb *render.Framebuffer, x, y int) (top, bottom [4]byte) {
	return fb.PixelAt(x, 2*y), fb.PixelAt(x, 2*y+1)
}

func rgb(c [4]byte) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}
