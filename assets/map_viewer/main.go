package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wolfcast/internal/config"
	"wolfcast/internal/graphics"
	"wolfcast/internal/threading/core"
	"wolfcast/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Path string
	Data *world.MapData
	Err  error
}

type viewer struct {
	maps       []mapInfo
	mapIndex   int
	wallColors []color.RGBA // index = wall id - 1
	sidebarTab int
	lastErr    string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()
	ensureRuntimeCWD(*configPath)

	cfg := config.MustLoadConfig(*configPath)

	textures, err := graphics.LoadTextures(cfg.Assets.WallTextures, cfg.GetTextureSize(), core.NewWorkerPool(0), nil)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	maps, err := loadMaps(filepath.Dir(cfg.Assets.Map))
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		maps:       maps,
		wallColors: averageColors(textures),
		sidebarTab: tabInfo,
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("wolfcast map viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.maps) > 0 {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.maps) > 0 {
			v.mapIndex--
			if v.mapIndex < 0 {
				v.mapIndex = len(v.maps) - 1
			}
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Path, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding

	v.drawMapPanel(screen, m, mapAreaX, mapAreaY, mapAreaW, mapAreaH)
	v.drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := m.Data.Grid
	worldW, worldH := grid.Width(), grid.Height()

	tileSize := w / worldW
	if alt := h / worldH; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}

	originX := x + (w-worldW*tileSize)/2
	originY := y + (h-worldH*tileSize)/2

	for ty := 0; ty < worldH; ty++ {
		for tx := 0; tx < worldW; tx++ {
			cellColor := v.cellColor(grid.At(tx, ty))
			drawX := originX + tx*tileSize
			drawY := originY + ty*tileSize
			vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(tileSize), float32(tileSize), cellColor, false)
		}
	}

	drawOverlays(screen, m.Data, originX, originY, tileSize)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%s)", m.Data.Name, filepath.Base(m.Path)), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

func (v *viewer) cellColor(c world.Cell) color.RGBA {
	if !c.Solid() {
		return color.RGBA{35, 35, 45, 255}
	}
	id := int(c.Wall)
	if id <= len(v.wallColors) {
		return v.wallColors[id-1]
	}
	return color.RGBA{255, 0, 255, 255}
}

// drawOverlays marks the player start and every spawn. Positions are in
// cells, so a point maps to originX + pos*tileSize.
func drawOverlays(screen *ebiten.Image, md *world.MapData, originX, originY, tileSize int) {
	ts := float32(tileSize)
	for _, s := range md.Spawns {
		cx := float32(originX) + float32(s.Pos.X)*ts
		cy := float32(originY) + float32(s.Pos.Y)*ts
		size := ts * 0.5
		vector.DrawFilledRect(screen, cx-size/2, cy-size/2, size, size, color.RGBA{230, 80, 80, 255}, false)
		if tileSize >= 12 && s.Template != "" {
			ebitenutil.DebugPrintAt(screen, s.Template[:1], int(cx)-3, int(cy)-8)
		}
	}

	p := md.Player
	px := float32(originX) + float32(p.Pos.X)*ts
	py := float32(originY) + float32(p.Pos.Y)*ts
	vector.DrawFilledCircle(screen, px, py, ts*0.35, color.RGBA{50, 200, 255, 255}, true)
	vector.StrokeLine(screen, px, py, px+float32(p.Dir.X)*ts, py+float32(p.Dir.Y)*ts, 2, color.RGBA{255, 255, 255, 255}, true)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, v.sidebarTab)
	row := y + tabHeight + 12

	if v.sidebarTab == tabLegend {
		for i, c := range v.wallColors {
			drawFilledRect(screen, x+12, row, 12, 12, c)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("wall %d", i+1), x+32, row-2)
			row += 16
		}
		return
	}

	grid := m.Data.Grid
	maxWall, maxSurface := grid.MaxTextureIDs()
	stats := []string{
		fmt.Sprintf("Cells: %dx%d", grid.Width(), grid.Height()),
		fmt.Sprintf("Spawns: %d", len(m.Data.Spawns)),
		fmt.Sprintf("Highest wall id: %d", maxWall),
		fmt.Sprintf("Highest floor/ceiling id: %d", maxSurface),
		fmt.Sprintf("Start: (%.2f, %.2f)", m.Data.Player.Pos.X, m.Data.Player.Pos.Y),
	}
	if err := m.Data.CheckTextures(len(v.wallColors)); err != nil {
		stats = append(stats, "", "Texture check failed:", err.Error())
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Cyan: start  Red: spawns", x+12, row)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Walls (2)", x+tabW+10, y+6)
}

func loadMaps(dir string) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var maps []mapInfo
	for _, p := range paths {
		data, err := world.LoadMap(p)
		maps = append(maps, mapInfo{Path: p, Data: data, Err: err})
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("no maps in %s", dir)
	}
	return maps, nil
}

// averageColors reduces each wall texture to one swatch colour.
func averageColors(store *graphics.TextureStore) []color.RGBA {
	if store == nil {
		return nil
	}
	colors := make([]color.RGBA, store.Len())
	store.Each(func(id int, normal, _ *graphics.Image) {
		var r, g, b, n int
		for i := 0; i+3 < len(normal.Pix); i += 4 {
			r += int(normal.Pix[i])
			g += int(normal.Pix[i+1])
			b += int(normal.Pix[i+2])
			n++
		}
		if n > 0 {
			colors[id-1] = color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
		}
	})
	return colors
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
