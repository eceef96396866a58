package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wolfcast/internal/mathutil"
)

// Spawn describes one entity placement read from a map file. Pointer fields
// are optional overrides of the entity template.
type Spawn struct {
	Template        string
	Pos             mathutil.Vec3
	Dir             mathutil.Vec2
	Animation       string
	Collidable      *bool
	CollisionRadius *float64
}

// PlayerStart is the initial camera pose.
type PlayerStart struct {
	Pos mathutil.Vec3
	Dir mathutil.Vec2
}

// MapData contains the loaded map information
type MapData struct {
	Name   string
	Grid   *Grid
	Player PlayerStart
	Spawns []Spawn
}

// DefaultPlayerStart is used when a map has no player block.
var DefaultPlayerStart = PlayerStart{
	Pos: mathutil.Vec3{X: 6.5, Y: 3.5},
	Dir: mathutil.Vec2{X: -1, Y: 0},
}

type mapFile struct {
	Name           string      `yaml:"name"`
	Layout         []string    `yaml:"layout"`
	Walls          [][]int     `yaml:"walls"`
	Floors         [][]int     `yaml:"floors"`
	Ceilings       [][]int     `yaml:"ceilings"`
	DefaultFloor   int         `yaml:"default_floor"`
	DefaultCeiling int         `yaml:"default_ceiling"`
	Player         *playerFile `yaml:"player"`
	Entities       []spawnFile `yaml:"entities"`
}

type playerFile struct {
	X   float64   `yaml:"x"`
	Y   float64   `yaml:"y"`
	Dir []float64 `yaml:"dir"`
}

type spawnFile struct {
	Template        string    `yaml:"template"`
	X               float64   `yaml:"x"`
	Y               float64   `yaml:"y"`
	Z               float64   `yaml:"z"`
	Dir             []float64 `yaml:"dir"`
	Animation       string    `yaml:"animation"`
	Collidable      *bool     `yaml:"collidable"`
	CollisionRadius *float64  `yaml:"collision_radius"`
}

// LoadMap loads a map from the specified file path. The file is YAML; JSON
// maps load as well since JSON is a YAML subset.
func LoadMap(mapPath string) (*MapData, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	md, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	return md, nil
}

// ParseMap decodes and validates map data.
func ParseMap(data []byte) (*MapData, error) {
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	walls := mf.Walls
	if len(mf.Layout) > 0 {
		parsed, err := parseLayout(mf.Layout)
		if err != nil {
			return nil, err
		}
		walls = parsed
	}
	if len(walls) == 0 {
		return nil, ErrEmptyMap
	}

	rows := make([][]Cell, len(walls))
	for y, wallRow := range walls {
		rows[y] = make([]Cell, len(wallRow))
		for x, id := range wallRow {
			if id < 0 {
				return nil, fmt.Errorf("%w: wall id %d at (%d, %d)", ErrBadTextureID, id, x, y)
			}
			rows[y][x] = Cell{
				Wall:    TextureID(id),
				Floor:   TextureID(layerValue(mf.Floors, x, y, mf.DefaultFloor)),
				Ceiling: TextureID(layerValue(mf.Ceilings, x, y, mf.DefaultCeiling)),
			}
		}
	}
	if err := checkLayerShape("floors", mf.Floors, walls); err != nil {
		return nil, err
	}
	if err := checkLayerShape("ceilings", mf.Ceilings, walls); err != nil {
		return nil, err
	}

	grid, err := NewGrid(rows)
	if err != nil {
		return nil, err
	}

	md := &MapData{
		Name:   mf.Name,
		Grid:   grid,
		Player: DefaultPlayerStart,
		Spawns: make([]Spawn, 0, len(mf.Entities)),
	}
	if mf.Player != nil {
		md.Player.Pos = mathutil.Vec3{X: mf.Player.X, Y: mf.Player.Y}
		if dir, ok := vec2(mf.Player.Dir); ok {
			md.Player.Dir = dir.Normalize()
		}
	}
	px, py := int(md.Player.Pos.X), int(md.Player.Pos.Y)
	if grid.IsTileBlocking(px, py) {
		return nil, fmt.Errorf("%w: player at (%.2f, %.2f)", ErrBadSpawn, md.Player.Pos.X, md.Player.Pos.Y)
	}

	for i, sf := range mf.Entities {
		if !grid.InBounds(int(sf.X), int(sf.Y)) || sf.X < 0 || sf.Y < 0 {
			return nil, fmt.Errorf("%w: entity %d (%s) at (%.2f, %.2f)", ErrBadSpawn, i, sf.Template, sf.X, sf.Y)
		}
		spawn := Spawn{
			Template:        sf.Template,
			Pos:             mathutil.Vec3{X: sf.X, Y: sf.Y, Z: sf.Z},
			Dir:             mathutil.Vec2{X: 1, Y: 0},
			Animation:       sf.Animation,
			Collidable:      sf.Collidable,
			CollisionRadius: sf.CollisionRadius,
		}
		if dir, ok := vec2(sf.Dir); ok {
			spawn.Dir = dir.Normalize()
		}
		md.Spawns = append(md.Spawns, spawn)
	}
	return md, nil
}

// CheckTextures verifies every id in the grid resolves against a store of
// wallCount textures. Floors and ceilings sample the same table.
func (md *MapData) CheckTextures(wallCount int) error {
	wall, surface := md.Grid.MaxTextureIDs()
	if int(wall) > wallCount {
		return fmt.Errorf("%w: wall id %d, only %d textures loaded", ErrBadTextureID, wall, wallCount)
	}
	if int(surface) > wallCount {
		return fmt.Errorf("%w: floor/ceiling id %d, only %d textures loaded", ErrBadTextureID, surface, wallCount)
	}
	return nil
}

// parseLayout converts character rows to wall ids: '.' and ' ' are empty,
// '1'-'9' are ids 1-9 and 'a'-'z' continue from 10.
func parseLayout(lines []string) ([][]int, error) {
	rows := make([][]int, len(lines))
	for y, line := range lines {
		rows[y] = make([]int, 0, len(line))
		for x, char := range line {
			var id int
			switch {
			case char == '.' || char == ' ':
				id = 0
			case char >= '1' && char <= '9':
				id = int(char - '0')
			case char >= 'a' && char <= 'z':
				id = int(char-'a') + 10
			default:
				return nil, fmt.Errorf("%w: unexpected layout character %q at (%d, %d)", ErrBadTextureID, char, x, y)
			}
			rows[y] = append(rows[y], id)
		}
	}
	return rows, nil
}

func layerValue(layer [][]int, x, y, fallback int) int {
	if y < len(layer) && x < len(layer[y]) {
		return layer[y][x]
	}
	return fallback
}

func checkLayerShape(name string, layer, walls [][]int) error {
	if len(layer) == 0 {
		return nil
	}
	if len(layer) != len(walls) {
		return fmt.Errorf("%w: %s has %d rows, walls have %d", ErrRagged, name, len(layer), len(walls))
	}
	for y := range layer {
		if len(layer[y]) != len(walls[y]) {
			return fmt.Errorf("%w: %s row %d has %d cells, expected %d", ErrRagged, name, y, len(layer[y]), len(walls[y]))
		}
	}
	return nil
}

func vec2(v []float64) (mathutil.Vec2, bool) {
	if len(v) != 2 || (v[0] == 0 && v[1] == 0) {
		return mathutil.Vec2{}, false
	}
	return mathutil.Vec2{X: v[0], Y: v[1]}, true
}
