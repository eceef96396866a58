package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"wolfcast/internal/mathutil"
)

// Config holds all renderer and runtime configuration values
type Config struct {
	Display     DisplayConfig     `yaml:"display" toml:"display"`
	Render      RenderConfig      `yaml:"render" toml:"render"`
	Movement    MovementConfig    `yaml:"movement" toml:"movement"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera"`
	Assets      AssetsConfig      `yaml:"assets" toml:"assets"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width" toml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height" toml:"screen_height"`
	WindowTitle  string `yaml:"window_title" toml:"window_title"`
	Resizable    bool   `yaml:"resizable" toml:"resizable"`
	TPS          int    `yaml:"tps" toml:"tps"`
}

type RenderConfig struct {
	TextureSize     int     `yaml:"texture_size" toml:"texture_size"`
	WallHeightScale float64 `yaml:"wall_height_scale" toml:"wall_height_scale"`
	Background      [4]byte `yaml:"background" toml:"background"`
	Backend         string  `yaml:"backend" toml:"backend"` // "software" or "gpu"
	Workers         int     `yaml:"workers" toml:"workers"`
	ShowFPS         bool    `yaml:"show_fps" toml:"show_fps"`
	FPSUpdateFrames int     `yaml:"fps_update_frames" toml:"fps_update_frames"`
}

type MovementConfig struct {
	Acceleration    float64 `yaml:"acceleration" toml:"acceleration"`
	MaxSpeed        float64 `yaml:"max_speed" toml:"max_speed"`
	Drag            float64 `yaml:"drag" toml:"drag"`
	RotationSpeed   float64 `yaml:"rotation_speed" toml:"rotation_speed"`
	CollisionRadius float64 `yaml:"collision_radius" toml:"collision_radius"`
}

type CameraConfig struct {
	PlaneLength float64 `yaml:"plane_length" toml:"plane_length"` // tan(FOV/2); 0.66 is roughly 66 degrees
}

type AssetsConfig struct {
	Map          string `yaml:"map" toml:"map"`
	WallTextures string `yaml:"wall_textures" toml:"wall_textures"`
	Sprites      string `yaml:"sprites" toml:"sprites"`
	Animations   string `yaml:"animations" toml:"animations"`
	Entities     string `yaml:"entities" toml:"entities"`
}

type LoggingConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

type PerformanceConfig struct {
	LogInterval     Duration `yaml:"log_interval" toml:"log_interval"`
	LowFPSThreshold float64  `yaml:"low_fps_threshold" toml:"low_fps_threshold"`
	MemoryAlertMB   float64  `yaml:"memory_alert_mb" toml:"memory_alert_mb"`
}

// Backend names accepted by render.backend.
const (
	BackendSoftware = "software"
	BackendGPU      = "gpu"
)

var ErrInvalidConfig = errors.New("invalid config")

// Duration decodes "250ms" style strings from both yaml and toml.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// LoadConfig loads the configuration from a .yaml/.yml or .toml file
func LoadConfig(filename string) (*Config, error) {
	var config Config

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		md, err := toml.DecodeFile(filename, &config)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
		}
	default:
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = 800
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = 600
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "wolfcast"
	}
	if c.Display.TPS == 0 {
		c.Display.TPS = 60
	}
	if c.Render.TextureSize == 0 {
		c.Render.TextureSize = 64
	}
	if c.Render.WallHeightScale == 0 {
		c.Render.WallHeightScale = 1.0
	}
	if c.Render.Background == ([4]byte{}) {
		c.Render.Background = [4]byte{128, 128, 128, 255}
	}
	if c.Render.Backend == "" {
		c.Render.Backend = BackendSoftware
	}
	if c.Render.Workers == 0 {
		c.Render.Workers = 1
	}
	if c.Render.FPSUpdateFrames == 0 {
		c.Render.FPSUpdateFrames = 30
	}
	if c.Movement.Acceleration == 0 {
		c.Movement.Acceleration = 12
	}
	if c.Movement.MaxSpeed == 0 {
		c.Movement.MaxSpeed = 4
	}
	if c.Movement.Drag == 0 {
		c.Movement.Drag = 6
	}
	if c.Movement.RotationSpeed == 0 {
		c.Movement.RotationSpeed = 2
	}
	if c.Movement.CollisionRadius == 0 {
		c.Movement.CollisionRadius = 0.25
	}
	if c.Camera.PlaneLength == 0 {
		c.Camera.PlaneLength = 0.66
	}
	if c.Assets.Map == "" {
		c.Assets.Map = "assets/maps/demo.yaml"
	}
	if c.Assets.WallTextures == "" {
		c.Assets.WallTextures = "assets/textures/walls"
	}
	if c.Assets.Sprites == "" {
		c.Assets.Sprites = "assets/sprites"
	}
	if c.Assets.Animations == "" {
		c.Assets.Animations = "assets/animations"
	}
	if c.Assets.Entities == "" {
		c.Assets.Entities = "assets/entities.yaml"
	}
	if c.Performance.LogInterval.Duration == 0 {
		c.Performance.LogInterval.Duration = 5 * time.Second
	}
	if c.Performance.LowFPSThreshold == 0 {
		c.Performance.LowFPSThreshold = 30
	}
	if c.Performance.MemoryAlertMB == 0 {
		c.Performance.MemoryAlertMB = 500
	}
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if !mathutil.IsPowerOfTwo(c.Render.TextureSize) {
		return fmt.Errorf("%w: texture_size %d is not a power of two", ErrInvalidConfig, c.Render.TextureSize)
	}
	switch c.Render.Backend {
	case BackendSoftware, BackendGPU:
	default:
		return fmt.Errorf("%w: unknown render backend %q", ErrInvalidConfig, c.Render.Backend)
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("%w: render workers must be at least 1", ErrInvalidConfig)
	}
	if c.Movement.MaxSpeed < 0 || c.Movement.Drag < 0 || c.Movement.CollisionRadius < 0 {
		return fmt.Errorf("%w: movement values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTextureSize() int {
	return c.Render.TextureSize
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MaxSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) UseGPU() bool {
	return c.Render.Backend == BackendGPU
}
