package assets

import (
	"fmt"

	"go.uber.org/zap"

	"wolfcast/internal/config"
	"wolfcast/internal/entity"
	"wolfcast/internal/graphics"
	"wolfcast/internal/logging"
	"wolfcast/internal/threading/core"
	"wolfcast/internal/world"
)

// Bundle is everything loaded from disk for one run. All of it is read-only
// once Load returns, except Entities.
type Bundle struct {
	Map        *world.MapData
	Textures   *graphics.TextureStore
	Sprites    *graphics.SpriteStore
	Animations *graphics.AnimationLibrary
	Templates  entity.Templates
	Spawner    *entity.Spawner
	Entities   []*entity.Entity
}

// Load reads textures, sprites, animations, entity templates and the map
// named in cfg, checks the map against the texture count and spawns the
// map's entities. Any error is fatal for the caller; spawn points that fail
// their lookups are logged and skipped.
func Load(cfg *config.Config, logger *zap.Logger) (*Bundle, error) {
	logger = logging.OrNop(logger)
	pool := core.NewWorkerPool(0)

	textures, err := graphics.LoadTextures(cfg.Assets.WallTextures, cfg.GetTextureSize(), pool, logger)
	if err != nil {
		return nil, fmt.Errorf("load wall textures: %w", err)
	}
	sprites, err := graphics.LoadSprites(cfg.Assets.Sprites, pool, logger)
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	anims, err := graphics.LoadAnimations(cfg.Assets.Animations, logger)
	if err != nil {
		return nil, fmt.Errorf("load animations: %w", err)
	}
	templates, err := entity.LoadTemplates(cfg.Assets.Entities)
	if err != nil {
		return nil, fmt.Errorf("load entity templates: %w", err)
	}
	md, err := world.LoadMap(cfg.Assets.Map)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	if err := md.CheckTextures(textures.Len()); err != nil {
		return nil, fmt.Errorf("map %s: %w", cfg.Assets.Map, err)
	}
	logger.Named("assets").Info("map loaded",
		zap.String("file", cfg.Assets.Map),
		zap.String("name", md.Name),
		zap.Int("width", md.Grid.Width()),
		zap.Int("height", md.Grid.Height()),
		zap.Int("spawns", len(md.Spawns)))

	spawner := entity.NewSpawner(templates, sprites, anims, logger)
	return &Bundle{
		Map:        md,
		Textures:   textures,
		Sprites:    sprites,
		Animations: anims,
		Templates:  templates,
		Spawner:    spawner,
		Entities:   spawner.SpawnAll(md.Spawns),
	}, nil
}
