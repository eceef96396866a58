package entity

import (
	"go.uber.org/zap"

	"wolfcast/internal/graphics"
	"wolfcast/internal/logging"
	"wolfcast/internal/world"
)

// Spawner turns map spawn points into entities.
type Spawner struct {
	templates  Templates
	sprites    *graphics.SpriteStore
	animations *graphics.AnimationLibrary
	logger     *zap.Logger
}

func NewSpawner(templates Templates, sprites *graphics.SpriteStore, animations *graphics.AnimationLibrary, logger *zap.Logger) *Spawner {
	return &Spawner{
		templates:  templates,
		sprites:    sprites,
		animations: animations,
		logger:     logging.OrNop(logger).Named("spawner"),
	}
}

// Spawn creates one entity. Any lookup failure (template, sprite or
// animation) is returned and nothing is created; no default is substituted.
func (s *Spawner) Spawn(sp world.Spawn) (*Entity, error) {
	tmpl, err := s.templates.Get(sp.Template)
	if err != nil {
		return nil, err
	}
	sprite, err := s.sprites.Get(tmpl.Sprite)
	if err != nil {
		return nil, err
	}

	animName := tmpl.Animation
	if sp.Animation != "" {
		animName = sp.Animation
	}
	var anim *graphics.Animation
	if animName != "" {
		if anim, err = s.animations.Get(animName); err != nil {
			return nil, err
		}
	}
	if tmpl.DeathAnimation != "" {
		if _, err := s.animations.Get(tmpl.DeathAnimation); err != nil {
			return nil, err
		}
	}

	e := New(sp.Template, sprite, sp.Pos, sp.Dir)
	e.Animation = anim
	e.Collidable = tmpl.Collidable
	e.CollisionRadius = tmpl.CollisionRadius
	e.deathAnimation = tmpl.DeathAnimation
	if sp.Collidable != nil {
		e.Collidable = *sp.Collidable
	}
	if sp.CollisionRadius != nil {
		e.CollisionRadius = *sp.CollisionRadius
	}
	return e, nil
}

// SpawnAll spawns every point, skipping (and logging) the ones that fail.
func (s *Spawner) SpawnAll(spawns []world.Spawn) []*Entity {
	entities := make([]*Entity, 0, len(spawns))
	for i, sp := range spawns {
		e, err := s.Spawn(sp)
		if err != nil {
			s.logger.Warn("spawn skipped",
				zap.Int("index", i),
				zap.String("template", sp.Template),
				zap.Error(err))
			continue
		}
		entities = append(entities, e)
	}
	s.logger.Info("entities spawned", zap.Int("spawned", len(entities)), zap.Int("requested", len(spawns)))
	return entities
}

// Kill kills e using this spawner's animation library for its death clip.
func (s *Spawner) Kill(e *Entity) {
	if err := e.Kill(s.animations); err != nil {
		s.logger.Warn("death animation unavailable", zap.String("entity", e.ID), zap.Error(err))
	}
}

// TickAll advances every entity once. It runs on the frame goroutine with no
// concurrent readers.
func TickAll(entities []*Entity, dt float64) {
	for _, e := range entities {
		e.Tick(dt)
	}
}
