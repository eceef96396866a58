package entity

import (
	"github.com/google/uuid"

	"wolfcast/internal/graphics"
	"wolfcast/internal/mathutil"
)

// Entity is a world object drawn as a billboard. Sprite is shared with every
// other entity of the same kind; Animation is owned by this entity alone.
type Entity struct {
	ID       string
	Template string

	Sprite *graphics.Sprite
	Pos    mathutil.Vec3
	Dir    mathutil.Vec2

	Collidable      bool
	CollisionRadius float64

	Animation *graphics.Animation
	Alive     bool

	deathAnimation string
}

// New creates a live entity with a fresh id.
func New(template string, sprite *graphics.Sprite, pos mathutil.Vec3, dir mathutil.Vec2) *Entity {
	return &Entity{
		ID:       uuid.NewString(),
		Template: template,
		Sprite:   sprite,
		Pos:      pos,
		Dir:      dir,
		Alive:    true,
	}
}

// Tick advances the entity's animation by dt seconds. A finished one-shot
// clip is dropped.
func (e *Entity) Tick(dt float64) {
	if e.Animation == nil {
		return
	}
	if e.Animation.Tick(dt) {
		e.Animation = nil
	}
}

// Kill marks the entity dead and swaps in its death clip, if any. Dead
// entities stay in the world and keep being drawn.
func (e *Entity) Kill(anims *graphics.AnimationLibrary) error {
	e.Alive = false
	e.Animation = nil
	if e.deathAnimation == "" {
		return nil
	}
	anim, err := anims.Get(e.deathAnimation)
	if err != nil {
		return err
	}
	e.Animation = anim
	return nil
}

// Revive brings a dead entity back and clears its animation.
func (e *Entity) Revive() {
	e.Alive = true
	e.Animation = nil
}

// Blocks reports whether the entity currently takes part in collisions.
func (e *Entity) Blocks() bool {
	return e.Alive && e.Collidable
}

// Position and Radius satisfy collision.Body.
func (e *Entity) Position() mathutil.Vec2 { return e.Pos.XY() }
func (e *Entity) Radius() float64 { return e.CollisionRadius }
