package scene

import (
	"math"

	"go.uber.org/zap"

	"wolfcast/internal/camera"
	"wolfcast/internal/collision"
	"wolfcast/internal/config"
	"wolfcast/internal/entity"
	"wolfcast/internal/logging"
	"wolfcast/internal/threading"
	"wolfcast/internal/threading/entities"
	"wolfcast/internal/threading/monitoring"
	"wolfcast/internal/world"
)

// MaxStep caps the time one Step can cover. A longer stall (window drag,
// debugger) is simulated as a single MaxStep so the player cannot tunnel
// through walls.
const MaxStep = 0.25

// Scene is the mutable state of one run: the camera and the entities, moved
// over a read-only grid. Frontends call Step once per frame, then render.
type Scene struct {
	Grid      *world.Grid
	Camera    *camera.Camera
	Physics   camera.Physics
	Entities  []*entity.Entity
	Collision *collision.CollisionSystem

	updater *entities.EntityUpdater
	monitor *monitoring.PerformanceMonitor
	logger  *zap.Logger
}

// New places the camera at the map's player start and registers every
// entity as a collision body. tc may be nil.
func New(cfg *config.Config, md *world.MapData, ents []*entity.Entity, tc *threading.ThreadingComponents, logger *zap.Logger) *Scene {
	s := &Scene{
		Grid:   md.Grid,
		Camera: camera.New(md.Player.Pos, md.Player.Dir, cfg.Camera.PlaneLength),
		Physics: camera.Physics{
			Acceleration:  cfg.Movement.Acceleration,
			MaxSpeed:      cfg.Movement.MaxSpeed,
			Drag:          cfg.Movement.Drag,
			RotationSpeed: cfg.Movement.RotationSpeed,
			Radius:        cfg.Movement.CollisionRadius,
		},
		Entities:  ents,
		Collision: collision.NewCollisionSystem(md.Grid),
		logger:    logging.OrNop(logger).Named("scene"),
	}
	if tc != nil {
		s.updater = tc.EntityUpdater
		s.monitor = tc.PerformanceMonitor
	}
	for _, e := range ents {
		s.Collision.RegisterBody(e.ID, e)
	}
	s.logger.Info("scene ready",
		zap.String("map", md.Name),
		zap.Int("width", md.Grid.Width()),
		zap.Int("height", md.Grid.Height()),
		zap.Int("entities", len(ents)),
		zap.Float64("fov_deg", s.Camera.FOV()*180/math.Pi))
	return s
}

// Step advances entities, then the camera, by the same dt seconds.
func (s *Scene) Step(dt float64, in camera.Input) {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	s.monitor.ProfiledFunction(monitoring.StageEntityUpdate, func() {
		entities.TickAll(s.updater, s.Entities, dt)
	})
	s.Camera.Update(dt, in, s.Physics, s.Collision)
}

// Remove drops an entity from the scene and from collision.
func (s *Scene) Remove(id string) bool {
	for i, e := range s.Entities {
		if e.ID == id {
			s.Collision.UnregisterBody(id)
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return true
		}
	}
	return false
}
