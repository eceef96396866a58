package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names accepted by ProfiledFunction.
const (
	StageRaycast      = "raycast"
	StageFloor        = "floor"
	StageSpriteRender = "sprite_render"
	StageEntityUpdate = "entity_update"
)

// Thresholds configures CheckPerformanceAlerts.
type Thresholds struct {
	LowFPS   float64
	MemoryMB float64
}

// DefaultThresholds alerts below 30 FPS or above 500MB allocated.
var DefaultThresholds = Thresholds{LowFPS: 30, MemoryMB: 500}

// PerformanceMonitor tracks per-frame timings of the render stages. All
// methods are safe on a nil receiver so callers can leave monitoring off.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Stage metrics, last sample in nanoseconds
	raycastTime      atomic.Uint64
	floorTime        atomic.Uint64
	spriteRenderTime atomic.Uint64
	entityUpdateTime atomic.Uint64

	// Scene metrics
	columnsCast    atomic.Uint64
	spritesQueued  atomic.Int32
	entitiesActive atomic.Int32

	// Statistics
	mutex           sync.RWMutex
	avgFrameTime    float64
	avgRaycastTime  float64
	peakMemoryUsage uint64
	startTime       time.Time

	// Configuration
	enableDetailed bool
	thresholds     Thresholds
}

// NewPerformanceMonitor creates a monitor with DefaultThresholds.
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		thresholds:     DefaultThresholds,
	}
}

// SetThresholds replaces the alert thresholds. Zero fields keep the default.
func (pm *PerformanceMonitor) SetThresholds(t Thresholds) {
	if pm == nil {
		return
	}
	if t.LowFPS <= 0 {
		t.LowFPS = DefaultThresholds.LowFPS
	}
	if t.MemoryMB <= 0 {
		t.MemoryMB = DefaultThresholds.MemoryMB
	}
	pm.mutex.Lock()
	pm.thresholds = t
	pm.mutex.Unlock()
}

// Smoothing factor of the running averages.
const avgWeight = 0.1

func smooth(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + avgWeight*(sample-avg)
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	pm := ft.monitor
	if pm == nil {
		return
	}
	frameTime := time.Since(ft.startTime)
	pm.frameTime.Store(uint64(frameTime.Nanoseconds()))
	pm.frameCount.Add(1)

	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgFrameTime = smooth(pm.avgFrameTime, float64(frameTime.Nanoseconds()))
		pm.mutex.Unlock()
	}
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	if rt.monitor == nil {
		return
	}
	rt.monitor.recordRaycast(uint64(time.Since(rt.startTime).Nanoseconds()))
}

func (pm *PerformanceMonitor) recordRaycast(ns uint64) {
	pm.raycastTime.Store(ns)
	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgRaycastTime = smooth(pm.avgRaycastTime, float64(ns))
		pm.mutex.Unlock()
	}
}

// RecordColumns adds to the count of wall columns cast.
func (pm *PerformanceMonitor) RecordColumns(n int) {
	if pm == nil {
		return
	}
	pm.columnsCast.Add(uint64(n))
}

// UpdateSceneMetrics stores the entity count and the number of billboards
// handed to the sprite pass in the last frame.
func (pm *PerformanceMonitor) UpdateSceneMetrics(entities, sprites int) {
	if pm == nil {
		return
	}
	pm.entitiesActive.Store(int32(entities))
	pm.spritesQueued.Store(int32(sprites))
}

// FrameMetrics is a snapshot of the latest frame.
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	Raycast         time.Duration
	Floor           time.Duration
	SpriteRender    time.Duration
	EntityUpdate    time.Duration
	EntitiesActive  int32
	SpritesQueued   int32
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	if pm == nil {
		return FrameMetrics{}
	}
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = float64(time.Second) / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	pm.notePeak(memStats.Alloc)

	return FrameMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		Raycast:         time.Duration(pm.raycastTime.Load()),
		Floor:           time.Duration(pm.floorTime.Load()),
		SpriteRender:    time.Duration(pm.spriteRenderTime.Load()),
		EntityUpdate:    time.Duration(pm.entityUpdateTime.Load()),
		EntitiesActive:  pm.entitiesActive.Load(),
		SpritesQueued:   pm.spritesQueued.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

func (pm *PerformanceMonitor) notePeak(alloc uint64) {
	pm.mutex.Lock()
	if alloc > pm.peakMemoryUsage {
		pm.peakMemoryUsage = alloc
	}
	pm.mutex.Unlock()
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	if pm == nil {
		return nil
	}
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	pm.notePeak(memStats.Alloc)

	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	fps := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		fps = float64(time.Second) / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"current_fps":         fps,
		"columns_cast":        pm.columnsCast.Load(),
		"entities_active":     pm.entitiesActive.Load(),
		"sprites_queued":      pm.spritesQueued.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"memory_peak_mb":      pm.peakMemoryUsage / 1024 / 1024,
		"memory_sys_mb":       memStats.Sys / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts compares the latest frame rate and the heap against
// the configured thresholds.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	if pm == nil {
		return nil
	}
	pm.mutex.RLock()
	th := pm.thresholds
	pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return pm.alerts(th, pm.frameTime.Load(), float64(memStats.Alloc)/1024/1024, time.Now())
}

func (pm *PerformanceMonitor) alerts(th Thresholds, frameTime uint64, memoryMB float64, now time.Time) []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)

	if frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < th.LowFPS {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below threshold",
				Value:     fps,
				Threshold: th.LowFPS,
				Timestamp: now,
			})
		}
	}

	if memoryMB > th.MemoryMB {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above threshold",
			Value:     memoryMB,
			Threshold: th.MemoryMB,
			Timestamp: now,
		})
	}
	return alerts
}

// EnableDetailedLogging enables/disables the running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	if pm == nil {
		return
	}
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	if pm == nil {
		return
	}
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.floorTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.entityUpdateTime.Store(0)
	pm.columnsCast.Store(0)
	pm.spritesQueued.Store(0)
	pm.entitiesActive.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.peakMemoryUsage = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction runs fn and records its duration under the named stage.
// Unknown names are timed but not stored.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)
	if pm == nil {
		return duration
	}

	ns := uint64(duration.Nanoseconds())
	switch name {
	case StageRaycast:
		pm.recordRaycast(ns)
	case StageFloor:
		pm.floorTime.Store(ns)
	case StageSpriteRender:
		pm.spriteRenderTime.Store(ns)
	case StageEntityUpdate:
		pm.entityUpdateTime.Store(ns)
	}

	return duration
}
