package threading

import (
	"wolfcast/internal/config"
	"wolfcast/internal/threading/entities"
	"wolfcast/internal/threading/monitoring"
)

// ThreadingComponents holds all threading-related components
type ThreadingComponents struct {
	EntityUpdater      *entities.EntityUpdater
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the updater and the monitor, with alert
// thresholds taken from the performance config.
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	pm := monitoring.NewPerformanceMonitor()
	pm.SetThresholds(monitoring.Thresholds{
		LowFPS:   cfg.Performance.LowFPSThreshold,
		MemoryMB: cfg.Performance.MemoryAlertMB,
	})
	return &ThreadingComponents{
		EntityUpdater:      entities.NewEntityUpdater(cfg.Render.Workers),
		PerformanceMonitor: pm,
	}
}

// Shutdown resets the monitor so a restarted loop starts from clean counters.
func (tc *ThreadingComponents) Shutdown() {
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	return tc.PerformanceMonitor.GetDetailedStats()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
