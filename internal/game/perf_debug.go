package game

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wolfcast/internal/threading/monitoring"
)

// perfLogger writes rate-limited performance snapshots and alerts.
type perfLogger struct {
	logger  *zap.Logger
	monitor *monitoring.PerformanceMonitor
	limiter *rate.Limiter

	lastUpdate time.Duration
	lastDraw   time.Duration
}

func newPerfLogger(logger *zap.Logger, monitor *monitoring.PerformanceMonitor, interval time.Duration) *perfLogger {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &perfLogger{
		logger:  logger,
		monitor: monitor,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// maybeLog emits a snapshot if the interval since the last one has elapsed.
func (pl *perfLogger) maybeLog(now time.Time, fps, tps float64) bool {
	if !pl.limiter.AllowN(now, 1) {
		return false
	}
	pl.logSnapshot(fps, tps)
	for _, a := range pl.monitor.CheckPerformanceAlerts() {
		pl.logger.Warn(a.Message,
			zap.String("alert", a.Type),
			zap.Float64("value", a.Value),
			zap.Float64("threshold", a.Threshold))
	}
	return true
}

func (pl *perfLogger) logSnapshot(fps, tps float64) {
	stats := pl.monitor.GetDetailedStats()
	uptime := time.Duration(getPerfFloat(stats, "uptime_seconds") * float64(time.Second))
	m := pl.monitor.GetCurrentMetrics()

	pl.logger.Debug("performance snapshot",
		zap.Float64("fps", fps),
		zap.Float64("tps", tps),
		zap.Float64("update_ms", durationMs(pl.lastUpdate)),
		zap.Float64("draw_ms", durationMs(pl.lastDraw)),
		zap.Float64("budget_ms", frameBudgetMs(fps)),
		zap.Float64("avg_frame_ms", getPerfFloat(stats, "avg_frame_time_ms")),
		zap.Float64("raycast_ms", durationMs(m.Raycast)),
		zap.Float64("floor_ms", durationMs(m.Floor)),
		zap.Float64("sprites_ms", durationMs(m.SpriteRender)),
		zap.Float64("entities_ms", durationMs(m.EntityUpdate)),
		zap.Uint64("columns_cast", getPerfUint(stats, "columns_cast")),
		zap.Int("entities", getPerfInt(stats, "entities_active")),
		zap.Int("sprites", getPerfInt(stats, "sprites_queued")),
		zap.Int("goroutines", getPerfInt(stats, "goroutines")),
		zap.String("mem_alloc", humanize.IBytes(getPerfUint(stats, "memory_alloc_mb")<<20)),
		zap.String("mem_peak", humanize.IBytes(getPerfUint(stats, "memory_peak_mb")<<20)),
		zap.Uint64("gc_cycles", getPerfUint(stats, "gc_cycles")),
		zap.String("uptime", durafmt.Parse(uptime).LimitFirstN(2).String()))
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int32:
			return float64(v)
		case int64:
			return float64(v)
		case uint32:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case uint32:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int64:
			return uint64(v)
		case int32:
			return uint64(v)
		case int:
			return uint64(v)
		case float64:
			return uint64(v)
		}
	}
	return 0
}
