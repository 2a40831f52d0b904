package backdrop

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when debug mode is on.
type debugStats struct {
	frame       uint64
	renderTime  time.Duration
	drawCalls   int
	vertexCount int
	culled      int
}

// debugLog reports render stats at debug level.
func (r *Renderer) debugLog(stats debugStats) {
	if !r.debug {
		return
	}
	r.log.Debug("render",
		zap.Uint64("frame", stats.frame),
		zap.Duration("render", stats.renderTime),
		zap.Int("draw_calls", stats.drawCalls),
		zap.Int("vertices", stats.vertexCount),
		zap.Int("culled", stats.culled),
	)
}

// SetDebugMode enables or disables per-frame render stats logging.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}
