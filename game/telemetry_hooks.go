package game

import (
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/dotfield/components"
)

// flushTelemetry checks if the stats window should be flushed.
func (e *Engine) flushTelemetry() {
	if !e.collector.ShouldFlush(e.tick) {
		return
	}

	stats := e.collector.Flush(
		e.tick,
		e.lastNow.Seconds(),
		e.grid.Len(),
		e.profile.Class,
		e.sampleDisplacements(),
	)
	perfStats := e.perfCollector.Stats()

	if e.statsCallback != nil {
		e.statsCallback(stats)
	}

	if e.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if e.outputManager != nil {
		if err := e.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := e.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleDisplacements collects each particle's distance from its origin.
func (e *Engine) sampleDisplacements() []float64 {
	out := make([]float64, 0, e.grid.Len())
	e.grid.ForEach(func(pos *components.Position, _ *components.Velocity, origin *components.Origin) {
		out = append(out, math.Hypot(pos.X-origin.X, pos.Y-origin.Y))
	})
	return out
}

// RecordFrame records a host display frame for FPS reporting.
func (e *Engine) RecordFrame() {
	e.perfCollector.RecordFrame()
}

// Elapsed returns the frame clock value seen by the last tick.
func (e *Engine) Elapsed() time.Duration { return e.lastNow }
