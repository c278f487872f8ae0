// Package telemetry provides frame timing, windowed field statistics and CSV output.
package telemetry

import "sort"

// Collector accumulates scheduler events within windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	physicsTicks int
	drawTicks    int
	manualTicks  int
	rebuilds     int
}

// NewCollector creates a new stats collector.
// windowDurationTicks: how many scheduler ticks each window lasts.
func NewCollector(windowDurationTicks int64) *Collector {
	if windowDurationTicks < 1 {
		windowDurationTicks = 1
	}
	return &Collector{windowDurationTicks: windowDurationTicks}
}

// RecordPhysics records an update tick and whether the pointer drove it.
func (c *Collector) RecordPhysics(manual bool) {
	c.physicsTicks++
	if manual {
		c.manualTicks++
	}
}

// RecordDraw records a draw tick.
func (c *Collector) RecordDraw() {
	c.drawTicks++
}

// RecordRebuild records a grid rebuild.
func (c *Collector) RecordRebuild() {
	c.rebuilds++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// displacements are per-particle distances from origin sampled at window end.
func (c *Collector) Flush(
	currentTick int64,
	elapsedSec float64,
	particles int,
	profileClass string,
	displacements []float64,
) WindowStats {
	var manualShare float64
	if c.physicsTicks > 0 {
		manualShare = float64(c.manualTicks) / float64(c.physicsTicks)
	}

	var dispMean, dispP90 float64
	if len(displacements) > 0 {
		var sum float64
		for _, d := range displacements {
			sum += d
		}
		dispMean = sum / float64(len(displacements))

		sorted := make([]float64, len(displacements))
		copy(sorted, displacements)
		sort.Float64s(sorted)
		dispP90 = Percentile(sorted, 0.90)
	}

	stats := WindowStats{
		WindowStartTick:  c.windowStartTick,
		WindowEndTick:    currentTick,
		ElapsedSec:       elapsedSec,
		Particles:        particles,
		ProfileClass:     profileClass,
		PhysicsTicks:     c.physicsTicks,
		DrawTicks:        c.drawTicks,
		ManualTicks:      c.manualTicks,
		Rebuilds:         c.rebuilds,
		ManualShare:      manualShare,
		DisplacementMean: dispMean,
		DisplacementP90:  dispP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.physicsTicks = 0
	c.drawTicks = 0
	c.manualTicks = 0
	c.rebuilds = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
