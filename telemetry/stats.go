package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of scheduler ticks.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed_sec"`

	// Grid state at window end
	Particles    int    `csv:"particles"`
	ProfileClass string `csv:"profile"`

	// Events during window
	PhysicsTicks int `csv:"physics_ticks"`
	DrawTicks    int `csv:"draw_ticks"`
	ManualTicks  int `csv:"manual_ticks"`
	Rebuilds     int `csv:"rebuilds"`

	// Share of physics ticks driven by the pointer
	ManualShare float64 `csv:"manual_share"`

	// Mean particle displacement from origin at window end
	DisplacementMean float64 `csv:"displacement_mean"`
	DisplacementP90  float64 `csv:"displacement_p90"`
}

// DurationStats summarizes a sample of durations.
type DurationStats struct {
	Mean, StdDev, P50, P90 float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDurationStats calculates mean, sample standard deviation and
// percentiles. A single value has zero deviation.
func ComputeDurationStats(values []float64) DurationStats {
	n := len(values)
	if n == 0 {
		return DurationStats{}
	}

	var ds DurationStats
	if n == 1 {
		ds.Mean = values[0]
	} else {
		ds.Mean, ds.StdDev = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	ds.P50 = Percentile(sorted, 0.50)
	ds.P90 = Percentile(sorted, 0.90)
	return ds
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("elapsed_sec", s.ElapsedSec),
		slog.Int("particles", s.Particles),
		slog.String("profile", s.ProfileClass),
		slog.Int("physics_ticks", s.PhysicsTicks),
		slog.Int("draw_ticks", s.DrawTicks),
		slog.Int("manual_ticks", s.ManualTicks),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Float64("manual_share", s.ManualShare),
		slog.Float64("displacement_mean", s.DisplacementMean),
		slog.Float64("displacement_p90", s.DisplacementP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
