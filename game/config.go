package game

import "github.com/pthm-cable/dotfield/telemetry"

// Options holds the host wiring for an Engine.
type Options struct {
	Frames   FrameRequester
	Viewport ViewportQuery // nil falls back to the container width

	LogStats      bool                        // log window stats via slog
	OutputManager *telemetry.OutputManager    // nil disables CSV output
	StatsCallback func(telemetry.WindowStats) // optional, called on every flush
}
