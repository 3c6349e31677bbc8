package game

import (
	"log/slog"

	"github.com/pthm-cable/waddle/input"
	"github.com/pthm-cable/waddle/telemetry"
)

// Options holds run-level settings that are not part of the YAML config.
type Options struct {
	Seed      int64         // Terrain noise seed override (0 = use config)
	LogStats  bool          // Log window and perf stats via slog
	OutputDir string        // Directory for CSV logs and config snapshot ("" = disabled)
	Script    *input.Script // Scripted input; nil leaves input to the caller
	Logger    *slog.Logger  // nil = slog.Default()

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
