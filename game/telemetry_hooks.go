package game

import (
	"github.com/pthm-cable/waddle/telemetry"
)

// recordTick samples the player and the published viewpoint for the tick
// that just completed, and flushes the stats window when it is full.
func (g *Game) recordTick() {
	pos, motion, waddle := g.Player()
	rec := telemetry.NewTickRecord(
		g.tick,
		float64(g.tick)*g.cfg.Simulation.DT,
		pos, motion, waddle,
		g.viewpoint.Mode().String(),
		g.viewpoint.Pose().Position,
	)

	g.collector.Record(rec)
	if err := g.outputManager.WriteTick(rec); err != nil {
		g.logger.Error("failed to write trajectory", "error", err)
	}

	if g.collector.ShouldFlush(g.tick) {
		g.flushWindow()
	}
}

// flushWindow closes the current stats window and fans it out to the log,
// the callback and the CSV output.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.tick)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if err := g.outputManager.WriteWindow(stats); err != nil {
		g.logger.Error("failed to write window stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}
