package game

import (
	"log/slog"

	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, telemetry.TreeSnapshot{
		State:     g.tree.State().String(),
		Progress:  g.tree.Progress(),
		Instances: g.tree.Total(),
	})
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// writeLayout exports every descriptor of every group.
func (g *Game) writeLayout() {
	if g.outputManager == nil {
		return
	}
	var records []telemetry.LayoutRecord
	for _, grp := range layout.Groups {
		records = append(records, telemetry.LayoutRecords(g.runID, grp, g.tree.Descriptors(grp))...)
	}
	if err := g.outputManager.WriteLayout(records); err != nil {
		slog.Error("failed to write layout", "error", err)
	}
}
