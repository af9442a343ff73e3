package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/renderer"
	"github.com/pthm-cable/arix/telemetry"
	"github.com/pthm-cable/arix/ui"
)

// Draw renders the scene and the overlay, then closes the perf tick opened
// by Update.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	g.batches = g.tree.Collect(g.batches)

	rl.BeginDrawing()

	g.composer.Draw(renderer.Scene{
		Camera:    g.tree.Camera,
		Batches:   g.batches,
		Star:      g.tree.StarMatrix(),
		Snow:      g.tree.Snow,
		Starfield: g.tree.Stars,
		Elapsed:   g.tree.Elapsed(),
	})

	act := g.overlay.Draw(g.overlayData())

	rl.EndDrawing()

	g.perfCollector.EndTick()
	g.applyActions(act)
}

func (g *Game) overlayData() ui.OverlayData {
	stats := g.perfCollector.Stats()

	hud := ui.HUDData{
		FPS:      rl.GetFPS(),
		Tick:     g.tick,
		State:    g.tree.State().String(),
		Progress: g.tree.Progress(),
		Total:    g.tree.Total(),
		Swatches: g.swatches,
		RunID:    g.runID,
	}
	for _, grp := range layout.Groups {
		hud.Counts[grp] = g.tree.Count(grp)
	}

	return ui.OverlayData{
		State:   g.tree.State(),
		ScreenW: g.screenW,
		ScreenH: g.screenH,
		HUD:     hud,
		Perf: ui.PerfPanelData{
			PhaseTimes: stats.PhaseAvg,
			Total:      stats.AvgTickDuration,
			Registry:   g.registry,
		},
		Phases: sortedPhases(stats),
	}
}

// applyActions runs what the overlay asked for this frame.
func (g *Game) applyActions(act ui.Actions) {
	if act.Toggle {
		g.Toggle()
	}
	if act.Snapshot {
		g.snapshotDue = true
	}
	if act.Fullscreen {
		rl.ToggleFullscreen()
	}
	if act.BodyCount > 0 {
		if err := g.SetGroupCount(layout.GroupBody, act.BodyCount); err != nil {
			slog.Error("failed to resize body", "error", err)
		}
	}
}

// takeSnapshot saves the last presented frame as a PNG in the working
// directory.
func (g *Game) takeSnapshot() {
	g.snapshotDue = false
	name := fmt.Sprintf("arix-%s-%06d.png", shortID(g.runID), g.tick)
	rl.TakeScreenshot(name)
	slog.Info("snapshot saved", "file", name, "tick", g.tick)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
