// Package game wires the scene, the renderer, the overlay and telemetry into
// the frame loop driven by main.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/renderer"
	"github.com/pthm-cable/arix/scene"
	"github.com/pthm-cable/arix/systems"
	"github.com/pthm-cable/arix/telemetry"
	"github.com/pthm-cable/arix/transition"
	"github.com/pthm-cable/arix/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	RunID          string // empty = generate one
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	ToggleEvery    float64 // seconds between automatic toggles, 0 = off
}

// Game holds the complete application state.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	runID string

	tree    *scene.Tree
	batches []systems.Batch

	// Rendering (nil when headless)
	composer *renderer.Composer
	overlay  *ui.Overlay
	swatches [layout.NumGroups]rl.Color

	headless    bool
	screenW     int32
	screenH     int32
	snapshotDue bool
	dragging    bool
	toggleEvery float32
	sinceToggle float32
	tick        int32

	// Telemetry
	registry      *systems.SystemRegistry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGameWithOptions creates a game. When not headless the raylib window
// must already exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	runID := opts.RunID
	if runID == "" {
		runID = telemetry.NewRunID()
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		runID:         runID,
		headless:      opts.Headless,
		screenW:       int32(cfg.Screen.Width),
		screenH:       int32(cfg.Screen.Height),
		toggleEvery:   float32(opts.ToggleEvery),
		registry:      systems.NewSystemRegistry(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(runID, statsWindow, cfg.Derived.DT32),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats,
	}
	g.tree = scene.New(cfg, g.rng)

	om, err := telemetry.NewOutputManager(opts.OutputDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.writeLayout()

	if !opts.Headless {
		for _, grp := range layout.Groups {
			if pal := cfg.Derived.Specs[grp].Palette; len(pal) > 0 {
				g.swatches[grp] = rl.NewColor(pal[0].R, pal[0].G, pal[0].B, 255)
			}
		}
		g.composer = renderer.NewComposer(cfg, g.screenW, g.screenH)
		g.composer.Init(g.tree.Stars)
		g.overlay = ui.NewOverlay(cfg.UI, g.tree.Count(layout.GroupBody))
	}

	slog.Info("game created",
		"run_id", runID,
		"seed", opts.Seed,
		"instances", g.tree.Total(),
		"state", g.tree.State().String(),
		"headless", opts.Headless,
	)
	return g, nil
}

// Update handles input and advances the scene by the last frame time.
// The tick is closed by Draw so the render phase lands in the same sample.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	if g.snapshotDue {
		g.takeSnapshot()
	}
	g.handleInput()
	g.step(rl.GetFrameTime())
}

// UpdateHeadless advances the scene by the configured fixed step without
// touching raylib.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.step(g.cfg.Derived.DT32)
	g.perfCollector.EndTick()
}

// step runs one tick. The controller is advanced before any particle reads
// the progress.
func (g *Game) step(dt float32) {
	g.autoToggle(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTransition)
	g.tree.StepTransition(dt)

	g.perfCollector.StartPhase(telemetry.PhaseInstances)
	g.tree.StepInstances()

	g.perfCollector.StartPhase(telemetry.PhaseAmbient)
	g.tree.StepAmbient(dt)
	if g.overlay != nil {
		g.overlay.Update(dt)
	}

	g.collector.RecordFrame(dt)
	g.tick++
	g.flushTelemetry()
}

func (g *Game) autoToggle(dt float32) {
	if g.toggleEvery <= 0 {
		return
	}
	g.sinceToggle += dt
	if g.sinceToggle >= g.toggleEvery {
		g.sinceToggle = 0
		g.Toggle()
	}
}

// Toggle flips the tree between scattered and assembled.
func (g *Game) Toggle() transition.State {
	s := g.tree.Toggle()
	g.collector.RecordToggle()
	slog.Info("tree toggled", "state", s.String(), "tick", g.tick, "progress", g.tree.Progress())
	return s
}

// SetGroupCount regenerates one group with n particles.
func (g *Game) SetGroupCount(group layout.Group, n int) error {
	if err := g.tree.SetGroupCount(group, n); err != nil {
		return fmt.Errorf("resizing %s: %w", group, err)
	}
	g.collector.RecordRespawn()
	g.writeLayout()
	if g.overlay != nil && group == layout.GroupBody {
		g.overlay.SetBodyCount(n)
	}
	slog.Info("group regenerated", "group", group.String(), "count", n, "instances", g.tree.Total())
	return nil
}

// Progress returns the transition progress in [0,1].
func (g *Game) Progress() float32 { return g.tree.Progress() }

// State returns the requested tree state.
func (g *Game) State() transition.State { return g.tree.State() }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// RunID returns the id stamped on logs and output records.
func (g *Game) RunID() string { return g.runID }

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.composer != nil {
		g.composer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
