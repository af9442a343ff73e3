package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/game"
	"github.com/pthm-cable/arix/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	toggleEvery := flag.Float64("toggle-every", 0, "Toggle the tree every N seconds (0 = only on input)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	exitOnError("failed to load config", config.Init(*configPath))
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := telemetry.NewRunID()

	opts := game.Options{
		Seed:           rngSeed,
		RunID:          runID,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		ToggleEvery:    *toggleEvery,
	}

	if *headless {
		// Headless mode - no raylib window
		g, err := game.NewGameWithOptions(opts)
		exitOnError("failed to create game", err)
		defer g.Unload()

		slog.Info("starting headless run",
			"run_id", runID,
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"toggle_every", *toggleEvery,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "progress", g.Progress(), "state", g.State().String())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	exitOnError("failed to create game", err, rl.CloseWindow)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// exitOnError logs err and exits with status 1. cleanup runs first; os.Exit
// skips deferred calls.
func exitOnError(msg string, err error, cleanup ...func()) {
	if err == nil {
		return
	}
	slog.Error(msg, "error", err)
	for _, fn := range cleanup {
		fn()
	}
	os.Exit(1)
}
