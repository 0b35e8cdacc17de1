package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/game"
	"github.com/pthm-cable/dissolve/telemetry"
	"github.com/pthm-cable/dissolve/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	device := flag.String("device", "", "Device profile: desktop or mobile (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	autoDissolve := flag.Bool("auto-dissolve", false, "Start with the dissolve oscillator running")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	snapshotPath := flag.String("snapshot", "", "Restore scene state from a snapshot file")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *device != "" {
		if err := cfg.SetDevice(*device); err != nil {
			slog.Error("invalid device", "error", err)
			os.Exit(1)
		}
	}

	var snap *telemetry.Snapshot
	if *snapshotPath != "" {
		var err error
		if snap, err = telemetry.LoadSnapshot(*snapshotPath); err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
	}

	// Set up seed; a restored snapshot brings its own
	rngSeed := *seed
	if rngSeed == 0 && snap != nil {
		rngSeed = snap.RNGSeed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		AutoDissolve:   *autoDissolve,
		Snapshot:       snap,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "auto-dissolve" {
			opts.AutoDissolveSet = true
		}
	})

	if *headless {
		// Headless mode - pure CPU, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to build scene", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"device", cfg.Device,
			"stats_window", statsWindowSec,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				g.LogState()
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dissolve")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		return
	}
	defer g.Unload()

	v := viewer.New(g, int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
