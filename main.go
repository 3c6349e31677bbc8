package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/waddle/config"
	"github.com/pthm-cable/waddle/game"
	"github.com/pthm-cable/waddle/input"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scriptPath := flag.String("script", "", "Input script CSV (empty = no input)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Terrain seed (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = use config)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *maxTicks > 0 {
		cfg.Simulation.MaxTicks = *maxTicks
	}

	var script *input.Script
	if *scriptPath != "" {
		script, err = input.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load input script", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Simulation.MaxTicks == 0 && script == nil {
		slog.Error("refusing to run forever without input; pass --max-ticks or --script")
		os.Exit(1)
	}

	g, err := game.New(cfg, game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Script:    script,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless run",
		"seed", *seed,
		"max_ticks", cfg.Simulation.MaxTicks,
		"script", *scriptPath,
	)

	for !g.Done() {
		g.Step()
		// Without a tick limit, stop once the script has played out.
		if cfg.Simulation.MaxTicks == 0 && script.Done() {
			break
		}
	}

	pos, motion, _ := g.Player()
	slog.Info("run complete",
		"tick", g.Tick(),
		"mode", g.Viewpoint().Mode().String(),
		"position", pos.Current,
		"speed", motion.Speed,
	)

	if err := g.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}
