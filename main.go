package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/game"
	"github.com/pthm-cable/wasd/input"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variantName := flag.String("variant", "combined", "Demo to run: shapes, wasd, click or combined")
	headless := flag.Bool("headless", false, "Run without graphics")
	scriptPath := flag.String("script", "", "YAML input script to replay instead of live input")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	variant, err := game.ParseVariant(*variantName)
	if err != nil {
		slog.Error("invalid variant", "error", err)
		os.Exit(1)
	}

	var script *input.Script
	if *scriptPath != "" {
		script, err = input.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "path", *scriptPath, "error", err)
			os.Exit(1)
		}
	}

	if *headless && script == nil && *maxTicks <= 0 {
		slog.Error("headless runs need -script or -max-ticks to terminate")
		os.Exit(1)
	}

	// Build game options
	opts := game.Options{
		Variant:    variant,
		Headless:   *headless,
		Script:     script,
		ScriptPath: *scriptPath,
		LogStats:   *logStats,
		OutputDir:  *outputDir,
	}

	if *headless {
		// Headless mode - fixed dt, no raylib calls
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"variant", variant.String(),
			"script", *scriptPath,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				break
			}
			if g.ScriptDone() {
				slog.Info("script finished", "tick", g.Tick())
				break
			}
		}

		if tf, ok := g.Player(); ok {
			slog.Info("final position", "x", tf.X, "y", tf.Y)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
