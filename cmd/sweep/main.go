// Package main replays an input script across demo variants and player
// speeds, headless, and reports where the player ended up.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/game"
)

// formatDuration formats a duration as MM:SS.mmm.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dm%06.3fs", m, d.Seconds())
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	scriptPath := flag.String("script", "", "YAML input script to replay (required)")
	variants := flag.String("variants", "wasd,click,combined", "Comma-separated variants to run")
	speeds := flag.String("speeds", "", "Comma-separated player speeds (empty = config speed)")
	maxTicks := flag.Int("max-ticks", 36000, "Tick cap per run")
	outputDir := flag.String("output", "", "Directory for sweep.csv and the config used (optional)")
	flag.Parse()

	if *scriptPath == "" {
		log.Fatal("--script is required")
	}

	// Game logging is per-run noise here
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	vs, err := parseVariants(*variants)
	if err != nil {
		log.Fatal(err)
	}
	ss, err := parseSpeeds(*speeds, float32(cfg.Player.Speed))
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		log.Fatalf("failed to read script: %v", err)
	}
	runner, err := NewRunner(data, int32(*maxTicks))
	if err != nil {
		log.Fatalf("invalid script: %v", err)
	}

	specs := Grid(vs, ss)
	fmt.Printf("Running %d replays of %s (%d variants x %d speeds)\n", len(specs), *scriptPath, len(vs), len(ss))

	start := time.Now()
	results, err := runner.RunAll(specs)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	fmt.Printf("%-10s %8s %8s %10s %18s %7s %7s %9s\n",
		"variant", "speed", "ticks", "distance", "final", "clicks", "reached", "cancelled")
	for _, r := range results {
		status := ""
		if !r.Finished {
			status = " (capped)"
		}
		fmt.Printf("%-10s %8.0f %8d %10.1f %18s %7d %7d %9d%s\n",
			r.Variant, r.Speed, r.Ticks, r.Distance,
			fmt.Sprintf("(%.1f, %.1f)", r.FinalX, r.FinalY),
			r.Issued, r.Reached, r.Cancelled, status)
	}
	fmt.Printf("\nSweep complete in %s\n", formatDuration(time.Since(start)))

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	csvPath := filepath.Join(*outputDir, "sweep.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", csvPath, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&results, f); err != nil {
		log.Fatalf("failed to write %s: %v", csvPath, err)
	}

	if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		log.Printf("failed to write config: %v", err)
	}
	fmt.Printf("Results saved to: %s\n", csvPath)
}

// Grid returns every variant/speed pair, variants outermost.
func Grid(variants []game.Variant, speeds []float32) []RunSpec {
	specs := make([]RunSpec, 0, len(variants)*len(speeds))
	for _, v := range variants {
		for _, s := range speeds {
			specs = append(specs, RunSpec{Variant: v, Speed: s})
		}
	}
	return specs
}

func parseVariants(s string) ([]game.Variant, error) {
	var out []game.Variant
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		v, err := game.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no variants in %q", s)
	}
	return out, nil
}

func parseSpeeds(s string, fallback float32) ([]float32, error) {
	if strings.TrimSpace(s) == "" {
		return []float32{fallback}, nil
	}
	var out []float32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid speed %q: %w", part, err)
		}
		if f < 0 {
			return nil, fmt.Errorf("speed must not be negative, got %v", f)
		}
		out = append(out, float32(f))
	}
	return out, nil
}
