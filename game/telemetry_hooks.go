package game

import (
	"log/slog"

	"github.com/pthm-cable/wasd/telemetry"
)

// recordTelemetry samples the player once per tick.
func (g *Game) recordTelemetry(dt float32) {
	st := g.status()
	if !st.OK {
		return
	}

	stats, done := g.motion.Record(g.tick, dt, telemetry.MotionSample{
		X:       st.Transform.X,
		Y:       st.Transform.Y,
		Speed:   st.Speed,
		Issued:  st.Target.Issued,
		Reached: st.Target.Reached,
	})
	if done {
		g.emitWindow(stats)
	}
}

// flushMotion emits a partially filled window, e.g. before a reload.
func (g *Game) flushMotion() {
	if stats, ok := g.motion.Flush(g.tick - 1); ok {
		g.emitWindow(stats)
	}
}

// emitWindow logs and writes one closed stats window.
func (g *Game) emitWindow(stats telemetry.MotionStats) {
	perf := g.perf.Stats()

	if g.opts.LogStats {
		slog.Info("motion", "variant", g.variant.String(), "stats", stats)
		slog.Info("perf", "stats", perf)
	}

	if err := g.output.WriteMotion(stats); err != nil {
		slog.Error("failed to write motion", "error", err)
	}
	if err := g.output.WritePerf(perf, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
