package telemetry

import (
	"log/slog"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time            { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCaptureWasd)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseMoveWasd)
		clock.advance(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("expected 400us average tick, got %v", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseCaptureWasd] != 100*time.Microsecond {
		t.Errorf("capture avg = %v, want 100us", stats.PhaseAvg[PhaseCaptureWasd])
	}
	if pct := stats.PhasePct[PhaseMoveWasd]; pct < 74.9 || pct > 75.1 {
		t.Errorf("move pct = %v, want 75", pct)
	}
	if stats.TicksPerSecond < 2499 || stats.TicksPerSecond > 2501 {
		t.Errorf("ticks/sec = %v, want 2500", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5) // Small window

	// Five slow ticks, then five fast ones push the slow ones out
	for i := 0; i < 10; i++ {
		d := time.Millisecond
		if i >= 5 {
			d = 100 * time.Microsecond
		}
		pc.StartTick()
		pc.StartPhase(PhaseMoveClick)
		clock.advance(d)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.MaxTickDuration != 100*time.Microsecond {
		t.Errorf("old samples should have rolled out, max = %v", stats.MaxTickDuration)
	}
	if stats.MinTickDuration != 100*time.Microsecond {
		t.Errorf("min = %v, want 100us", stats.MinTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0) // falls back to default window

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("expected 20ms frame, got %v", stats.FrameDuration)
	}
	if stats.FPS < 49.9 || stats.FPS > 50.1 {
		t.Errorf("expected 50 fps, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSVAndLogValue(t *testing.T) {
	pc, clock := newTestCollector(4)
	pc.StartTick()
	pc.StartPhase(PhaseCaptureClick)
	clock.advance(time.Millisecond)
	pc.StartPhase(PhaseMoveClick)
	clock.advance(time.Millisecond)
	pc.EndTick()

	stats := pc.Stats()
	row := stats.ToCSV(42)
	if row.WindowEnd != 42 {
		t.Errorf("window end = %d", row.WindowEnd)
	}
	if row.CaptureClickPct != 50 || row.MoveClickPct != 50 {
		t.Errorf("unexpected pct split %v / %v", row.CaptureClickPct, row.MoveClickPct)
	}
	if row.AvgTickUS != 2000 {
		t.Errorf("avg tick us = %d, want 2000", row.AvgTickUS)
	}

	v := stats.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}
	found := false
	for _, a := range v.Group() {
		if a.Key == PhaseMoveClick+"_pct" {
			found = true
		}
	}
	if !found {
		t.Error("expected move_click_pct attribute")
	}
}
