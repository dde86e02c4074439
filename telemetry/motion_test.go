package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestMotionCollector_Window(t *testing.T) {
	m := NewMotionCollector(1.0)
	dt := float32(0.25)

	// Four ticks moving right at 40 u/s (10 units per tick), window closes on the 4th
	var x float32
	for tick := int32(0); tick < 3; tick++ {
		x += 10
		if _, done := m.Record(tick, dt, MotionSample{X: x, Speed: 40}); done {
			t.Fatalf("window closed early at tick %d", tick)
		}
	}
	x += 10
	stats, done := m.Record(3, dt, MotionSample{X: x, Speed: 40, Issued: 2, Reached: 1})
	if !done {
		t.Fatal("expected window to close after 1s")
	}

	// First sample only seeds the previous position, so 3 gaps of 10
	if math.Abs(stats.Distance-30) > 1e-6 {
		t.Errorf("distance = %v, want 30", stats.Distance)
	}
	if stats.MeanSpeed != 40 || stats.SpeedStd != 0 || stats.MaxSpeed != 40 {
		t.Errorf("unexpected speed stats %+v", stats)
	}
	if stats.MovingFrac != 1 {
		t.Errorf("moving frac = %v, want 1", stats.MovingFrac)
	}
	if stats.ClicksIssued != 2 || stats.TargetsReached != 1 {
		t.Errorf("clicks=%d reached=%d, want 2/1", stats.ClicksIssued, stats.TargetsReached)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 3 || stats.Ticks != 4 {
		t.Errorf("unexpected window bounds %+v", stats)
	}
	if stats.PosX != 40 {
		t.Errorf("final x = %v, want 40", stats.PosX)
	}

	// Second window: standing still, counters diffed against the first window
	for tick := int32(4); tick < 8; tick++ {
		stats, done = m.Record(tick, dt, MotionSample{X: x, Issued: 2, Reached: 2})
	}
	if !done {
		t.Fatal("expected second window to close")
	}
	if stats.Distance != 0 || stats.MovingFrac != 0 {
		t.Errorf("expected no motion, got %+v", stats)
	}
	if stats.ClicksIssued != 0 || stats.TargetsReached != 1 {
		t.Errorf("clicks=%d reached=%d, want 0/1", stats.ClicksIssued, stats.TargetsReached)
	}
	if stats.WindowStartTick != 4 {
		t.Errorf("second window should start at tick 4, got %d", stats.WindowStartTick)
	}
	if math.Abs(stats.SimTimeSec-2) > 1e-6 {
		t.Errorf("sim time = %v, want 2", stats.SimTimeSec)
	}
}

func TestMotionCollector_SpeedSpread(t *testing.T) {
	m := NewMotionCollector(10)
	for i, s := range []float32{0, 100, 200, 300} {
		m.Record(int32(i), 0.1, MotionSample{Speed: s})
	}

	stats, ok := m.Flush(3)
	if !ok {
		t.Fatal("expected flush to produce stats")
	}
	if stats.MeanSpeed != 150 {
		t.Errorf("mean = %v, want 150", stats.MeanSpeed)
	}
	// Sample std dev of {0,100,200,300}
	if math.Abs(stats.SpeedStd-129.0994) > 0.001 {
		t.Errorf("std = %v, want ~129.1", stats.SpeedStd)
	}
	if stats.SpeedP50 != 150 {
		t.Errorf("p50 = %v, want 150", stats.SpeedP50)
	}
	if stats.MovingFrac != 0.75 {
		t.Errorf("moving frac = %v, want 0.75", stats.MovingFrac)
	}

	if _, ok := m.Flush(4); ok {
		t.Error("flush of an empty window should report false")
	}
}

func TestMotionCollector_Reset(t *testing.T) {
	m := NewMotionCollector(1)
	m.Record(0, 0.5, MotionSample{X: 100, Issued: 5})
	m.Reset()

	m.Record(0, 0.5, MotionSample{X: 0, Issued: 0})
	stats, done := m.Record(1, 0.5, MotionSample{X: 3, Issued: 1})
	if !done {
		t.Fatal("expected window to close")
	}
	if stats.Distance != 3 {
		t.Errorf("reset should forget old position, distance = %v", stats.Distance)
	}
	if stats.ClicksIssued != 1 {
		t.Errorf("reset should forget old counters, clicks = %d", stats.ClicksIssued)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-6 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
}
