package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MotionSample is the player state observed at the end of a tick.
type MotionSample struct {
	X, Y    float32
	Speed   float32 // World units per second
	Issued  uint32  // Cumulative click targets set
	Reached uint32  // Cumulative click targets arrived at
}

// MotionStats holds aggregated player movement for a time window.
type MotionStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	Distance   float64 `csv:"distance"`
	MeanSpeed  float64 `csv:"mean_speed"`
	SpeedStd   float64 `csv:"speed_std"`
	SpeedP50   float64 `csv:"speed_p50"`
	SpeedP90   float64 `csv:"speed_p90"`
	MaxSpeed   float64 `csv:"max_speed"`
	MovingFrac float64 `csv:"moving_frac"`

	ClicksIssued   int `csv:"clicks_issued"`
	TargetsReached int `csv:"targets_reached"`

	PosX float64 `csv:"pos_x"`
	PosY float64 `csv:"pos_y"`
}

// MotionCollector accumulates MotionSamples into fixed sim-time windows.
type MotionCollector struct {
	windowSec float64

	// Current window
	startTick int32
	elapsed   float64
	speeds    []float64
	distance  float64
	moving    int

	// Running state
	simTime        float64
	last           MotionSample
	hasLast        bool
	issuedAtStart  uint32
	reachedAtStart uint32
}

// NewMotionCollector creates a collector that closes a window every windowSec
// seconds of simulated time.
func NewMotionCollector(windowSec float64) *MotionCollector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &MotionCollector{windowSec: windowSec}
}

// Record adds the sample for tick. When the window fills it returns the
// window's stats and true, and starts a new window.
func (m *MotionCollector) Record(tick int32, dt float32, s MotionSample) (MotionStats, bool) {
	if !m.hasLast {
		m.last = s
		m.hasLast = true
		m.issuedAtStart = s.Issued
		m.reachedAtStart = s.Reached
		m.startTick = tick
	}

	m.distance += math.Hypot(float64(s.X-m.last.X), float64(s.Y-m.last.Y))
	m.speeds = append(m.speeds, float64(s.Speed))
	if s.Speed > 0 {
		m.moving++
	}
	m.elapsed += float64(dt)
	m.simTime += float64(dt)
	m.last = s

	if m.elapsed+1e-9 < m.windowSec {
		return MotionStats{}, false
	}

	stats := m.flush(tick)
	return stats, true
}

// Flush closes the current window early (e.g. at shutdown).
// Returns false if nothing was recorded since the last window.
func (m *MotionCollector) Flush(tick int32) (MotionStats, bool) {
	if len(m.speeds) == 0 {
		return MotionStats{}, false
	}
	return m.flush(tick), true
}

func (m *MotionCollector) flush(tick int32) MotionStats {
	n := len(m.speeds)
	mean, std := stat.MeanStdDev(m.speeds, nil)
	if n < 2 {
		std = 0
	}

	sorted := append([]float64(nil), m.speeds...)
	sort.Float64s(sorted)

	stats := MotionStats{
		WindowStartTick: m.startTick,
		WindowEndTick:   tick,
		SimTimeSec:      m.simTime,
		Ticks:           n,
		Distance:        m.distance,
		MeanSpeed:       mean,
		SpeedStd:        std,
		SpeedP50:        Percentile(sorted, 0.5),
		SpeedP90:        Percentile(sorted, 0.9),
		MaxSpeed:        sorted[n-1],
		MovingFrac:      float64(m.moving) / float64(n),
		ClicksIssued:    int(m.last.Issued - m.issuedAtStart),
		TargetsReached:  int(m.last.Reached - m.reachedAtStart),
		PosX:            float64(m.last.X),
		PosY:            float64(m.last.Y),
	}

	// Reset window, keeping running state
	m.startTick = tick + 1
	m.elapsed = 0
	m.speeds = m.speeds[:0]
	m.distance = 0
	m.moving = 0
	m.issuedAtStart = m.last.Issued
	m.reachedAtStart = m.last.Reached

	return stats
}

// Reset forgets all state, for when the scene is rebuilt.
func (m *MotionCollector) Reset() {
	*m = MotionCollector{windowSec: m.windowSec}
}

// Percentile returns the p-th percentile of sorted values (p in [0, 1]).
// Uses linear interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LogValue implements slog.LogValuer for structured logging.
func (s MotionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("distance", s.Distance),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("moving_frac", s.MovingFrac),
		slog.Int("clicks", s.ClicksIssued),
		slog.Int("reached", s.TargetsReached),
		slog.Float64("x", s.PosX),
		slog.Float64("y", s.PosY),
	)
}
