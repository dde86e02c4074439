package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/wasd/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager and no error, got %v, %v", om, err)
	}

	// Every method is a no-op on nil
	if err := om.WriteMotion(MotionStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteRun(RunInfo{}); err != nil {
		t.Error(err)
	}
	if om.RunID() != "" || om.Dir() != "" {
		t.Error("nil manager should have empty id and dir")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_MotionCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	rows := []MotionStats{
		{WindowEndTick: 59, SimTimeSec: 1, Ticks: 60, Distance: 300, MeanSpeed: 300, PosX: 300},
		{WindowEndTick: 119, SimTimeSec: 2, Ticks: 60, ClicksIssued: 1, TargetsReached: 1, PosY: -20},
	}
	for _, r := range rows {
		if err := om.WriteMotion(r); err != nil {
			t.Fatalf("WriteMotion: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []MotionStats
	f, err := os.Open(filepath.Join(dir, "motion.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("reading motion.csv: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 rows (single header), got %d", len(got))
	}
	if got[0].Distance != 300 || got[0].PosX != 300 {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].ClicksIssued != 1 || got[1].PosY != -20 {
		t.Errorf("row 1 = %+v", got[1])
	}
}

func TestOutputManager_PerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseMoveWasd: 40},
	}
	for i := int32(0); i < 3; i++ {
		if err := om.WritePerf(stats, i*60); err != nil {
			t.Fatal(err)
		}
	}
	om.Close()

	var got []PerfStatsCSV
	f, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[2].WindowEnd != 120 || got[2].AvgTickUS != 250 || got[2].MoveWasdPct != 40 {
		t.Errorf("unexpected last row %+v", got[2])
	}
}

func TestOutputManager_RunAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if _, err := uuid.Parse(om.RunID()); err != nil {
		t.Errorf("run id %q is not a uuid: %v", om.RunID(), err)
	}

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := om.WriteRun(RunInfo{Variant: "click", Headless: true, Started: started}); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var info RunInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		t.Fatal(err)
	}
	if info.ID != om.RunID() || info.Variant != "click" || !info.Started.Equal(started) {
		t.Errorf("unexpected run info %+v", info)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not reload: %v", err)
	}
}
