package main

import (
	"os"
	"testing"

	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/game"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func TestParseVariants(t *testing.T) {
	got, err := parseVariants("wasd, click,,combined")
	if err != nil {
		t.Fatal(err)
	}
	want := []game.Variant{game.VariantWasd, game.VariantClick, game.VariantCombined}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseVariants("wasd,teleport"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, err := parseVariants(" , "); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestParseSpeeds(t *testing.T) {
	tests := []struct {
		in      string
		want    []float32
		wantErr bool
	}{
		{"", []float32{300}, false},
		{"100, 200", []float32{100, 200}, false},
		{"0", []float32{0}, false},
		{"fast", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSpeeds(tt.in, 300)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSpeeds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseSpeeds(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("speed %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGrid(t *testing.T) {
	specs := Grid([]game.Variant{game.VariantWasd, game.VariantClick}, []float32{100, 200, 300})
	if len(specs) != 6 {
		t.Fatalf("expected 6 specs, got %d", len(specs))
	}
	if specs[0].Variant != game.VariantWasd || specs[3].Variant != game.VariantClick || specs[4].Speed != 200 {
		t.Errorf("unexpected order %+v", specs)
	}
}

const clickThenLeft = `
steps:
  - mouse: {x: 740, y: 360}
    click: true
  - ticks: 59
  - ticks: 60
    keys: [a]
`

func TestRunner(t *testing.T) {
	r, err := NewRunner([]byte(clickThenLeft), 1000)
	if err != nil {
		t.Fatal(err)
	}

	results, err := r.RunAll([]RunSpec{
		{Variant: game.VariantWasd, Speed: 300},
		{Variant: game.VariantClick, Speed: 300},
		{Variant: game.VariantCombined, Speed: 300},
	})
	if err != nil {
		t.Fatal(err)
	}

	wasd, click, combined := results[0], results[1], results[2]

	// Keyboard only: one second left
	if !wasd.Finished || wasd.Ticks != 120 {
		t.Errorf("wasd run: finished=%v ticks=%d", wasd.Finished, wasd.Ticks)
	}
	if wasd.FinalX > -299 || wasd.FinalX < -301 || wasd.Issued != 0 {
		t.Errorf("wasd run = %+v", wasd)
	}

	// Click only: reaches (100, 0) and ignores the keys
	if click.FinalX != 100 || click.Issued != 1 || click.Reached != 1 || click.Cancelled != 0 {
		t.Errorf("click run = %+v", click)
	}
	if click.Distance < 99.9 || click.Distance > 100.1 {
		t.Errorf("click distance = %v, want 100", click.Distance)
	}

	// Combined: arrives, then walks left from the target
	if combined.FinalX > -199 || combined.FinalX < -201 || combined.Reached != 1 {
		t.Errorf("combined run = %+v", combined)
	}
}

func TestNewRunner_Errors(t *testing.T) {
	if _, err := NewRunner([]byte("steps: []\n"), 10); err == nil {
		t.Error("expected error for empty script")
	}
	if _, err := NewRunner([]byte(clickThenLeft), 0); err == nil {
		t.Error("expected error for zero tick cap")
	}
}
