package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"w", KeyW, false},
		{"A", KeyA, false},
		{" s ", KeyS, false},
		{"d", KeyD, false},
		{"q", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKey(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStateHoldAndClick(t *testing.T) {
	var s State
	s.Hold(KeyW, KeyD)

	if !s.KeyDown(KeyW) || !s.KeyDown(KeyD) || s.KeyDown(KeyA) {
		t.Errorf("unexpected key state %+v", s.Keys)
	}

	s.Click(10, 20)
	if !s.MousePressed(MouseLeft) || !s.MouseDown(MouseLeft) {
		t.Error("click should press and hold left button")
	}
	if x, y := s.MousePosition(); x != 10 || y != 20 {
		t.Errorf("cursor = (%f, %f), want (10, 20)", x, y)
	}

	s.EndFrame()
	if s.MousePressed(MouseLeft) {
		t.Error("press edge should clear at end of frame")
	}
	if !s.MouseDown(MouseLeft) {
		t.Error("button should stay held after end of frame")
	}

	s.Release()
	if s.MouseDown(MouseLeft) {
		t.Error("release should let go of the button")
	}

	// Out of range values never report pressed
	if s.KeyDown(Key(200)) || s.MouseDown(MouseButton(9)) {
		t.Error("out of range input should be false")
	}
}

const sampleScript = `
steps:
  - ticks: 3
    keys: [w, d]
  - mouse: {x: 900, y: 200}
    click: true
    ticks: 2
  - ticks: 2
    hold: true
`

func TestScriptPlayback(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Len() != 7 {
		t.Errorf("expected 7 frames, got %d", s.Len())
	}

	type frame struct {
		w, d, pressed, down bool
	}
	want := []frame{
		{true, true, false, false},
		{true, true, false, false},
		{true, true, false, false},
		{false, false, true, true},  // click edge
		{false, false, false, false}, // click released
		{false, false, false, true},  // hold
		{false, false, false, true},
	}

	for i, f := range want {
		if s.Done() {
			t.Fatalf("script finished early at frame %d", i)
		}
		got := frame{s.KeyDown(KeyW), s.KeyDown(KeyD), s.MousePressed(MouseLeft), s.MouseDown(MouseLeft)}
		if got != f {
			t.Errorf("frame %d: got %+v, want %+v", i, got, f)
		}
		s.Advance()
	}

	if !s.Done() {
		t.Error("expected script to be done")
	}
	if s.KeyDown(KeyW) || s.MouseDown(MouseLeft) {
		t.Error("finished script should release everything")
	}
	if x, y := s.MousePosition(); x != 900 || y != 200 {
		t.Errorf("cursor should persist after click step, got (%f, %f)", x, y)
	}
}

func TestScriptLoop(t *testing.T) {
	s, err := NewScript([]Step{{Ticks: 1, Keys: []string{"a"}}, {Ticks: 1}}, true)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		wantA := i%2 == 0
		if s.KeyDown(KeyA) != wantA {
			t.Errorf("frame %d: KeyA = %v, want %v", i, s.KeyDown(KeyA), wantA)
		}
		s.Advance()
	}
	if s.Done() {
		t.Error("looping script should never finish")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no steps", "steps: []\n", "no steps"},
		{"unknown key", "steps:\n  - keys: [x]\n", "unknown key"},
		{"negative ticks", "steps:\n  - ticks: -2\n", "negative ticks"},
		{"bad yaml", "steps: {\n", "parsing script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(sampleScript), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if !s.KeyDown(KeyW) {
		t.Error("first frame should hold W")
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing script")
	}
}
