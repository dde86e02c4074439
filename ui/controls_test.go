package ui

import "testing"

func TestControlsResult_Merge(t *testing.T) {
	hotkey := ControlsResult{Variant: 2, VariantChanged: true}
	panel := ControlsResult{Speed: 120, SpeedChanged: true, Reload: true}

	got := hotkey.Merge(panel)
	if !got.VariantChanged || got.Variant != 2 {
		t.Errorf("variant request lost: %+v", got)
	}
	if !got.SpeedChanged || got.Speed != 120 || !got.Reload {
		t.Errorf("panel request lost: %+v", got)
	}

	// Later variant request wins
	got = got.Merge(ControlsResult{Variant: 3, VariantChanged: true})
	if got.Variant != 3 {
		t.Errorf("variant = %d, want 3", got.Variant)
	}
}

func TestControlsPanel_Contains(t *testing.T) {
	c := NewControlsPanel(10, 100, 200)
	c.height = 300

	if c.Contains(50, 150) {
		t.Error("hidden panel should not capture the mouse")
	}

	c.SetVisible(true)
	tests := []struct {
		x, y float32
		want bool
	}{
		{50, 150, true},
		{10, 100, true},
		{210, 150, false},
		{50, 400, false},
		{5, 150, false},
	}
	for _, tt := range tests {
		if got := c.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	var nilPanel *ControlsPanel
	if nilPanel.Contains(0, 0) {
		t.Error("nil panel should not capture the mouse")
	}
}
