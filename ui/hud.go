package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Variant string
	Tick    int32
	FPS     int32
	Paused  bool
	Zoom    float32

	HasPlayer bool
	PlayerX   float32
	PlayerY   float32
	Speed     float32

	HasTarget    bool
	TargetActive bool
	TargetX      float32
	TargetY      float32
	Issued       uint32
	Reached      uint32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(fmt.Sprintf("%s - %s", data.Title, data.Variant), 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Zoom: %.2fx", data.Tick, data.FPS, data.Zoom),
		10, 35, 16, rl.LightGray,
	)

	player := "Player: -"
	if data.HasPlayer {
		player = fmt.Sprintf("Player: %s | Speed: %.0f", fmtVec(data.PlayerX, data.PlayerY), data.Speed)
	}
	rl.DrawText(player, 10, 55, 16, rl.LightGray)

	if data.HasTarget {
		target := "Target: none"
		if data.TargetActive {
			target = "Target: " + fmtVec(data.TargetX, data.TargetY)
		}
		rl.DrawText(
			fmt.Sprintf("%s | Clicks: %d | Reached: %d", target, data.Issued, data.Reached),
			10, 75, 16, rl.LightGray,
		)
	}

	// Status
	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfRow is one system's share of the tick.
type PerfRow struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Total time.Duration
	Rows  []PerfRow // In run order
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	padding := r.Theme.Padding

	height := int32(len(data.Rows)+2)*(r.Theme.LineHeight+2) + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "System Performance")
	y = r.DrawLabelValue(x, y, "Tick", data.Total.Round(time.Microsecond).String())

	for _, row := range data.Rows {
		caption := fmt.Sprintf("%5.1f%%", row.Pct)
		y = r.DrawBar(x, y, row.Name, float32(row.Pct/100), caption, p.width-padding*2)
	}
}
