package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsData is the state the controls panel displays.
type ControlsData struct {
	Variants []string // Toggle group labels, in order
	Variant  int32    // Index into Variants
	Speed    float32
	MaxSpeed float32
	Systems  []string // Update systems in run order
}

// ControlsResult holds the changes requested this frame.
type ControlsResult struct {
	Variant        int32
	VariantChanged bool
	Speed          float32
	SpeedChanged   bool
	Reload         bool
}

// Merge combines two requests; fields set in o win.
func (c ControlsResult) Merge(o ControlsResult) ControlsResult {
	if o.VariantChanged {
		c.Variant, c.VariantChanged = o.Variant, true
	}
	if o.SpeedChanged {
		c.Speed, c.SpeedChanged = o.Speed, true
	}
	c.Reload = c.Reload || o.Reload
	return c
}

// ControlsPanel renders the left-side panel with raygui widgets.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if c == nil || !c.visible || c.height == 0 {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel and returns what the user changed.
func (c *ControlsPanel) Draw(data ControlsData) ControlsResult {
	var res ControlsResult
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	c.height = padding*2 + lineHeight + 4 + // title
		lineHeight + 28 + // variant toggles
		lineHeight + 28 + // speed slider
		34 + // reload button
		lineHeight + int32(len(data.Systems))*lineHeight
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Controls", x, y, 16, rl.White)
	y += lineHeight + 4

	// Variant selector
	y = r.DrawSectionHeader(x, y, "Variant [1-4]")
	if len(data.Variants) > 0 {
		itemW := (inner - float32(len(data.Variants)-1)*2) / float32(len(data.Variants))
		active := gui.ToggleGroup(
			rl.Rectangle{X: float32(x), Y: float32(y), Width: itemW, Height: 22},
			strings.Join(data.Variants, ";"),
			data.Variant,
		)
		if active != data.Variant {
			res.Variant, res.VariantChanged = active, true
		}
	}
	y += 28

	// Speed slider
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Speed %.0f", data.Speed))
	speed := gui.SliderBar(
		rl.Rectangle{X: float32(x) + 24, Y: float32(y), Width: inner - 60, Height: 20},
		"0", fmt.Sprintf("%.0f", data.MaxSpeed),
		data.Speed, 0, data.MaxSpeed,
	)
	if speed != data.Speed {
		res.Speed, res.SpeedChanged = speed, true
	}
	y += 28

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 26}, "Reload [R]") {
		res.Reload = true
	}
	y += 34

	// Schedule, in run order
	y = r.DrawSectionHeader(x, y, "Systems")
	for i, name := range data.Systems {
		rl.DrawText(fmt.Sprintf("%d. %s", i+1, name), x, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += lineHeight
	}

	return res
}
