package game

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wasd/components"
	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/schedule"
	"github.com/pthm-cable/wasd/ui"
)

var (
	clearColor  = rl.Color{R: 43, G: 44, B: 47, A: 255}
	axisColor   = rl.Color{R: 70, G: 72, B: 78, A: 255}
	markerColor = rl.Color{R: 240, G: 220, B: 90, A: 255}
)

const controlsLegend = "WASD: move | Click: go to | 1-4: variant | R: reload | Space: pause | Tab: panel | Arrows/Wheel: camera | Home: reset"

// drawItem is a shape queued for depth-sorted drawing.
type drawItem struct {
	tf    components.Transform
	shape components.Shape
}

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(clearColor)

	g.drawAxes()
	g.drawShapes()
	g.drawTarget()
	g.drawUI()

	rl.EndDrawing()
}

// drawAxes draws the world origin cross.
func (g *Game) drawAxes() {
	ox, oy := g.camera.WorldToScreen(0, 0)
	rl.DrawLineV(rl.Vector2{X: 0, Y: oy}, rl.Vector2{X: g.screenWidth, Y: oy}, axisColor)
	rl.DrawLineV(rl.Vector2{X: ox, Y: 0}, rl.Vector2{X: ox, Y: g.screenHeight}, axisColor)
}

// drawShapes draws every Transform+Shape entity back to front.
func (g *Game) drawShapes() {
	var items []drawItem
	query := g.drawFilter.Query()
	for query.Next() {
		tf, shape := query.Get()
		items = append(items, drawItem{tf: *tf, shape: *shape})
	}

	// Lower Z is further back; equal Z keeps spawn order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].tf.Z < items[j].tf.Z
	})

	zoom := g.camera.Zoom
	for _, it := range items {
		sx, sy := g.camera.WorldToScreen(it.tf.X, it.tf.Y)
		col := toRL(it.shape.Color)

		switch it.shape.Kind {
		case components.ShapePolygon:
			if !g.camera.IsVisible(it.tf.X, it.tf.Y, it.shape.Radius) {
				continue
			}
			// -90 puts a vertex straight up
			rl.DrawPoly(rl.Vector2{X: sx, Y: sy}, it.shape.Sides, it.shape.Radius*zoom, -90, col)

		case components.ShapeRect:
			w := it.shape.Width * zoom
			h := it.shape.Height * zoom
			rl.DrawRectanglePro(
				rl.Rectangle{X: sx, Y: sy, Width: w, Height: h},
				rl.Vector2{X: w / 2, Y: h / 2},
				0, col,
			)
		}
	}
}

// drawTarget marks the active click target and the path to it.
func (g *Game) drawTarget() {
	st := g.status()
	if !st.OK || !st.HasTarget || !st.Target.Active {
		return
	}

	px, py := g.camera.WorldToScreen(st.Transform.X, st.Transform.Y)
	tx, ty := g.camera.WorldToScreen(st.Target.X, st.Target.Y)
	r := float32(config.Cfg().Click.MarkerRadius)

	rl.DrawLineV(rl.Vector2{X: px, Y: py}, rl.Vector2{X: tx, Y: ty}, rl.Fade(markerColor, 0.4))
	rl.DrawCircleLines(int32(tx), int32(ty), r, markerColor)
	rl.DrawCircleV(rl.Vector2{X: tx, Y: ty}, r/3, markerColor)
}

// drawUI draws the HUD, legend and controls panel.
func (g *Game) drawUI() {
	if g.hud == nil {
		return
	}

	st := g.status()
	g.hud.Draw(ui.HUDData{
		Title:        config.Cfg().Screen.Title,
		Variant:      g.variant.String(),
		Tick:         g.tick,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Zoom:         g.camera.Zoom,
		HasPlayer:    st.OK,
		PlayerX:      st.Transform.X,
		PlayerY:      st.Transform.Y,
		Speed:        st.Speed,
		HasTarget:    st.HasTarget,
		TargetActive: st.Target.Active,
		TargetX:      st.Target.X,
		TargetY:      st.Target.Y,
		Issued:       st.Target.Issued,
		Reached:      st.Target.Reached,
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	if g.controls == nil || !g.controls.IsVisible() {
		return
	}

	names := make([]string, 0, numVariants)
	for _, v := range Variants() {
		names = append(names, v.String())
	}
	var systemNames []string
	for _, sys := range g.sched.Systems(schedule.Update) {
		systemNames = append(systemNames, sys.Name)
	}

	maxSpeed := float32(config.Cfg().Player.Speed) * 3
	if maxSpeed < g.playerSpeed {
		maxSpeed = g.playerSpeed
	}

	res := g.controls.Draw(ui.ControlsData{
		Variants: names,
		Variant:  int32(g.variant),
		Speed:    g.playerSpeed,
		MaxSpeed: maxSpeed,
		Systems:  systemNames,
	})
	g.pending = g.pending.Merge(res)

	g.drawPerfPanel()
}

// drawPerfPanel shows each update system's share of the tick.
func (g *Game) drawPerfPanel() {
	stats := g.perf.Stats()
	data := ui.PerfPanelData{Total: stats.AvgTickDuration}
	for _, sys := range g.sched.Systems(schedule.Update) {
		data.Rows = append(data.Rows, ui.PerfRow{
			Name: sys.Name,
			Avg:  stats.PhaseAvg[sys.ID],
			Pct:  stats.PhasePct[sys.ID],
		})
	}

	g.perfPanel.SetPosition(int32(g.screenWidth)-290, 10)
	g.perfPanel.Draw(data)
}

func toRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
