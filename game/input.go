package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/ui"
)

// Update runs one graphical frame: runtime controls, then a tick with the
// frame time clamped to physics.max_frame_dt.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()
	g.applyControls()

	if g.paused {
		return
	}

	dt := rl.GetFrameTime()
	if max := config.Cfg().Derived.MaxFrameDT32; max > 0 && dt > max {
		dt = max
	}
	g.step(dt)
	g.advanceScript()
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Variant hotkeys 1-4
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour} {
		if rl.IsKeyPressed(key) {
			g.pending.Variant = int32(i)
			g.pending.VariantChanged = true
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.pending.Reload = true
	}

	if rl.IsKeyPressed(rl.KeyTab) && g.controls != nil {
		g.controls.Toggle()
	}

	// Camera controls
	g.handleCameraInput()
}

// applyControls acts on requests from hotkeys and the controls panel.
func (g *Game) applyControls() {
	req := g.pending
	g.pending = ui.ControlsResult{}

	if req.SpeedChanged {
		g.SetPlayerSpeed(req.Speed)
	}

	switch {
	case req.VariantChanged && Variant(req.Variant) != g.variant:
		if err := g.Load(Variant(req.Variant)); err != nil {
			slog.Error("failed to switch variant", "variant", req.Variant, "error", err)
		}
	case req.Reload || req.VariantChanged:
		if err := g.Load(g.variant); err != nil {
			slog.Error("failed to reload", "variant", g.variant.String(), "error", err)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	cfg := config.Cfg()

	// Camera.Pan divides by zoom, so this is constant on screen
	panSpeed := float32(cfg.Camera.PanSpeed)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}

	step := float32(cfg.Camera.ZoomStep)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(step)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(1 / step)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
