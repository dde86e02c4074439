package game

import (
	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/schedule"
	"github.com/pthm-cable/wasd/systems"
	"github.com/pthm-cable/wasd/telemetry"
)

// buildSchedule registers the systems the current variant needs.
// Update systems run chained: capture, override, movement, telemetry.
func (g *Game) buildSchedule() (*schedule.Schedule, error) {
	cfg := config.Cfg()
	v := g.variant

	s := schedule.New()
	s.SetTimer(g.perf)

	s.Add(schedule.System{
		ID:          telemetry.PhaseSetup,
		Name:        "Setup",
		Description: "Spawns the backdrop and the player",
		Stage:       schedule.Startup,
		Run:         func(float32) { g.setupScene() },
	})

	var update []schedule.System

	if v.HasWasd() {
		capture := systems.NewWasdCaptureSystem(g.world, g.src)
		update = append(update, schedule.System{
			ID:          telemetry.PhaseCaptureWasd,
			Name:        "WASD Capture",
			Description: "Reads W/A/S/D into a unit direction",
			Run:         func(float32) { capture.Update() },
		})
	}

	if v.HasClick() {
		capture := systems.NewClickCaptureSystem(g.world, g.src, g.camera)
		capture.FollowWhileHeld = cfg.Click.FollowWhileHeld
		update = append(update, schedule.System{
			ID:          telemetry.PhaseCaptureClick,
			Name:        "Click Capture",
			Description: "Projects left clicks into world-space targets",
			Run:         func(float32) { capture.Update() },
		})
	}

	if v.HasWasd() && v.HasClick() {
		override := systems.NewWasdOverridesClickSystem(g.world)
		update = append(update, schedule.System{
			ID:          telemetry.PhaseWasdOverridesClick,
			Name:        "WASD Override",
			Description: "Keyboard input cancels the click target",
			Run:         func(float32) { override.Update() },
		})
	}

	if v.HasWasd() {
		move := systems.NewWasdMovementSystem(g.world)
		update = append(update, schedule.System{
			ID:          telemetry.PhaseMoveWasd,
			Name:        "WASD Movement",
			Description: "Integrates keyboard velocity",
			Run:         move.Update,
		})
	}

	if v.HasClick() {
		move := systems.NewClickMovementSystem(g.world)
		update = append(update, schedule.System{
			ID:          telemetry.PhaseMoveClick,
			Name:        "Click Movement",
			Description: "Steps toward the click target without overshooting",
			Run:         move.Update,
		})
	}

	update = append(update, schedule.System{
		ID:          telemetry.PhaseTelemetry,
		Name:        "Telemetry",
		Description: "Samples player motion into stats windows",
		Run:         g.recordTelemetry,
	})

	s.Chain(schedule.Update, update...)

	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}
