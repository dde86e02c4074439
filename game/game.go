// Package game wires the ECS world, input, schedule and telemetry into a
// runnable demo, with or without a window.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wasd/camera"
	"github.com/pthm-cable/wasd/components"
	"github.com/pthm-cable/wasd/config"
	"github.com/pthm-cable/wasd/input"
	"github.com/pthm-cable/wasd/schedule"
	"github.com/pthm-cable/wasd/telemetry"
	"github.com/pthm-cable/wasd/ui"
)

// Options configures a Game.
type Options struct {
	Variant    Variant
	Headless   bool          // No window; raylib is never called
	Script     *input.Script // Replaces live input when set
	ScriptPath string        // Recorded in run.yaml only
	LogStats   bool          // Log window stats via slog
	OutputDir  string        // CSV and YAML output (empty = disabled)
}

// Game holds the complete game state.
type Game struct {
	opts    Options
	variant Variant

	world *ecs.World

	// Lookups used outside the systems
	playerFilter *ecs.Filter2[components.Transform, components.Player]
	drawFilter   *ecs.Filter2[components.Transform, components.Shape]
	wasdFilter   *ecs.Filter1[components.WasdMove]
	clickFilter  *ecs.Filter1[components.ClickMove]
	wasdMap      *ecs.Map1[components.WasdMove]
	clickMap     *ecs.Map1[components.ClickMove]
	targetMap    *ecs.Map1[components.ClickTarget]

	sched *schedule.Schedule

	camera *camera.Camera
	src    input.Source
	script *input.Script

	// Telemetry
	perf   *telemetry.PerfCollector
	motion *telemetry.MotionCollector
	output *telemetry.OutputManager

	// UI (nil when headless)
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	pending   ui.ControlsResult

	// State
	tick        int32
	paused      bool
	playerSpeed float32

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game and loads opts.Variant.
// config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if opts.Variant >= numVariants {
		return nil, fmt.Errorf("invalid variant %d", opts.Variant)
	}

	g := &Game{
		opts:         opts,
		script:       opts.Script,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		motion:       telemetry.NewMotionCollector(cfg.Telemetry.StatsWindow),
		playerSpeed:  float32(cfg.Player.Speed),
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.camera.MinZoom = float32(cfg.Camera.MinZoom)
	g.camera.MaxZoom = float32(cfg.Camera.MaxZoom)

	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 110, 260)
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-290, 10, 280)
	}

	// Input: script replay wins, then the window, then an idle state
	switch {
	case opts.Script != nil:
		g.src = opts.Script
	case !opts.Headless:
		g.src = rlSource{blocked: g.controls.Contains}
	default:
		g.src = &input.State{}
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	err = g.output.WriteRun(telemetry.RunInfo{
		Variant:  opts.Variant.String(),
		Headless: opts.Headless,
		Script:   opts.ScriptPath,
		Started:  time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to write run info", "error", err)
	}
	if g.output != nil {
		slog.Info("output enabled", "dir", g.output.Dir(), "run_id", g.output.RunID())
	}

	if err := g.Load(opts.Variant); err != nil {
		g.output.Close()
		return nil, err
	}

	return g, nil
}

// Load discards the current world and builds the scene for v.
// The player is spawned by the Startup stage on the next tick.
func (g *Game) Load(v Variant) error {
	if v >= numVariants {
		return fmt.Errorf("invalid variant %d", v)
	}

	// Close the telemetry window of the outgoing scene
	if g.world != nil {
		g.flushMotion()
	}

	world := ecs.NewWorld()
	g.world = world
	g.variant = v
	g.playerFilter = ecs.NewFilter2[components.Transform, components.Player](world)
	g.drawFilter = ecs.NewFilter2[components.Transform, components.Shape](world)
	g.wasdFilter = ecs.NewFilter1[components.WasdMove](world)
	g.clickFilter = ecs.NewFilter1[components.ClickMove](world)
	g.wasdMap = ecs.NewMap1[components.WasdMove](world)
	g.clickMap = ecs.NewMap1[components.ClickMove](world)
	g.targetMap = ecs.NewMap1[components.ClickTarget](world)

	g.motion.Reset()

	sched, err := g.buildSchedule()
	if err != nil {
		return fmt.Errorf("building %s schedule: %w", v, err)
	}
	g.sched = sched

	slog.Info("scene loaded",
		"variant", v.String(),
		"tick", g.tick,
		"systems", len(sched.Systems(schedule.Update)),
	)
	return nil
}

// setupScene spawns the backdrop and the player for the current variant.
func (g *Game) setupScene() {
	cfg := config.Cfg()

	bd := cfg.Backdrop
	backdrop := ecs.NewMap3[components.Transform, components.Shape, components.Backdrop](g.world)
	backdrop.NewEntity(
		&components.Transform{X: float32(bd.X), Y: float32(bd.Y), Z: float32(bd.Z)},
		&components.Shape{
			Kind:   components.ShapeRect,
			Width:  float32(bd.Width),
			Height: float32(bd.Height),
			Color:  cfg.Derived.BackdropColor,
		},
		&components.Backdrop{},
	)

	tf := components.Transform{Z: float32(cfg.Player.Z)}
	shape := components.Shape{
		Kind:   components.ShapePolygon,
		Sides:  int32(cfg.Player.Sides),
		Radius: float32(cfg.Player.Radius),
		Color:  cfg.Derived.PlayerColor,
	}
	tag := components.Player{}

	switch g.variant {
	case VariantShapes:
		m := ecs.NewMap3[components.Transform, components.Shape, components.Player](g.world)
		m.NewEntity(&tf, &shape, &tag)

	case VariantWasd:
		m := ecs.NewMap5[
			components.Transform,
			components.Shape,
			components.Player,
			components.WasdInput,
			components.WasdMove,
		](g.world)
		m.NewEntity(&tf, &shape, &tag,
			&components.WasdInput{},
			&components.WasdMove{Speed: g.playerSpeed},
		)

	case VariantClick:
		m := ecs.NewMap5[
			components.Transform,
			components.Shape,
			components.Player,
			components.ClickTarget,
			components.ClickMove,
		](g.world)
		m.NewEntity(&tf, &shape, &tag,
			&components.ClickTarget{},
			&components.ClickMove{Speed: g.playerSpeed},
		)

	case VariantCombined:
		m := ecs.NewMap7[
			components.Transform,
			components.Shape,
			components.Player,
			components.WasdInput,
			components.WasdMove,
			components.ClickTarget,
			components.ClickMove,
		](g.world)
		m.NewEntity(&tf, &shape, &tag,
			&components.WasdInput{},
			&components.WasdMove{Speed: g.playerSpeed},
			&components.ClickTarget{},
			&components.ClickMove{Speed: g.playerSpeed},
		)
	}

	slog.Debug("scene spawned", "variant", g.variant.String(), "tick", g.tick)
}

// step advances the simulation by one tick of dt seconds.
func (g *Game) step(dt float32) {
	g.perf.StartTick()
	if err := g.sched.Run(dt); err != nil {
		slog.Error("schedule failed", "tick", g.tick, "error", err)
	}
	g.perf.EndTick()
	g.tick++
}

// UpdateHeadless advances one fixed tick without touching raylib.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	g.step(config.Cfg().Derived.DT32)
	g.advanceScript()
}

func (g *Game) advanceScript() {
	if g.script != nil {
		g.script.Advance()
	}
}

// ScriptDone reports whether a non-looping input script has finished.
// Always false without a script.
func (g *Game) ScriptDone() bool {
	return g.script != nil && g.script.Done()
}

// Tick returns the number of simulation ticks run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Variant returns the loaded variant.
func (g *Game) Variant() Variant {
	return g.variant
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// Camera returns the primary camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// playerStatus is what the HUD and telemetry read about the player.
type playerStatus struct {
	OK        bool
	Transform components.Transform
	Speed     float32
	HasTarget bool
	Target    components.ClickTarget
}

func (g *Game) status() playerStatus {
	var st playerStatus

	query := g.playerFilter.Query()
	if !query.Next() {
		return st
	}
	e := query.Entity()
	tf, _ := query.Get()
	st.OK = true
	st.Transform = *tf
	query.Close()

	if g.wasdMap.Has(e) {
		st.Speed = g.wasdMap.Get(e).CurrentSpeed()
	}
	if g.clickMap.Has(e) {
		if s := g.clickMap.Get(e).CurrentSpeed(); s > st.Speed {
			st.Speed = s
		}
	}
	if g.targetMap.Has(e) {
		st.HasTarget = true
		st.Target = *g.targetMap.Get(e)
	}
	return st
}

// Player returns the player's transform, or false before it is spawned.
func (g *Game) Player() (components.Transform, bool) {
	st := g.status()
	return st.Transform, st.OK
}

// PlayerTarget returns the player's click target, or false when the
// variant has none.
func (g *Game) PlayerTarget() (components.ClickTarget, bool) {
	st := g.status()
	return st.Target, st.HasTarget
}

// PlayerSpeed returns the configured movement speed.
func (g *Game) PlayerSpeed() float32 {
	return g.playerSpeed
}

// SetPlayerSpeed changes movement speed for the current and future scenes.
func (g *Game) SetPlayerSpeed(speed float32) {
	if speed < 0 {
		speed = 0
	}
	g.playerSpeed = speed

	wq := g.wasdFilter.Query()
	for wq.Next() {
		mv := wq.Get()
		mv.Speed = speed
	}
	cq := g.clickFilter.Query()
	for cq.Next() {
		mv := cq.Get()
		mv.Speed = speed
	}
}

// Unload flushes telemetry and closes output files.
func (g *Game) Unload() {
	g.flushMotion()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
