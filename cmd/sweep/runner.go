package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/wasd/game"
	"github.com/pthm-cable/wasd/input"
)

// RunSpec is one cell of the sweep grid.
type RunSpec struct {
	Variant game.Variant
	Speed   float32
}

// RunResult summarizes a single headless replay.
type RunResult struct {
	Variant   string  `csv:"variant"`
	Speed     float32 `csv:"speed"`
	Ticks     int32   `csv:"ticks"`
	Finished  bool    `csv:"finished"` // Script completed before the tick cap
	Distance  float64 `csv:"distance"`
	FinalX    float32 `csv:"final_x"`
	FinalY    float32 `csv:"final_y"`
	Issued    uint32  `csv:"clicks_issued"`
	Reached   uint32  `csv:"targets_reached"`
	Cancelled uint32  `csv:"targets_cancelled"`
}

// Runner replays a script against each RunSpec.
type Runner struct {
	script   []byte // Raw YAML, parsed fresh per run
	maxTicks int32
}

// NewRunner validates the script once up front.
func NewRunner(script []byte, maxTicks int32) (*Runner, error) {
	if _, err := input.ParseScript(script); err != nil {
		return nil, err
	}
	if maxTicks <= 0 {
		return nil, fmt.Errorf("max ticks must be positive, got %d", maxTicks)
	}
	return &Runner{script: script, maxTicks: maxTicks}, nil
}

// RunAll evaluates specs in order, stopping at the first failure.
func (r *Runner) RunAll(specs []RunSpec) ([]RunResult, error) {
	results := make([]RunResult, 0, len(specs))
	for _, spec := range specs {
		res, err := r.Run(spec)
		if err != nil {
			return nil, fmt.Errorf("%s at speed %.0f: %w", spec.Variant, spec.Speed, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Run replays the script once.
func (r *Runner) Run(spec RunSpec) (RunResult, error) {
	script, err := input.ParseScript(r.script)
	if err != nil {
		return RunResult{}, err
	}

	g, err := game.NewGameWithOptions(game.Options{
		Variant:  spec.Variant,
		Headless: true,
		Script:   script,
	})
	if err != nil {
		return RunResult{}, err
	}
	defer g.Unload()
	g.SetPlayerSpeed(spec.Speed)

	res := RunResult{Variant: spec.Variant.String(), Speed: spec.Speed}

	var lastX, lastY float32
	var seen bool
	for g.Tick() < r.maxTicks && !g.ScriptDone() {
		g.UpdateHeadless()

		tf, ok := g.Player()
		if !ok {
			continue
		}
		if seen {
			res.Distance += math.Hypot(float64(tf.X-lastX), float64(tf.Y-lastY))
		}
		lastX, lastY, seen = tf.X, tf.Y, true
	}

	res.Ticks = g.Tick()
	res.Finished = g.ScriptDone()
	res.FinalX, res.FinalY = lastX, lastY
	if tgt, ok := g.PlayerTarget(); ok {
		res.Issued = tgt.Issued
		res.Reached = tgt.Reached
		// Held-button retargets can arrive without a new click
		if tgt.Issued > tgt.Reached {
			res.Cancelled = tgt.Issued - tgt.Reached
			if tgt.Active {
				res.Cancelled-- // still travelling
			}
		}
	}
	return res, nil
}
