// Package schedule orders and runs per-frame systems in stages.
//
// Systems are registered with an ID and optional After constraints, then
// Build sorts each stage into a stable order: constraints first, insertion
// order for everything else. Startup systems run once, on the first Run.
package schedule

import (
	"errors"
	"fmt"
	"slices"
)

// Stage selects when a system runs.
type Stage uint8

const (
	Startup Stage = iota // Once, before the first Update
	Update               // Every frame
	numStages
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case Startup:
		return "startup"
	case Update:
		return "update"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// System describes one unit of per-frame work.
type System struct {
	ID          string   // Unique identifier (used for ordering and perf tracking)
	Name        string   // Display name
	Description string   // What this system does
	Stage       Stage
	After       []string // IDs that must run earlier in the same stage
	Run         func(dt float32)
}

// PhaseTimer receives a phase name before each system runs.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Schedule holds systems and their resolved run order.
type Schedule struct {
	systems []System
	byID    map[string]int
	order   [numStages][]int
	err     error

	built       bool
	startupDone bool
	timer       PhaseTimer
}

// New creates an empty schedule.
func New() *Schedule {
	return &Schedule{byID: make(map[string]int)}
}

// SetTimer installs a phase timer; nil disables timing.
func (s *Schedule) SetTimer(t PhaseTimer) {
	s.timer = t
}

// Add registers a system. Errors are reported by Build.
func (s *Schedule) Add(sys System) *Schedule {
	s.built = false
	switch {
	case sys.ID == "":
		s.err = errors.Join(s.err, errors.New("system with empty ID"))
		return s
	case sys.Run == nil:
		s.err = errors.Join(s.err, fmt.Errorf("system %q has no Run func", sys.ID))
		return s
	case sys.Stage >= numStages:
		s.err = errors.Join(s.err, fmt.Errorf("system %q: unknown %v", sys.ID, sys.Stage))
		return s
	}
	if _, dup := s.byID[sys.ID]; dup {
		s.err = errors.Join(s.err, fmt.Errorf("duplicate system ID %q", sys.ID))
		return s
	}
	if sys.Name == "" {
		sys.Name = sys.ID
	}
	s.byID[sys.ID] = len(s.systems)
	s.systems = append(s.systems, sys)
	return s
}

// Chain registers systems in a stage, each running after the previous one.
func (s *Schedule) Chain(stage Stage, systems ...System) *Schedule {
	prev := ""
	for _, sys := range systems {
		sys.Stage = stage
		if prev != "" && !slices.Contains(sys.After, prev) {
			sys.After = append(slices.Clone(sys.After), prev)
		}
		s.Add(sys)
		prev = sys.ID
	}
	return s
}

// Build validates constraints and resolves the run order of every stage.
func (s *Schedule) Build() error {
	if s.err != nil {
		return s.err
	}

	var errs []error
	for _, sys := range s.systems {
		for _, dep := range sys.After {
			idx, ok := s.byID[dep]
			if !ok {
				errs = append(errs, fmt.Errorf("system %q runs after unknown system %q", sys.ID, dep))
				continue
			}
			if s.systems[idx].Stage != sys.Stage {
				errs = append(errs, fmt.Errorf("system %q (%v) runs after %q in another stage (%v)",
					sys.ID, sys.Stage, dep, s.systems[idx].Stage))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for stage := Stage(0); stage < numStages; stage++ {
		order, err := s.sortStage(stage)
		if err != nil {
			return err
		}
		s.order[stage] = order
	}
	s.built = true
	return nil
}

// sortStage is Kahn's algorithm, always picking the earliest-registered
// ready system so unconstrained systems keep insertion order.
func (s *Schedule) sortStage(stage Stage) ([]int, error) {
	var members []int
	for i, sys := range s.systems {
		if sys.Stage == stage {
			members = append(members, i)
		}
	}

	indegree := make(map[int]int, len(members))
	dependents := make(map[int][]int, len(members))
	for _, i := range members {
		for _, dep := range s.systems[i].After {
			d := s.byID[dep]
			indegree[i]++
			dependents[d] = append(dependents[d], i)
		}
	}

	var ready []int
	for _, i := range members {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, len(members))
	for len(ready) > 0 {
		slices.Sort(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(members) {
		var stuck []string
		for _, i := range members {
			if indegree[i] > 0 {
				stuck = append(stuck, s.systems[i].ID)
			}
		}
		return nil, fmt.Errorf("%v stage has an ordering cycle among %v", stage, stuck)
	}
	return order, nil
}

// Run executes one frame: Startup systems on the first call, then Update systems.
func (s *Schedule) Run(dt float32) error {
	if !s.built {
		if err := s.Build(); err != nil {
			return err
		}
	}

	if !s.startupDone {
		s.runStage(Startup, dt)
		s.startupDone = true
	}
	s.runStage(Update, dt)
	return nil
}

func (s *Schedule) runStage(stage Stage, dt float32) {
	for _, i := range s.order[stage] {
		sys := &s.systems[i]
		if s.timer != nil {
			s.timer.StartPhase(sys.ID)
		}
		sys.Run(dt)
	}
}

// Systems returns the systems of a stage in run order.
// Before a successful Build it returns them in registration order.
func (s *Schedule) Systems(stage Stage) []System {
	var out []System
	if s.built {
		for _, i := range s.order[stage] {
			out = append(out, s.systems[i])
		}
		return out
	}
	for _, sys := range s.systems {
		if sys.Stage == stage {
			out = append(out, sys)
		}
	}
	return out
}

// StartupDone reports whether the Startup stage has run.
func (s *Schedule) StartupDone() bool {
	return s.startupDone
}
