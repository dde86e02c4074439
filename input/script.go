package input

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a screen position in pixels.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Step is one segment of a Script, held for Ticks frames.
type Step struct {
	Ticks int      `yaml:"ticks"` // Frames to hold this step (0 = 1)
	Keys  []string `yaml:"keys"`  // Keys held for the whole step
	Mouse *Point   `yaml:"mouse"` // Cursor position from this step on
	Click bool     `yaml:"click"` // Left press on the first frame of the step
	Hold  bool     `yaml:"hold"`  // Left button held for the whole step

	keys []Key
}

// ScriptFile is the YAML layout of a script.
type ScriptFile struct {
	Loop  bool   `yaml:"loop"`
	Steps []Step `yaml:"steps"`
}

// Script replays recorded input for headless runs.
// It implements Source; call Advance once at the end of every frame.
type Script struct {
	State

	steps []Step
	loop  bool
	index int // current step
	tick  int // frames elapsed in current step
	done  bool
}

// LoadScript reads a YAML script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var f ScriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return NewScript(f.Steps, f.Loop)
}

// NewScript validates steps and positions the script on the first frame.
func NewScript(steps []Step, loop bool) (*Script, error) {
	if len(steps) == 0 {
		return nil, errors.New("script has no steps")
	}

	parsed := make([]Step, len(steps))
	for i, st := range steps {
		if st.Ticks < 0 {
			return nil, fmt.Errorf("step %d: negative ticks %d", i, st.Ticks)
		}
		if st.Ticks == 0 {
			st.Ticks = 1
		}
		st.keys = make([]Key, 0, len(st.Keys))
		for _, name := range st.Keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			st.keys = append(st.keys, k)
		}
		parsed[i] = st
	}

	s := &Script{steps: parsed, loop: loop}
	s.enter()
	return s, nil
}

// Advance moves the script forward one frame.
func (s *Script) Advance() {
	if s.done {
		return
	}

	s.tick++
	if s.tick < s.steps[s.index].Ticks {
		// Later frames of a step: edges are over, held state stays
		s.EndFrame()
		s.Down[MouseLeft] = s.steps[s.index].Hold
		return
	}

	s.index++
	s.tick = 0
	if s.index >= len(s.steps) {
		if !s.loop {
			s.done = true
			s.Release()
			s.Hold()
			return
		}
		s.index = 0
	}
	s.enter()
}

// enter applies the current step's first frame.
func (s *Script) enter() {
	st := s.steps[s.index]
	s.Hold(st.keys...)
	if st.Mouse != nil {
		s.MouseX, s.MouseY = st.Mouse.X, st.Mouse.Y
	}
	s.Pressed[MouseLeft] = st.Click
	s.Down[MouseLeft] = st.Click || st.Hold
}

// Done reports whether a non-looping script has played every step.
func (s *Script) Done() bool {
	return s.done
}

// Len returns the total number of frames in one pass of the script.
func (s *Script) Len() int {
	n := 0
	for _, st := range s.steps {
		n += st.Ticks
	}
	return n
}
