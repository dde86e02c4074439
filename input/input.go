// Package input abstracts keyboard and mouse polling so systems can run
// against a live window, a replay script, or a test fixture.
package input

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key the demos care about.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	numKeys
)

var keyNames = [numKeys]string{"w", "a", "s", "d"}

// String returns the lowercase key name.
func (k Key) String() string {
	if k < numKeys {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey parses a key name (case-insensitive).
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	numButtons
)

// Source is polled once per frame by the capture systems.
type Source interface {
	// KeyDown reports whether the key is held this frame.
	KeyDown(k Key) bool
	// MousePressed reports whether the button went down this frame.
	MousePressed(b MouseButton) bool
	// MouseDown reports whether the button is held this frame.
	MouseDown(b MouseButton) bool
	// MousePosition returns the cursor in screen pixels.
	MousePosition() (x, y float32)
}

// State is a Source whose values are set directly.
// The zero value has nothing pressed and the cursor at (0, 0).
type State struct {
	Keys    [numKeys]bool
	Pressed [numButtons]bool
	Down    [numButtons]bool
	MouseX  float32
	MouseY  float32
}

// KeyDown implements Source.
func (s *State) KeyDown(k Key) bool {
	return k < numKeys && s.Keys[k]
}

// MousePressed implements Source.
func (s *State) MousePressed(b MouseButton) bool {
	return b < numButtons && s.Pressed[b]
}

// MouseDown implements Source.
func (s *State) MouseDown(b MouseButton) bool {
	return b < numButtons && s.Down[b]
}

// MousePosition implements Source.
func (s *State) MousePosition() (float32, float32) {
	return s.MouseX, s.MouseY
}

// Hold sets the given keys held and all others released.
func (s *State) Hold(keys ...Key) {
	s.Keys = [numKeys]bool{}
	for _, k := range keys {
		if k < numKeys {
			s.Keys[k] = true
		}
	}
}

// Click records a left press at (x, y). Call Release or Reset to clear it.
func (s *State) Click(x, y float32) {
	s.MouseX, s.MouseY = x, y
	s.Pressed[MouseLeft] = true
	s.Down[MouseLeft] = true
}

// EndFrame clears edge-triggered state, leaving held buttons down.
func (s *State) EndFrame() {
	s.Pressed = [numButtons]bool{}
}

// Release lets go of all mouse buttons.
func (s *State) Release() {
	s.Pressed = [numButtons]bool{}
	s.Down = [numButtons]bool{}
}

// Reset clears everything.
func (s *State) Reset() {
	*s = State{}
}
