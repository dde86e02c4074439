package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wasd/input"
)

// rlSource polls the raylib window. Only valid after rl.InitWindow.
type rlSource struct {
	// blocked reports screen points owned by UI; mouse buttons over them
	// read as up so panel clicks never set a move target.
	blocked func(x, y float32) bool
}

var rlKeys = [...]int32{
	input.KeyW: rl.KeyW,
	input.KeyA: rl.KeyA,
	input.KeyS: rl.KeyS,
	input.KeyD: rl.KeyD,
}

var rlButtons = [...]rl.MouseButton{
	input.MouseLeft:  rl.MouseButtonLeft,
	input.MouseRight: rl.MouseButtonRight,
}

func (rlSource) KeyDown(k input.Key) bool {
	if int(k) >= len(rlKeys) {
		return false
	}
	return rl.IsKeyDown(rlKeys[k])
}

func (s rlSource) MousePressed(b input.MouseButton) bool {
	if int(b) >= len(rlButtons) || s.overUI() {
		return false
	}
	return rl.IsMouseButtonPressed(rlButtons[b])
}

func (s rlSource) MouseDown(b input.MouseButton) bool {
	if int(b) >= len(rlButtons) || s.overUI() {
		return false
	}
	return rl.IsMouseButtonDown(rlButtons[b])
}

func (rlSource) MousePosition() (float32, float32) {
	p := rl.GetMousePosition()
	return p.X, p.Y
}

func (s rlSource) overUI() bool {
	if s.blocked == nil {
		return false
	}
	p := rl.GetMousePosition()
	return s.blocked(p.X, p.Y)
}
