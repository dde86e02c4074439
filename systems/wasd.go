// Package systems contains ECS systems for the demos.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wasd/components"
	"github.com/pthm-cable/wasd/input"
)

// WasdDirection reads W/A/S/D into a unit direction (world +Y is up).
// Opposite keys cancel; nothing held gives zero.
func WasdDirection(src input.Source) (float32, float32) {
	var x, y float32
	if src.KeyDown(input.KeyA) {
		x -= 1
	}
	if src.KeyDown(input.KeyD) {
		x += 1
	}
	if src.KeyDown(input.KeyW) {
		y += 1
	}
	if src.KeyDown(input.KeyS) {
		y -= 1
	}
	return NormalizeOrZero(x, y)
}

// WasdCaptureSystem copies keyboard direction into WasdInput components.
type WasdCaptureSystem struct {
	filter ecs.Filter1[components.WasdInput]
	src    input.Source
}

// NewWasdCaptureSystem creates a new keyboard capture system.
func NewWasdCaptureSystem(w *ecs.World, src input.Source) *WasdCaptureSystem {
	return &WasdCaptureSystem{
		filter: *ecs.NewFilter1[components.WasdInput](w),
		src:    src,
	}
}

// Update runs the capture system.
func (s *WasdCaptureSystem) Update() {
	x, y := WasdDirection(s.src)

	query := s.filter.Query()
	for query.Next() {
		in := query.Get()
		in.X, in.Y = x, y
	}
}

// WasdMovementSystem turns captured direction into velocity and integrates it.
type WasdMovementSystem struct {
	filter ecs.Filter3[components.Transform, components.WasdMove, components.WasdInput]
}

// NewWasdMovementSystem creates a new keyboard movement system.
func NewWasdMovementSystem(w *ecs.World) *WasdMovementSystem {
	return &WasdMovementSystem{
		filter: *ecs.NewFilter3[components.Transform, components.WasdMove, components.WasdInput](w),
	}
}

// Update runs the movement system for a frame of dt seconds.
func (s *WasdMovementSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tf, mv, in := query.Get()

		mv.VelX = in.X * mv.Speed
		mv.VelY = in.Y * mv.Speed

		tf.X += mv.VelX * dt
		tf.Y += mv.VelY * dt
	}
}
