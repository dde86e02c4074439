package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wasd/camera"
	"github.com/pthm-cable/wasd/components"
	"github.com/pthm-cable/wasd/input"
)

// ClickCaptureSystem turns a left click into a world-space ClickTarget.
type ClickCaptureSystem struct {
	filter ecs.Filter1[components.ClickTarget]
	src    input.Source
	cam    *camera.Camera

	// FollowWhileHeld retargets every frame the button stays down.
	FollowWhileHeld bool
}

// NewClickCaptureSystem creates a new click capture system.
// A nil camera is allowed; clicks are then ignored.
func NewClickCaptureSystem(w *ecs.World, src input.Source, cam *camera.Camera) *ClickCaptureSystem {
	return &ClickCaptureSystem{
		filter: *ecs.NewFilter1[components.ClickTarget](w),
		src:    src,
		cam:    cam,
	}
}

// Update runs the capture system.
func (s *ClickCaptureSystem) Update() {
	pressed := s.src.MousePressed(input.MouseLeft)
	held := s.FollowWhileHeld && s.src.MouseDown(input.MouseLeft)
	if !pressed && !held {
		return
	}

	// No primary camera: nothing to project through
	wx, wy, ok := s.cam.ScreenToWorld(s.src.MousePosition())
	if !ok {
		return
	}

	query := s.filter.Query()
	for query.Next() {
		tgt := query.Get()
		tgt.X, tgt.Y = wx, wy
		tgt.Active = true
		if pressed {
			tgt.Issued++
		}
	}
}

// ClickMovementSystem steps entities toward their active ClickTarget.
type ClickMovementSystem struct {
	filter ecs.Filter3[components.Transform, components.ClickMove, components.ClickTarget]
}

// NewClickMovementSystem creates a new click movement system.
func NewClickMovementSystem(w *ecs.World) *ClickMovementSystem {
	return &ClickMovementSystem{
		filter: *ecs.NewFilter3[components.Transform, components.ClickMove, components.ClickTarget](w),
	}
}

// Update runs the movement system for a frame of dt seconds.
func (s *ClickMovementSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tf, mv, tgt := query.Get()

		if !tgt.Active {
			mv.VelX, mv.VelY = 0, 0
			continue
		}

		x, y, arrived := StepToward(tf.X, tf.Y, tgt.X, tgt.Y, mv.Speed*dt)
		if dt > 0 {
			mv.VelX = (x - tf.X) / dt
			mv.VelY = (y - tf.Y) / dt
		} else {
			mv.VelX, mv.VelY = 0, 0
		}
		tf.X, tf.Y = x, y

		if arrived {
			tgt.Active = false
			tgt.Reached++
		}
	}
}

// WasdOverridesClickSystem cancels the click target of any entity that
// received keyboard direction this frame.
type WasdOverridesClickSystem struct {
	filter ecs.Filter2[components.WasdInput, components.ClickTarget]
}

// NewWasdOverridesClickSystem creates a new override system.
func NewWasdOverridesClickSystem(w *ecs.World) *WasdOverridesClickSystem {
	return &WasdOverridesClickSystem{
		filter: *ecs.NewFilter2[components.WasdInput, components.ClickTarget](w),
	}
}

// Update runs the override system.
func (s *WasdOverridesClickSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		in, tgt := query.Get()
		if in.X != 0 || in.Y != 0 {
			tgt.Active = false
		}
	}
}
