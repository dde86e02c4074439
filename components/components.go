// Package components defines ECS components for the demo scenes.
package components

import "math"

// ShapeKind selects how a Shape is drawn.
type ShapeKind uint8

const (
	ShapePolygon ShapeKind = iota // Regular polygon with Sides and Radius
	ShapeRect                     // Axis-aligned rectangle with Width and Height
)

// Color is an RGBA color, independent of the renderer.
type Color struct {
	R, G, B, A uint8
}

// Transform is an entity's world position.
// World +Y points up. Z only orders drawing (lower is further back).
type Transform struct {
	X, Y, Z float32
}

// Shape describes what gets drawn at an entity's Transform.
type Shape struct {
	Kind   ShapeKind
	Sides  int32   // Polygon only
	Radius float32 // Polygon circumradius
	Width  float32 // Rect only
	Height float32 // Rect only
	Color  Color
}

// WasdInput holds the direction captured from the keyboard this frame.
// Always unit length or zero.
type WasdInput struct {
	X, Y float32
}

// WasdMove drives keyboard movement.
type WasdMove struct {
	VelX, VelY float32 // World units per second, recomputed each frame
	Speed      float32 // World units per second
}

// ClickTarget is the point a click-to-move entity is heading for.
type ClickTarget struct {
	X, Y   float32
	Active bool

	// Cumulative counters, read by telemetry
	Issued  uint32 // Targets set by clicks
	Reached uint32 // Targets arrived at
}

// ClickMove drives click-to-move.
type ClickMove struct {
	Speed      float32 // World units per second
	VelX, VelY float32 // Effective step velocity of the last frame
}

// Player tags the controllable sprite.
type Player struct{}

// Backdrop tags static scenery.
type Backdrop struct{}

// CurrentSpeed returns the magnitude of the current keyboard velocity.
func (m *WasdMove) CurrentSpeed() float32 {
	return length(m.VelX, m.VelY)
}

// CurrentSpeed returns the magnitude of the last click step velocity.
func (m *ClickMove) CurrentSpeed() float32 {
	return length(m.VelX, m.VelY)
}

func length(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}
