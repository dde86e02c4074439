package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NormalizeOrZero returns (x, y) scaled to unit length, or zero when the
// vector has no length (or is not finite).
func NormalizeOrZero(x, y float32) (float32, float32) {
	v := r2.Vec{X: float64(x), Y: float64(y)}
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, 0
	}
	u := r2.Scale(1/n, v)
	return float32(u.X), float32(u.Y)
}

// StepToward moves (px, py) at most maxStep toward (tx, ty).
// When the target is within reach the result snaps onto it and arrived is true.
// A non-positive maxStep leaves the point where it is unless it is already
// on the target.
func StepToward(px, py, tx, ty, maxStep float32) (x, y float32, arrived bool) {
	p := r2.Vec{X: float64(px), Y: float64(py)}
	d := r2.Sub(r2.Vec{X: float64(tx), Y: float64(ty)}, p)
	dist := r2.Norm(d)

	step := math.Max(float64(maxStep), 0)
	if dist <= step {
		return tx, ty, true
	}

	next := r2.Add(p, r2.Scale(step/dist, d))
	return float32(next.X), float32(next.Y), false
}

