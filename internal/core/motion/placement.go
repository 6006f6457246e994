package motion

import (
	"math"

	"github.com/zeusync/shardfall/internal/core/geometry"
)

// Placement is where a body is and which way it faces.
type Placement struct {
	Position geometry.Point   `json:"position"`
	Rotation geometry.Radians `json:"rotation"`
}

// ApplyMovement integrates one step of m over dt.
func (p *Placement) ApplyMovement(m Movement, dt float64) *Placement {
	p.Position = p.Position.Add(m.Velocity.Scale(dt))
	p.Rotation += m.AngularVelocity * dt
	return p
}

// WrapPosition folds the position back into the toroidal field.
func (p *Placement) WrapPosition(bounds geometry.Size) *Placement {
	p.Position = Wrap(p.Position, bounds)
	return p
}

// Matrix is the body-to-world transform.
func (p Placement) Matrix() geometry.Matrix {
	return geometry.NewMatrix(p.Position, p.Rotation, 1)
}

// TransformPath maps body-space points into world space.
func (p Placement) TransformPath(points geometry.Polygon) geometry.Polygon {
	return points.Transform(p.Matrix())
}

// Wrap applies a Euclidean modulo on both axes so the result always lies in
// [0, width) x [0, height), for negative inputs too.
func Wrap(point geometry.Point, bounds geometry.Size) geometry.Point {
	return geometry.Point{
		X: wrapAxis(point.X, bounds.Width),
		Y: wrapAxis(point.Y, bounds.Height),
	}
}

func wrapAxis(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	r := math.Mod(v, size)
	if r < 0 {
		r += size
	}
	// -tiny + size rounds up to size.
	if r >= size {
		r = 0
	}
	return r
}
