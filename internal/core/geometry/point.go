package geometry

import "math"

// Radians is an angle measure.
type Radians = float64

// Size is the extent of the play field. The world wraps at its edges.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the middle of the field.
func (s Size) Center() Point {
	return Point{X: s.Width * 0.5, Y: s.Height * 0.5}
}

// Point is both a position and a displacement. All operations return new values.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector is a Point used as a displacement or velocity.
type Vector = Point

func NewPoint(x, y float64) Point { return Point{X: x, Y: y} }

// Zero is the origin / the null vector.
func Zero() Point { return Point{} }

func FromPolar(radius float64, angle Radians) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the directed angle within [-π, π].
func (p Point) Angle() Radians {
	return math.Atan2(p.Y, p.X)
}

// Normalize returns the unit vector in p's direction; the zero vector stays zero.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Translate moves p by distance along angle.
func (p Point) Translate(distance float64, angle Radians) Point {
	return Point{X: p.X + distance*math.Cos(angle), Y: p.Y + distance*math.Sin(angle)}
}

func (p Point) Transform(m Matrix) Point {
	return Point{
		X: p.X*m.a + p.Y*m.c + m.tx,
		Y: p.X*m.b + p.Y*m.d + m.ty,
	}
}

func (p Point) Midpoint(o Point) Point {
	return Point{X: (p.X + o.X) * 0.5, Y: (p.Y + o.Y) * 0.5}
}

func (p Point) DistanceSquared(o Point) float64 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return dx*dx + dy*dy
}

func (p Point) Distance(o Point) float64 {
	return math.Sqrt(p.DistanceSquared(o))
}

func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// Interpolate returns p*(1-t) + o*t.
func (p Point) Interpolate(o Point, t float64) Point {
	return p.Scale(1 - t).Add(o.Scale(t))
}

// DirectionTo returns the unit vector from p towards o.
func (p Point) DirectionTo(o Point) Point {
	return o.Sub(p).Normalize()
}

// AngleTo returns the directed angle from p to o within [-π, π].
func (p Point) AngleTo(o Vector) Radians {
	a := p.Normalize()
	b := o.Normalize()
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// AngleBetween returns the undirected angle within [0, π]. A zero vector on
// either side yields π/2.
func (p Point) AngleBetween(o Vector) Radians {
	cos := p.Normalize().Dot(o.Normalize())
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Reflect mirrors p about the line whose unit normal is given.
func (p Point) Reflect(normal Vector) Point {
	return p.Sub(normal.Scale(2 * p.Dot(normal)))
}

// Compare orders points lexicographically on (X, Y). It only picks a
// deterministic "first" point; it says nothing about geometric equality.
func (p Point) Compare(o Point) int {
	switch {
	case p.X < o.X:
		return -1
	case p.X > o.X:
		return 1
	case p.Y < o.Y:
		return -1
	case p.Y > o.Y:
		return 1
	default:
		return 0
	}
}

func (p Point) Less(o Point) bool { return p.Compare(o) < 0 }

// Mean averages points. ok is false for an empty input.
func Mean(points []Point) (mean Point, ok bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	factor := 1 / float64(len(points))
	for _, p := range points {
		mean.X += p.X * factor
		mean.Y += p.Y * factor
	}
	return mean, true
}

// Min returns the lexicographically smallest point.
func Min(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Less(best) {
			best = p
		}
	}
	return best, true
}

// Max returns the lexicographically largest point.
func Max(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if best.Less(p) {
			best = p
		}
	}
	return best, true
}

// Matrix is a 2D affine transform.
type Matrix struct {
	a, b, c, d float64
	tx, ty     float64
}

// NewMatrix builds a rotate-scale-translate transform.
func NewMatrix(position Point, rotation Radians, scale float64) Matrix {
	sin, cos := math.Sincos(rotation)
	return Matrix{
		a:  scale * cos,
		b:  scale * sin,
		c:  scale * -sin,
		d:  scale * cos,
		tx: position.X,
		ty: position.Y,
	}
}
