package geometry

import "math"

// Circle is a center and a radius.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// Contains reports whether p lies inside the circle, allowing tolerance.
func (c Circle) Contains(p Point, tolerance float64) bool {
	return c.Center.Distance(p) <= c.Radius+tolerance
}

// circ tracks the squared radius while the enclosing circle is built.
type circ struct {
	center        Point
	radiusSquared float64
}

// enclosureEpsilon is relative to the squared radius so that large and small
// circles absorb rounding error alike.
const enclosureEpsilon = 10 * 2.220446049250313e-16

func (c circ) encloses(p Point) bool {
	return c.center.DistanceSquared(p)-c.radiusSquared <= enclosureEpsilon*c.radiusSquared
}

func degenerate(center Point) circ {
	return circ{center: center}
}

func circumcircle2(a, b Point) circ {
	center := a.Midpoint(b)
	return circ{center: center, radiusSquared: a.DistanceSquared(center)}
}

// circumcircle3 returns the circle through three points. Collinear inputs have
// no circumcircle; the widest two-point circle stands in, and coincident
// inputs collapse to a point.
func circumcircle3(a, b, c Point) circ {
	if center, ok := circumcenter(a, b, c); ok {
		return circ{center: center, radiusSquared: a.DistanceSquared(center)}
	}
	best := degenerate(a)
	for _, candidate := range []circ{circumcircle2(a, b), circumcircle2(a, c), circumcircle2(b, c)} {
		if candidate.radiusSquared > best.radiusSquared {
			best = candidate
		}
	}
	return best
}

// Enclose returns the smallest circle containing every point (Welzl's
// algorithm in its incremental form). The input is expected in arbitrary
// order and is not modified.
func Enclose(points []Point) Circle {
	var c circ
	switch len(points) {
	case 0:
		c = degenerate(Point{})
	case 1:
		c = degenerate(points[0])
	case 2:
		c = circumcircle2(points[0], points[1])
	default:
		c = encloseAll(points)
	}
	return Circle{Center: c.center, Radius: math.Sqrt(c.radiusSquared)}
}

func encloseAll(points []Point) circ {
	c := degenerate(points[0])
	for i := 1; i < len(points); i++ {
		if c.encloses(points[i]) {
			continue
		}
		c = encloseWith(points[:i], points[i])
	}
	return c
}

// encloseWith covers prior with p on the boundary.
func encloseWith(prior []Point, p Point) circ {
	c := degenerate(p)
	for j, q := range prior {
		if c.encloses(q) {
			continue
		}
		c = encloseWith2(prior[:j], p, q)
	}
	return c
}

// encloseWith2 covers prior with p and q on the boundary.
func encloseWith2(prior []Point, p, q Point) circ {
	c := circumcircle2(p, q)
	for _, r := range prior {
		if c.encloses(r) {
			continue
		}
		c = circumcircle3(p, q, r)
	}
	return c
}
