package geometry

// Inter selects how the two curves passed to Intersect are bounded.
type Inter uint8

const (
	// LineLine treats both curves as infinite lines.
	LineLine Inter = iota
	// LineSegment bounds only the second curve to its endpoints.
	LineSegment
	// SegmentSegment bounds both curves to their endpoints.
	SegmentSegment
)

// Segment is a directed line segment.
type Segment struct {
	A Point
	B Point
}

// Intersect finds where the curve through a,b meets the curve through c,d.
// Parallel and collinear curves never intersect.
func Intersect(kind Inter, a, b, c, d Point) (Point, bool) {
	rx := b.X - a.X
	ry := b.Y - a.Y
	sx := d.X - c.X
	sy := d.Y - c.Y
	rs := rx*sy - sx*ry
	if rs == 0 {
		return Point{}, false
	}

	ex := c.X - a.X
	ey := c.Y - a.Y
	u := (ex*ry - rx*ey) / rs
	at := Point{X: c.X + u*sx, Y: c.Y + u*sy}

	switch kind {
	case LineLine:
		return at, true
	case LineSegment:
		if 0 <= u && u <= 1 {
			return at, true
		}
	case SegmentSegment:
		if 0 <= u && u <= 1 {
			t := (ex*sy - sx*ey) / rs
			if 0 <= t && t <= 1 {
				return at, true
			}
		}
	}
	return Point{}, false
}

func perpendicularBisector(a, b Point) (Point, Point) {
	m := a.Midpoint(b)
	return m, Point{X: m.X + (b.Y - a.Y), Y: m.Y - (b.X - a.X)}
}

func circumcenter(a, b, c Point) (Point, bool) {
	p1, p2 := perpendicularBisector(a, b)
	p3, p4 := perpendicularBisector(a, c)
	return Intersect(LineLine, p1, p2, p3, p4)
}
