package geometry

import (
	"iter"
	"math"

	"github.com/zeusync/shardfall/pkg/sequence"
)

// Polygon is a cyclic point sequence; the last point connects to the first.
// Bodies used in collision are simple and have at least three vertices.
type Polygon []Point

// Ngon returns a regular polygon centered on the origin. n is raised to 3.
func Ngon(n int, radius float64) Polygon {
	n = max(n, 3)
	angle := 2 * math.Pi / float64(n)
	out := make(Polygon, n)
	for i := range out {
		out[i] = FromPolar(radius, angle*float64(i))
	}
	return out
}

// Edges yields every vertex paired with its successor, last to first included.
func (p Polygon) Edges() iter.Seq2[Point, Point] {
	return sequence.EdgesCycle(p)
}

// Area is the unsigned shoelace area.
func (p Polygon) Area() float64 {
	var sum float64
	for a, b := range p.Edges() {
		sum += a.Cross(b)
	}
	return math.Abs(sum) * 0.5
}

// Centroid is the area-weighted center. Degenerate polygons fall back to the
// vertex mean.
func (p Polygon) Centroid() Point {
	var cx, cy, twice float64
	for a, b := range p.Edges() {
		cross := a.Cross(b)
		twice += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	if twice == 0 {
		mean, _ := Mean(p)
		return mean
	}
	return Point{X: cx / (3 * twice), Y: cy / (3 * twice)}
}

// Transform maps every vertex through m.
func (p Polygon) Transform(m Matrix) Polygon {
	out := make(Polygon, len(p))
	for i, point := range p {
		out[i] = point.Transform(m)
	}
	return out
}

// Translate shifts every vertex by offset.
func (p Polygon) Translate(offset Vector) Polygon {
	out := make(Polygon, len(p))
	for i, point := range p {
		out[i] = point.Add(offset)
	}
	return out
}

// Intersections collects every point where one of segments crosses an edge.
func (p Polygon) Intersections(segments iter.Seq2[Point, Point]) []Point {
	var out []Point
	for a, b := range segments {
		for c, d := range p.Edges() {
			if at, ok := Intersect(SegmentSegment, a, b, c, d); ok {
				out = append(out, at)
			}
		}
	}
	return out
}

// Split cuts the polygon by the infinite line through a and b. A line that
// misses the polygon, touches it at a vertex or runs along an edge returns
// the polygon unchanged. The polygon must be neither spiral nor
// self-intersecting.
func (p Polygon) Split(a, b Point) []Polygon {
	points := splitPoints(p, a, b)
	if n := crossingCount(points); n < 2 || n%2 != 0 {
		return []Polygon{append(Polygon(nil), p...)}
	}
	rotateSplitPoints(points)
	return polygonsFromSplitPoints(points)
}

type splitPoint struct {
	Point
	intersection bool
}

// splitPoints interleaves the vertices with the places where the boundary
// passes from one side of the line to the other. A vertex on the line is a
// crossing only when its neighbours lie strictly on opposite sides; it is
// then marked in place instead of producing one crossing per adjacent edge.
func splitPoints(p Polygon, a, b Point) []splitPoint {
	direction := b.Sub(a)
	sides := make([]float64, len(p))
	for i, v := range p {
		sides[i] = direction.Cross(v.Sub(a))
	}

	n := len(p)
	out := make([]splitPoint, 0, n+2)
	for i, c := range p {
		prev, next := sides[(i+n-1)%n], sides[(i+1)%n]
		onLine := sides[i] == 0
		out = append(out, splitPoint{Point: c, intersection: onLine && opposite(prev, next)})

		if opposite(sides[i], next) {
			d := p[(i+1)%n]
			t := sides[i] / (sides[i] - next)
			out = append(out, splitPoint{Point: c.Interpolate(d, t), intersection: true})
		}
	}
	return out
}

// opposite reports whether two side values are non-zero with different signs.
func opposite(s, t float64) bool {
	return s < 0 && t > 0 || s > 0 && t < 0
}

func crossingCount(points []splitPoint) int {
	n := 0
	for _, sp := range points {
		if sp.intersection {
			n++
		}
	}
	return n
}

// rotateSplitPoints starts the sequence where the crossings stop following
// their initial lexicographic order, so enter/exit pairs line up along the
// cut. Two or fewer crossings are already paired.
func rotateSplitPoints(points []splitPoint) {
	var crossings []int
	for i, sp := range points {
		if sp.intersection {
			crossings = append(crossings, i)
		}
	}
	if len(crossings) <= 2 {
		return
	}

	n := len(crossings)
	order := points[crossings[0]].Compare(points[crossings[1]].Point)
	for j := 1; j < n; j++ {
		next := crossings[(j+1)%n]
		if points[crossings[j]].Compare(points[next].Point) != order {
			rotateLeft(points, next)
			return
		}
	}
}

func rotateLeft[T any](s []T, k int) {
	if k <= 0 || k >= len(s) {
		return
	}
	reverse(s[:k])
	reverse(s[k:])
	reverse(s)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// polygonsFromSplitPoints sweeps the sequence with two alternating buffers;
// each crossing closes the working polygon and resumes the one waiting on
// the other side of the cut.
func polygonsFromSplitPoints(points []splitPoint) []Polygon {
	var working, waiting Polygon
	var completed []Polygon

	for _, sp := range points {
		working = append(working, sp.Point)
		if !sp.intersection {
			continue
		}
		waiting = append(waiting, sp.Point)
		if len(waiting) != 1 {
			completed = append(completed, working)
			working = nil
		}
		working, waiting = waiting, working
	}
	return append(completed, working)
}
