package particle

import (
	"iter"
	"math"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
	"github.com/zeusync/shardfall/internal/core/random"
)

// Deviation bounds the random spread applied to each emitted particle.
type Deviation struct {
	ScaleSpeed      float64
	ScaleDistance   float64
	Direction       geometry.Radians
	AngularVelocity geometry.Radians
}

var (
	BurstDeviation = Deviation{
		ScaleSpeed:      0.9,
		ScaleDistance:   0.9,
		Direction:       math.Pi,
		AngularVelocity: 3 * math.Pi,
	}
	ExplodeDeviation = Deviation{
		ScaleSpeed:      0.5,
		ScaleDistance:   0.5,
		Direction:       0.5 * math.Pi,
		AngularVelocity: math.Pi,
	}
)

// Dispersion emits particles from an origin. Velocity is inherited by every
// particle; Speed and Distance are the nominal values each particle deviates
// from, and a particle lives for distance/speed seconds.
type Dispersion struct {
	Position geometry.Point
	Velocity geometry.Vector
	Speed    float64
	Distance float64
}

func New(position geometry.Point, velocity geometry.Vector, speed, distance float64) Dispersion {
	return Dispersion{Position: position, Velocity: velocity, Speed: speed, Distance: distance}
}

// movement draws, in order: speed, distance, direction, angular velocity.
func (d Dispersion) movement(rng *random.Stream, dev Deviation, direction geometry.Radians) (motion.Movement, float64) {
	speed := rng.Signed()*dev.ScaleSpeed*d.Speed + d.Speed
	distance := rng.Signed()*dev.ScaleDistance*d.Distance + d.Distance
	direction += rng.Signed() * dev.Direction
	angularVelocity := rng.Signed() * dev.AngularVelocity

	duration := 0.0
	if speed > 0 {
		duration = distance / speed
	}
	return motion.Movement{
		Velocity:        d.Velocity.Translate(speed, direction),
		AngularVelocity: angularVelocity,
	}, duration
}

// Burst emits count particles evenly spread around the origin. Each particle
// consumes five draws: the four of movement, then its radius.
func (d Dispersion) Burst(rng *random.Stream, count int) []Particle {
	if count <= 0 {
		return nil
	}
	central := 2 * math.Pi / float64(count)
	out := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		direction := float64(i) * central
		m, duration := d.movement(rng, BurstDeviation, direction)
		out = append(out, Particle{
			placement:  motion.Placement{Position: d.Position, Rotation: direction},
			movement:   m,
			expiration: motion.NewTimer(duration),
			radius:     rng.Float64(0.5, 2.5),
		})
	}
	return out
}

// Explode emits one particle per edge, given relative to the origin. Each
// particle sits on its edge's midpoint, lies along the edge and flies
// outward through the midpoint.
func (d Dispersion) Explode(rng *random.Stream, edges iter.Seq2[geometry.Point, geometry.Point]) []Particle {
	var out []Particle
	for a, b := range edges {
		edge := b.Sub(a)
		midpoint := a.Midpoint(b)
		m, duration := d.movement(rng, ExplodeDeviation, midpoint.Angle())
		out = append(out, Particle{
			placement:  motion.Placement{Position: d.Position.Add(midpoint), Rotation: edge.Angle()},
			movement:   m,
			expiration: motion.NewTimer(duration),
			radius:     0.5 * edge.Length(),
		})
	}
	return out
}

// Fracture breaks each edge into pieces of random length between 4 and 24,
// so long edges shatter into several shards.
func Fracture(rng *random.Stream, edges iter.Seq2[geometry.Point, geometry.Point]) iter.Seq2[geometry.Point, geometry.Point] {
	return func(yield func(geometry.Point, geometry.Point) bool) {
		for a, b := range edges {
			for _, s := range fractureLine(rng, a, b) {
				if !yield(s.A, s.B) {
					return
				}
			}
		}
	}
}

func fractureLine(rng *random.Stream, a, b geometry.Point) []geometry.Segment {
	target := rng.Float64(4, 24)
	n := int(math.Ceil(a.Distance(b) / target))
	switch n {
	case 0:
		return nil
	case 1:
		return []geometry.Segment{{A: a, B: b}}
	}

	out := make([]geometry.Segment, 0, n)
	for i := 1; i < n; i++ {
		t := rng.Float64(0, float64(i+1)/float64(n))
		next := a.Interpolate(b, t)
		out = append(out, geometry.Segment{A: a, B: next})
		a = next
	}
	return append(out, geometry.Segment{A: a, B: b})
}
