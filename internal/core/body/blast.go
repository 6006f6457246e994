package body

import (
	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
)

// Impact is where a blast struck a body and the speed it delivered.
type Impact struct {
	Point geometry.Point
	Speed float64
}

// Blast is a projectile. It has no shape of its own: each tick it is the
// segment it travelled during that tick.
type Blast struct {
	position   geometry.Point
	velocity   geometry.Vector
	expiration motion.Timer
	dt         float64
	mass       float64
	rangeLimit float64
}

// NewBlast fires a blast that expires once it has travelled the configured
// range.
func NewBlast(position geometry.Point, speed float64, angle geometry.Radians, tuning Tuning) *Blast {
	lifetime := 0.0
	if speed > 0 {
		lifetime = tuning.BlastRange / speed
	}
	return &Blast{
		position:   position,
		velocity:   geometry.FromPolar(speed, angle),
		expiration: motion.NewTimer(lifetime),
		mass:       tuning.BlastMass,
		rangeLimit: tuning.BlastRange,
	}
}

func (b *Blast) Step(dt float64, bounds geometry.Size) {
	b.position = motion.Wrap(b.position.Add(b.velocity.Scale(dt)), bounds)
	b.expiration.Step(dt)
	b.dt = dt
}

func (b *Blast) Position() geometry.Point { return b.position }

func (b *Blast) Velocity() geometry.Vector { return b.velocity }

func (b *Blast) IsExpired() bool { return b.expiration.IsElapsed() }

func (b *Blast) DistanceTraveled() float64 {
	return b.rangeLimit - b.velocity.Length()*b.expiration.Remaining()
}

// Endpoints returns the head and the tail of the segment covered in the last
// step.
func (b *Blast) Endpoints() (head, tail geometry.Point) {
	return b.position, b.position.Sub(b.velocity.Scale(b.dt))
}

// Impact tests the last travelled segment against target. The head must be
// inside the target's bounding circle; the contact is the first boundary
// crossing along the direction of travel.
func (b *Blast) Impact(target motion.Body) (Impact, bool) {
	head, tail := b.Endpoints()
	if head.DistanceSquared(target.Center()) >= target.Radius()*target.Radius() {
		return Impact{}, false
	}

	crossings := target.Boundary().Intersections(func(yield func(geometry.Point, geometry.Point) bool) {
		yield(head, tail)
	})

	var (
		point geometry.Point
		ok    bool
	)
	if head.Less(tail) {
		point, ok = geometry.Min(crossings)
	} else {
		point, ok = geometry.Max(crossings)
	}
	if !ok {
		return Impact{}, false
	}

	return Impact{
		Point: point,
		Speed: b.velocity.Length() * (b.mass / (b.mass + target.Mass())),
	}, true
}
