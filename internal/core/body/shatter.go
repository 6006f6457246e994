package body

import (
	"math"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
	"github.com/zeusync/shardfall/internal/core/particle"
	"github.com/zeusync/shardfall/internal/core/random"
)

// Piece is one part of a shattered asteroid: a Fragment that lives on as a
// body or Debris that was too small and dissolved into particles.
type Piece interface {
	Area() float64
	piece()
}

type Fragment struct {
	Asteroid *Asteroid
}

type Debris struct {
	Particles []particle.Particle
	Mass      float64
}

func (f Fragment) Area() float64 { return f.Asteroid.Area() }
func (d Debris) Area() float64   { return d.Mass }

func (Fragment) piece() {}
func (Debris) piece()   {}

// Shatter is the result of a blast hitting an asteroid. Burst holds the spray
// emitted at the impact point whether or not any fragment survives.
type Shatter struct {
	Impact Impact
	Pieces []Piece
	Burst  []particle.Particle
}

// Fragments returns the surviving bodies in split order.
func (s Shatter) Fragments() []*Asteroid {
	var out []*Asteroid
	for _, p := range s.Pieces {
		if f, ok := p.(Fragment); ok {
			out = append(out, f.Asteroid)
		}
	}
	return out
}

// Particles returns the burst followed by every piece of debris.
func (s Shatter) Particles() []particle.Particle {
	out := append([]particle.Particle(nil), s.Burst...)
	for _, p := range s.Pieces {
		if d, ok := p.(Debris); ok {
			out = append(out, d.Particles...)
		}
	}
	return out
}

// InteractBlast splits the asteroid along the blast's line of travel. The
// asteroid itself is left untouched; on success the caller replaces it with
// the fragments. Draws: the impact burst, then per piece in split order the
// explode dispersion of pieces under the minimum area. Debris edges are
// fractured on a clone of the stream, so fracturing never shifts the main
// sequence.
func (a *Asteroid) InteractBlast(rng *random.Stream, blast *Blast, tuning Tuning) (Shatter, bool) {
	impact, ok := blast.Impact(a)
	if !ok {
		return Shatter{}, false
	}

	burst := particle.New(impact.Point, a.movement.Velocity, tuning.BurstSpeed, tuning.BurstDistance).
		Burst(rng, int(math.Ceil(a.radius/4)))

	head, tail := blast.Endpoints()
	outlines := a.Path().Split(head, tail)
	impactVelocity := blast.Velocity().Normalize().Scale(impact.Speed)

	pieces := make([]Piece, 0, len(outlines))
	for _, outline := range outlines {
		fragment := FromPolygon(outline)
		fragment.movement = a.fragmentMovement(fragment, impact, impactVelocity)

		if fragment.area >= tuning.MinFragmentArea {
			pieces = append(pieces, Fragment{Asteroid: fragment})
			continue
		}

		shards := particle.Fracture(rng.Clone(), fragment.polygon.Edges())
		debris := particle.New(fragment.Center(), fragment.movement.Velocity, impact.Speed, impact.Speed).
			Explode(rng, shards)
		pieces = append(pieces, Debris{Particles: debris, Mass: fragment.area})
	}

	return Shatter{Impact: impact, Pieces: pieces, Burst: burst}, true
}

// fragmentMovement kicks a fragment away from the parent's center. Small
// fragments take more of the kick, large ones keep more of the parent's
// motion. The blast's impulse at the contact point is added on top.
func (a *Asteroid) fragmentMovement(fragment *Asteroid, impact Impact, impactVelocity geometry.Vector) motion.Movement {
	outward := motion.Movement{
		Velocity: a.Center().DirectionTo(fragment.Center()).Scale(impact.Speed),
	}
	return outward.
		Interpolate(a.movement, fragment.Mass()/a.Mass()).
		Add(motion.FromImpulse(fragment.Center(), impact.Point, impactVelocity))
}
