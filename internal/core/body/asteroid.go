package body

import (
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
	"github.com/zeusync/shardfall/internal/core/random"
)

const gridSpacing = 150

// Asteroid is a rigid polygon. Its shape is kept relative to its center and
// its mass is the shape's area.
type Asteroid struct {
	id        uuid.UUID
	radius    float64
	placement motion.Placement
	movement  motion.Movement
	polygon   geometry.Polygon
	area      float64
}

// NewAsteroid draws a random asteroid at the origin. Draw order: radius,
// shape, speed, heading, angular velocity.
func NewAsteroid(rng *random.Stream) *Asteroid {
	radius := rng.Float64(18, 55)
	polygon := shape(rng, radius)
	speed := rng.Float64(10, 80)
	heading := rng.Float64(0, 2*math.Pi)
	return &Asteroid{
		id:     uuid.New(),
		radius: radius,
		movement: motion.Movement{
			Velocity:        geometry.FromPolar(speed, heading),
			AngularVelocity: rng.Float64(-1, 1),
		},
		polygon: polygon,
		area:    polygon.Area(),
	}
}

// shape jitters the vertices of a regular polygon inwards and along the
// circle, so the outline stays star-shaped around the center.
func shape(rng *random.Stream, radius float64) geometry.Polygon {
	n := rng.Uint32(uint32(math.Floor(radius/5)), uint32(math.Ceil(radius/4)))
	step := 2 * math.Pi / float64(n)
	polygon := make(geometry.Polygon, n)
	for i := range polygon {
		r := radius * rng.Float64(0.6, 1)
		angle := step*float64(i) + step*rng.Float64(0.1, 1)
		polygon[i] = geometry.FromPolar(r, angle)
	}
	return polygon
}

// FromPolygon builds a motionless asteroid from a world space outline. The
// outline's enclosing circle becomes the placement and the bounding radius.
func FromPolygon(outline geometry.Polygon) *Asteroid {
	circle := geometry.Enclose(outline)
	polygon := outline.Translate(circle.Center.Scale(-1))
	return &Asteroid{
		id:        uuid.New(),
		radius:    circle.Radius,
		placement: motion.Placement{Position: circle.Center},
		polygon:   polygon,
		area:      polygon.Area(),
	}
}

// Field scatters count asteroids over bounds, keeping each one at least
// clearing away from the center. Positions are rejection sampled.
func Field(rng *random.Stream, bounds geometry.Size, count int, clearing float64) []*Asteroid {
	center := bounds.Center()
	list := make([]*Asteroid, 0, max(count, 0))
	for range count {
		a := NewAsteroid(rng)
		for {
			a.placement.Position = geometry.Point{
				X: rng.Float64(0, bounds.Width),
				Y: rng.Float64(0, bounds.Height),
			}
			if clearing == 0 || clearing+a.radius < center.Distance(a.placement.Position) {
				break
			}
		}
		list = append(list, a)
	}
	return list
}

// Grid lays asteroids out on a fixed lattice, row by row.
func Grid(rng *random.Stream, cols, rows int) []*Asteroid {
	list := make([]*Asteroid, 0, max(cols*rows, 0))
	for row := range rows {
		for col := range cols {
			a := NewAsteroid(rng)
			a.placement.Position = geometry.Point{
				X: float64((col + 1) * gridSpacing),
				Y: float64((row + 1) * gridSpacing),
			}
			list = append(list, a)
		}
	}
	return list
}

func (a *Asteroid) ID() uuid.UUID { return a.id }

func (a *Asteroid) Step(dt float64, bounds geometry.Size) {
	a.placement.ApplyMovement(a.movement, dt).WrapPosition(bounds)
}

// Path is the outline in world space.
func (a *Asteroid) Path() geometry.Polygon {
	return a.placement.TransformPath(a.polygon)
}

// Shape is the outline relative to the center, ignoring rotation.
func (a *Asteroid) Shape() geometry.Polygon { return a.polygon }

func (a *Asteroid) Placement() motion.Placement { return a.placement }

func (a *Asteroid) Area() float64 { return a.area }

func (a *Asteroid) SetMovement(m motion.Movement) { a.movement = m }

func (a *Asteroid) Center() geometry.Point { return a.placement.Position }

func (a *Asteroid) Radius() float64 { return a.radius }

func (a *Asteroid) Boundary() geometry.Polygon { return a.Path() }

func (a *Asteroid) Movement() motion.Movement { return a.movement }

func (a *Asteroid) Mass() float64 { return a.area }

var _ motion.Body = (*Asteroid)(nil)
