package body

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
	"github.com/zeusync/shardfall/internal/core/random"
)

const tick = 1.0 / 60

var (
	screen = geometry.Size{Width: 1200, Height: 900}
	wide   = geometry.Size{Width: 5000, Height: 5000}
)

func disc(center geometry.Point, radius float64) *Asteroid {
	return FromPolygon(geometry.Ngon(16, radius).Translate(center))
}

// flyUntilImpact steps b until hit reports an impact or b expires.
func flyUntilImpact(b *Blast, bounds geometry.Size, hit func() bool) bool {
	for !b.IsExpired() {
		b.Step(tick, bounds)
		if b.IsExpired() {
			return false
		}
		if hit() {
			return true
		}
	}
	return false
}

func TestFieldKeepsClearing(t *testing.T) {
	rng := random.New(1979 * 11)
	field := Field(rng, screen, 5, 100)
	require.Len(t, field, 5)

	center := screen.Center()
	for _, a := range field {
		assert.GreaterOrEqual(t, center.Distance(a.Center()), 100+a.Radius())
		assert.GreaterOrEqual(t, a.Center().X, 0.0)
		assert.Less(t, a.Center().X, screen.Width)
		assert.GreaterOrEqual(t, a.Center().Y, 0.0)
		assert.Less(t, a.Center().Y, screen.Height)
	}
}

func TestFieldIsSeeded(t *testing.T) {
	a := Field(random.New(7), screen, 4, 100)
	b := Field(random.New(7), screen, 4, 100)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Placement(), b[i].Placement())
		assert.Equal(t, a[i].Movement(), b[i].Movement())
		assert.Equal(t, a[i].Shape(), b[i].Shape())
		assert.NotEqual(t, a[i].ID(), b[i].ID())
	}
}

func TestNewAsteroidShape(t *testing.T) {
	rng := random.New(3)
	for range 50 {
		a := NewAsteroid(rng)
		assert.GreaterOrEqual(t, a.Radius(), 18.0)
		assert.Less(t, a.Radius(), 55.0)
		assert.GreaterOrEqual(t, len(a.Shape()), 3)
		for _, p := range a.Shape() {
			assert.LessOrEqual(t, p.Length(), a.Radius()+1e-9)
		}
		speed := a.Movement().Velocity.Length()
		assert.GreaterOrEqual(t, speed, 10.0-1e-9)
		assert.Less(t, speed, 80.0+1e-9)
		assert.InDelta(t, a.Shape().Area(), a.Mass(), 1e-9)
	}
}

func TestGrid(t *testing.T) {
	grid := Grid(random.New(1), 3, 2)
	require.Len(t, grid, 6)
	assert.Equal(t, geometry.Point{X: 150, Y: 150}, grid[0].Center())
	assert.Equal(t, geometry.Point{X: 450, Y: 150}, grid[2].Center())
	assert.Equal(t, geometry.Point{X: 150, Y: 300}, grid[3].Center())
}

func TestFromPolygonCentersShape(t *testing.T) {
	square := geometry.Polygon{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}}
	a := FromPolygon(square)
	assert.InDelta(t, 20.0, a.Center().X, 1e-9)
	assert.InDelta(t, 20.0, a.Center().Y, 1e-9)
	assert.InDelta(t, math.Sqrt(200), a.Radius(), 1e-9)
	assert.InDelta(t, 400.0, a.Area(), 1e-9)
	assert.Zero(t, a.Movement())

	path := a.Path()
	for i := range square {
		assert.InDelta(t, square[i].X, path[i].X, 1e-9)
		assert.InDelta(t, square[i].Y, path[i].Y, 1e-9)
	}
}

func TestAsteroidStepWraps(t *testing.T) {
	a := disc(geometry.Point{X: 1195, Y: 5}, 20)
	a.SetMovement(motion.Movement{Velocity: geometry.Point{X: 60, Y: -600}, AngularVelocity: 1})
	a.Step(0.5, screen)
	assert.InDelta(t, 25.0, a.Center().X, 1e-9)
	assert.InDelta(t, 605.0, a.Center().Y, 1e-9)
	assert.InDelta(t, 0.5, a.Placement().Rotation, 1e-9)
}

func TestBlastLifetime(t *testing.T) {
	tuning := DefaultTuning()
	b := NewBlast(geometry.Point{X: 100, Y: 100}, 800, 0, tuning)
	b.Step(0.5, wide)
	assert.InDelta(t, 400.0, b.DistanceTraveled(), 1e-9)

	head, tail := b.Endpoints()
	assert.InDelta(t, 500.0, head.X, 1e-9)
	assert.InDelta(t, 100.0, tail.X, 1e-9)
	assert.False(t, b.IsExpired())

	b.Step(1, wide)
	assert.True(t, b.IsExpired())
}

func TestBlastDetectsImpactWithinRange(t *testing.T) {
	tuning := DefaultTuning()
	center := wide.Center()

	cases := []struct {
		distance float64
		hit      bool
	}{
		{200, true},
		{1000, true},
		{1300, false},
		{2000, false},
	}

	for _, c := range cases {
		target := disc(center, 30)
		b := NewBlast(geometry.Point{X: center.X - c.distance, Y: center.Y}, 800, 0, tuning)

		var impact Impact
		hit := flyUntilImpact(b, wide, func() bool {
			var ok bool
			impact, ok = b.Impact(target)
			return ok
		})

		assert.Equal(t, c.hit, hit, "distance %v", c.distance)
		if hit {
			assert.InDelta(t, center.X-30, impact.Point.X, 1, "first entry point")
			want := 800 * tuning.BlastMass / (tuning.BlastMass + target.Mass())
			assert.InDelta(t, want, impact.Speed, 1e-9)
		}
	}
}

func TestBlastWithoutTravelNeverHits(t *testing.T) {
	target := disc(geometry.Point{X: 100, Y: 100}, 30)
	b := NewBlast(geometry.Point{X: 100, Y: 100}, 800, 0, DefaultTuning())
	_, ok := b.Impact(target)
	assert.False(t, ok)
}

func shatterOnce(t *testing.T, asteroidSeed, tickSeed uint64) (*Asteroid, Shatter) {
	t.Helper()
	tuning := DefaultTuning()
	center := screen.Center()

	a := NewAsteroid(random.New(asteroidSeed))
	a.placement.Position = center
	aim := a.Path().Centroid()

	b := NewBlast(geometry.Point{X: aim.X - 300, Y: aim.Y}, 800, 0, tuning)
	rng := random.New(tickSeed)

	var s Shatter
	hit := flyUntilImpact(b, screen, func() bool {
		var ok bool
		s, ok = a.InteractBlast(rng, b, tuning)
		return ok
	})
	require.True(t, hit)
	return a, s
}

func TestShatterIsReproducible(t *testing.T) {
	_, first := shatterOnce(t, 9, 100)
	_, second := shatterOnce(t, 9, 100)

	require.GreaterOrEqual(t, len(first.Pieces), 2)
	require.Len(t, second.Pieces, len(first.Pieces))
	assert.Len(t, second.Fragments(), len(first.Fragments()))
	assert.Equal(t, first.Impact, second.Impact)
	assert.Equal(t, first.Particles(), second.Particles())

	if fragments := first.Fragments(); len(fragments) > 0 {
		other := second.Fragments()[0]
		assert.Equal(t, fragments[0].Center(), other.Center())
		assert.Equal(t, fragments[0].Movement(), other.Movement())
	}
}

func TestShatterConservesMass(t *testing.T) {
	tuning := DefaultTuning()
	for seed := uint64(1); seed <= 20; seed++ {
		parent, s := shatterOnce(t, seed, seed)

		total := 0.0
		for _, piece := range s.Pieces {
			total += piece.Area()
			switch p := piece.(type) {
			case Fragment:
				assert.GreaterOrEqual(t, p.Asteroid.Area(), tuning.MinFragmentArea)
			case Debris:
				assert.Less(t, p.Mass, tuning.MinFragmentArea)
				assert.NotEmpty(t, p.Particles)
			}
		}
		assert.InDelta(t, parent.Area(), total, parent.Area()*1e-9, "seed %d", seed)
		assert.Len(t, s.Burst, int(math.Ceil(parent.Radius()/4)))
	}

	// The blast line runs exactly through the right-hand vertex.
	wedge := FromPolygon(geometry.Polygon{{X: 250, Y: 250}, {X: 350, Y: 300}, {X: 250, Y: 350}})
	b := NewBlast(geometry.Point{X: -50, Y: 300}, 800, 0, tuning)
	rng := random.New(3)
	var s Shatter
	require.True(t, flyUntilImpact(b, screen, func() bool {
		var ok bool
		s, ok = wedge.InteractBlast(rng, b, tuning)
		return ok
	}))

	require.Len(t, s.Fragments(), 2)
	total := 0.0
	for _, f := range s.Fragments() {
		assert.InDelta(t, 2500.0, f.Area(), 1e-6)
		total += f.Area()
	}
	assert.InDelta(t, wedge.Area(), total, 1e-6)
}

func TestSmallAsteroidDissolves(t *testing.T) {
	tuning := DefaultTuning()
	center := screen.Center()
	a := disc(center, 10)

	b := NewBlast(geometry.Point{X: center.X - 100, Y: center.Y + 2}, 800, 0, tuning)
	rng := random.New(1)
	var s Shatter
	require.True(t, flyUntilImpact(b, screen, func() bool {
		var ok bool
		s, ok = a.InteractBlast(rng, b, tuning)
		return ok
	}))

	assert.Empty(t, s.Fragments())
	assert.NotEmpty(t, s.Particles())
}
