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

func TestControls(t *testing.T) {
	c := Controls(ControlLeft | ControlFire)
	assert.True(t, c.Left())
	assert.False(t, c.Right())
	assert.False(t, c.Thrust())
	assert.True(t, c.Fire())
	assert.False(t, c.Shield())
	assert.Equal(t, Controls(16), ControlShield)
}

func TestPlayerStartsFacingUp(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	assert.Equal(t, screen.Center(), p.Center())
	assert.InDelta(t, -math.Pi/2, p.Placement().Rotation, 1e-12)
	assert.IsType(t, Off{}, p.Aux())

	hull := p.Hull()
	require.Len(t, hull, 7)
	tip := hull[3]
	assert.InDelta(t, 600.0, tip.X, 1e-9)
	assert.InDelta(t, 450-21*18.0/22, tip.Y, 1e-9)
	assert.Len(t, p.Interior(), 5)

	_, ok := p.Shield()
	assert.False(t, ok)
	assert.Equal(t, hull, p.Boundary())
}

func TestPlayerThrustAndTurn(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())

	p.Step(0.1, screen, ControlThrust)
	assert.InDelta(t, 0.0, p.Movement().Velocity.X, 1e-9)
	assert.InDelta(t, -35.0, p.Movement().Velocity.Y, 1e-9)
	assert.InDelta(t, 446.5, p.Center().Y, 1e-9)

	p.Step(0.1, screen, 0)
	assert.InDelta(t, -35*0.98, p.Movement().Velocity.Y, 1e-9, "friction")

	before := p.Placement().Rotation
	p.Step(0.5, screen, ControlRight)
	assert.InDelta(t, before+0.7, p.Placement().Rotation, 1e-9)
	assert.InDelta(t, 1.4, p.Movement().AngularVelocity, 1e-9)

	p.Step(0.5, screen, ControlLeft|ControlRight)
	assert.InDelta(t, before+0.7+1.4*0.8*0.5, p.Placement().Rotation, 1e-9, "both keys cancel, spin decays")
}

func TestPlayerIgnoresNonPositiveStep(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	p.Step(0, screen, ControlThrust|ControlFire)
	p.Step(-1, screen, ControlThrust)
	assert.Equal(t, screen.Center(), p.Center())
	assert.IsType(t, Off{}, p.Aux())
}

func TestPlayerFiringCadence(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())

	p.Step(tick, screen, ControlFire)
	b, ok := p.FireBlast()
	require.True(t, ok, "first shot is immediate")
	assert.InDelta(t, 800.0, b.Velocity().Length(), 1e-9)
	assert.InDelta(t, p.Center().Distance(b.Position()), 18.0, 1e-9)

	shots := 1
	for range 59 {
		p.Step(tick, screen, ControlFire)
		if _, ok := p.FireBlast(); ok {
			shots++
		}
	}
	assert.InDelta(t, 6, shots, 1, "six shots per second")

	p.Step(tick, screen, 0)
	_, ok = p.FireBlast()
	assert.False(t, ok)
	assert.IsType(t, Off{}, p.Aux())
}

func TestPlayerShieldWinsOverFire(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	p.Step(tick, screen, ControlShield|ControlFire)

	assert.IsType(t, Shielding{}, p.Aux())
	assert.True(t, p.IsShielding())
	_, ok := p.FireBlast()
	assert.False(t, ok)

	shield, ok := p.Shield()
	require.True(t, ok)
	assert.Len(t, shield, 16)
	assert.Equal(t, shield, p.Boundary())
}

func blastAt(t *testing.T, p *Player, rng *random.Stream) PlayerImpact {
	t.Helper()
	c := p.Center()
	b := NewBlast(geometry.Point{X: c.X - 200, Y: c.Y + 1}, 800, 0, DefaultTuning())

	var impact PlayerImpact
	require.True(t, flyUntilImpact(b, screen, func() bool {
		var ok bool
		impact, ok = p.InteractBlast(rng, b)
		return ok
	}))
	return impact
}

func TestPlayerDestroyedByBlast(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	impact := blastAt(t, p, random.New(1))

	assert.True(t, impact.Destroyed)
	assert.InDelta(t, 800*200.0/500, impact.Speed, 1e-9)
	assert.Len(t, impact.Particles, 32+7+4, "burst, hull edges, interior edges")
	assert.Positive(t, p.Movement().Velocity.X, "pushed along the blast")
}

func TestPlayerShieldAbsorbsBlast(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	p.Step(tick, screen, ControlShield)
	require.True(t, p.IsShielding())

	impact := blastAt(t, p, random.New(1))
	assert.False(t, impact.Destroyed)
	assert.Len(t, impact.Particles, 8)

	s, ok := p.Aux().(Shielding)
	require.True(t, ok)
	assert.InDelta(t, 320*0.002, s.Delay.Remaining(), 1e-9)
	assert.False(t, p.IsShielding(), "shield drops after a hit")
}

func TestPlayerCollidesWithAsteroid(t *testing.T) {
	for _, shielded := range []bool{false, true} {
		p := NewPlayer(screen.Center(), DefaultTuning())
		if shielded {
			p.Step(tick, screen, ControlShield)
		}
		a := disc(geometry.Point{X: 630, Y: 450}, 20)
		a.SetMovement(motion.Movement{Velocity: geometry.Point{X: -50}})

		impact, ok := p.InteractAsteroid(random.New(2), a)
		require.True(t, ok, "shielded=%v", shielded)
		assert.Equal(t, !shielded, impact.Destroyed)
		assert.Negative(t, p.Movement().Velocity.X, "pushed away from the asteroid")
		assert.NotEqual(t, geometry.Point{X: -50}, a.Movement().Velocity)
		if shielded {
			assert.Empty(t, impact.Particles)
		} else {
			assert.NotEmpty(t, impact.Particles)
		}
	}
}

func TestPlayerMissesDistantAsteroid(t *testing.T) {
	p := NewPlayer(screen.Center(), DefaultTuning())
	a := disc(geometry.Point{X: 700, Y: 450}, 20)
	a.SetMovement(motion.Movement{Velocity: geometry.Point{X: -50}})
	_, ok := p.InteractAsteroid(random.New(2), a)
	assert.False(t, ok)
}
