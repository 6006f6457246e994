package body

import (
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
	"github.com/zeusync/shardfall/internal/core/particle"
	"github.com/zeusync/shardfall/internal/core/random"
	"github.com/zeusync/shardfall/pkg/sequence"
)

const (
	shipRadius       = 18.0
	turningSpeed     = 1.4 // rad/s
	thrustSpeed      = 35.0
	positionFriction = 0.98
	rotationFriction = 0.8
	firingInterval   = 1.0 / 6.0
	shieldRecovery   = 0.002 // seconds of shield delay per unit of impact speed
)

var (
	hull = geometry.Polygon{
		{X: -19, Y: -10}, {X: -9, Y: -18}, {X: -3, Y: -6}, {X: 21, Y: 0},
		{X: -3, Y: 6}, {X: -9, Y: 18}, {X: -19, Y: 10},
	}
	interior = geometry.Polygon{
		{X: -19, Y: -10}, {X: -3, Y: -6}, {X: 0, Y: 0}, {X: -3, Y: 6}, {X: -19, Y: 10},
	}
)

// Controls is the per-tick input bitmask.
type Controls uint32

const (
	ControlLeft Controls = 1 << iota
	ControlRight
	ControlThrust
	ControlFire
	ControlShield
)

func (c Controls) Left() bool   { return c&ControlLeft != 0 }
func (c Controls) Right() bool  { return c&ControlRight != 0 }
func (c Controls) Thrust() bool { return c&ControlThrust != 0 }
func (c Controls) Fire() bool   { return c&ControlFire != 0 }
func (c Controls) Shield() bool { return c&ControlShield != 0 }

// Aux is the ship's auxiliary system: exactly one of Off, Firing or
// Shielding. Only Player.Step moves between states.
type Aux interface {
	aux()
}

type Off struct{}

// Firing fires whenever Timer has elapsed, then rearms it.
type Firing struct {
	Timer motion.Timer
}

// Shielding raises the shield once Delay has elapsed.
type Shielding struct {
	Delay motion.Timer
}

func (Off) aux()       {}
func (Firing) aux()    {}
func (Shielding) aux() {}

type spaceship struct {
	radius   float64
	hull     geometry.Polygon
	interior geometry.Polygon
	shield   geometry.Polygon
}

func newSpaceship(radius float64) spaceship {
	factor := radius / 22
	scale := func(p geometry.Polygon) geometry.Polygon {
		out := make(geometry.Polygon, len(p))
		for i, point := range p {
			out[i] = point.Scale(factor)
		}
		return out
	}
	return spaceship{
		radius:   radius,
		hull:     scale(hull),
		interior: scale(interior),
		shield:   geometry.Ngon(16, radius+1),
	}
}

// PlayerImpact reports what a hit did to the ship.
type PlayerImpact struct {
	Point     geometry.Point
	Speed     float64
	Destroyed bool
	Particles []particle.Particle
}

type Player struct {
	id        uuid.UUID
	placement motion.Placement
	movement  motion.Movement
	ship      spaceship
	aux       Aux
	mass      float64
	tuning    Tuning
}

// NewPlayer places a motionless ship facing up.
func NewPlayer(position geometry.Point, tuning Tuning) *Player {
	return &Player{
		id:        uuid.New(),
		placement: motion.Placement{Position: position, Rotation: -math.Pi / 2},
		ship:      newSpaceship(shipRadius),
		aux:       Off{},
		mass:      tuning.SpaceshipMass,
		tuning:    tuning,
	}
}

func (p *Player) ID() uuid.UUID { return p.id }

func (p *Player) Aux() Aux { return p.aux }

func (p *Player) Placement() motion.Placement { return p.placement }

func (p *Player) Hull() geometry.Polygon { return p.placement.TransformPath(p.ship.hull) }

// Interior is an open path.
func (p *Player) Interior() geometry.Polygon { return p.placement.TransformPath(p.ship.interior) }

func (p *Player) IsShielding() bool {
	s, ok := p.aux.(Shielding)
	return ok && s.Delay.IsElapsed()
}

// Shield returns the shield outline while it is up.
func (p *Player) Shield() (geometry.Polygon, bool) {
	if !p.IsShielding() {
		return nil, false
	}
	return p.placement.TransformPath(p.ship.shield), true
}

// Step steers the ship and advances the auxiliary state. Velocity is
// recomputed from the actual displacement, so friction and thrust both show
// up in the movement other bodies see.
func (p *Player) Step(dt float64, bounds geometry.Size, controls Controls) {
	if dt <= 0 {
		return
	}

	var turn float64
	switch {
	case controls.Left() && !controls.Right():
		turn = -turningSpeed * dt
	case controls.Right() && !controls.Left():
		turn = turningSpeed * dt
	}
	rotation := p.placement.Rotation + p.movement.AngularVelocity*rotationFriction*dt + turn

	var thrust geometry.Vector
	if controls.Thrust() {
		thrust = geometry.FromPolar(thrustSpeed*dt, rotation)
	}
	position := p.placement.Position.
		Add(p.movement.Velocity.Scale(positionFriction * dt)).
		Add(thrust)

	p.movement = motion.Movement{
		Velocity:        position.Sub(p.placement.Position).Scale(1 / dt),
		AngularVelocity: (rotation - p.placement.Rotation) / dt,
	}
	p.placement = motion.Placement{Position: position, Rotation: rotation}
	p.placement.WrapPosition(bounds)
	p.aux = nextAux(p.aux, dt, controls)
}

// nextAux is the auxiliary state machine. Shield wins over fire.
func nextAux(current Aux, dt float64, controls Controls) Aux {
	switch {
	case controls.Shield():
		var delay motion.Timer
		if s, ok := current.(Shielding); ok {
			delay = s.Delay
		}
		delay.Step(dt)
		return Shielding{Delay: delay}
	case controls.Fire():
		var timer motion.Timer
		if f, ok := current.(Firing); ok {
			timer = f.Timer
			if timer.IsElapsed() {
				timer = motion.NewTimer(firingInterval)
			}
		}
		timer.Step(dt)
		return Firing{Timer: timer}
	default:
		return Off{}
	}
}

// FireBlast releases a blast from the tip of the hull when the firing timer
// has elapsed.
func (p *Player) FireBlast() (*Blast, bool) {
	f, ok := p.aux.(Firing)
	if !ok || !f.Timer.IsElapsed() {
		return nil, false
	}
	angle := p.placement.Rotation
	position := p.placement.Position.Translate(p.ship.radius, angle)
	speed := p.movement.Velocity.Length() + p.tuning.BlastSpeed
	return NewBlast(position, speed, angle, p.tuning), true
}

// InteractBlast pushes the ship by the blast's impulse. A raised shield
// absorbs the hit and drops for a while; otherwise the ship explodes.
func (p *Player) InteractBlast(rng *random.Stream, blast *Blast) (PlayerImpact, bool) {
	impact, ok := blast.Impact(p)
	if !ok {
		return PlayerImpact{}, false
	}

	p.movement = p.movement.Add(motion.FromImpulse(
		p.placement.Position,
		impact.Point,
		blast.Velocity().Normalize().Scale(impact.Speed),
	))

	result := PlayerImpact{Point: impact.Point, Speed: impact.Speed}
	if p.IsShielding() {
		p.aux = Shielding{Delay: motion.NewTimer(impact.Speed * shieldRecovery)}
		result.Particles = particle.New(impact.Point, p.movement.Velocity, p.tuning.BurstSpeed, p.tuning.BurstDistance).
			Burst(rng, int(math.Ceil(impact.Speed/40)))
		return result, true
	}

	result.Destroyed = true
	result.Particles = p.explode(rng, impact.Speed)
	return result, true
}

// InteractAsteroid bounces the ship off a and writes both movements back.
// Without a raised shield the collision destroys the ship.
func (p *Player) InteractAsteroid(rng *random.Stream, a *Asteroid) (PlayerImpact, bool) {
	c, ok := motion.Collide(p, a, p.tuning.Elasticity)
	if !ok {
		return PlayerImpact{}, false
	}
	p.movement = c.A
	a.SetMovement(c.B)

	result := PlayerImpact{Point: c.Point, Speed: c.A.Velocity.Sub(c.B.Velocity).Length()}
	if !p.IsShielding() {
		result.Destroyed = true
		result.Particles = p.explode(rng, result.Speed)
	}
	return result, true
}

// explode scatters the ship: a burst at half its velocity, then the hull and
// the interior edges, both given relative to the ship's position.
func (p *Player) explode(rng *random.Stream, speed float64) []particle.Particle {
	position := p.placement.Position
	particles := particle.New(position, p.movement.Velocity.Scale(0.5), 150, 120).
		Burst(rng, int(math.Ceil(speed/10)))

	local := motion.Placement{Rotation: p.placement.Rotation}
	dispersion := particle.New(position, p.movement.Velocity, speed, speed)
	particles = append(particles, dispersion.Explode(rng, local.TransformPath(p.ship.hull).Edges())...)
	particles = append(particles, dispersion.Explode(rng, sequence.Edges(local.TransformPath(p.ship.interior)))...)
	return particles
}

func (p *Player) Center() geometry.Point { return p.placement.Position }

func (p *Player) Radius() float64 { return p.ship.radius }

// Boundary is the shield while it is up, the hull otherwise.
func (p *Player) Boundary() geometry.Polygon {
	if shield, ok := p.Shield(); ok {
		return shield
	}
	return p.Hull()
}

func (p *Player) Movement() motion.Movement { return p.movement }

func (p *Player) Mass() float64 { return p.mass }

var _ motion.Body = (*Player)(nil)
