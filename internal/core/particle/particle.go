package particle

import (
	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
)

// Particle is short-lived decorative debris. It never collides.
type Particle struct {
	placement  motion.Placement
	movement   motion.Movement
	expiration motion.Timer
	radius     float64
}

func (p *Particle) Step(dt float64, bounds geometry.Size) {
	p.placement.ApplyMovement(p.movement, dt).WrapPosition(bounds)
	p.expiration.Step(dt)
}

func (p *Particle) IsExpired() bool { return p.expiration.IsElapsed() }

func (p *Particle) Placement() motion.Placement { return p.placement }

func (p *Particle) Movement() motion.Movement { return p.movement }

// Remaining is the lifetime left, in seconds.
func (p *Particle) Remaining() float64 { return p.expiration.Remaining() }

func (p *Particle) Radius() float64 { return p.radius }

// Endpoints is the particle drawn as a short stroke along its rotation.
func (p *Particle) Endpoints() (geometry.Point, geometry.Point) {
	pos, rot := p.placement.Position, p.placement.Rotation
	return pos.Translate(-p.radius, rot), pos.Translate(p.radius, rot)
}
