package motion

import (
	"math"

	"github.com/zeusync/shardfall/internal/core/geometry"
)

// Movement is linear plus angular velocity.
type Movement struct {
	Velocity        geometry.Vector  `json:"velocity"`
	AngularVelocity geometry.Radians `json:"angular_velocity"`
}

// FromImpulse turns a linear impulse delivered at contact into a body
// response. The part of the impulse aimed at the center translates, the part
// perpendicular to the contact-center line spins, and angles in between blend
// by angle/(π/2). Impulses more than 90° off-axis still spin the body, with
// diminishing weight. A contact on the center itself translates only.
func FromImpulse(center, contact geometry.Point, velocity geometry.Vector) Movement {
	distance := contact.Distance(center)
	if distance == 0 {
		return Movement{Velocity: velocity}
	}

	direction := contact.DirectionTo(center)
	speed := velocity.Length()
	angle := velocity.AngleTo(direction)
	angularSpeed := math.Copysign(speed/distance, angle)

	t := math.Abs(angle) / (math.Pi / 2) // within [0, 2]
	spin := t
	if t > 1 {
		spin = 2 - t
	}
	return Movement{
		Velocity:        direction.Scale(speed * (1 - t)),
		AngularVelocity: angularSpeed * spin,
	}
}

func (m Movement) Add(o Movement) Movement {
	return Movement{
		Velocity:        m.Velocity.Add(o.Velocity),
		AngularVelocity: m.AngularVelocity + o.AngularVelocity,
	}
}

// Interpolate blends towards o by t.
func (m Movement) Interpolate(o Movement, t float64) Movement {
	return Movement{
		Velocity:        m.Velocity.Interpolate(o.Velocity, t),
		AngularVelocity: interpolate(m.AngularVelocity, o.AngularVelocity, t),
	}
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
