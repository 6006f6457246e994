package motion

import (
	"math"

	"github.com/zeusync/shardfall/internal/core/geometry"
)

// Body is anything that takes part in collisions. Mass is an interpolation
// weight, typically the boundary's area.
type Body interface {
	Center() geometry.Point
	Radius() float64
	Boundary() geometry.Polygon
	Movement() Movement
	Mass() float64
}

// Collision is the outcome of two bodies meeting. The caller writes the
// movements back.
type Collision struct {
	Point geometry.Point
	A     Movement
	B     Movement
}

// Collide checks a and b for a genuine collision and resolves it. Elasticity
// 0 merges the movements, 1 bounces fully.
func Collide(a, b Body, elasticity float64) (Collision, bool) {
	point, ok := CollisionPoint(a, b)
	if !ok {
		return Collision{}, false
	}
	return collideAt(point, a, b, elasticity), true
}

// CollisionPoint returns the mean of the boundary crossings of a and b when
// their bounding circles overlap and at least one of them is moving into the
// other. Overlapping bodies that are already separating do not collide.
func CollisionPoint(a, b Body) (geometry.Point, bool) {
	if a.Center().Distance(b.Center()) >= a.Radius()+b.Radius() {
		return geometry.Point{}, false
	}

	point, ok := geometry.Mean(a.Boundary().Intersections(b.Boundary().Edges()))
	if !ok {
		return geometry.Point{}, false
	}

	if !approaching(point, a, b) {
		return geometry.Point{}, false
	}
	return point, true
}

// approaching is the facing test at the contact point. Exactly 90° counts as
// not facing.
func approaching(point geometry.Point, a, b Body) bool {
	aVelocity := a.Movement().Velocity
	bVelocity := b.Movement().Velocity
	aSpeed := aVelocity.Length()
	bSpeed := bVelocity.Length()
	aFacing := aVelocity.AngleBetween(b.Center().Sub(point)) < math.Pi/2
	bFacing := bVelocity.AngleBetween(a.Center().Sub(point)) < math.Pi/2

	return aFacing && bFacing ||
		aFacing && bSpeed < aSpeed ||
		bFacing && aSpeed < bSpeed
}

func collideAt(point geometry.Point, a, b Body, elasticity float64) Collision {
	inelastic := a.Movement().Interpolate(b.Movement(), b.Mass()/(a.Mass()+b.Mass()))
	return Collision{
		Point: point,
		A:     inelastic.Interpolate(collisionMovement(point, a, b), elasticity),
		B:     inelastic.Interpolate(collisionMovement(point, b, a), elasticity),
	}
}

// collisionMovement is a's elastic response to b: its velocity reflected
// about the line between the centers, plus b's contact-point velocity
// delivered as an impulse, both weighted by b's share of the mass.
func collisionMovement(point geometry.Point, a, b Body) Movement {
	am := a.Movement()
	bm := b.Movement()

	reflection := am.Velocity.Reflect(b.Center().DirectionTo(a.Center()))
	contactVelocity := bm.Velocity.Add(tangentialVelocity(point.Sub(b.Center()), bm.AngularVelocity))
	impact := FromImpulse(a.Center(), point, contactVelocity)
	t := b.Mass() / (a.Mass() + b.Mass())

	return Movement{
		Velocity:        am.Velocity.Interpolate(reflection, t).Add(impact.Velocity.Scale(2 * t)),
		AngularVelocity: interpolate(am.AngularVelocity, impact.AngularVelocity, t),
	}
}

// tangentialVelocity is the velocity of a point at radial offset on a body
// spinning at angularVelocity.
func tangentialVelocity(radial geometry.Vector, angularVelocity geometry.Radians) geometry.Vector {
	return geometry.FromPolar(radial.Length()*angularVelocity, radial.Angle()+math.Pi/2)
}
