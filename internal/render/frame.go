// Package render turns a level into drawable paths. It carries no drawing
// dependency: a Frame is plain geometry plus an opacity per path.
package render

import (
	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/level"
)

// Path is an ordered point sequence in world coordinates.
type Path struct {
	Points []geometry.Point `json:"points"`
	Closed bool             `json:"closed"`
	Alpha  float64          `json:"alpha"`
}

type Frame struct {
	Tick   uint64        `json:"tick"`
	Level  int           `json:"level"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Paths  []Path        `json:"paths"`
	Report *level.Report `json:"report,omitempty"`
}

const (
	hullAlpha     = 1.0
	interiorAlpha = 0.7
	shieldAlpha   = 1.0
	asteroidAlpha = 0.5
	blastAlpha    = 1.0
)

// Snapshot draws the current state of l. Paths are ordered asteroids, blasts,
// particles, then the ship on top.
func Snapshot(l *level.Level) Frame {
	bounds := l.Bounds()
	f := Frame{
		Tick:   l.Tick(),
		Level:  l.Number(),
		Width:  bounds.Width,
		Height: bounds.Height,
	}

	for _, a := range l.Asteroids() {
		f.add(a.Path(), true, asteroidAlpha)
	}
	for _, b := range l.Blasts() {
		head, tail := b.Endpoints()
		f.add([]geometry.Point{head, tail}, false, blastAlpha)
	}
	particles := l.Particles()
	for i := range particles {
		p := &particles[i]
		a, b := p.Endpoints()
		f.add([]geometry.Point{a, b}, false, ParticleAlpha(p.Remaining()))
	}

	if p, ok := l.Player(); ok {
		f.add(p.Hull(), true, hullAlpha)
		f.add(p.Interior(), false, interiorAlpha)
		if shield, up := p.Shield(); up {
			f.add(shield, true, shieldAlpha)
		}
	}
	return f
}

// ParticleAlpha fades a particle over its last second.
func ParticleAlpha(remaining float64) float64 {
	return min(1, max(0, remaining))
}

func (f *Frame) add(points []geometry.Point, closed bool, alpha float64) {
	if len(points) == 0 {
		return
	}
	f.Paths = append(f.Paths, Path{Points: points, Closed: closed, Alpha: alpha})
}
