package level

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/motion"
)

// Digest hashes the exact bits of the simulation state: the tick and the
// placement and movement of every body, in list order. Two levels stepped
// with the same inputs from the same seed have equal digests; identities are
// not part of the state.
func (l *Level) Digest() uint64 {
	d := digester{h: xxhash.New()}
	d.uint(l.tick)

	if l.player != nil {
		d.uint(1)
		d.placement(l.player.Placement())
		d.movement(l.player.Movement())
	} else {
		d.uint(0)
	}

	d.uint(uint64(len(l.asteroids)))
	for _, a := range l.asteroids {
		d.placement(a.Placement())
		d.movement(a.Movement())
		d.float(a.Area())
	}

	d.uint(uint64(len(l.blasts)))
	for _, b := range l.blasts {
		d.point(b.Position())
		d.point(b.Velocity())
	}

	d.uint(uint64(len(l.particles)))
	for i := range l.particles {
		p := &l.particles[i]
		d.placement(p.Placement())
		d.movement(p.Movement())
		d.float(p.Remaining())
	}
	return d.h.Sum64()
}

type digester struct {
	h   *xxhash.Digest
	buf [8]byte
}

func (d *digester) uint(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[:], v)
	_, _ = d.h.Write(d.buf[:])
}

func (d *digester) float(v float64) { d.uint(math.Float64bits(v)) }

func (d *digester) point(p geometry.Point) {
	d.float(p.X)
	d.float(p.Y)
}

func (d *digester) placement(p motion.Placement) {
	d.point(p.Position)
	d.float(p.Rotation)
}

func (d *digester) movement(m motion.Movement) {
	d.point(m.Velocity)
	d.float(m.AngularVelocity)
}
