package level

import (
	"github.com/zeusync/shardfall/internal/core/body"
	"github.com/zeusync/shardfall/internal/core/observability/log"
	"github.com/zeusync/shardfall/internal/core/particle"
)

// Report summarizes what happened during one tick.
type Report struct {
	Tick            uint64 `json:"tick"`
	Skipped         bool   `json:"skipped,omitempty"`
	Fired           bool   `json:"fired,omitempty"`
	Shattered       int    `json:"shattered,omitempty"`
	Fragments       int    `json:"fragments,omitempty"`
	Spawned         int    `json:"spawned,omitempty"`
	PlayerHit       bool   `json:"player_hit,omitempty"`
	PlayerDestroyed bool   `json:"player_destroyed,omitempty"`
	Cleared         bool   `json:"cleared,omitempty"`
}

// Step advances the level by dt seconds. A non-positive dt skips the tick
// entirely. Otherwise every body moves first, then interactions run against
// the bodies alive at the start of the interaction pass: blasts against
// asteroids, remaining blasts against the player, then the player against
// asteroids. Fragments and particles produced by the pass join the level
// afterwards, so nothing is hit twice within one tick.
func (l *Level) Step(dt float64, controls body.Controls) Report {
	if dt <= 0 {
		return Report{Tick: l.tick, Skipped: true}
	}
	l.tick++
	report := Report{Tick: l.tick}

	if l.player != nil {
		l.player.Step(dt, l.bounds, controls)
	}
	for _, a := range l.asteroids {
		a.Step(dt, l.bounds)
	}
	if l.player != nil {
		if b, ok := l.player.FireBlast(); ok {
			l.blasts = append(l.blasts, b)
			report.Fired = true
		}
	}
	live := make([]*body.Blast, 0, len(l.blasts))
	for _, b := range l.blasts {
		b.Step(dt, l.bounds)
		if !b.IsExpired() {
			live = append(live, b)
		}
	}
	l.blasts = live
	particles := make([]particle.Particle, 0, len(l.particles))
	for _, p := range l.particles {
		p.Step(dt, l.bounds)
		if !p.IsExpired() {
			particles = append(particles, p)
		}
	}
	l.particles = particles

	var (
		fragments []*body.Asteroid
		spawned   []particle.Particle
	)
	shattered := make([]bool, len(l.asteroids))
	spent := make([]bool, len(l.blasts))

	for bi, b := range l.blasts {
		for ai, a := range l.asteroids {
			if shattered[ai] {
				continue
			}
			s, ok := a.InteractBlast(l.rng, b, l.tuning)
			if !ok {
				continue
			}
			shattered[ai], spent[bi] = true, true

			pieces := s.Fragments()
			debris := s.Particles()
			fragments = append(fragments, pieces...)
			spawned = append(spawned, debris...)
			report.Shattered++
			report.Fragments += len(pieces)

			l.logger.Debug("asteroid shattered",
				log.Stringer("asteroid", a.ID()),
				log.Uint64("tick", l.tick),
				log.Float64("speed", s.Impact.Speed),
				log.Int("fragments", len(pieces)),
				log.Int("particles", len(debris)),
			)
			l.publish(EventAsteroidShattered, ShatterEvent{
				Asteroid:  a.ID(),
				Point:     s.Impact.Point,
				Speed:     s.Impact.Speed,
				Fragments: len(pieces),
				Particles: len(debris),
			})
			break
		}
	}

	if l.player != nil {
		for bi, b := range l.blasts {
			if spent[bi] {
				continue
			}
			impact, ok := l.player.InteractBlast(l.rng, b)
			if !ok {
				continue
			}
			spent[bi] = true
			spawned = append(spawned, impact.Particles...)
			report.PlayerHit = true
			if l.playerImpact(impact, EventPlayerShielded) {
				report.PlayerDestroyed = true
				break
			}
		}
	}

	if l.player != nil {
		for ai, a := range l.asteroids {
			if shattered[ai] {
				continue
			}
			impact, ok := l.player.InteractAsteroid(l.rng, a)
			if !ok {
				continue
			}
			spawned = append(spawned, impact.Particles...)
			report.PlayerHit = true
			if l.playerImpact(impact, EventPlayerCollided) {
				report.PlayerDestroyed = true
				break
			}
		}
	}

	l.asteroids = append(keep(l.asteroids, shattered), fragments...)
	l.blasts = keep(l.blasts, spent)
	l.particles = append(l.particles, spawned...)
	report.Spawned = len(spawned)

	if !l.cleared && len(l.asteroids) == 0 {
		l.cleared = true
		report.Cleared = true
		l.logger.Info("level cleared", log.Uint64("tick", l.tick))
		l.publish(EventLevelCleared, ClearedEvent{Level: l.number})
	}
	return report
}

// playerImpact publishes a hit on the ship and removes it when destroyed.
// survived names the event for a hit the ship lived through.
func (l *Level) playerImpact(impact body.PlayerImpact, survived string) (destroyed bool) {
	event := PlayerEvent{Player: l.player.ID(), Point: impact.Point, Speed: impact.Speed}
	if !impact.Destroyed {
		l.publish(survived, event)
		return false
	}

	l.logger.Info("player destroyed",
		log.Stringer("player", l.player.ID()),
		log.Uint64("tick", l.tick),
		log.Float64("speed", impact.Speed),
	)
	l.player = nil
	l.publish(EventPlayerDestroyed, event)
	return true
}

// keep returns a new slice without the entries flagged in removed,
// preserving order. items itself is left untouched.
func keep[T any](items []T, removed []bool) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if !removed[i] {
			out = append(out, item)
		}
	}
	return out
}
