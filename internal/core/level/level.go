// Package level owns one play field and drives it tick by tick. A Level is
// not safe for concurrent use: a single goroutine steps it and reads it
// between steps.
package level

import (
	"github.com/zeusync/shardfall/internal/core/body"
	"github.com/zeusync/shardfall/internal/core/config"
	"github.com/zeusync/shardfall/internal/core/events/bus"
	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/observability/log"
	"github.com/zeusync/shardfall/internal/core/particle"
	"github.com/zeusync/shardfall/internal/core/random"
)

type Level struct {
	number int
	bounds geometry.Size
	tuning body.Tuning
	rng    *random.Stream
	tick   uint64

	player    *body.Player
	asteroids []*body.Asteroid
	blasts    []*body.Blast
	particles []particle.Particle
	cleared   bool

	logger log.Log
	events bus.EventBus
}

type Option func(*Level)

func WithLogger(logger log.Log) Option {
	return func(l *Level) { l.logger = logger }
}

// WithEventBus publishes level events on b.
func WithEventBus(b bus.EventBus) Option {
	return func(l *Level) { l.events = b }
}

// New builds level n. The same n and configuration always produce the same
// asteroid field.
func New(n int, cfg config.Config, opts ...Option) *Level {
	bounds := geometry.Size{Width: cfg.Level.Width, Height: cfg.Level.Height}
	tuning := Tuning(cfg.Physics)
	rng := random.New(cfg.Level.SeedFactor * uint64(max(n, 0)))
	count := cfg.Level.BaseCount + cfg.Level.CountPerLevel*n

	l := &Level{
		number:    n,
		bounds:    bounds,
		tuning:    tuning,
		rng:       rng,
		player:    body.NewPlayer(bounds.Center(), tuning),
		asteroids: body.Field(rng, bounds, count, cfg.Level.Clearing),
		logger:    log.NewNop(),
		events:    bus.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(log.Int("level", n))
	return l
}

// Tuning maps the physics section onto body constants.
func Tuning(p config.Physics) body.Tuning {
	return body.Tuning{
		Elasticity:      p.Elasticity,
		MinFragmentArea: p.MinFragmentArea,
		BlastMass:       p.BlastMass,
		BlastRange:      p.BlastRange,
		BlastSpeed:      p.BlastSpeed,
		SpaceshipMass:   p.SpaceshipMass,
		BurstSpeed:      p.BurstSpeed,
		BurstDistance:   p.BurstDistance,
	}
}

func (l *Level) Number() int { return l.number }

func (l *Level) Tick() uint64 { return l.tick }

func (l *Level) Bounds() geometry.Size { return l.bounds }

// Player returns the ship, or false once it has been destroyed.
func (l *Level) Player() (*body.Player, bool) { return l.player, l.player != nil }

// Asteroids returns the current asteroid list. Step replaces the list rather
// than editing it, so a held slice keeps its entries; the asteroids
// themselves keep moving.
func (l *Level) Asteroids() []*body.Asteroid { return l.asteroids }

func (l *Level) Blasts() []*body.Blast { return l.blasts }

// Particles returns the current particles by value. Like the other lists it
// is replaced, not edited, by Step.
func (l *Level) Particles() []particle.Particle { return l.particles }

// Cleared reports whether every asteroid has been destroyed.
func (l *Level) Cleared() bool { return l.cleared }
