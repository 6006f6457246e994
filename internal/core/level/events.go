package level

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/zeusync/shardfall/internal/core/events/bus"
	"github.com/zeusync/shardfall/internal/core/geometry"
	"github.com/zeusync/shardfall/internal/core/observability/log"
)

const (
	EventAsteroidShattered = "asteroid.shattered"
	EventPlayerShielded    = "player.shielded"
	EventPlayerCollided    = "player.collided"
	EventPlayerDestroyed   = "player.destroyed"
	EventLevelCleared      = "level.cleared"
)

type ShatterEvent struct {
	Asteroid  uuid.UUID
	Point     geometry.Point
	Speed     float64
	Fragments int
	Particles int
}

type PlayerEvent struct {
	Player uuid.UUID
	Point  geometry.Point
	Speed  float64
}

type ClearedEvent struct {
	Level int
}

func (l *Level) source() string {
	return "level-" + strconv.Itoa(l.number)
}

// publish never fails the tick; handler errors are logged.
func (l *Level) publish(eventType string, data any) {
	if err := l.events.Publish(bus.NewEvent(eventType, l.source(), l.tick, data)); err != nil {
		l.logger.Warn("event handler failed",
			log.String("event", eventType),
			log.Uint64("tick", l.tick),
			log.Error(err),
		)
	}
}
