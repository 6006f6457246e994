package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/shardfall/internal/core/body"
	"github.com/zeusync/shardfall/internal/core/config"
	"github.com/zeusync/shardfall/internal/core/events/bus"
	"github.com/zeusync/shardfall/internal/core/level"
	"github.com/zeusync/shardfall/internal/core/observability/log"
	"github.com/zeusync/shardfall/internal/render"
)

// InputMessage carries the control bitmask the client holds down. It stays
// in effect until the next message.
type InputMessage struct {
	Input uint32 `json:"input"`
}

// FrameMessage is sent once per tick. Events lists the level events
// published during that tick, in order.
type FrameMessage struct {
	render.Frame
	Events []string `json:"events,omitempty"`
}

var errClientGone = errors.New("client closed the connection")

type session struct {
	id       uuid.UUID
	conn     *websocket.Conn
	level    *level.Level
	dt       float64
	interval time.Duration
	logger   log.Log

	controls atomic.Uint32
	pending  []string
}

func newSession(conn *websocket.Conn, number int, cfg config.Config, logger log.Log) *session {
	s := &session{
		id:       uuid.New(),
		conn:     conn,
		dt:       1 / cfg.Server.TickRate,
		interval: cfg.Server.TickInterval(),
	}
	s.logger = logger.With(log.Stringer("session_id", s.id))

	events := bus.New()
	// The level publishes synchronously from Step, on the streaming goroutine.
	_, _ = events.Subscribe("", func(e bus.Event) error {
		s.pending = append(s.pending, e.Type())
		return nil
	})
	s.level = level.New(number, cfg, level.WithLogger(s.logger), level.WithEventBus(events))
	return s
}

// run serves the session until the client leaves or ctx is cancelled.
func (s *session) run(ctx context.Context) error {
	s.conn.SetReadLimit(maxInputSize)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readInputs(ctx) })
	g.Go(func() error { return s.stream(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, errClientGone) {
		return err
	}
	return nil
}

func (s *session) readInputs(ctx context.Context) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return errClientGone
			}
			return fmt.Errorf("read input: %w", err)
		}

		var msg InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("Ignoring malformed input", log.Error(err))
			continue
		}
		s.controls.Store(msg.Input)
	}
}

// stream owns the connection's write side and closes it on return.
func (s *session) stream(ctx context.Context) error {
	defer s.conn.Close()

	if err := s.send(FrameMessage{Frame: render.Snapshot(s.level)}); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
				time.Now().Add(writeWait))
			return nil
		case <-ticker.C:
			report := s.level.Step(s.dt, body.Controls(s.controls.Load()))
			frame := render.Snapshot(s.level)
			frame.Report = &report

			msg := FrameMessage{Frame: frame, Events: s.pending}
			s.pending = nil
			if err := s.send(msg); err != nil {
				return err
			}
		}
	}
}

func (s *session) send(msg FrameMessage) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
