package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/shardfall/internal/core/config"
	"github.com/zeusync/shardfall/internal/core/observability/log"
)

const (
	defaultLevel   = 1
	writeWait      = 2 * time.Second
	maxInputSize   = 512
	shutdownPeriod = 5 * time.Second
)

// FrameServer streams rendered frames over websocket. Every session owns an
// independent level that it steps at the configured tick rate.
type FrameServer struct {
	config config.Config
	logger log.Log

	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener

	// Session management
	sessions     sync.Map // map[uuid.UUID]*session
	sessionCount int64    // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	ctx      context.Context
	cancel   context.CancelFunc
	sessionG sync.WaitGroup
}

// NewFrameServer validates cfg and prepares a server. Nothing listens until
// Start.
func NewFrameServer(cfg config.Config, logger log.Log) (*FrameServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("frame server: %w", err)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FrameServer{
		config: cfg,
		logger: logger.With(log.String("component", "frame-server")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Handler exposes the websocket endpoint and the health check. It works
// without Start, which lets tests mount it on httptest.
func (s *FrameServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start listens on the configured address and serves until Stop.
func (s *FrameServer) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.Server.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Serve failed", log.Error(err))
		}
	}()

	s.logger.Info("Server started",
		log.String("addr", listener.Addr().String()),
		log.Float64("tick_rate", s.config.Server.TickRate),
		log.Int("max_sessions", s.config.Server.MaxSessions))

	return nil
}

// Addr is the bound listen address, or empty before Start.
func (s *FrameServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop ends every session and shuts the listener down. Sessions receive a
// close frame before their connection is dropped.
func (s *FrameServer) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server", log.Int("sessions", s.SessionCount()))

	s.cancel()
	var err error
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownPeriod)
		err = s.httpServer.Shutdown(shutdownCtx)
		cancel()
	}
	s.sessionG.Wait()

	atomic.StoreInt32(&s.closed, 1)
	s.logger.Info("Server stopped")
	return err
}

// SessionCount reports the number of live sessions.
func (s *FrameServer) SessionCount() int {
	return int(atomic.LoadInt64(&s.sessionCount))
}

func (s *FrameServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if atomic.LoadInt32(&s.closed) == 1 {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "ok sessions=%d\n", s.SessionCount())
}

func (s *FrameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	number, err := levelNumber(r.URL.Query().Get("level"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.ctx.Err() != nil {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	if n := atomic.AddInt64(&s.sessionCount, 1); int(n) > s.config.Server.MaxSessions {
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Warn("Maximum sessions reached, rejecting connection",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxSessionsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	s.sessionG.Add(1)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.sessionG.Done()
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Warn("Websocket upgrade failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	sess := newSession(conn, number, s.config, s.logger)
	s.sessions.Store(sess.id, sess)

	s.logger.Info("Session started",
		log.Stringer("session_id", sess.id),
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int("level", number),
		log.Int("total_sessions", s.SessionCount()))

	go func() {
		defer s.sessionG.Done()
		defer func() {
			s.sessions.Delete(sess.id)
			atomic.AddInt64(&s.sessionCount, -1)
		}()

		err := sess.run(s.ctx)
		fields := []log.Field{
			log.Stringer("session_id", sess.id),
			log.Uint64("tick", sess.level.Tick()),
		}
		if err != nil {
			s.logger.Warn("Session ended with error", append(fields, log.Error(err))...)
			return
		}
		s.logger.Info("Session ended", fields...)
	}()
}

// levelNumber parses the level query parameter. Missing means the first level.
func levelNumber(raw string) (int, error) {
	if raw == "" {
		return defaultLevel, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, raw)
	}
	return n, nil
}
