package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/shardfall/internal/core/config"
	"github.com/zeusync/shardfall/internal/core/observability/log"
	"github.com/zeusync/shardfall/internal/server"
)

// App is everything a server process needs.
type App struct {
	Server *server.FrameServer
	Logger log.Log
}

func NewApp(srv *server.FrameServer, logger log.Log) *App {
	return &App{Server: srv, Logger: logger}
}

// ProvideLogger builds the process logger at the configured level. The
// cleanup flushes buffered entries.
func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	logger := log.New(level)
	return logger, func() { _ = logger.Sync() }, nil
}

var LoggerSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
)

var ServerSet = wire.NewSet(
	LoggerSet,
	server.NewFrameServer,
	NewApp,
)
