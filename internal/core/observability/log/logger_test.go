package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		parsed, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	parsed, err := ParseLevel(" WARNING ")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, parsed)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewWithCore(core).With(String("component", "level"))

	logger.Info("asteroid shattered",
		Int("fragments", 2),
		Float64("speed", 12.5),
		Bool("debris", true),
		Uint64("tick", 7),
		Duration("elapsed", time.Second),
		Error(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "level", ctx["component"])
	assert.Equal(t, int64(2), ctx["fragments"])
	assert.Equal(t, 12.5, ctx["speed"])
	assert.Equal(t, true, ctx["debris"])
	assert.Equal(t, uint64(7), ctx["tick"])
	assert.Equal(t, time.Second, ctx["elapsed"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestLoggerEnabled(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewWithCore(core)

	assert.False(t, logger.Enabled(LevelDebug))
	assert.True(t, logger.Enabled(LevelWarn))

	logger.Debug("hidden")
	logger.Warn("shown")
	assert.Equal(t, 1, logs.Len())

	nop := NewNop()
	nop.Info("nothing")
	assert.False(t, nop.Enabled(LevelError))
}
