package zaphandler

import (
	"errors"
	"testing"
	"time"

	"github.com/philipp01105/athome/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapHandler_Forwards(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	h := NewZapHandler(obs)

	ts := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	err := h.Handle(&core.Entry{
		Time:    ts,
		Level:   core.WarnLevel,
		Message: "disk almost full",
		Fields: []core.Field{
			{Key: "mount", Type: core.StringType, Str: "/var"},
			{Key: "free", Type: core.Uint64Type, Uint64: 1024},
			{Key: "ok", Type: core.BoolType, Int64: 0},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	got := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, got.Level)
	assert.Equal(t, "disk almost full", got.Message)
	assert.Equal(t, ts, got.Time)
	assert.Equal(t, map[string]interface{}{"mount": "/var", "free": uint64(1024), "ok": false}, got.ContextMap())
}

func TestZapHandler_RespectsCoreLevel(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	h := NewZapHandler(obs)

	require.NoError(t, h.Handle(&core.Entry{Level: core.InfoLevel, Message: "filtered"}))
	require.NoError(t, h.Handle(&core.Entry{Level: core.ErrorLevel, Message: "kept"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestZapHandler_FatalDoesNotExit(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	h := NewZapHandler(obs)

	require.NoError(t, h.Handle(&core.Entry{Level: core.FatalLevel, Message: "going down"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.FatalLevel, logs.All()[0].Level)
	assert.NoError(t, h.Sync())
	assert.NoError(t, h.Close())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapLevel(core.AllLevel))
	assert.Equal(t, zapcore.DebugLevel, zapLevel(core.DebugLevel))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(core.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, zapLevel(core.WarnLevel))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(core.ErrorLevel))
	assert.Equal(t, zapcore.FatalLevel, zapLevel(core.FatalLevel))
}

func TestZapField_Error(t *testing.T) {
	f := zapField(core.Field{Key: "error", Type: core.ErrorType, Str: errors.New("boom").Error()})
	assert.Equal(t, zapcore.StringType, f.Type)
	assert.Equal(t, "boom", f.String)
}
