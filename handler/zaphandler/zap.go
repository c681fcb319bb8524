package zaphandler

import (
	"errors"
	"syscall"
	"time"

	"github.com/philipp01105/athome/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapHandler forwards entries to a zapcore.Core. Entries are written
// through the core directly, so FATAL entries never trigger zap's exit
// hook; terminating the process is left to the logger.
type ZapHandler struct {
	core zapcore.Core
}

// NewZapHandler wraps c
func NewZapHandler(c zapcore.Core) *ZapHandler {
	return &ZapHandler{core: c}
}

// Handle converts the entry and writes it if the core is enabled for
// its level
func (h *ZapHandler) Handle(entry *core.Entry) error {
	ze := zapcore.Entry{
		Level:   zapLevel(entry.Level),
		Time:    entry.Time,
		Message: entry.Message,
	}
	if entry.Caller.Defined {
		ze.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     entry.Caller.File,
			Line:     entry.Caller.Line,
			Function: entry.Caller.Function,
		}
	}

	ce := h.core.Check(ze, nil)
	if ce == nil {
		return nil
	}

	fields := make([]zap.Field, 0, len(entry.Fields))
	for _, f := range entry.Fields {
		fields = append(fields, zapField(f))
	}
	ce.Write(fields...)
	return nil
}

// Sync flushes the core. Streams that cannot be synced, such as
// terminals and pipes, are not an error.
func (h *ZapHandler) Sync() error {
	if err := h.core.Sync(); err != nil && !isUnsyncable(err) {
		return err
	}
	return nil
}

// Close flushes the core. The sinks belong to whoever built the core.
func (h *ZapHandler) Close() error {
	return h.Sync()
}

func isUnsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTSUP) || errors.Is(err, syscall.ENOTTY)
}

func zapLevel(l core.Level) zapcore.Level {
	switch {
	case l >= core.FatalLevel:
		return zapcore.FatalLevel
	case l >= core.ErrorLevel:
		return zapcore.ErrorLevel
	case l >= core.WarnLevel:
		return zapcore.WarnLevel
	case l >= core.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func zapField(f core.Field) zap.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Uint64Type:
		return zap.Uint64(f.Key, f.Uint64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		// the message is already rendered; keep it as text
		return zap.String(f.Key, f.Str)
	default:
		return zap.Any(f.Key, f.Any)
	}
}
