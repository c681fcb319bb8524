package sloghandler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/handler"
)

// Option configures a SlogHandler
type Option func(*SlogHandler)

// WithTimestamp renders the entry timestamp the same way the logger
// does, so lines from slog and from the logger look alike
func WithTimestamp(fn func(time.Time) string) Option {
	return func(s *SlogHandler) {
		s.stamp = fn
	}
}

// WithFields adds fields to every record
func WithFields(fields ...core.Field) Option {
	return func(s *SlogHandler) {
		s.attrs = append(s.attrs, fields...)
	}
}

// SlogHandler is an adapter that implements slog.Handler on top of a
// handler.Handler. This allows the handlers to serve as the backend of
// log/slog.
type SlogHandler struct {
	handler handler.Handler
	level   core.Leveler
	stamp   func(time.Time) string
	attrs   []core.Field
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. level is consulted on every record, so a logger's mutable
// threshold can be passed directly.
func NewSlogHandler(h handler.Handler, level core.Leveler, opts ...Option) *SlogHandler {
	s := &SlogHandler{
		handler: h,
		level:   level,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.level.Level().Enabled(slogLevelToCore(level))
}

// Handle processes a slog.Record by converting it to a core.Entry and passing it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.Message = record.Message
	if s.stamp != nil {
		entry.Timestamp = s.stamp(record.Time)
	}

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendAttr(entry.Fields, s.group, a)
		return true
	})

	return s.handler.Handle(entry)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	c := *s
	c.attrs = newAttrs
	return &c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	c.group = name
	if s.group != "" {
		c.group = s.group + "." + name
	}
	return &c
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr converts a slog.Attr to fields, prefixing the group.
// Groups are flattened into dotted keys.
func appendAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + a.Key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.Uint64Type, Uint64: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, key, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
