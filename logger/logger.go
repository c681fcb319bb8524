package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
	"github.com/philipp01105/athome/handler"
	"github.com/philipp01105/athome/handler/consolehandler"
	"github.com/philipp01105/athome/handler/sloghandler"
	"go.uber.org/zap/zapcore"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

const (
	// DefaultTimeFormat is the strftime pattern of the line prefix
	DefaultTimeFormat = "[%H:%M:%S]"
	// fallbackLayout renders the prefix when the clock fails
	fallbackLayout = "[15:04:05]"
	// callerSkip reaches the caller of a public logging method
	callerSkip = 3
)

// Logger writes leveled, timestamped lines to a handler. The threshold
// and timezone may be changed at runtime and are shared with every
// logger derived through With. A Logger is safe for concurrent use.
type Logger struct {
	handler       handler.Handler
	level         *atomic.Int32
	tz            *atomic.Int32
	clock         clock.Source
	timeFormat    string
	fields        []core.Field
	includeCaller bool
	backtrace     bool
	fallback      zapcore.WriteSyncer
	clockWarned   *atomic.Bool
	exit          func(int)
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	tz            clock.Timezone
	clock         clock.Source
	timeFormat    string
	fields        []core.Field
	includeCaller bool
	backtrace     bool
	fallback      io.Writer
	exit          func(int)
}

// NewBuilder creates a new logger builder. The defaults print every
// level to stdout with a local "[%H:%M:%S]" prefix and append
// backtraces to diagnostic errors.
func NewBuilder() *Builder {
	return &Builder{
		level:      core.AllLevel,
		tz:         clock.Local,
		timeFormat: DefaultTimeFormat,
		backtrace:  true,
		fallback:   os.Stderr,
	}
}

// WithHandler sets the handler (default: console handler on stdout)
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the threshold
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithTimezone sets the timezone of the line prefix
func (b *Builder) WithTimezone(tz clock.Timezone) *Builder {
	b.tz = tz
	return b
}

// WithTimeFormat sets the strftime pattern of the line prefix
func (b *Builder) WithTimeFormat(pattern string) *Builder {
	b.timeFormat = pattern
	return b
}

// WithClock replaces the time source
func (b *Builder) WithClock(c clock.Source) *Builder {
	b.clock = c
	return b
}

// WithCoarseClock reads the time from the cached coarse clock instead
// of calling time.Now for every line
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	if enabled {
		b.clock = clock.NewRealtime(clock.WithCoarse())
	} else {
		b.clock = nil
	}
	return b
}

// WithFallback sets the stream that receives the logger's own failures
// (default: os.Stderr)
func (b *Builder) WithFallback(w io.Writer) *Builder {
	b.fallback = w
	return b
}

// WithExitFunc replaces os.Exit for the Fatal methods
func (b *Builder) WithExitFunc(exit func(int)) *Builder {
	b.exit = exit
	return b
}

// WithBacktrace controls whether the Err methods append the backtrace
// of diagnostic errors
func (b *Builder) WithBacktrace(enabled bool) *Builder {
	b.backtrace = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	h := b.handler
	if h == nil {
		h = consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{})
	}
	c := b.clock
	if c == nil {
		c = clock.NewRealtime()
	}
	fallback := b.fallback
	if fallback == nil {
		fallback = io.Discard
	}
	timeFormat := b.timeFormat
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}

	l := &Logger{
		handler:       h,
		level:         new(atomic.Int32),
		tz:            new(atomic.Int32),
		clock:         c,
		timeFormat:    timeFormat,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		backtrace:     b.backtrace,
		fallback:      zapcore.Lock(zapcore.AddSync(fallback)),
		clockWarned:   new(atomic.Bool),
		exit:          b.exit,
	}
	l.level.Store(int32(b.level))
	l.tz.Store(int32(b.tz))
	return l
}

// With creates a new Logger with additional fields. The child shares
// the threshold, timezone and handler of its parent.
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// Level returns the current threshold
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel changes the threshold
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(int32(level))
}

// Timezone returns the timezone of the line prefix
func (l *Logger) Timezone() clock.Timezone {
	return clock.Timezone(l.tz.Load())
}

// SetTimezone changes the timezone of the line prefix
func (l *Logger) SetTimezone(tz clock.Timezone) {
	l.tz.Store(int32(tz))
}

// Enabled reports whether a message at level would be written
func (l *Logger) Enabled(level core.Level) bool {
	return l.Level().Enabled(level)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if !l.Enabled(level) {
		return
	}
	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	entry := core.GetEntry()
	entry.Time = l.clock.Now()
	entry.Timestamp = l.timestamp(entry.Time)
	entry.Level = level
	entry.Message = msg

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(callerSkip)
	}

	l.dispatch(entry)
	core.PutEntry(entry)
}

// dispatch hands the entry to the handler. Failures are reported on the
// fallback stream and never reach the caller.
func (l *Logger) dispatch(entry *core.Entry) {
	defer func() {
		if r := recover(); r != nil {
			l.writeFailed(entry.Level)
		}
	}()

	if err := l.handler.Handle(entry); err != nil {
		l.writeFailed(entry.Level)
	}
}

func (l *Logger) writeFailed(level core.Level) {
	fmt.Fprintf(l.fallback, "ERROR: Logger: Could not write '%s' message!\n", level)
}

// timestamp renders the line prefix, falling back to a fixed layout
// when the configured pattern cannot be rendered
func (l *Logger) timestamp(t time.Time) string {
	tz := l.Timezone()
	s, err := l.clock.Format(t, tz, l.timeFormat)
	if err == nil {
		return s
	}
	if l.clockWarned.CompareAndSwap(false, true) {
		fmt.Fprintf(l.fallback, "WARNING: Logger: %v; using %s\n", err, fallbackLayout)
	}
	return tz.In(t).Format(fallbackLayout)
}

// errorText renders err as opaque message text. Diagnostic errors get
// their backtrace appended once. ok is false when rendering panicked.
func (l *Logger) errorText(err error) (msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok = "", false
		}
	}()

	if err == nil {
		return "<nil>", true
	}

	var de *diagnostic.Error
	if !l.backtrace || !errors.As(err, &de) {
		return err.Error(), true
	}
	if err == error(de) {
		de.BT()
		return de.Error(), true
	}

	msg = err.Error()
	if !strings.Contains(msg, diagnostic.BacktraceHeader) {
		msg += de.Backtrace()
	}
	return msg, true
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with code. The exit
// happens even when the threshold filters the message.
func (l *Logger) Fatal(code int, msg string, fields ...core.Field) {
	if l.Enabled(core.FatalLevel) {
		l.log(core.FatalLevel, msg, fields)
	}
	l.exitWith(code)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program
// with code
func (l *Logger) Fatalf(code int, format string, args ...interface{}) {
	if l.Enabled(core.FatalLevel) {
		l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	}
	l.exitWith(code)
}

// DebugErr logs err as a debug message. The error text is never
// interpreted as a format string.
func (l *Logger) DebugErr(err error, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	msg, ok := l.errorText(err)
	if !ok {
		l.writeFailed(core.DebugLevel)
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// InfoErr logs err as an info message
func (l *Logger) InfoErr(err error, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	msg, ok := l.errorText(err)
	if !ok {
		l.writeFailed(core.InfoLevel)
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// WarnErr logs err as a warning message
func (l *Logger) WarnErr(err error, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	msg, ok := l.errorText(err)
	if !ok {
		l.writeFailed(core.WarnLevel)
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// ErrorErr logs err as an error message
func (l *Logger) ErrorErr(err error, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	msg, ok := l.errorText(err)
	if !ok {
		l.writeFailed(core.ErrorLevel)
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// FatalErr logs err as a fatal message and exits the program with code
func (l *Logger) FatalErr(code int, err error, fields ...core.Field) {
	if l.Enabled(core.FatalLevel) {
		if msg, ok := l.errorText(err); ok {
			l.log(core.FatalLevel, msg, fields)
		} else {
			l.writeFailed(core.FatalLevel)
		}
	}
	l.exitWith(code)
}

func (l *Logger) exitWith(code int) {
	func() {
		defer func() { _ = recover() }()
		_ = handler.Sync(l.handler)
	}()

	exit := l.exit
	if exit == nil {
		exit = osExit
	}
	exit(code)
}

// Slog returns a log/slog logger writing through the same handler with
// the same threshold, clock, prefix and default fields
func (l *Logger) Slog() *slog.Logger {
	return slog.New(sloghandler.NewSlogHandler(l.handler, l,
		sloghandler.WithTimestamp(func(time.Time) string { return l.timestamp(l.clock.Now()) }),
		sloghandler.WithFields(l.fields...),
	))
}

// Sync flushes the handler
func (l *Logger) Sync() error {
	return handler.Sync(l.handler)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	return l.handler.Close()
}
