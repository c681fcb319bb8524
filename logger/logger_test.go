package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/formatter"
	"github.com/philipp01105/athome/handler/consolehandler"
)

var noon = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// newTestBuilder returns a builder writing text lines to buf with a
// fixed UTC clock at noon
func newTestBuilder(buf *bytes.Buffer) *Builder {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	return NewBuilder().
		WithHandler(h).
		WithTimezone(clock.UTC).
		WithClock(clock.NewRealtime(clock.WithNow(func() time.Time { return noon })))
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).WithLevel(InfoLevel).Build()

	// Debug should not be logged (below Info level)
	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("Debug message was logged when level is Info")
	}

	// Info should be logged
	logger.Info("info message")
	if buf.String() != "[12:00:00] info: info message\n" {
		t.Errorf("Unexpected info line: %q", buf.String())
	}

	buf.Reset()

	// Warn should be logged
	logger.Warn("warn message")
	if buf.String() != "[12:00:00] warning: warn message\n" {
		t.Errorf("Unexpected warning line: %q", buf.String())
	}

	buf.Reset()

	// Error should be logged
	logger.Error("error message")
	if buf.String() != "[12:00:00] ERROR: error message\n" {
		t.Errorf("Unexpected error line: %q", buf.String())
	}
}

func TestLogger_WarningAcrossThresholds(t *testing.T) {
	tests := []struct {
		threshold Level
		emitted   bool
	}{
		{AllLevel, true},
		{DebugLevel, true},
		{InfoLevel, true},
		{WarnLevel, true},
		{ErrorLevel, false},
		{FatalLevel, false},
		{NoneLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.threshold.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := newTestBuilder(&buf).WithLevel(tt.threshold).Build()

			log.Warnf("disk at %d%%", 91)

			if got := buf.Len() > 0; got != tt.emitted {
				t.Fatalf("emitted = %v, want %v (output %q)", got, tt.emitted, buf.String())
			}
			if tt.emitted && buf.String() != "[12:00:00] warning: disk at 91%\n" {
				t.Errorf("Unexpected line: %q", buf.String())
			}
		})
	}
}

func TestLogger_DefaultsToAll(t *testing.T) {
	var buf bytes.Buffer
	log := newTestBuilder(&buf).Build()

	if log.Level() != AllLevel {
		t.Errorf("Default level = %v, want ALL", log.Level())
	}
	log.Debug("visible")
	if !strings.Contains(buf.String(), "debug: visible") {
		t.Errorf("Debug not written at default level: %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).
		WithLevel(InfoLevel).
		WithFields(String("app", "test")).
		Build()

	// Create child logger with additional fields
	childLogger := logger.With(String("request_id", "123"))

	childLogger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "app=test") {
		t.Errorf("Expected 'app=test' in output, got: %s", output)
	}
	if !strings.Contains(output, "request_id=123") {
		t.Errorf("Expected 'request_id=123' in output, got: %s", output)
	}
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestBuilder(&buf).Build()
	child := parent.With(String("child", "yes"))

	parent.SetLevel(NoneLevel)
	child.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("Child ignored the parent's threshold: %q", buf.String())
	}

	child.SetLevel(ErrorLevel)
	if parent.Level() != ErrorLevel {
		t.Errorf("Parent level = %v, want ERROR", parent.Level())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).Build()

	logger.Info("test",
		String("string", "value"),
		Int("int", 42),
		Uint64("uint", 7),
		Bool("bool", true),
		Duration("took", 1500*time.Millisecond),
	)

	want := "[12:00:00] info: test string=value int=42 uint=7 bool=true took=1.5s\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_FormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).Build()

	logger.Errorf("Hello %s, how are you (%d)?", "World", -999)

	if buf.String() != "[12:00:00] ERROR: Hello World, how are you (-999)?\n" {
		t.Errorf("Unexpected line: %q", buf.String())
	}
}

func TestLogger_TimeFormatAndTimezone(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).WithTimeFormat("%Y-%m-%d %H:%M").Build()

	logger.Info("utc")
	if buf.String() != "2026-10-19 12:00 info: utc\n" {
		t.Errorf("Unexpected line: %q", buf.String())
	}

	buf.Reset()
	logger.SetTimezone(clock.Local)
	logger.Info("local")
	want := noon.Local().Format("2006-01-02 15:04") + " info: local\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{IncludeCaller: true}),
	})
	log := NewBuilder().WithHandler(h).WithCaller(true).Build()

	log.Info("where")
	if !strings.Contains(buf.String(), "[logger_test.go:") {
		t.Errorf("Expected caller in output, got: %s", buf.String())
	}
}

func TestLogger_WithCoarseClock(t *testing.T) {
	var buf bytes.Buffer
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	log := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		WithCoarseClock(true).
		Build()

	log.Info("coarse clock message")
	output := buf.String()
	if !strings.Contains(output, "info: coarse clock message") {
		t.Errorf("Expected 'coarse clock message' in output, got: %s", output)
	}

	buf.Reset()

	child := log.With(String("key", "value"))
	child.Info("with field")
	output = buf.String()
	if !strings.Contains(output, "with field key=value") {
		t.Errorf("Expected 'with field key=value' in output, got: %s", output)
	}
}

func TestLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	log := newTestBuilder(&buf).WithLevel(DebugLevel).Build()

	// Override osExit to capture exit code instead of actually exiting
	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	log.Fatal(3, "fatal error", String("key", "value"))

	if exitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", exitCode)
	}
	if buf.String() != "[12:00:00] FATAL: fatal error key=value\n" {
		t.Errorf("Unexpected line: %q", buf.String())
	}
}

func TestLogger_FatalFilteredStillExits(t *testing.T) {
	var buf bytes.Buffer
	exitCode := -1
	log := newTestBuilder(&buf).
		WithLevel(NoneLevel).
		WithExitFunc(func(code int) { exitCode = code }).
		Build()

	log.Fatalf(7, "never shown %d", 1)

	if buf.Len() != 0 {
		t.Errorf("NONE must suppress FATAL text, got %q", buf.String())
	}
	if exitCode != 7 {
		t.Errorf("Expected exit code 7, got %d", exitCode)
	}
}

func TestLogger_ThresholdError(t *testing.T) {
	var buf bytes.Buffer
	exitCode := -1
	log := newTestBuilder(&buf).
		WithLevel(ErrorLevel).
		WithExitFunc(func(code int) { exitCode = code }).
		Build()

	log.Warn("dropped")
	log.Error("kept")
	log.Fatal(2, "bye")

	want := "[12:00:00] ERROR: kept\n[12:00:00] FATAL: bye\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if exitCode != 2 {
		t.Errorf("Expected exit code 2, got %d", exitCode)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"all":     AllLevel,
		"DEBUG":   DebugLevel,
		"warning": WarnLevel,
		"FATAL":   FatalLevel,
		"none":    NoneLevel,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("PANIC"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func BenchmarkLogger_LevelCheck(b *testing.B) {
	var buf bytes.Buffer
	logger := newTestBuilder(&buf).WithLevel(ErrorLevel).Build()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered")
	}
}
