package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log entry. A message is
// emitted iff its level is greater than or equal to the threshold.
type Level int8

const (
	// AllLevel is a threshold that lets every message through
	AllLevel Level = 0
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarnLevel for warning messages
	WarnLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// FatalLevel for fatal messages (the logger exits afterwards)
	FatalLevel Level = 50
	// NoneLevel is a threshold that suppresses every message
	NoneLevel Level = 60
)

// String returns the name written into log lines
func (l Level) String() string {
	switch l {
	case AllLevel:
		return "ALL"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warning"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case NoneLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Leveler provides a threshold that may change over time
type Leveler interface {
	Level() Level
}

// Level implements Leveler for a fixed threshold
func (l Level) Level() Level {
	return l
}

// IsMessageLevel reports whether l may be attached to a log entry.
// ALL and NONE are thresholds only.
func (l Level) IsMessageLevel() bool {
	switch l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return true
	default:
		return false
	}
}

// Enabled reports whether a message at level msg passes threshold l
func (l Level) Enabled(msg Level) bool {
	return msg >= l && l != NoneLevel
}

// ParseLevel converts a case-insensitive level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL":
		return AllLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	case "NONE", "OFF":
		return NoneLevel, nil
	default:
		return AllLevel, fmt.Errorf("unknown log level %q (expected all|debug|info|warning|error|fatal|none)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}
