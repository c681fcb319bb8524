package logger

import (
	"github.com/philipp01105/athome/core"
)

// Level is the severity of a message or the threshold of a Logger
type Level = core.Level

// Thresholds and message levels, lowest first. ALL and NONE are only
// meaningful as thresholds.
const (
	AllLevel   = core.AllLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
	NoneLevel  = core.NoneLevel
)

// ParseLevel converts a level name such as "warning" or "none" to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// MustParseLevel is ParseLevel for constant input. It panics on an
// unknown name.
func MustParseLevel(s string) Level {
	l, err := core.ParseLevel(s)
	if err != nil {
		panic(err)
	}
	return l
}
