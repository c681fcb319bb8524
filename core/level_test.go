package core

import (
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{AllLevel, "ALL"},
		{DebugLevel, "debug"},
		{InfoLevel, "info"},
		{WarnLevel, "warning"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{NoneLevel, "NONE"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	ordered := []Level{AllLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel, NoneLevel}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("%v should be lower than %v", ordered[i-1], ordered[i])
		}
	}
}

func TestLevel_Enabled(t *testing.T) {
	tests := []struct {
		threshold Level
		msg       Level
		want      bool
	}{
		{AllLevel, DebugLevel, true},
		{InfoLevel, WarnLevel, true},
		{WarnLevel, WarnLevel, true},
		{ErrorLevel, WarnLevel, false},
		{FatalLevel, WarnLevel, false},
		{FatalLevel, FatalLevel, true},
		{NoneLevel, FatalLevel, false},
	}

	for _, tt := range tests {
		if got := tt.threshold.Enabled(tt.msg); got != tt.want {
			t.Errorf("%v.Enabled(%v) = %v, want %v", tt.threshold, tt.msg, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"all":     AllLevel,
		"DEBUG":   DebugLevel,
		"Info":    InfoLevel,
		"warn":    WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
		"none":    NoneLevel,
		" off ":   NoneLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(\"verbose\") should fail")
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("warning")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if l != WarnLevel {
		t.Errorf("UnmarshalText() = %v, want %v", l, WarnLevel)
	}
	text, _ := ErrorLevel.MarshalText()
	if string(text) != "error" {
		t.Errorf("MarshalText() = %q, want %q", text, "error")
	}
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText(\"loud\") should fail")
	}
}
