package clock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Timezone selects how the current time is broken down before it is
// rendered.
type Timezone int

const (
	// UTC is Coordinated Universal Time
	UTC Timezone = iota
	// Local uses the system settings (see the TZ environment variable)
	Local
)

// String returns the name of the timezone
func (tz Timezone) String() string {
	switch tz {
	case UTC:
		return "UTC"
	case Local:
		return "local"
	default:
		return "<not implemented!>"
	}
}

// ParseTimezone converts "utc" or "local" (case-insensitive) to a Timezone
func ParseTimezone(s string) (Timezone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utc":
		return UTC, nil
	case "local":
		return Local, nil
	default:
		return Local, fmt.Errorf("unknown timezone %q (expected utc|local)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (tz *Timezone) UnmarshalText(text []byte) error {
	parsed, err := ParseTimezone(string(text))
	if err != nil {
		return err
	}
	*tz = parsed
	return nil
}

// In converts t into the timezone
func (tz Timezone) In(t time.Time) time.Time {
	if tz == UTC {
		return t.UTC()
	}
	return t.Local()
}

// Source provides the current time and renders it through a
// strftime(3) pattern. Rendering failures are returned, never panicked.
type Source interface {
	// Now returns the current time
	Now() time.Time
	// Format renders t in tz using the strftime pattern
	Format(t time.Time, tz Timezone, pattern string) (string, error)
	// NowFormatted is Format(Now(), tz, pattern)
	NowFormatted(tz Timezone, pattern string) (string, error)
}

// Option configures a Realtime clock
type Option func(*Realtime)

// WithNow replaces the time source, mainly for tests
func WithNow(now func() time.Time) Option {
	return func(c *Realtime) { c.now = now }
}

// WithCoarse makes the clock read the cached coarse time instead of
// calling time.Now on every log call.
func WithCoarse() Option {
	return func(c *Realtime) {
		StartCoarseClock()
		c.now = CoarseNow
	}
}

// Realtime is the system clock. Compiled patterns are cached, so a
// logger that always uses the same pattern compiles it once.
type Realtime struct {
	now      func() time.Time
	patterns sync.Map // string -> *strftime.Strftime
}

// NewRealtime creates a system clock
func NewRealtime(opts ...Option) *Realtime {
	c := &Realtime{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the current time
func (c *Realtime) Now() time.Time {
	return c.now()
}

// Format renders t in tz using the strftime pattern. An unknown
// conversion or an empty result is an error, like strftime(3)
// returning 0.
func (c *Realtime) Format(t time.Time, tz Timezone, pattern string) (string, error) {
	p, err := c.compile(pattern)
	if err != nil {
		return "", err
	}
	s := p.FormatString(tz.In(t))
	if s == "" {
		return "", fmt.Errorf("clock: pattern %q rendered an empty string", pattern)
	}
	return s, nil
}

// NowFormatted renders the current time
func (c *Realtime) NowFormatted(tz Timezone, pattern string) (string, error) {
	return c.Format(c.now(), tz, pattern)
}

func (c *Realtime) compile(pattern string) (*strftime.Strftime, error) {
	if p, ok := c.patterns.Load(pattern); ok {
		return p.(*strftime.Strftime), nil
	}
	p, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("clock: could not convert time to string with %q: %w", pattern, err)
	}
	c.patterns.Store(pattern, p)
	return p, nil
}

// Pattern compiles a strftime pattern for callers that render many
// times without a Source, such as file name generation.
func Pattern(pattern string) (*strftime.Strftime, error) {
	p, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("clock: invalid pattern %q: %w", pattern, err)
	}
	return p, nil
}
