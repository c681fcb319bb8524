package config

import (
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
	"github.com/philipp01105/athome/handler/filehandler"
	"github.com/philipp01105/athome/logger"
)

// EnvPrefix prefixes every environment override, e.g. ATHOME_LOG_LEVEL
const EnvPrefix = "ATHOME_LOG"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes of the console sink
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config describes the logger and its sinks
type Config struct {
	Level          core.Level     `toml:"level"`
	Timezone       clock.Timezone `toml:"timezone"`
	TimeFormat     string         `toml:"time_format" split_words:"true"`
	Format         string         `toml:"format"`
	Color          string         `toml:"color"`
	Caller         bool           `toml:"caller"`
	Backtrace      bool           `toml:"backtrace"`
	BacktraceDepth uint32         `toml:"backtrace_depth" split_words:"true"`
	CoarseClock    bool           `toml:"coarse_clock" split_words:"true"`

	Console ConsoleConfig `toml:"console"`
	File    FileConfig    `toml:"file"`
	Zap     ZapConfig     `toml:"zap"`
}

// ConsoleConfig configures the stdout sink
type ConsoleConfig struct {
	Enabled bool `toml:"enabled"`
}

// FileConfig configures the daily log files
type FileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Pattern string `toml:"pattern"`
	// Keep is the number of files kept, negative keeps all
	Keep int64 `toml:"keep"`
}

// ZapConfig configures an additional sink that encodes entries with zap
type ZapConfig struct {
	Enabled bool `toml:"enabled"`
	// Paths are opened with zap.Open ("stdout", "stderr" or file paths)
	Paths []string `toml:"paths"`
	// Development selects zap's console encoder instead of JSON
	Development bool `toml:"development"`
}

// Default returns the settings of an unconfigured installation: every
// level on stdout with a local "[%H:%M:%S]" prefix
func Default() Config {
	return Config{
		Level:          core.AllLevel,
		Timezone:       clock.Local,
		TimeFormat:     logger.DefaultTimeFormat,
		Format:         FormatText,
		Color:          ColorAuto,
		Backtrace:      true,
		BacktraceDepth: 24,
		Console:        ConsoleConfig{Enabled: true},
		File: FileConfig{
			Dir:     filehandler.DefaultDir,
			Pattern: filehandler.DefaultPattern,
			Keep:    filehandler.DefaultKeep,
		},
		Zap: ZapConfig{
			Paths: []string{"stderr"},
		},
	}
}

// Load starts from Default, applies the TOML file at path (if path is
// not empty) and then the ATHOME_LOG_* environment variables. The
// result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, diagnostic.Wrapf(err, "could not read config '%s'", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, diagnostic.Errorf("unknown key(s) in '%s': %s", path, strings.Join(keys, ", "))
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, diagnostic.Wrapf(err, "invalid environment override")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every value that cannot be caught while decoding
func (c Config) Validate() error {
	if !c.Level.IsMessageLevel() && c.Level != core.AllLevel && c.Level != core.NoneLevel {
		return diagnostic.Errorf("invalid level %d", int(c.Level))
	}
	if c.Timezone != clock.UTC && c.Timezone != clock.Local {
		return diagnostic.Errorf("invalid timezone %d", int(c.Timezone))
	}
	if _, err := clock.Pattern(c.TimeFormat); err != nil {
		return diagnostic.Wrapf(err, "invalid time format '%s'", c.TimeFormat)
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return diagnostic.Errorf("invalid format '%s' (expected text|json)", c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return diagnostic.Errorf("invalid color mode '%s' (expected auto|on|off)", c.Color)
	}

	if c.BacktraceDepth < 4 || c.BacktraceDepth > diagnostic.MaxDepth {
		return diagnostic.Errorf("backtrace depth %d out of range [4, %d]", c.BacktraceDepth, diagnostic.MaxDepth)
	}

	if c.File.Enabled {
		if c.File.Dir == "" {
			return diagnostic.Errorf("file sink enabled without a directory")
		}
		if _, err := clock.Pattern(c.File.Pattern); err != nil {
			return diagnostic.Wrapf(err, "invalid file name pattern '%s'", c.File.Pattern)
		}
		if _, err := c.KeepFiles(); err != nil {
			return err
		}
	}
	if c.Zap.Enabled && len(c.Zap.Paths) == 0 {
		return diagnostic.Errorf("zap sink enabled without paths")
	}

	if !c.Console.Enabled && !c.File.Enabled && !c.Zap.Enabled {
		return diagnostic.Errorf("no sink enabled")
	}
	return nil
}

// KeepFiles returns File.Keep as an int
func (c Config) KeepFiles() (int, error) {
	keep, err := safecast.Conv[int](c.File.Keep)
	if err != nil {
		return 0, diagnostic.Wrapf(err, "file keep count %d out of range", c.File.Keep)
	}
	return keep, nil
}

// Depth returns BacktraceDepth as an int
func (c Config) Depth() (int, error) {
	d, err := safecast.Conv[int](c.BacktraceDepth)
	if err != nil {
		return 0, diagnostic.Wrapf(err, "backtrace depth %d out of range", c.BacktraceDepth)
	}
	return d, nil
}
