package bootstrap

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/config"
	"github.com/philipp01105/athome/diagnostic"
	"github.com/philipp01105/athome/formatter"
	"github.com/philipp01105/athome/handler"
	"github.com/philipp01105/athome/handler/consolehandler"
	"github.com/philipp01105/athome/handler/filehandler"
	"github.com/philipp01105/athome/handler/multihandler"
	"github.com/philipp01105/athome/handler/zaphandler"
	"github.com/philipp01105/athome/logger"
)

// Common holds the process-wide logger and the sinks behind it
type Common struct {
	// Log is the configured logger
	Log *logger.Logger
	// Files is the daily file sink, nil unless enabled
	Files *filehandler.FileHandler

	closers []func() error
}

type options struct {
	stdout   io.Writer
	stderr   io.Writer
	clock    clock.Source
	exit     func(int)
	terminal func(io.Writer) bool
}

// Option customizes New
type Option func(*options)

// WithStdout replaces the console stream (default: os.Stdout)
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr replaces the fallback stream (default: os.Stderr)
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithClock replaces the time source of the logger and the file sink
func WithClock(c clock.Source) Option {
	return func(o *options) { o.clock = c }
}

// WithExitFunc replaces os.Exit for the Fatal methods
func WithExitFunc(exit func(int)) Option {
	return func(o *options) { o.exit = exit }
}

// New builds the handler chain and the logger described by cfg. The
// backtrace depth of diagnostic errors is process-wide and is set here
// as well.
func New(cfg config.Config, opts ...Option) (_ *Common, err error) {
	o := options{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: consolehandler.IsTerminal,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	depth, err := cfg.Depth()
	if err != nil {
		return nil, err
	}
	diagnostic.SetDepth(depth)

	c := &Common{}
	defer func() {
		if err != nil {
			err = multierr.Append(err, c.closeAll())
		}
	}()

	var handlers []handler.Handler

	if cfg.Console.Enabled {
		color := cfg.Color == config.ColorOn ||
			(cfg.Color == config.ColorAuto && o.terminal(o.stdout))
		h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    o.stdout,
			Formatter: newFormatter(cfg, color),
		})
		handlers = append(handlers, h)
		c.closers = append(c.closers, h.Close)
	}

	if cfg.File.Enabled {
		keep, err := cfg.KeepFiles()
		if err != nil {
			return nil, err
		}
		h, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Dir:       cfg.File.Dir,
			Pattern:   cfg.File.Pattern,
			Timezone:  cfg.Timezone,
			Keep:      keep,
			Formatter: newFormatter(cfg, false),
			Clock:     o.clock,
		})
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
		c.closers = append(c.closers, h.Close)
		c.Files = h
	}

	if cfg.Zap.Enabled {
		h, closeSink, err := newZapHandler(cfg.Zap)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
		c.closers = append(c.closers, h.Close, func() error {
			closeSink()
			return nil
		})
	}

	var h handler.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = multihandler.NewMultiHandler(handlers...)
	}

	b := logger.NewBuilder().
		WithHandler(h).
		WithLevel(cfg.Level).
		WithTimezone(cfg.Timezone).
		WithTimeFormat(cfg.TimeFormat).
		WithCaller(cfg.Caller).
		WithBacktrace(cfg.Backtrace).
		WithCoarseClock(cfg.CoarseClock).
		WithFallback(o.stderr).
		WithExitFunc(o.exit)
	if o.clock != nil {
		b.WithClock(o.clock)
	}
	c.Log = b.Build()

	return c, nil
}

func newFormatter(cfg config.Config, color bool) formatter.Formatter {
	fc := formatter.Config{IncludeCaller: cfg.Caller, Color: color}
	if cfg.Format == config.FormatJSON {
		return formatter.NewJSONFormatter(fc)
	}
	return formatter.NewTextFormatter(fc)
}

func newZapHandler(cfg config.ZapConfig) (*zaphandler.ZapHandler, func(), error) {
	ws, closeSink, err := zap.Open(cfg.Paths...)
	if err != nil {
		return nil, nil, diagnostic.Wrapf(err, "could not open zap sink(s) %v", cfg.Paths)
	}

	encCfg := zap.NewProductionEncoderConfig()
	enc := zapcore.NewJSONEncoder(encCfg)
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	// the logger applies the threshold
	core := zapcore.NewCore(enc, ws, zapcore.DebugLevel)
	return zaphandler.NewZapHandler(core), closeSink, nil
}

// Close flushes and closes every sink. Errors of all sinks are
// combined.
func (c *Common) Close() error {
	if c == nil {
		return nil
	}
	err := c.Log.Sync()
	return multierr.Append(err, c.closeAll())
}

func (c *Common) closeAll() error {
	var err error
	for _, closeFn := range c.closers {
		err = multierr.Append(err, closeFn())
	}
	c.closers = nil
	return err
}
