package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/formatter"
	"github.com/philipp01105/athome/handler"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
}

// ConsoleHandler writes formatted entries to a stream. Each line is
// formatted outside the lock and written with one Write call while
// holding it.
type ConsoleHandler struct {
	out             zapcore.WriteSyncer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats
	closed          atomic.Bool
	bufPool         sync.Pool
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	h := &ConsoleHandler{
		out:       zapcore.Lock(zapcore.AddSync(cfg.Writer)),
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.bufPool.New = func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	}
	return h
}

// Handle formats the entry and writes it
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return errClosed
	}

	if h.bufferFormatter == nil {
		data, err := h.formatter.Format(entry)
		if err != nil {
			h.stats.IncrementFailed()
			return err
		}
		_, err = h.out.Write(data)
		h.stats.Record(err)
		return err
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	h.bufferFormatter.FormatEntry(entry, buf)
	_, err := h.out.Write(buf.Bytes())
	if buf.Cap() <= 64*1024 {
		h.bufPool.Put(buf)
	}

	h.stats.Record(err)
	return err
}

// Sync flushes the underlying stream. Streams that cannot be synced,
// such as pipes and terminals, are not an error.
func (h *ConsoleHandler) Sync() error {
	if err := h.out.Sync(); err != nil && !isUnsyncable(err) {
		return err
	}
	return nil
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close stops the handler. The stream itself is owned by the caller.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
