package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
	"github.com/philipp01105/athome/file"
	"github.com/philipp01105/athome/formatter"
	"github.com/philipp01105/athome/handler"
	"go.uber.org/multierr"
)

const (
	// DefaultDir is the directory log files are written to
	DefaultDir = "log"
	// DefaultPattern names one file per day
	DefaultPattern = "%Y-%m-%d.log"
	// DefaultKeep is the number of files retained by pruning
	DefaultKeep = 365
)

var errClosed = errors.New("filehandler: handler is closed")

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Dir is the directory holding the log files (default: "log")
	Dir string
	// Pattern is a strftime pattern for the file name (default: "%Y-%m-%d.log")
	Pattern string
	// Timezone the file name is rendered in. The zero value is UTC.
	Timezone clock.Timezone
	// Keep is the number of files kept when a new file is started
	// (default: 365, negative keeps all)
	Keep int
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Clock renders file names (default: clock.NewRealtime())
	Clock clock.Source
}

// FileHandler appends each line to the file named after the entry's
// time. The file is opened and closed around every write, so files
// rotated or deleted by other processes are simply recreated.
type FileHandler struct {
	dir             string
	pattern         string
	glob            string
	tz              clock.Timezone
	keep            int
	clock           clock.Source
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats

	mu      sync.Mutex
	current string
	closed  bool
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.Keep == 0 {
		cfg.Keep = DefaultKeep
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewRealtime()
	}
}

// NewFileHandler creates a new file handler. No file is touched until
// the first entry arrives.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	applyFileDefaults(&cfg)

	if _, err := clock.Pattern(cfg.Pattern); err != nil {
		return nil, diagnostic.Wrapf(err, "invalid file name pattern '%s'", cfg.Pattern)
	}

	h := &FileHandler{
		dir:       cfg.Dir,
		pattern:   cfg.Pattern,
		glob:      globFromPattern(cfg.Pattern),
		tz:        cfg.Timezone,
		keep:      cfg.Keep,
		clock:     cfg.Clock,
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	return h, nil
}

// Handle formats the entry and appends it to the current file
func (h *FileHandler) Handle(entry *core.Entry) error {
	buf := formatter.GetBuffer()
	defer formatter.PutBuffer(buf)

	if h.bufferFormatter != nil {
		h.bufferFormatter.FormatEntry(entry, buf)
	} else {
		data, err := h.formatter.Format(entry)
		if err != nil {
			h.stats.IncrementFailed()
			return err
		}
		buf.Write(data)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return errClosed
	}

	name, err := h.clock.Format(entry.Time, h.tz, h.pattern)
	if err != nil {
		h.stats.IncrementFailed()
		return diagnostic.Wrapf(err, "could not name log file")
	}
	rolled := name != h.current
	h.current = name

	err = h.appendLine(name, buf.Bytes())
	h.stats.Record(err)

	if rolled {
		err = multierr.Append(err, h.pruneLocked())
	}
	return err
}

func (h *FileHandler) appendLine(name string, line []byte) (err error) {
	f := file.New(h.dir, name)
	if err := f.Open(file.Append); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.Write(line)
	return err
}

// Current returns the name of the file written last
func (h *FileHandler) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Prune removes the oldest files matching the pattern until at most
// Keep remain. Other files in the directory are left alone.
func (h *FileHandler) Prune() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pruneLocked()
}

func (h *FileHandler) pruneLocked() error {
	if h.keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(h.dir, h.glob))
	if err != nil {
		return diagnostic.Wrapf(err, "could not list log files in '%s'", h.dir)
	}
	if len(matches) <= h.keep {
		return nil
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	files := make([]logFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, logFile{path: m, modTime: info.ModTime()})
	}
	if len(files) <= h.keep {
		return nil
	}

	// Sort by modification time (oldest first)
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	var errs error
	for _, f := range files[:len(files)-h.keep] {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, diagnostic.Wrapf(err, "could not remove old log file '%s'", f.path))
		}
	}
	return errs
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close stops the handler. No descriptor is held between writes.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}

// globFromPattern turns every conversion of a strftime pattern into a
// wildcard: "%Y-%m-%d.log" becomes "*-*-*.log".
func globFromPattern(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '%' && i+1 < len(pattern):
			i++
			if pattern[i] == '%' {
				b.WriteByte('%')
			} else if !strings.HasSuffix(b.String(), "*") {
				b.WriteByte('*')
			}
		case c == '*' || c == '?' || c == '[' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
