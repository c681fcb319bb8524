package handler

import (
	"github.com/philipp01105/athome/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry must not be retained
	// after Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Syncer is implemented by handlers that can flush buffered output
type Syncer interface {
	Sync() error
}

// StatsProvider is implemented by handlers that count their work
type StatsProvider interface {
	Stats() Snapshot
}

// Sync flushes h when it implements Syncer
func Sync(h Handler) error {
	if s, ok := h.(Syncer); ok {
		return s.Sync()
	}
	return nil
}
