package multihandler

import (
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/handler"
	"go.uber.org/multierr"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers []handler.Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...handler.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle sends the entry to every handler. A failing handler does not
// stop the others; all errors are combined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Handle(entry))
	}
	return err
}

// Sync flushes every child that supports it
func (h *MultiHandler) Sync() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, handler.Sync(child))
	}
	return err
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}
