package benchmark

import (
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/handler"
)

// noopHandler drops every entry. It isolates the cost of the logger
// front end from formatting and I/O.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
