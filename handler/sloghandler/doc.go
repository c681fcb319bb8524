// Package sloghandler provides an adapter from handler.Handler to
// log/slog.Handler, allowing the handlers to serve as the backend of
// the standard library's structured logging.
package sloghandler
