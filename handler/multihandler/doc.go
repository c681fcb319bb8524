// Package multihandler provides a fan-out handler that dispatches log
// entries to multiple child handlers and combines their errors with
// go.uber.org/multierr.
package multihandler
