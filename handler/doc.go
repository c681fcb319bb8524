// Package handler provides the Handler interface and the pieces shared
// by its implementations.
//
// Handlers are synchronous: Handle formats and writes the entry before
// it returns, and the entry may be recycled afterwards. Each line is
// written with a single Write call so that concurrent writers never
// interleave partial lines.
//
// Built-in handlers live in sub-packages:
//
//   - consolehandler writes to any io.Writer (default: stdout).
//   - filehandler writes to a daily file named by a strftime pattern
//     and prunes old files. The file is opened per line.
//   - multihandler fans out a single entry to multiple child handlers.
//   - zaphandler forwards entries to a go.uber.org/zap core.
//   - sloghandler adapts a Handler to log/slog.Handler.
//
// Handlers count processed and failed lines via the Stats type, which
// can be queried at runtime for monitoring.
package handler
