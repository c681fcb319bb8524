// Package consolehandler provides a console output handler that writes
// formatted log entries to any io.Writer (default: os.Stdout).
//
// Writes are serialized with zapcore.Lock, so a single handler may be
// shared by any number of goroutines and every line reaches the stream
// in one piece. IsTerminal helps callers decide whether to color level
// names.
package consolehandler
