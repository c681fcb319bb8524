// Package formatter defines how log entries are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which renders into a caller-provided buffer.
// Handlers check for the optional interfaces at construction time and
// prefer them, eliminating the intermediate byte slice allocation on the
// write path.
//
// TextFormatter renders the classic line
//
//	[12:00:00] warning: disk almost full
//
// using the entry's pre-rendered Timestamp when the logger supplied one.
// Level names can be colored with github.com/fatih/color. JSONFormatter
// renders one object per line.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
