package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/philipp01105/athome/core"
)

// DefaultTextLayout matches the default strftime pattern "[%H:%M:%S]"
const DefaultTextLayout = "[15:04:05]"

// TextFormatter formats log entries as human-readable lines:
//
//	<timestamp> <level>: <message>
type TextFormatter struct {
	Config
	labels [7]string
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTextLayout
	}
	f := &TextFormatter{Config: cfg}
	for i := range f.labels {
		lvl := core.Level(i * 10)
		label := lvl.String()
		if cfg.Color {
			label = colorize(lvl, label)
		}
		f.labels[i] = " " + label + ": "
	}
	return f
}

var levelColors = map[core.Level][]color.Attribute{
	core.DebugLevel: {color.FgCyan},
	core.InfoLevel:  {color.FgGreen},
	core.WarnLevel:  {color.FgYellow},
	core.ErrorLevel: {color.FgRed},
	core.FatalLevel: {color.FgRed, color.Bold},
}

func colorize(lvl core.Level, s string) string {
	attrs, ok := levelColors[lvl]
	if !ok {
		return s
	}
	c := color.New(attrs...)
	// the handler decided on color already, ignore color.NoColor
	c.EnableColor()
	return c.Sprint(s)
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry), nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return writeWith(entry, w, f.FormatEntry)
}

// FormatEntry writes the formatted entry into the given buffer
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	if entry.Timestamp != "" {
		buf.WriteString(entry.Timestamp)
	} else {
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	}

	if i := int(entry.Level) / 10; entry.Level%10 == 0 && i >= 0 && i < len(f.labels) {
		buf.WriteString(f.labels[i])
	} else {
		buf.WriteString(" UNKNOWN: ")
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.Write(field.AppendValue(buf.AvailableBuffer()))
	}

	buf.WriteByte('\n')
}
