package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
)

// JSONFormatter writes one JSON object per line:
//
//	{"time":"[12:00:00]","level":"ERROR","message":"...","backtrace":["..."],"key":value}
//
// A pre-rendered Timestamp is emitted as is. A message is split at the
// first diagnostic backtrace header ("\n\nbacktrace:\n") and every
// non-empty line after it becomes an element of the "backtrace" array,
// whether or not a diagnostic error produced it. Fields whose keys
// collide with the keys written by the formatter are prefixed with
// "fields.", so {"message":...} from a field becomes "fields.message".
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry), nil
}

// FormatTo formats an entry as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return writeWith(entry, w, f.FormatEntry)
}

// FormatEntry appends the JSON line to buf
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteString(`{"time":`)
	if entry.Timestamp != "" {
		writeJSONString(buf, entry.Timestamp)
	} else {
		buf.WriteByte('"')
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte('"')
	}

	buf.WriteString(`,"level":`)
	writeJSONString(buf, entry.Level.String())

	msg, trace, hasTrace := strings.Cut(entry.Message, diagnostic.BacktraceHeader)
	buf.WriteString(`,"message":`)
	writeJSONString(buf, msg)
	if hasTrace {
		writeBacktrace(buf, trace)
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteString(`,"caller":{"file":`)
		writeJSONString(buf, entry.Caller.ShortFile)
		buf.WriteString(`,"line":`)
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		if entry.Caller.Function != "" {
			buf.WriteString(`,"function":`)
			writeJSONString(buf, entry.Caller.Function)
		}
		buf.WriteByte('}')
	}

	for _, field := range entry.Fields {
		buf.WriteByte(',')
		writeFieldKey(buf, field.Key)
		buf.WriteByte(':')
		writeJSONValue(buf, field)
	}

	buf.WriteString("}\n")
}

// writeFieldKey writes key, prefixed when the formatter already uses it
func writeFieldKey(buf *bytes.Buffer, key string) {
	switch key {
	case "time", "level", "message", "backtrace", "caller":
		buf.WriteString(`"fields.`)
		buf.WriteString(key)
		buf.WriteByte('"')
	default:
		writeJSONString(buf, key)
	}
}

// writeBacktrace writes the rendered frames, one array element per
// line with the indentation removed
func writeBacktrace(buf *bytes.Buffer, trace string) {
	buf.WriteString(`,"backtrace":[`)
	first := true
	for line := range strings.Lines(trace) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(buf, line)
	}
	buf.WriteByte(']')
}

const hexDigits = "0123456789abcdef"

// writeJSONString writes s as a quoted JSON string. Invalid UTF-8 is
// replaced with U+FFFD.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			buf.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0x0f])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(s[start:i])
			buf.WriteString(`\ufffd`)
			i++
			start = i
			continue
		}
		i += size
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}

// writeJSONValue writes the field's value. Durations use their text
// form like the text formatter does; Any values are marshaled with
// encoding/json and fall back to their %v form.
func writeJSONValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.IntType, core.Int64Type, core.Uint64Type, core.Float64Type, core.BoolType:
		buf.Write(field.AppendValue(buf.AvailableBuffer()))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).UTC().AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.AnyType:
		if data, err := json.Marshal(field.Any); err == nil {
			buf.Write(data)
			return
		}
		writeJSONString(buf, field.StringValue())
	default:
		writeJSONString(buf, field.StringValue())
	}
}
