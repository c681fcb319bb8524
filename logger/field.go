package logger

import (
	"fmt"
	"reflect"
	"time"

	"github.com/philipp01105/athome/core"
)

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Stringer creates a string field from val.String(). A nil val is
// rendered as "<nil>", a panicking String as "<PANIC=...>".
func Stringer(key string, val fmt.Stringer) core.Field {
	if val == nil {
		return String(key, "<nil>")
	}
	return String(key, safeText(val, val.String))
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint creates an unsigned field
func Uint(key string, val uint) core.Field {
	return Uint64(key, uint64(val))
}

// Uint64 creates a uint64 field
func Uint64(key string, val uint64) core.Field {
	return core.Field{Key: key, Type: core.Uint64Type, Uint64: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time creates a time field, rendered in UTC
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an "error" field holding err's message. Unlike the Err
// logging methods it never adds a backtrace, so the field stays on one
// line only if the message does.
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr is Err with a custom key
func NamedErr(key string, err error) core.Field {
	if err == nil {
		return core.Field{Key: key, Type: core.ErrorType, Str: "<nil>"}
	}
	return core.Field{Key: key, Type: core.ErrorType, Str: safeText(err, err.Error)}
}

// safeText calls render and recovers from a panic in it. A nil pointer
// receiver renders as "<nil>".
func safeText(v any, render func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				s = "<nil>"
				return
			}
			s = fmt.Sprintf("<PANIC=%v>", r)
		}
	}()
	return render()
}

// Any creates a field with any value. Formatters render it with %v or,
// for JSON, encoding/json.
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
