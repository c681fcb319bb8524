package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType selects which member of Field holds the value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Uint64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

var fieldTypeNames = [...]string{
	StringType:   "string",
	IntType:      "int",
	Int64Type:    "int64",
	Uint64Type:   "uint64",
	Float64Type:  "float64",
	BoolType:     "bool",
	TimeType:     "time",
	DurationType: "duration",
	ErrorType:    "error",
	AnyType:      "any",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return "FieldType(" + strconv.Itoa(int(t)) + ")"
}

// Field is a key-value pair attached to an entry. Numbers, booleans
// (0/1), times (Unix nanoseconds) and durations live in Int64 so the
// common cases never box.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Uint64  uint64
	Float64 float64
	Str     string
	Any     any
}

// StringValue returns the text form of the value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	default:
		return string(f.AppendValue(nil))
	}
}

// AppendValue appends the text form of the value to dst. Times are
// rendered in UTC. Only AnyType may allocate.
func (f Field) AppendValue(dst []byte) []byte {
	switch f.Type {
	case StringType, ErrorType:
		return append(dst, f.Str...)
	case IntType, Int64Type:
		return strconv.AppendInt(dst, f.Int64, 10)
	case Uint64Type:
		return strconv.AppendUint(dst, f.Uint64, 10)
	case Float64Type:
		return strconv.AppendFloat(dst, f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.AppendBool(dst, f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).UTC().AppendFormat(dst, time.RFC3339)
	case DurationType:
		return append(dst, time.Duration(f.Int64).String()...)
	case AnyType:
		switch v := f.Any.(type) {
		case nil:
			return append(dst, "<nil>"...)
		case fmt.Stringer:
			return append(dst, v.String()...)
		case error:
			return append(dst, v.Error()...)
		default:
			return fmt.Append(dst, v)
		}
	default:
		return dst
	}
}
