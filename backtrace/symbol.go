package backtrace

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Symbol is the best-effort description of one address
type Symbol struct {
	// Module is the package import path, or the executable name when
	// the package is unknown
	Module string
	// Name is the readable function name, or the raw symbol when it
	// could not be demangled
	Name string
	// Raw is the linker symbol
	Raw string
	// Offset is the distance from the function entry
	Offset uintptr
	// Addr is the original address
	Addr uintptr
	File string
	Line int
	// Resolved is false for fallback symbols that carry only an address
	Resolved bool
}

// String renders the symbol as one backtrace line:
//
//	module(name+0xoff) [0xaddr] file:line
//	module [0xaddr]
//	[0xaddr]
func (s Symbol) String() string {
	b := make([]byte, 0, 128)
	if !s.Resolved {
		if s.Module != "" {
			b = append(b, s.Module...)
			b = append(b, ' ')
		}
		return string(appendAddr(b, s.Addr))
	}

	b = append(b, s.Module...)
	b = append(b, '(')
	b = append(b, s.Name...)
	b = append(b, "+0x"...)
	b = strconv.AppendUint(b, uint64(s.Offset), 16)
	b = append(b, ") "...)
	b = appendAddr(b, s.Addr)
	if s.File != "" {
		b = append(b, ' ')
		b = append(b, s.File...)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(s.Line), 10)
	}
	return string(b)
}

func appendAddr(b []byte, addr uintptr) []byte {
	b = append(b, "[0x"...)
	b = strconv.AppendUint(b, uint64(addr), 16)
	return append(b, ']')
}

var errEmptySymbol = errors.New("backtrace: empty symbol")

// Demangle splits a Go linker symbol such as
//
//	example.com/x/yaml%2ev3.(*Decoder).Decode.func1
//
// into its unescaped package path ("example.com/x/yaml.v3") and a
// package-qualified name ("yaml.v3.(*Decoder).Decode.func1").
func Demangle(raw string) (module, name string, err error) {
	if raw == "" {
		return "", "", errEmptySymbol
	}

	slash := strings.LastIndexByte(raw, '/')
	dot := strings.IndexByte(raw[slash+1:], '.')
	if dot <= 0 {
		return "", "", fmt.Errorf("backtrace: %q is not package qualified", raw)
	}
	dot += slash + 1
	rest := raw[dot+1:]
	if rest == "" {
		return "", "", fmt.Errorf("backtrace: %q has no function name", raw)
	}

	module, err = url.PathUnescape(raw[:dot])
	if err != nil {
		return "", "", fmt.Errorf("backtrace: demangle %q: %w", raw, err)
	}
	return module, path.Base(module) + "." + rest, nil
}
