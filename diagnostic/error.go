package diagnostic

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/philipp01105/athome/backtrace"
)

const (
	// Placeholder is the origin of errors raised without one
	Placeholder = "???"
	// NotFound is returned by Symbol for indexes outside the backtrace
	NotFound = "<not found>"

	// BacktraceHeader separates the message from the rendered backtrace
	BacktraceHeader = "\n\nbacktrace:\n"

	messagePrefix   = "*(RUNTIME)* "
	nilMessage      = messagePrefix + Placeholder + "(): <nil>"
	unsupportedNote = "  <backtraces are not supported on this platform/toolchain>\n"
	overflowMarker  = "      (...)\n"

	// skipFrames hides backtrace.Capture, newError and the exported
	// constructor. Every constructor must call newError directly.
	skipFrames = 3
)

// captureBackend is replaced in tests
var captureBackend = backtrace.DefaultBackend()

// Error is a runtime failure with its point of origin and the call
// stack captured when it was raised.
//
// The composed message has the form
//
//	*(RUNTIME)* <origin>(): <reason>
//
// and is extended once by BT with the rendered backtrace. An Error is
// safe for concurrent use.
type Error struct {
	origin  string
	reason  string
	cause   error
	trace   *backtrace.Trace
	backend backtrace.Backend

	mu       sync.Mutex
	msg      string
	symbols  []string
	resolved bool
	appended bool
}

// Errorf raises an Error whose origin is the calling function.
//
//go:noinline
func Errorf(format string, args ...any) *Error {
	return newError(callerName(), false, nil, format, args)
}

// Newf raises an Error with an explicit origin, typically a
// pretty-function string such as "void ns::Class::method(int)". With
// eager set the backtrace is appended right away.
//
//go:noinline
func Newf(origin string, eager bool, format string, args ...any) *Error {
	return newError(origin, eager, nil, format, args)
}

// Wrapf raises an Error caused by cause. The cause's message is
// appended to the reason and stays reachable through errors.Unwrap.
//
//go:noinline
func Wrapf(cause error, format string, args ...any) *Error {
	return newError(callerName(), false, cause, format, args)
}

//go:noinline
func newError(rawOrigin string, eager bool, cause error, format string, args []any) (e *Error) {
	e = &Error{cause: cause, backend: captureBackend}
	e.trace = backtrace.Capture(e.backend, Depth(), skipFrames)

	defer func() {
		if r := recover(); r != nil {
			if e.origin == "" {
				e.origin = Placeholder
			}
			if e.reason == "" {
				e.reason = truncate(format, MaxReasonLen)
			}
			e.msg = messagePrefix + e.origin + "(): " + e.reason
		}
	}()

	e.origin = OriginName(rawOrigin)
	e.reason = formatReason(format, args)
	if cause != nil {
		e.reason = truncate(e.reason+": "+cause.Error(), MaxReasonLen)
	}
	e.msg = messagePrefix + e.origin + "(): " + e.reason

	if eager {
		e.BT()
	}
	return e
}

// callerName returns the raw name of the function that called the
// exported constructor.
//
//go:noinline
func callerName() string {
	var pcs [1]uintptr
	// 0 = runtime.Callers, 1 = callerName, 2 = constructor
	if runtime.Callers(3, pcs[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	return frame.Function
}

// Error returns the composed message
func (e *Error) Error() string {
	if e == nil {
		return nilMessage
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msg
}

// Unwrap returns the cause passed to Wrapf
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Origin returns the short name of the raising function
func (e *Error) Origin() string {
	if e == nil {
		return Placeholder
	}
	return e.origin
}

// Reason returns the formatted reason
func (e *Error) Reason() string {
	if e == nil {
		return "<nil>"
	}
	return e.reason
}

// BT appends the rendered backtrace to the message. Only the first call
// has an effect.
func (e *Error) BT() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.appended {
		return
	}
	e.appended = true
	e.msg += e.renderLocked()
}

// Backtrace renders the backtrace section without touching the message
func (e *Error) Backtrace() string {
	if e == nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderLocked()
}

func (e *Error) renderLocked() string {
	symbols := e.symbolsLocked()

	var b strings.Builder
	b.WriteString(BacktraceHeader)
	if len(symbols) == 0 {
		b.WriteString(unsupportedNote)
		return b.String()
	}
	for _, s := range symbols {
		b.WriteString("  ")
		b.WriteString(s)
		b.WriteByte('\n')
	}
	if e.trace.Overflow() {
		b.WriteString(overflowMarker)
	}
	return b.String()
}

func (e *Error) symbolsLocked() []string {
	if !e.resolved {
		e.resolved = true
		e.symbols = backtrace.NewResolver(e.backend).Resolve(e.trace.Addrs())
	}
	return e.symbols
}

// Len returns the number of backtrace entries
func (e *Error) Len() int {
	if e == nil {
		return 0
	}
	return e.trace.Len()
}

// Overflow reports whether the stack was deeper than the backtrace
// capacity
func (e *Error) Overflow() bool {
	if e == nil {
		return false
	}
	return e.trace.Overflow()
}

// Addr returns the address of entry i, or 0 when i is out of range
func (e *Error) Addr(i int) uintptr {
	if e == nil {
		return 0
	}
	pc, _ := e.trace.Addr(i)
	return pc
}

// Symbol returns the rendered symbol of entry i, or NotFound when i is
// out of range
func (e *Error) Symbol(i int) string {
	if i < 0 || i >= e.Len() {
		return NotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.symbolsLocked()[i]
}

// Format implements fmt.Formatter. %+v adds the backtrace when BT has
// not been called yet. Verbs other than v, s and q print the message.
func (e *Error) Format(s fmt.State, verb rune) {
	if e == nil {
		io.WriteString(s, nilMessage)
		return
	}
	switch verb {
	case 'v':
		e.mu.Lock()
		msg := e.msg
		if s.Flag('+') && !e.appended {
			msg += e.renderLocked()
		}
		e.mu.Unlock()
		io.WriteString(s, msg)
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}
