// Package backtrace captures call stacks and turns return addresses into
// readable symbols.
//
// Capture walks the calling goroutine's stack into a fixed-capacity
// Trace. The trace keeps the frames of the capture machinery itself and
// hides them behind a skip offset, so the offset is a property of the
// caller's call depth and can be verified in tests. When the stack is
// deeper than the capacity the trace is truncated and Overflow reports
// it; there is no second, deeper walk.
//
// A Backend implements capture and single-address lookup for one
// platform. The default build uses the Go runtime unwinder; builds
// tagged nobacktrace compile a backend that captures nothing, which is
// a legitimate empty trace and not an error.
//
// Resolver never fails. Each address resolves independently to
//
//	module(name+0xoff) [0xaddr] file:line
//
// where module is the unescaped package path and name the demangled
// function. Addresses the backend cannot place fall back to
// "module [0xaddr]" or "[0xaddr]".
package backtrace
