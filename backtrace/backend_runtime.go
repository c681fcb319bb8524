//go:build !nobacktrace

package backtrace

import (
	"runtime"
)

// DefaultBackend returns the backend compiled into this build: the Go
// runtime unwinder.
func DefaultBackend() Backend {
	return &runtimeBackend{}
}

type runtimeBackend struct{}

// Capture must stay a real frame: the skip below assumes it.
//
//go:noinline
func (*runtimeBackend) Capture(pcs []uintptr) int {
	// 0 = runtime.Callers, 1 = this method
	return runtime.Callers(2, pcs)
}

func (*runtimeBackend) Lookup(pc uintptr) (Symbol, bool) {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.Function == "" {
		return Symbol{Addr: pc}, false
	}

	sym := Symbol{
		Addr: pc,
		Raw:  frame.Function,
		File: frame.File,
		Line: frame.Line,
	}
	if frame.Entry != 0 && pc >= frame.Entry {
		sym.Offset = pc - frame.Entry
	}

	module, name, err := Demangle(frame.Function)
	if err != nil {
		sym.Module = executableName()
		sym.Name = frame.Function
	} else {
		sym.Module = module
		sym.Name = name
	}
	sym.Resolved = true
	return sym, true
}
