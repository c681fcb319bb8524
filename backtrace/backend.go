package backtrace

import (
	"os"
	"path/filepath"
	"sync"
)

// Backend is the platform capability behind capture and symbolization.
// Exactly one implementation is compiled into a build; see
// DefaultBackend.
type Backend interface {
	// Capture fills pcs with return addresses of the calling goroutine.
	// pcs[0] is the function that called Capture on the backend.
	// It returns the number of entries written.
	Capture(pcs []uintptr) int
	// Lookup resolves one address. ok is false when nothing is known
	// about it.
	Lookup(pc uintptr) (sym Symbol, ok bool)
}

// Unsupported returns a backend that never captures anything. It is the
// default backend of builds tagged nobacktrace.
func Unsupported() Backend {
	return unsupportedBackend{}
}

type unsupportedBackend struct{}

func (unsupportedBackend) Capture([]uintptr) int { return 0 }

func (unsupportedBackend) Lookup(pc uintptr) (Symbol, bool) {
	return Symbol{Addr: pc}, false
}

// executableName is the module reported for addresses that cannot be
// attributed to a package.
var executableName = sync.OnceValue(func() string {
	p, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Base(p)
})
