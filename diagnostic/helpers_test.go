package diagnostic

import (
	"testing"

	"github.com/philipp01105/athome/backtrace"
)

// fakeBackend reports a stack of depth frames with synthetic addresses
type fakeBackend struct {
	depth int
}

func (f fakeBackend) Capture(pcs []uintptr) int {
	n := min(f.depth, len(pcs))
	for i := 0; i < n; i++ {
		pcs[i] = uintptr(0x4000 + i)
	}
	return n
}

func (fakeBackend) Lookup(pc uintptr) (backtrace.Symbol, bool) {
	return backtrace.Symbol{
		Module:   "example.com/unit",
		Name:     "unit.frame",
		Offset:   0x10,
		Addr:     pc,
		Resolved: true,
	}, true
}

type panickingBackend struct{}

func (panickingBackend) Capture([]uintptr) int { panic("unwinder exploded") }
func (panickingBackend) Lookup(uintptr) (backtrace.Symbol, bool) { panic("symbols exploded") }

func withBackend(t *testing.T, b backtrace.Backend) {
	t.Helper()
	prev := captureBackend
	captureBackend = b
	t.Cleanup(func() { captureBackend = prev })
}
