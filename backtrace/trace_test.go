package backtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend reports a stack of depth frames with synthetic addresses
type fakeBackend struct {
	depth int
}

func (f fakeBackend) Capture(pcs []uintptr) int {
	n := min(f.depth, len(pcs))
	for i := 0; i < n; i++ {
		pcs[i] = uintptr(0x1000 + i)
	}
	return n
}

func (fakeBackend) Lookup(pc uintptr) (Symbol, bool) {
	return Symbol{Addr: pc}, false
}

type panickingBackend struct{}

func (panickingBackend) Capture([]uintptr) int { panic("unwinder exploded") }
func (panickingBackend) Lookup(uintptr) (Symbol, bool) { panic("symbol server exploded") }

func TestCapture_Shallow(t *testing.T) {
	tr := Capture(fakeBackend{depth: 5}, 10, 2)

	assert.Equal(t, 5, tr.Captured())
	assert.Equal(t, 3, tr.Len())
	assert.False(t, tr.Overflow())

	pc, ok := tr.Addr(0)
	require.True(t, ok)
	assert.Equal(t, uintptr(0x1002), pc)
	assert.Equal(t, []uintptr{0x1002, 0x1003, 0x1004}, tr.Addrs())
}

func TestCapture_Overflow(t *testing.T) {
	tr := Capture(fakeBackend{depth: 100}, 10, 3)

	assert.True(t, tr.Overflow())
	assert.Equal(t, 10, tr.Captured())
	assert.Equal(t, 7, tr.Len())
}

func TestCapture_ExactlyFull(t *testing.T) {
	tr := Capture(fakeBackend{depth: 10}, 10, 0)

	assert.False(t, tr.Overflow(), "a stack that fits exactly is not an overflow")
	assert.Equal(t, 10, tr.Len())
}

func TestCapture_SkipLargerThanStack(t *testing.T) {
	tr := Capture(fakeBackend{depth: 2}, 10, 3)

	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Addrs())
}

func TestCapture_Unsupported(t *testing.T) {
	tr := Capture(Unsupported(), DefaultDepth, 1)

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.Captured())
	assert.False(t, tr.Overflow())
}

func TestCapture_FailingBackend(t *testing.T) {
	var tr *Trace
	require.NotPanics(t, func() {
		tr = Capture(panickingBackend{}, DefaultDepth, 1)
	})
	assert.Equal(t, 0, tr.Len())
	assert.False(t, tr.Overflow())
}

func TestCapture_NilBackend(t *testing.T) {
	tr := Capture(nil, DefaultDepth, 1)
	assert.Equal(t, 0, tr.Len())
}

func TestTrace_AddrOutOfRange(t *testing.T) {
	tr := Capture(fakeBackend{depth: 4}, 10, 1)

	for _, i := range []int{-1, 3, 4, 100} {
		pc, ok := tr.Addr(i)
		assert.False(t, ok, "index %d", i)
		assert.Zero(t, pc, "index %d", i)
	}

	var nilTrace *Trace
	_, ok := nilTrace.Addr(0)
	assert.False(t, ok)
	assert.Equal(t, 0, nilTrace.Len())
	assert.False(t, nilTrace.Overflow())
}
