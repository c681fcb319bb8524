package diagnostic

import (
	"sync/atomic"

	"github.com/philipp01105/athome/backtrace"
)

// MaxDepth bounds SetDepth
const MaxDepth = 1024

// depth holds the capture depth; zero selects backtrace.DefaultDepth
var depth atomic.Int32

// Depth returns the number of raw frames captured per error
func Depth() int {
	if d := depth.Load(); d > 0 {
		return int(d)
	}
	return backtrace.DefaultDepth
}

// SetDepth changes the number of raw frames captured by errors raised
// afterwards. Values below skipFrames+1 restore the default, values
// above MaxDepth are clamped.
func SetDepth(n int) {
	switch {
	case n <= skipFrames:
		depth.Store(0)
	case n > MaxDepth:
		depth.Store(MaxDepth)
	default:
		depth.Store(int32(n))
	}
}
