package backtrace

// DefaultDepth is the number of raw frames a Trace can hold, including
// the frames of the capture machinery that are skipped when reading.
const DefaultDepth = 24

// Trace is a fixed-size list of return addresses captured at one
// instant. The first skip addresses belong to the capture machinery and
// are hidden by every accessor.
type Trace struct {
	pcs      []uintptr
	skip     int
	overflow bool
}

// Capture walks the calling goroutine's stack with b. The raw trace
// starts at Capture itself, so skip=1 makes the caller of Capture the
// first visible frame. At most depth raw frames are kept; a deeper
// stack sets Overflow instead of growing the buffer. A nil or failing
// backend yields an empty trace.
//
//go:noinline
func Capture(b Backend, depth, skip int) (t *Trace) {
	t = &Trace{skip: max(skip, 0)}
	if b == nil || depth <= 0 {
		return t
	}
	defer func() {
		if r := recover(); r != nil {
			t.pcs = nil
			t.overflow = false
		}
	}()

	// One extra slot tells a full stack apart from a deeper one.
	buf := make([]uintptr, depth+1)
	n := b.Capture(buf)
	if n > depth {
		n = depth
		t.overflow = true
	}
	t.pcs = buf[:max(n, 0):max(n, 0)]
	return t
}

// Len returns the number of visible frames: captured minus skipped,
// never below zero.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return max(0, len(t.pcs)-t.skip)
}

// Captured returns the number of raw frames including skipped ones
func (t *Trace) Captured() int {
	if t == nil {
		return 0
	}
	return len(t.pcs)
}

// Skip returns the frame-skip offset of the trace
func (t *Trace) Skip() int {
	if t == nil {
		return 0
	}
	return t.skip
}

// Overflow reports whether the stack was deeper than the capacity
func (t *Trace) Overflow() bool {
	return t != nil && t.overflow
}

// Addr returns the i-th visible address, or (0, false) when i is out of
// range.
func (t *Trace) Addr(i int) (uintptr, bool) {
	if i < 0 || i >= t.Len() {
		return 0, false
	}
	return t.pcs[t.skip+i], true
}

// Addrs returns the visible addresses. The slice must not be modified.
func (t *Trace) Addrs() []uintptr {
	if t.Len() == 0 {
		return nil
	}
	return t.pcs[t.skip:]
}
