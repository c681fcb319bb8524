package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one log line on its way from the logger to a handler.
// Entries are pooled; a handler must not keep one after Handle returns.
type Entry struct {
	// Time is the clock reading the line was stamped with
	Time time.Time
	// Timestamp is the rendered time prefix. Formatters fall back to
	// their own layout when it is empty.
	Timestamp string
	Level     Level
	// Message is opaque text and may span several lines
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// CallerInfo identifies the source line that logged an entry
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

const pooledFields = 8

var entryPool = sync.Pool{
	New: func() any {
		return &Entry{Fields: make([]Field, 0, pooledFields)}
	},
}

// GetEntry returns a cleared Entry from the pool. Time is left zero,
// the logger stamps it from its own clock.
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Reset()
	return e
}

// PutEntry returns e to the pool. Entries that grew unusually many
// fields are dropped so the pool does not pin large slices.
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	if cap(e.Fields) > 64*pooledFields {
		return
	}
	e.Reset()
	entryPool.Put(e)
}

// Reset clears every field and keeps the Fields backing array
func (e *Entry) Reset() {
	clear(e.Fields)
	*e = Entry{Fields: e.Fields[:0]}
}

// GetCaller reports the source line skip frames above its caller.
// Inlined functions are resolved to their own names.
func GetCaller(skip int) CallerInfo {
	var pcs [1]uintptr
	// +1 for runtime.Callers itself
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.PC == 0 {
		return CallerInfo{}
	}

	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}
