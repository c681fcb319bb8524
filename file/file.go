package file

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/athome/diagnostic"
)

// Access is the mode a File is opened in
type Access int

const (
	// Read opens an existing file for reading
	Read Access = iota
	// Write creates or truncates the file
	Write
	// Append creates the file or appends to it
	Append
)

// String returns the lower-case mode name
func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// File is a named byte sink backed either by a path on disk or by an
// external stream. All errors are *diagnostic.Error values.
type File struct {
	mu     sync.Mutex
	name   string
	path   string
	stream io.Writer
	f      *os.File
	access Access
	open   bool
}

// NewStream wraps an already open stream such as os.Stdout. The stream
// is writable right away and is never closed by File.
func NewStream(w io.Writer, name string) (*File, error) {
	if w == nil {
		return nil, diagnostic.Errorf("argument stream '%s' is nil", name)
	}
	return &File{name: name, stream: w, access: Write, open: true}, nil
}

// New describes the file name inside dir. Nothing is touched on disk
// until Open is called.
func New(dir, name string) *File {
	path := name
	if dir != "" {
		path = filepath.Join(dir, name)
	}
	return &File{name: name, path: path}
}

// Name returns the name the file was created with
func (f *File) Name() string {
	return f.name
}

// Path returns the location on disk, empty for streams
func (f *File) Path() string {
	return f.path
}

// IsOpen reports whether the file accepts reads or writes
func (f *File) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Open opens the file in the given mode. The parent directory is
// created for Write and Append.
func (f *File) Open(mode Access) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stream != nil {
		return diagnostic.Errorf("file '%s' is an external stream", f.name)
	}
	if f.open {
		return diagnostic.Errorf("file '%s' is already open for '%s'", f.path, f.access)
	}

	var flag int
	switch mode {
	case Read:
		flag = os.O_RDONLY
	case Write:
		flag = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	case Append:
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	default:
		return diagnostic.Errorf("unknown access mode %d for '%s'", int(mode), f.path)
	}

	if mode != Read {
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return diagnostic.Wrapf(err, "could not create directory for '%s'", f.path)
		}
	}

	fd, err := os.OpenFile(f.path, flag, 0644)
	if err != nil {
		return diagnostic.Wrapf(err, "could not open file '%s' for '%s'", f.path, mode)
	}

	f.f = fd
	f.access = mode
	f.open = true
	return nil
}

// Write writes p in a single call to the underlying file or stream
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open || f.access == Read {
		return 0, diagnostic.Errorf("file '%s' not opened for write- or append-access", f.name)
	}

	var w io.Writer = f.f
	if f.stream != nil {
		w = f.stream
	}
	n, err := w.Write(p)
	if err != nil {
		return n, diagnostic.Wrapf(err, "could not write to '%s'", f.name)
	}
	return n, nil
}

// Read reads from a file opened with Read. io.EOF is returned as is.
func (f *File) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open || f.access != Read || f.f == nil {
		return 0, diagnostic.Errorf("file '%s' not opened for read-access", f.name)
	}
	n, err := f.f.Read(p)
	if err != nil && err != io.EOF {
		return n, diagnostic.Wrapf(err, "could not read from '%s'", f.name)
	}
	return n, err
}

// Close releases the file. Closing a closed file is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return nil
	}
	f.open = false
	if f.f == nil {
		return nil
	}

	err := f.f.Close()
	f.f = nil
	if err != nil {
		return diagnostic.Wrapf(err, "could not close '%s'", f.path)
	}
	return nil
}
