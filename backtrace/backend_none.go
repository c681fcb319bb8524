//go:build nobacktrace

package backtrace

// DefaultBackend returns the backend compiled into this build. Builds
// tagged nobacktrace capture nothing.
func DefaultBackend() Backend {
	return unsupportedBackend{}
}
