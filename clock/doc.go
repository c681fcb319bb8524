// Package clock is the time source of the logger.
//
// A Source hands out the current time and renders it through a
// strftime(3) pattern in either UTC or the local timezone. Rendering
// never panics: an unknown conversion specifier or a pattern that
// renders to nothing is reported as an error, and the caller decides
// on a fallback.
//
// Realtime is the system implementation. WithCoarse switches it to a
// cached clock that is refreshed every 500µs by a background
// goroutine, which trades sub-millisecond precision for a cheaper
// read on hot logging paths.
package clock
