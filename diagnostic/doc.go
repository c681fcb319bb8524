// Package diagnostic provides Error, a runtime failure that records
// where it was raised and the call stack at that point.
//
// An Error carries a composed message
//
//	*(RUNTIME)* <origin>(): <reason>
//
// where origin is the short name of the raising function and reason is
// a printf-style text bounded to MaxReasonLen bytes. The backtrace is
// captured eagerly but symbolized lazily: the first call to BT resolves
// the frames and appends them to the message, later calls do nothing.
//
//	func computeChecksum(unit string) error {
//		return diagnostic.Errorf("checksum mismatch for %s", unit)
//	}
//
// Constructing an Error never panics. When the stack cannot be
// captured the backtrace section holds a single note instead of frames.
package diagnostic
