// Package logger is the public API for leveled logging. Most users only
// need to import this package.
//
// A Logger is built once with the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.WarnLevel).
//	    WithTimezone(clock.UTC).
//	    Build()
//
// Every line has the shape
//
//	[12:00:00] warning: disk almost full
//
// where the prefix is rendered from a strftime pattern (default
// "[%H:%M:%S]") in the configured timezone. A message is written iff
// its level is at or above the threshold; the ALL threshold lets
// everything through and NONE suppresses everything. Level checks
// happen before any allocation, so filtered-out messages cost only an
// atomic load and a comparison.
//
// The threshold and timezone can be changed at runtime with SetLevel
// and SetTimezone. Child loggers created via With carry extra default
// fields and share both settings with their parent:
//
//	reqLog := log.With(logger.String("request_id", id))
//
// The Err methods log an error as opaque text. A *diagnostic.Error,
// directly or anywhere in the wrap chain, has its backtrace appended:
//
//	if err := computeChecksum(unit); err != nil {
//	    log.ErrorErr(err)
//	}
//
// Logging never fails the caller. When the clock cannot render the
// prefix a fixed "[15:04:05]" layout is used, and when the handler
// fails a short note is written to the fallback stream (default:
// os.Stderr). Fatal, Fatalf and FatalErr write their message unless it
// is filtered, flush the handler and then always exit with the given
// code.
package logger
