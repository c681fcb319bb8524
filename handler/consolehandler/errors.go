package consolehandler

import (
	"errors"
	"syscall"
)

var errClosed = errors.New("consolehandler: handler is closed")

func isUnsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTSUP) || errors.Is(err, syscall.ENOTTY)
}
