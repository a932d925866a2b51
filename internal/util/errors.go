package util

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// IsExpectedError reports whether err is one of the errors that mark the
// normal end of a relay pump: the peer or the local endpoint went away.
func IsExpectedError(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, net.ErrClosed)
}

// IsTimeout reports whether err is a deadline expiry on a bounded read.
// The inbound pump treats it as the re-poll trigger, not a failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}
