package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestIsExpectedError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"EOF", io.EOF, true},
		{"wrapped EOF", fmt.Errorf("read failed: %w", io.EOF), true},
		{"context canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"closed pipe", io.ErrClosedPipe, true},
		{"closed file", os.ErrClosed, true},
		{"closed network connection", net.ErrClosed, true},
		{"arbitrary error", errors.New("something broke"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExpectedError(tc.err); got != tc.want {
				t.Errorf("IsExpectedError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(os.ErrDeadlineExceeded) {
		t.Error("deadline exceeded should be a timeout")
	}

	opErr := &net.OpError{Op: "read", Net: "tcp", Err: fakeTimeoutError{}}
	if !IsTimeout(opErr) {
		t.Error("net.Error with Timeout()==true should be a timeout")
	}

	if IsTimeout(io.EOF) {
		t.Error("EOF is not a timeout")
	}
	if IsTimeout(nil) {
		t.Error("nil is not a timeout")
	}
}

func TestIsTimeoutOnRealDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(10 * time.Millisecond)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	buf := make([]byte, 16)
	_, readErr := conn.Read(buf)
	if readErr == nil {
		t.Fatal("expected read to time out")
	}
	if !IsTimeout(readErr) {
		t.Errorf("expected timeout classification for %v", readErr)
	}
	if IsExpectedError(readErr) {
		t.Errorf("a timeout should not classify as an expected termination: %v", readErr)
	}
}

func TestIsConnectionError(t *testing.T) {
	if !IsConnectionError(syscall.ECONNRESET) {
		t.Error("ECONNRESET should classify as a connection error")
	}
	if !IsConnectionError(fmt.Errorf("write: %w", syscall.EPIPE)) {
		t.Error("wrapped EPIPE should classify as a connection error")
	}
	if IsConnectionError(nil) {
		t.Error("nil should not classify as a connection error")
	}
	if IsConnectionError(errors.New("other")) {
		t.Error("arbitrary error should not classify as a connection error")
	}
}
