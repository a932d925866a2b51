package transport

import (
	"bytes"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// MockConn is an in-memory Conn with deadline-aware reads, for exercising the
// relay's bounded-poll loop without a real socket.
type MockConn struct {
	mu           sync.Mutex
	incoming     bytes.Buffer
	outgoing     bytes.Buffer
	readDeadline time.Time
	peerClosed   bool
	closed       bool
	closeCount   int
	writeErr     error
}

var _ Conn = (*MockConn)(nil)

func NewMockConn() *MockConn {
	return &MockConn{}
}

// FeedIncoming makes bytes available to subsequent Reads, as if the peer had
// sent them.
func (m *MockConn) FeedIncoming(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incoming.Write(p)
}

// ClosePeer simulates the peer closing its write half: pending bytes drain
// first, then Reads return io.EOF.
func (m *MockConn) ClosePeer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.peerClosed = true
}

// Written returns a snapshot of everything written to the connection.
func (m *MockConn) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.outgoing.Bytes()...)
}

func (m *MockConn) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

// FailWrites makes subsequent Writes return err.
func (m *MockConn) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

func (m *MockConn) Read(p []byte) (int, error) {
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return 0, net.ErrClosed
		}
		if m.incoming.Len() > 0 {
			n, _ := m.incoming.Read(p)
			m.mu.Unlock()
			return n, nil
		}
		if m.peerClosed {
			m.mu.Unlock()
			return 0, io.EOF
		}
		deadline := m.readDeadline
		m.mu.Unlock()

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return 0, os.ErrDeadlineExceeded
		}

		time.Sleep(time.Millisecond)
	}
}

func (m *MockConn) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, net.ErrClosed
	}
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.outgoing.Write(p)
}

func (m *MockConn) SetReadDeadline(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDeadline = t
	return nil
}

func (m *MockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCount++
	return nil
}
