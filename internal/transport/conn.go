package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/uciwire/uciwire/pkg/errors"
)

// Conn is the connection surface the relay needs: a bidirectional byte stream
// whose reads can be bounded by a deadline and which can be torn down for both
// directions from either pump. *net.TCPConn satisfies it.
type Conn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
}

// Connect establishes the outbound (client role) connection.
func Connect(ctx context.Context, opts ...Option) (Conn, error) {
	options := ApplyOptions(opts...)

	dialer := net.Dialer{Timeout: options.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", options.Address)
	if err != nil {
		return nil, errors.WrapWithBase(errors.ErrConnectFailed,
			fmt.Sprintf("dialing %s", options.Address), err)
	}

	return conn, nil
}
