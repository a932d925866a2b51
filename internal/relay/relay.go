package relay

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uciwire/uciwire/internal/transport"
	"github.com/uciwire/uciwire/internal/util"
)

// DefaultPollInterval bounds the inbound pump's connection reads so it can
// re-check the shutdown signal instead of blocking until the peer closes.
const DefaultPollInterval = 100 * time.Millisecond

// Session pairs one connection with one local endpoint for the lifetime of a
// relay. Signal and Traffic are optional; a zero Signal is created on demand
// and a nil Traffic disables teeing entirely.
type Session struct {
	Conn         transport.Conn
	Endpoint     Endpoint
	Signal       *ShutdownSignal
	Traffic      *TrafficLog
	PollInterval time.Duration
}

// Outcome summarizes a finished relay session. The session always "ends";
// byte counts are informational. Cause is the abnormal error that ended the
// inbound stream, nil when the session wound down cleanly (EOF, quit, or
// cancellation).
type Outcome struct {
	BytesSent     int64
	BytesReceived int64
	Cause         error
}

// Run pumps bytes in both directions until each pump reaches its own
// termination condition, then closes the connection for both directions.
// I/O failures on either side are termination causes, never returned as
// errors: the relay's job is to move bytes until one side goes away. An
// abnormal peer-side failure is recorded in Outcome.Cause for callers that
// want to report it.
func (s *Session) Run(ctx context.Context) Outcome {
	sig := s.Signal
	if sig == nil {
		sig = NewShutdownSignal()
	}

	poll := s.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	var outcome Outcome

	g := new(errgroup.Group)
	g.Go(func() error {
		outcome.BytesSent = s.pumpOutbound(sig)
		return nil
	})
	g.Go(func() error {
		outcome.BytesReceived, outcome.Cause = s.pumpInbound(ctx, sig, poll)
		return nil
	})
	_ = g.Wait()

	// Unblocks any third party still holding a duplicate handle.
	_ = s.Conn.Close()

	return outcome
}

// pumpOutbound moves local source units to the connection. It exits on source
// end-of-stream, a source error, or a write failure, and sets the shared
// signal when the source reports the quit command. It cannot be cancelled
// externally; the sibling pump winds down via the signal instead.
func (s *Session) pumpOutbound(sig *ShutdownSignal) int64 {
	var sent int64

	for {
		chunk, err := s.Endpoint.Source.Next()
		if len(chunk) > 0 {
			if _, werr := s.Conn.Write(chunk); werr != nil {
				return sent
			}
			sent += int64(len(chunk))
			s.Traffic.Tee(DirectionOutgoing, chunk)
		}

		if errors.Is(err, ErrQuit) {
			sig.Set()
			return sent
		}
		if err != nil {
			return sent
		}
	}
}

// pumpInbound moves connection bytes to the local sink, re-checking the
// shutdown signal each time the bounded read expires. When it stops feeding
// the sink it half-closes the endpoint, so a subprocess on the other end of
// the sink sees EOF and the outbound pump reaches its own natural end.
// The returned error is the abnormal read failure that ended the stream,
// nil for every clean termination path.
func (s *Session) pumpInbound(ctx context.Context, sig *ShutdownSignal, poll time.Duration) (int64, error) {
	defer s.Endpoint.CloseSink()

	var received int64
	buf := make([]byte, ChunkSize)

	for {
		if sig.IsSet() || ctx.Err() != nil {
			return received, nil
		}

		_ = s.Conn.SetReadDeadline(time.Now().Add(poll))

		n, err := s.Conn.Read(buf)
		if n > 0 {
			if _, werr := s.Endpoint.Sink.Write(buf[:n]); werr != nil {
				return received, nil
			}
			received += int64(n)
			s.Traffic.Tee(DirectionIncoming, buf[:n])
		}

		if err != nil {
			if util.IsTimeout(err) {
				continue
			}
			if util.IsExpectedError(err) {
				return received, nil
			}
			return received, err
		}
	}
}
