package relay

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ChunkSize is the read unit for stream-backed sources.
const ChunkSize = 4096

// ErrQuit is returned by a terminal source together with the final chunk when
// the operator types the quit command. The chunk is still forwarded to the
// peer before the pump shuts down.
var ErrQuit = errors.New("quit command received")

// Source produces the next unit of local input. Like io.Reader, it may return
// a non-empty chunk together with a terminal error; the chunk must be consumed
// before acting on the error. The returned slice is only valid until the next
// call.
type Source interface {
	Next() ([]byte, error)
}

// Endpoint is the local side of a relay session: a source the outbound pump
// drains and a sink the inbound pump fills. Sink writes must take effect
// immediately (no buffering the relay would have to flush).
type Endpoint struct {
	Source Source
	Sink   io.Writer

	// SinkCloser, when set, is closed once the inbound pump stops feeding
	// the sink. A subprocess endpoint needs this so the child sees EOF on
	// its stdin and can exit; a terminal endpoint leaves it nil, since the
	// process's stdout outlives the session.
	SinkCloser io.Closer
}

// CloseSink signals end-of-stream to the sink, best-effort.
func (e Endpoint) CloseSink() {
	if e.SinkCloser != nil {
		_ = e.SinkCloser.Close()
	}
}

// NewTerminalEndpoint builds the line-oriented endpoint used on the client.
// Each unit is one input line with a trailing newline appended. The trimmed
// line "quit" ends the session.
func NewTerminalEndpoint(r io.Reader, w io.Writer) Endpoint {
	return Endpoint{
		Source: &lineSource{r: bufio.NewReader(r)},
		Sink:   w,
	}
}

// NewStreamEndpoint builds the raw byte-stream endpoint used for a subprocess's
// stdio. Units are chunks of up to ChunkSize bytes with no delimiter semantics.
func NewStreamEndpoint(r io.Reader, w io.Writer) Endpoint {
	ep := Endpoint{
		Source: &chunkSource{r: r, buf: make([]byte, ChunkSize)},
		Sink:   w,
	}
	if c, ok := w.(io.Closer); ok {
		ep.SinkCloser = c
	}
	return ep
}

// lineSource reads with ReadString rather than a Scanner: a line has no upper
// length bound, and a token-size cap would drop valid input.
type lineSource struct {
	r *bufio.Reader
}

func (s *lineSource) Next() ([]byte, error) {
	line, err := s.r.ReadString('\n')
	if len(line) == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	chunk := append([]byte(line), '\n')

	if strings.TrimSpace(line) == "quit" {
		return chunk, ErrQuit
	}
	return chunk, nil
}

type chunkSource struct {
	r   io.Reader
	buf []byte
}

func (s *chunkSource) Next() ([]byte, error) {
	n, err := s.r.Read(s.buf)
	return s.buf[:n], err
}
