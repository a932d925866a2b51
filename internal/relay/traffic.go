package relay

import (
	"io"
	"os"
	"sync"
)

// Direction tags a tee'd chunk with the side that produced it.
type Direction string

const (
	DirectionOutgoing Direction = ">> "
	DirectionIncoming Direction = "<< "
)

// TrafficLog tees relayed chunks to a secondary sink. Calls from the two pump
// directions are serialized so a chunk is never split or interleaved with
// another. Write errors are swallowed: the log is a diagnostic aid and must
// never interrupt the relay.
type TrafficLog struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

func NewTrafficLog(w io.Writer) *TrafficLog {
	return &TrafficLog{w: w}
}

// OpenTrafficLog opens (or creates) an append-only log file.
func OpenTrafficLog(path string) (*TrafficLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &TrafficLog{w: f, closer: f}, nil
}

// Tee records one chunk with its direction marker. A nil log is a no-op, so
// callers relay with logging disabled without checking.
func (l *TrafficLog) Tee(dir Direction, chunk []byte) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write([]byte(dir)); err != nil {
		return
	}
	_, _ = l.w.Write(chunk)
}

func (l *TrafficLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
