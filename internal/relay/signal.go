package relay

import "sync/atomic"

// ShutdownSignal is the cooperative stop flag shared by the two pumps of a
// relay session. Setting it is idempotent; only the inbound pump observes it,
// at its poll boundary.
type ShutdownSignal struct {
	flag atomic.Bool
}

func NewShutdownSignal() *ShutdownSignal {
	return &ShutdownSignal{}
}

func (s *ShutdownSignal) Set() {
	s.flag.Store(true)
}

func (s *ShutdownSignal) IsSet() bool {
	return s.flag.Load()
}
