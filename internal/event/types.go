package event

import (
	"context"
)

const (
	ConnectionEstablished = "connection_established"
	ConnectionClosed      = "connection_closed"
	EngineSpawned         = "engine_spawned"
	EngineStopped         = "engine_stopped"
	SessionEnded          = "session_ended"
	TerminationSignal     = "termination_signal"
)

type Event struct {
	Type string
	Data any
	Ctx  context.Context
}
