package app

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/uciwire/uciwire/internal/config"
	"github.com/uciwire/uciwire/internal/engine"
	"github.com/uciwire/uciwire/internal/event"
	"github.com/uciwire/uciwire/internal/extip"
	"github.com/uciwire/uciwire/internal/i18n"
	"github.com/uciwire/uciwire/internal/relay"
	"github.com/uciwire/uciwire/internal/util"
	"github.com/uciwire/uciwire/pkg/errors"
)

const extipTimeout = 30 * time.Second

// Server is the engine side of the relay. It serves connections strictly one
// at a time: a new session starts only after the previous session's pumps
// have joined and its engine process has been reaped.
type Server struct {
	Config config.Server
	Bus    *event.Bus

	mu sync.Mutex
	ln net.Listener
}

func NewServer(cfg config.Server, bus *event.Bus) *Server {
	return &Server{
		Config: cfg,
		Bus:    bus,
	}
}

// Run announces the external address, binds the listener, and serves until
// the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log := util.DefaultLogger.WithComponent("server")

	log.Info(i18n.T("server_detecting_ip", nil), nil)
	ipCtx, cancel := context.WithTimeout(ctx, extipTimeout)
	ip, err := extip.Detect(ipCtx)
	cancel()
	if err != nil {
		log.Warn(i18n.T("server_external_ip_failed", map[string]any{"Error": err}), nil)
	} else {
		log.Info(i18n.T("server_external_ip", map[string]any{"IP": ip}), nil)
	}

	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Listen binds the configured address. Bind failure is fatal to the program.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Config.BindAddress)
	if err != nil {
		util.DefaultLogger.WithComponent("server").LogError(i18n.T("server_bind_error", map[string]any{
			"Address": s.Config.BindAddress,
			"Error":   err,
		}), err, nil)
		return errors.WrapWithBase(errors.ErrBindFailed, s.Config.BindAddress, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	util.DefaultLogger.WithComponent("server").Info(i18n.T("server_listening", map[string]any{
		"Address": ln.Addr().String(),
	}), nil)

	return nil
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts and relays connections sequentially until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	log := util.DefaultLogger.WithComponent("server")

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	// Unblocks Accept on shutdown.
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	log.Info(i18n.T("server_waiting", nil), nil)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || util.IsExpectedError(err) {
				return nil
			}
			log.LogError(i18n.T("server_accept_error", map[string]any{"Error": err}), err, nil)
			continue
		}

		s.handleConn(ctx, conn, log)
	}
}

// handleConn runs one complete relay session: spawn, pump, reap.
func (s *Server) handleConn(ctx context.Context, conn net.Conn, log *util.Logger) {
	remote := conn.RemoteAddr().String()
	log.Info(i18n.T("server_client_connected", map[string]any{"Address": remote}), nil)
	s.Bus.Publish(event.Event{Type: event.ConnectionEstablished, Data: remote, Ctx: ctx})

	eng, err := engine.Spawn(s.Config.ExecutablePath)
	if err != nil {
		log.LogError(i18n.T("engine_spawn_error", map[string]any{"Error": err}), err, nil)
		_ = conn.Close()
		return
	}

	log.Info(i18n.T("engine_started", map[string]any{
		"Path": s.Config.ExecutablePath,
		"PID":  eng.PID(),
	}), nil)
	s.Bus.Publish(event.Event{Type: event.EngineSpawned, Data: eng.PID(), Ctx: ctx})

	sess := &relay.Session{
		Conn:     conn,
		Endpoint: eng.Endpoint(),
		Signal:   relay.NewShutdownSignal(),
	}
	outcome := sess.Run(ctx)

	eng.Stop()
	log.Info(i18n.T("engine_stopped", map[string]any{"PID": eng.PID()}), nil)
	s.Bus.Publish(event.Event{Type: event.EngineStopped, Data: eng.PID(), Ctx: ctx})

	if util.IsConnectionError(outcome.Cause) {
		log.Warn(i18n.T("connection_reset", nil), map[string]any{"error": outcome.Cause.Error()})
	}
	log.Info(i18n.T("server_client_disconnected", nil), map[string]any{
		"sent":     outcome.BytesSent,
		"received": outcome.BytesReceived,
	})
	s.Bus.Publish(event.Event{Type: event.SessionEnded, Data: outcome, Ctx: ctx})
}
