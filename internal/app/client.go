package app

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/uciwire/uciwire/internal/config"
	"github.com/uciwire/uciwire/internal/event"
	"github.com/uciwire/uciwire/internal/i18n"
	"github.com/uciwire/uciwire/internal/relay"
	"github.com/uciwire/uciwire/internal/transport"
	"github.com/uciwire/uciwire/internal/util"
	"github.com/uciwire/uciwire/pkg/errors"
)

// Client is the terminal side of the relay: one outbound connection, one
// relay session over the operator's terminal, then exit.
type Client struct {
	Config config.Client
	Bus    *event.Bus

	// In and Out default to the process's terminal and are replaceable in
	// tests.
	In  io.Reader
	Out io.Writer
}

func NewClient(cfg config.Client, bus *event.Bus) *Client {
	return &Client{
		Config: cfg,
		Bus:    bus,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

func (c *Client) Run(ctx context.Context) error {
	log := util.DefaultLogger.WithComponent("client")

	var traffic *relay.TrafficLog
	if c.Config.Logging.Enabled {
		tl, err := relay.OpenTrafficLog(c.Config.Logging.Path)
		if err != nil {
			return errors.Wrap(err, i18n.T("traffic_log_open_error", nil))
		}
		traffic = tl
		defer func() { _ = traffic.Close() }()

		log.Info(i18n.T("client_logging_enabled", map[string]any{
			"Path": c.Config.Logging.Path,
		}), nil)
	}

	if isTerminal(c.In) {
		log.Info(i18n.T("client_connecting", map[string]any{
			"Address": c.Config.Address,
		}), nil)
	}

	conn, err := transport.Connect(ctx, transport.WithAddress(c.Config.Address))
	if err != nil {
		log.LogError(i18n.T("connect_error", map[string]any{"Error": err}), err, nil)
		return err
	}

	log.Info(i18n.T("client_connected", map[string]any{
		"Address": c.Config.Address,
	}), nil)
	c.Bus.Publish(event.Event{Type: event.ConnectionEstablished, Data: c.Config.Address, Ctx: ctx})

	sig := relay.NewShutdownSignal()
	sess := &relay.Session{
		Conn:     conn,
		Endpoint: relay.NewTerminalEndpoint(c.In, c.Out),
		Signal:   sig,
		Traffic:  traffic,
	}

	outcome := sess.Run(ctx)

	if sig.IsSet() {
		log.Info(i18n.T("client_quit_received", nil), nil)
	}
	if util.IsConnectionError(outcome.Cause) {
		log.Warn(i18n.T("connection_reset", nil), map[string]any{"error": outcome.Cause.Error()})
	}
	log.Info(i18n.T("client_disconnected", nil), map[string]any{
		"sent":     outcome.BytesSent,
		"received": outcome.BytesReceived,
	})

	c.Bus.Publish(event.Event{Type: event.ConnectionClosed, Data: c.Config.Address, Ctx: ctx})
	c.Bus.Publish(event.Event{Type: event.SessionEnded, Data: outcome, Ctx: ctx})

	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
