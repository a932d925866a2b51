package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/uciwire/uciwire/internal/app"
	"github.com/uciwire/uciwire/internal/config"
	"github.com/uciwire/uciwire/internal/daemon"
	"github.com/uciwire/uciwire/internal/event"
	"github.com/uciwire/uciwire/internal/i18n"
	"github.com/uciwire/uciwire/internal/relay"
	"github.com/uciwire/uciwire/internal/util"
)

var (
	configFile = pflag.String("config", "client.json", "")
	writePid   = pflag.Bool("pid", false, "")
)

func usage() {
	w := os.Stderr
	_, _ = fmt.Fprintf(w, "%s\n\n", i18n.T("usage_client_header", nil))
	_, _ = fmt.Fprintf(w, i18n.T("usage_format", nil)+"\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "\n%s\n", i18n.T("options_header", nil))
	_, _ = fmt.Fprintf(w, "  --config filename\n    \t%s\n", i18n.T("flag_config_desc", nil))
	_, _ = fmt.Fprintf(w, "  --pid\n    \t%s\n", i18n.T("flag_pid_desc", nil))
}

func main() {
	util.InitDefaultLogger()

	if err := i18n.InitDefaultFS(); err != nil {
		// Can't use i18n.T here since i18n init failed
		util.Warn("failed to initialize localization", map[string]any{"error": err.Error()})
	}

	pflag.Usage = usage
	pflag.Parse()

	cfg, err := config.LoadClient(*configFile)
	if err != nil {
		util.Error(i18n.T("config_load_error", map[string]any{"Error": err}), nil)
		os.Exit(1)
	}

	util.SetDefaultLogger(util.ParseLogLevel(cfg.LogLevel), os.Stderr)

	if *writePid {
		if err := daemon.WritePidFile("uciclient"); err != nil {
			util.LogError(i18n.T("pid_file_error", map[string]any{"Error": err}), err, nil)
		}
	}

	bus := event.NewBus()
	defer bus.Close()

	bus.Subscribe(event.SessionEnded, func(evt event.Event) {
		if outcome, ok := evt.Data.(relay.Outcome); ok {
			util.Info(i18n.T("session_ended", map[string]any{
				"Sent":     outcome.BytesSent,
				"Received": outcome.BytesReceived,
			}), nil)
		}
	})

	ctx := app.SetupTerminationHandler(context.Background(), bus)

	client := app.NewClient(cfg, bus)
	if err := client.Run(ctx); err != nil {
		util.Error(i18n.T("app_error", map[string]any{"Error": err}), nil)
		os.Exit(1)
	}
}
